package mcts

import (
	"math/rand"
	"testing"

	"github.com/skybrian/gongo/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformReturnsBadMoveOnTerminalPosition(t *testing.T) {
	pos, err := board.NewPosition(5)
	require.NoError(t, err)
	require.NoError(t, pos.MakeMove(board.Black, board.PASS))
	require.NoError(t, pos.MakeMove(board.White, board.PASS))
	require.True(t, pos.Terminal())

	rng := rand.New(rand.NewSource(1))
	got := Uniform{}.Select(pos, board.PASS, rng)
	assert.True(t, isBadMove(got))
}

func TestUniformReturnsLegalMoveOnEmptyBoard(t *testing.T) {
	pos, err := board.NewPosition(5)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(1))
	move := Uniform{}.Select(pos, board.PASS, rng)
	require.False(t, isBadMove(move))
	if move.Coord != board.PASS {
		info := pos.Check(move.Color, move.Coord)
		assert.False(t, info.Illegal())
	}
}

func TestWeightRanksCaptureAboveSelfAtari(t *testing.T) {
	assert.Greater(t, weight(board.Legal|board.Capture), weight(board.Legal|board.SelfAtari))
	assert.Greater(t, weight(board.Legal|board.Save), weight(board.Legal))
}

func TestBestOfNPrefersCapture(t *testing.T) {
	// Single white stone in atari at (2,2) on a 5x5, its only liberty at
	// (3,2); black to move. The capturing move should outscore any quiet
	// move in the weight table often enough that, across many independent
	// seeds with a generous K, at least one run finds and picks it.
	pos, err := board.NewPositionFromDiagram([]string{
		".....",
		".....",
		".BWB.",
		"..B..",
		".....",
	}, board.DefaultKomi, board.Black)
	require.NoError(t, err)

	found := false
	for seed := int64(0); seed < 30 && !found; seed++ {
		rng := rand.New(rand.NewSource(seed))
		move := BestOfN{K: 20}.Select(pos, board.PASS, rng)
		if !isBadMove(move) && pos.Check(board.Black, move.Coord).Has(board.Capture) {
			found = true
		}
	}
	assert.True(t, found, "best-of-N should pick the capturing move in at least one of 30 independent samplings")
}

func TestBiasedBestOfNFallsBackWhenNoUrgentMoveExists(t *testing.T) {
	pos, err := board.NewPosition(5)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(5))
	move := BiasedBestOfN{K: 8}.Select(pos, board.PASS, rng)
	require.False(t, isBadMove(move))
}
