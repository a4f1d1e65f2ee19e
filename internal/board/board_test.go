package board

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deterministicRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestNewPositionEmptyBlackToMove(t *testing.T) {
	p, err := NewPosition(9)
	require.NoError(t, err)
	assert.Equal(t, Black, p.SideToMove())
	assert.Equal(t, 81, p.Area)
	for c := 0; c < p.Area; c++ {
		assert.Equal(t, Empty, p.At(c))
	}
}

func TestNewPositionRejectsBadSize(t *testing.T) {
	_, err := NewPosition(0)
	assert.Error(t, err)
	_, err = NewPosition(MaxBoardSize + 1)
	assert.Error(t, err)
}

func TestDiagramParsesTopRowFirst(t *testing.T) {
	p, err := NewPositionFromDiagram([]string{
		"...",
		".B.",
		"...",
	}, DefaultKomi, Black)
	require.NoError(t, err)
	// Diagram row 1 (".B.") is the middle printed row, which is also board
	// row 1 (0-based from the bottom) since size is 3.
	assert.Equal(t, Black, p.At(1*3+1))
}

func TestCaptureRemovesStoneAndGrantsLiberty(t *testing.T) {
	// White stone at center of a 5x5, surrounded by black on 3 sides; its
	// only liberty is the point to its north.
	p, err := NewPositionFromDiagram([]string{
		".....",
		".....",
		".BWB.",
		"..B..",
		".....",
	}, DefaultKomi, Black)
	require.NoError(t, err)

	// The white stone sits at printed row 2, col 2 -> board row 2, col 2.
	whiteCoord := 2*5 + 2
	require.Equal(t, White, p.At(whiteCoord))

	north := 3*5 + 2
	info := p.Check(Black, north)
	require.True(t, info.Has(Capture))
	require.NoError(t, p.MakeMove(Black, north))

	assert.Equal(t, Empty, p.At(whiteCoord))
	assert.Equal(t, 0, p.white.Count())
}

func TestSuicideIsIllegal(t *testing.T) {
	p, err := NewPositionFromDiagram([]string{
		".B.",
		"B.B",
		".B.",
	}, DefaultKomi, White)
	require.NoError(t, err)
	center := 1*3 + 1
	info := p.Check(White, center)
	assert.True(t, info.Illegal())
	assert.True(t, info.Has(Suicide))
}

func TestKoRecaptureIsRepetition(t *testing.T) {
	// A single white stone at (2,2) has its sole liberty at (2,3); capturing
	// it there leaves black's new stone with its sole liberty back at
	// (2,2), the classic ko shape. White's immediate recapture must
	// reproduce the pre-capture position and so is flagged Repetition.
	p, err := NewPositionFromDiagram([]string{
		".....", // board row 4
		"..BW.", // board row 3
		".BW.W", // board row 2
		"..BW.", // board row 1
		".....", // board row 0
	}, DefaultKomi, Black)
	require.NoError(t, err)

	whiteStone := 2*5 + 2
	require.Equal(t, White, p.At(whiteStone))

	captureAt := 2*5 + 3
	info := p.Check(Black, captureAt)
	require.True(t, info.Has(Capture))
	require.NoError(t, p.MakeMove(Black, captureAt))

	assert.Equal(t, Empty, p.At(whiteStone))
	assert.Equal(t, Black, p.At(captureAt))

	recapture := p.Check(White, whiteStone)
	assert.True(t, recapture.Has(Repetition))
	assert.True(t, recapture.Illegal())
}

func TestEyeIsDetectedAndSuppressedDuringPlayout(t *testing.T) {
	p, err := NewPositionFromDiagram([]string{
		".....",
		".BBB.",
		".B.B.",
		".BBB.",
		".....",
	}, DefaultKomi, Black)
	require.NoError(t, err)
	eye := 2*5 + 2
	assert.True(t, p.WouldFillEye(Black, eye))

	moves := p.GetMoves(true)
	for _, m := range moves {
		assert.NotEqual(t, eye, m.Coord, "eye point must be suppressed during playout")
	}

	full := p.GetMoves(false)
	found := false
	for _, m := range full {
		if m.Coord == eye {
			found = true
		}
	}
	assert.True(t, found, "eye point must still be classifiable outside a playout")
}

func TestScoreCountsTerritoryByFirstOrthogonalNeighbour(t *testing.T) {
	// A one-point-deep gap: every empty point's first orthogonal neighbour
	// (row-1, same column, per buildNeighborTable's direction order) is a
	// black stone, so the naive per-point rule scores it the same as a
	// flood fill would: 22 black stones plus 3 black-bordering empty
	// points outscore white's zero under no komi.
	p, err := NewPositionFromDiagram([]string{
		"BBBBB",
		"BBBBB",
		"B...B",
		"BBBBB",
		"BBBBB",
	}, 0, Black)
	require.NoError(t, err)
	assert.Equal(t, 25.0, p.Score())
}

func TestScoreIsNaiveAboutMultiRowTerritory(t *testing.T) {
	// A black ring enclosing a 3x3 empty region: only the empty row
	// directly above the bottom wall (board row 1) has a stone as its first
	// orthogonal neighbour (row-1). The two inner rows' first neighbour is another empty
	// point, which the naive (non-flood-fill) rule still resolves as
	// "not black" -- the same limitation the reference scoring loop has,
	// pinned down here so a future change can't silently reintroduce
	// flood-fill semantics without this test catching it.
	p, err := NewPositionFromDiagram([]string{
		"BBBBB",
		"B...B",
		"B...B",
		"B...B",
		"BBBBB",
	}, 0, Black)
	require.NoError(t, err)
	assert.Equal(t, 13.0, p.Score())
}

func TestCloneIsIndependent(t *testing.T) {
	p, err := NewPosition(9)
	require.NoError(t, err)
	require.NoError(t, p.MakeMove(Black, 40))
	clone := p.Clone()
	require.NoError(t, clone.MakeMove(White, 41))
	assert.Equal(t, Empty, p.At(41))
	assert.Equal(t, White, clone.At(41))
}

func TestCloneFromReusesAllocations(t *testing.T) {
	p, err := NewPosition(9)
	require.NoError(t, err)
	require.NoError(t, p.MakeMove(Black, 10))

	var scratch Position
	scratch.CloneFrom(p)
	assert.Equal(t, Black, scratch.At(10))

	require.NoError(t, p.MakeMove(White, 11))
	scratch.CloneFrom(p)
	assert.Equal(t, White, scratch.At(11))
}

func TestCoordStringRoundTrips(t *testing.T) {
	for _, coord := range []int{0, 5, 42, 80} {
		s := CoordString(coord, 9)
		parsed, ok := ParseCoord(s, 9)
		require.True(t, ok)
		assert.Equal(t, coord, parsed)
	}
	assert.Equal(t, "pass", CoordString(PASS, 9))
	parsed, ok := ParseCoord("pass", 9)
	assert.True(t, ok)
	assert.Equal(t, PASS, parsed)
}

func TestRandomLegalNonEyeAvoidsOccupiedPoints(t *testing.T) {
	p, err := NewPosition(5)
	require.NoError(t, err)
	require.NoError(t, p.MakeMove(Black, 0))
	rng := deterministicRNG(1)
	for i := 0; i < 20; i++ {
		coord := p.RandomLegalNonEye(rng, 25)
		if coord == BadMove {
			continue
		}
		assert.NotEqual(t, 0, coord)
	}
}

func TestOverlayStringDrawsClassificationOverStones(t *testing.T) {
	// White at board coord 12 has a single liberty at coord 13 (its only
	// empty orthogonal neighbour); playing there captures it.
	p, err := NewPositionFromDiagram([]string{
		".....",
		"..B..",
		".BW..",
		"..B..",
		".....",
	}, DefaultKomi, Black)
	require.NoError(t, err)

	const libertyCoord = 13
	info := p.Check(Black, libertyCoord)
	require.True(t, info.Has(Capture))

	rendered := p.OverlayString(map[int]MoveInfo{libertyCoord: info})
	lines := strings.Split(rendered, "\n")
	require.Len(t, lines, 5)

	// libertyCoord is board row 2, col 3; printed top-to-bottom that's
	// line index (Size-1-row) = 2, column 3. Its overlay char replaces
	// '.', and the white stone beside it is untouched.
	assert.Equal(t, byte('c'), lines[2][3])
	assert.Equal(t, byte('O'), lines[2][2])
}
