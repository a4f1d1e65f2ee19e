package mcts

import (
	"testing"

	"github.com/skybrian/gongo/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVirtualLossIsUndone(t *testing.T) {
	root := NewRoot()
	child := makeChild(root, 0, 0, 0)
	child.addVirtualLoss()
	assert.Equal(t, VirtualLoss, child.Visits())
	child.undoVirtualLoss()
	assert.Equal(t, 0, child.Visits())
}

func TestExpandIsIdempotent(t *testing.T) {
	root := NewRoot()
	candidates := []candidate{
		{Move: board.Move{Color: board.Black, Coord: 0}, Info: board.Legal},
		{Move: board.Move{Color: board.Black, Coord: 1}, Info: board.Legal},
	}
	first := root.Expand(candidates, UCB{C: 1})
	require.Equal(t, 2, root.ChildCount())

	more := []candidate{{Move: board.Move{Color: board.Black, Coord: 2}, Info: board.Legal}}
	second := root.Expand(more, UCB{C: 1})
	assert.Equal(t, 2, root.ChildCount(), "expand must not re-expand an already-expanded node")
	assert.Contains(t, root.Children(), first)
	assert.Contains(t, root.Children(), second)
}

func TestPrioritisedFlagTransitionsOnce(t *testing.T) {
	root := NewRoot()
	root.children = []*Node{makeChild(root, 0, 0, 0)}
	assert.True(t, root.markPrioritisedLocked())
	assert.False(t, root.markPrioritisedLocked())
}

func TestRecordVisitAccumulates(t *testing.T) {
	n := NewRoot()
	n.recordVisit(1)
	n.recordVisit(0)
	n.recordVisit(0.5)
	stats := n.Snapshot()
	assert.Equal(t, 3, stats.Visits)
	assert.Equal(t, 1.5, stats.Wins)
}
