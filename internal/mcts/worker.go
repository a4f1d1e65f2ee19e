package mcts

import (
	"context"
	"math/rand"

	"github.com/skybrian/gongo/internal/board"
)

// Worker runs search iterations against a shared tree, owning its own
// PRNG, policy instances, and scratch position (§4.7). Workers never share
// a Position; only the tree nodes are shared, each guarded by its own
// mutex.
type Worker struct {
	root      *Node
	rootPos   *board.Position
	selection SelectionPolicy
	playout   PlayoutPolicy
	rng       *rand.Rand
	scratch   *board.Position
}

// NewWorker constructs a worker seeded independently of any other worker's
// stream, per the driver's seeder PRNG (§4.8).
func NewWorker(root *Node, rootPos *board.Position, selection SelectionPolicy, playout PlayoutPolicy, seed int64) *Worker {
	return &Worker{
		root:      root,
		rootPos:   rootPos,
		selection: selection,
		playout:   playout,
		rng:       rand.New(rand.NewSource(seed)),
		scratch:   rootPos.Clone(),
	}
}

// Run drives iterations until ctx is cancelled, observed only at iteration
// boundaries (§5: cancellation never interrupts a half-done iteration).
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			w.iterate()
		}
	}
}

// iterate runs one select/expand/simulate/backpropagate pass (§4.7).
func (w *Worker) iterate() {
	w.scratch.CloneFrom(w.rootPos)

	ownership := make(map[int]board.Color)
	path := []*Node{w.root}
	node := w.root

	// Select.
	for node.HasChildren() && node.Visits() >= node.ChildCount() {
		child := node.SelectChild(w.selection)
		w.play(child.Move, ownership)
		path = append(path, child)
		node = child
	}

	// Expand, unless the scratch position is already terminal (no moves
	// to generate) -- a leaf reached via a pass into a finished game.
	if !node.HasChildren() && !w.scratch.Terminal() {
		candidates := w.candidatesFor(w.scratch)
		if len(candidates) > 0 {
			child := node.Expand(candidates, w.selection)
			w.play(child.Move, ownership)
			path = append(path, child)
			node = child
		}
	}

	// Simulate.
	lastMove := w.scratch.LastNonPassMove()
	for {
		move := w.playout.Select(w.scratch, lastMove, w.rng)
		if isBadMove(move) {
			break
		}
		w.play(move, ownership)
		if move.Coord != board.PASS {
			lastMove = move.Coord
		}
	}

	// Score.
	sign := w.scratch.ScoreSign()
	var winner board.Color
	draw := sign == 0
	if sign > 0 {
		winner = board.Black
	} else if sign < 0 {
		winner = board.White
	}

	// Backpropagate.
	for i := len(path) - 1; i >= 0; i-- {
		n := path[i]
		for _, child := range n.Children() {
			if child.Move.Coord == board.PASS {
				continue
			}
			if ownership[child.Move.Coord] != child.Move.Color {
				continue
			}
			win := 0.0
			switch {
			case draw:
				win = 0.5
			case child.Move.Color == winner:
				win = 1
			}
			child.addRave(win)
		}
		if n.Parent != nil {
			n.undoVirtualLoss()
		}
		win := 0.0
		switch {
		case draw:
			win = 0.5
		case n.Move.Color == winner:
			win = 1
		}
		n.recordVisit(win)
	}
}

// play applies move to the scratch position and records first-mover
// ownership of its coord for RAVE purposes (§4.7 step 2/4).
func (w *Worker) play(move board.Move, ownership map[int]board.Color) {
	if err := w.scratch.MakeMove(move.Color, move.Coord); err != nil {
		panic("mcts: worker played an unclassified illegal move: " + err.Error())
	}
	if move.Coord != board.PASS {
		if _, seen := ownership[move.Coord]; !seen {
			ownership[move.Coord] = move.Color
		}
	}
}

// candidatesFor classifies every legal move at pos for node expansion,
// including pass.
func (w *Worker) candidatesFor(pos *board.Position) []candidate {
	moves := pos.GetMoves(false)
	out := make([]candidate, len(moves))
	for i, m := range moves {
		out[i] = candidate{Move: m, Info: pos.Check(m.Color, m.Coord)}
	}
	return out
}
