package mcts

import (
	"math/rand"

	"github.com/skybrian/gongo/internal/board"
)

// badMoveCoord distinguishes "simulation over" from a legitimate Pass: a
// playout may need to play Pass as a real move (the only one available)
// while still not being finished, whereas BadMove means the position is
// already terminal and simulate() should stop (§4.5).
const badMoveCoord = board.PASS - 1

// BadMove signals the playout is finished; the driving worker must stop
// simulating and move on to scoring.
var BadMove = board.Move{Coord: badMoveCoord}

func isBadMove(m board.Move) bool { return m.Coord == badMoveCoord }

// PlayoutPolicy proposes the next move to play during simulation, given
// the last move actually played (possibly by the opponent) in this
// playout (§4.5).
type PlayoutPolicy interface {
	Select(pos *board.Position, lastMove int, rng *rand.Rand) board.Move
}

const uniformRetries = 10

// Uniform picks a uniformly random non-eye-filling legal move, retrying a
// bounded number of times before falling back to a full scan.
type Uniform struct{}

func (Uniform) Select(pos *board.Position, lastMove int, rng *rand.Rand) board.Move {
	if pos.Terminal() {
		return BadMove
	}
	color := pos.SideToMove()
	coord := pos.RandomLegalNonEye(rng, uniformRetries)
	if coord != board.BadMove {
		return board.Move{Color: color, Coord: coord}
	}
	moves := pos.GetMoves(true)
	if len(moves) == 0 {
		return BadMove
	}
	return moves[rng.Intn(len(moves))]
}

// weight is the §4.5 scoring table used by best-of-N to rank candidate
// moves by their MoveInfo classification.
func weight(info board.MoveInfo) int {
	w := 0
	if info.Has(board.Capture) {
		w += 10
	}
	if info.Has(board.Atari) {
		w += 5
	}
	if info.Has(board.SelfAtari) {
		w -= 8
	}
	if info.Has(board.Save) {
		w += 10
	}
	if info.Has(board.Connection) {
		w += 1
	}
	if info.Has(board.EyeShape) {
		w += 1
	}
	return w
}

// BestOfN draws K random legal non-eye moves and returns the highest
// weighted by the MoveInfo scoring table, first-seen breaking ties.
type BestOfN struct {
	K int
}

func (p BestOfN) Select(pos *board.Position, lastMove int, rng *rand.Rand) board.Move {
	if pos.Terminal() {
		return BadMove
	}
	color := pos.SideToMove()
	best := BadMove
	bestScore := 0
	haveBest := false
	seen := map[int]bool{}
	for tries := 0; tries < p.K*5 && len(seen) < p.K; tries++ {
		coord := pos.RandomLegalNonEye(rng, 1)
		if coord == board.BadMove || seen[coord] {
			continue
		}
		seen[coord] = true
		info := pos.Check(color, coord)
		score := weight(info)
		if !haveBest || score > bestScore {
			bestScore = score
			best = board.Move{Color: color, Coord: coord}
			haveBest = true
		}
	}
	if !haveBest {
		return Uniform{}.Select(pos, lastMove, rng)
	}
	return best
}

// urgentMask is the MoveInfo mask RandomLocalUrgent filters by in the
// biased policy: capture or atari adjacent to the simulation's last move.
const urgentMask = board.Capture | board.Atari

// BiasedBestOfN layers the attacking/saving/local-urgent random queries on
// top of BestOfN, each tried with its own probability before falling back
// (§4.5). The biases look at the move last played in the simulation, not
// the root move.
type BiasedBestOfN struct {
	K int
}

func (p BiasedBestOfN) Select(pos *board.Position, lastMove int, rng *rand.Rand) board.Move {
	if pos.Terminal() {
		return BadMove
	}
	color := pos.SideToMove()

	if rng.Float64() < 0.45 {
		if coord := pos.RandomAttacking(rng, 1); coord != board.BadMove {
			return board.Move{Color: color, Coord: coord}
		}
	}
	if rng.Float64() < 0.55 {
		if coord := pos.RandomSaving(rng); coord != board.BadMove {
			return board.Move{Color: color, Coord: coord}
		}
	}
	if rng.Float64() < 0.55 {
		if coord := pos.RandomLocalUrgent(rng, lastMove, urgentMask); coord != board.BadMove {
			return board.Move{Color: color, Coord: coord}
		}
	}
	return BestOfN{K: p.K}.Select(pos, lastMove, rng)
}
