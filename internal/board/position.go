package board

import (
	"bytes"
	"fmt"

	"github.com/skybrian/gongo/internal/bitset"
	"github.com/skybrian/gongo/internal/zobrist"
)

// MaxBoardSize is the largest board the engine supports (§3).
const MaxBoardSize = 25

// DefaultKomi mirrors the teacher's constructor default and the spec's
// replay rule (komi 7.5 by default).
const DefaultKomi = 7.5

// Position is a playable board state: stone partition, chain table, move
// history, and the side to move.
type Position struct {
	Size int
	Area int
	Komi float64

	black *bitset.Set
	white *bitset.Set
	empty *bitset.Set

	points []Point
	nbrs   *neighborTable

	chains []*StoneChain

	sideToMove      Color
	turnNumber      int
	currentHash     uint64
	hashHistory     []uint64
	passedLast      [2]bool // index by colorIndex
	lastNonPassMove int

	zob      *zobrist.Table
	patterns PatternMatcher

	// scratch, reused across calls to avoid allocation on the hot path.
	scratchTouched map[int]bool
	scratchCoords  []int
}

// NewPosition returns an empty board of the given size with the default
// komi, black to move. size must be in [1, MaxBoardSize].
func NewPosition(size int) (*Position, error) {
	if size < 1 || size > MaxBoardSize {
		return nil, fmt.Errorf("board: unacceptable size %d", size)
	}
	p := &Position{
		Size:            size,
		Area:            size * size,
		Komi:            DefaultKomi,
		black:           bitset.New(size * size),
		white:           bitset.New(size * size),
		empty:           bitset.New(size * size),
		points:          make([]Point, size*size),
		nbrs:            sharedNeighborTable(size),
		sideToMove:      Black,
		lastNonPassMove: PASS,
		zob:             zobrist.Shared(),
		scratchTouched:  make(map[int]bool),
	}
	for i := range p.points {
		p.points[i].ChainID = chainNone
		p.empty.Set(i)
	}
	p.currentHash = p.zob.BlackTurnKey
	p.hashHistory = append(p.hashHistory, p.currentHash)
	return p, nil
}

// NewPositionFromMoves replays a sequence of moves onto an empty board,
// asserting each is legal under the constructor's ruleset, per §4.4.
func NewPositionFromMoves(size int, komi float64, moves []Move) (*Position, error) {
	p, err := NewPosition(size)
	if err != nil {
		return nil, err
	}
	p.Komi = komi
	for i, m := range moves {
		info := p.Check(m.Color, m.Coord)
		if info.Illegal() {
			return nil, fmt.Errorf("board: illegal move %d (%v): %v", i, m, info)
		}
		if err := p.MakeMove(m.Color, m.Coord); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// NewPositionFromDiagram parses a position literal (§6): size strings, each
// size characters from {'.','B','W'}, index 0 is the top row as printed.
func NewPositionFromDiagram(rows []string, komi float64, sideToMove Color) (*Position, error) {
	size := len(rows)
	p, err := NewPosition(size)
	if err != nil {
		return nil, err
	}
	p.Komi = komi
	for printRow, line := range rows {
		if len(line) != size {
			return nil, fmt.Errorf("board: row %d has length %d, want %d", printRow, len(line), size)
		}
		boardRow := size - 1 - printRow
		for col := 0; col < size; col++ {
			coord := boardRow*size + col
			switch line[col] {
			case '.':
			case 'B':
				p.placeInitialStone(Black, coord)
			case 'W':
				p.placeInitialStone(White, coord)
			default:
				return nil, fmt.Errorf("board: unknown diagram character %q", line[col])
			}
		}
	}
	p.recomputeAllLiberties()
	p.sideToMove = sideToMove
	p.currentHash = p.computeHashFromScratch()
	p.hashHistory = []uint64{p.currentHash}
	return p, nil
}

// placeInitialStone is used only by the diagram constructor: it places a
// stone without legality checks or capture handling (a diagram is assumed
// already-legal), merging into any adjacent same-colour chain.
func (p *Position) placeInitialStone(color Color, coord int) {
	p.setOccupied(coord, color)
	ch := p.newChainAt(coord, color)
	var toMerge []int
	seen := map[int]bool{}
	for _, nb := range p.nbrs.orth[coord] {
		if p.points[nb].Color == color {
			id := p.points[nb].ChainID
			if !seen[id] {
				seen[id] = true
				toMerge = append(toMerge, id)
			}
		}
	}
	p.mergeInto(ch, toMerge)
}

func (p *Position) recomputeAllLiberties() {
	for _, ch := range p.chains {
		if !ch.dead {
			ch.liberties = ch.frontier.IntersectionCount(p.empty)
		}
	}
}

// colorSet returns the bitset partition for c (Empty returns the empty
// set).
func (p *Position) colorSet(c Color) *bitset.Set {
	switch c {
	case Black:
		return p.black
	case White:
		return p.white
	default:
		return p.empty
	}
}

func (p *Position) setOccupied(coord int, color Color) {
	p.empty.Clear(coord)
	p.colorSet(color).Set(coord)
	p.points[coord].Color = color
}

func (p *Position) clearToEmpty(coord int) {
	c := p.points[coord].Color
	p.colorSet(c).Clear(coord)
	p.empty.Set(coord)
	p.points[coord] = Point{Color: Empty, ChainID: chainNone}
}

// newChainAt creates a fresh chain for a newly-placed single stone, with
// frontier set to all its orthogonal neighbours. Every call allocates a
// new id (§3: dead chains are logically absent and their ids are never
// reused within one Position's lifetime) rather than recycling a dead
// chain's id, even though its bitsets could otherwise be reused.
func (p *Position) newChainAt(coord int, color Color) *StoneChain {
	ch := newChain(len(p.chains), color, p.Area)
	p.chains = append(p.chains, ch)
	ch.stones.Set(coord)
	for _, nb := range p.nbrs.orth[coord] {
		ch.frontier.Set(nb)
	}
	ch.zobristXOR = p.zob.Keys[colorIndex(color)][coord]
	p.points[coord].ChainID = ch.id
	ch.liberties = ch.frontier.IntersectionCount(p.empty)
	return ch
}

// mergeInto absorbs the chains named by ids into ch (already containing
// coord), retiring them.
func (p *Position) mergeInto(ch *StoneChain, ids []int) {
	for _, id := range ids {
		other := p.chains[id]
		if other.id == ch.id || other.dead {
			continue
		}
		ch.stones.Or(other.stones)
		ch.frontier.Or(other.frontier)
		ch.zobristXOR ^= other.zobristXOR
		other.dead = true
		other.stones.Each(func(sc int) bool {
			p.points[sc].ChainID = ch.id
			return true
		})
	}
	ch.frontier.Sub(ch.stones)
	ch.liberties = ch.frontier.IntersectionCount(p.empty)
}

// Hash returns the current Zobrist hash, satisfying §8 property 5.
func (p *Position) Hash() uint64 { return p.currentHash }

// HashHistory returns every hash seen so far, including the current one,
// oldest first. Used for superko detection and exposed for tests.
func (p *Position) HashHistory() []uint64 { return p.hashHistory }

func (p *Position) computeHashFromScratch() uint64 {
	var h uint64
	for _, ch := range p.chains {
		if !ch.dead {
			h ^= ch.zobristXOR
		}
	}
	if p.sideToMove == Black {
		h ^= p.zob.BlackTurnKey
	}
	return h
}

// SideToMove returns the colour to play next.
func (p *Position) SideToMove() Color { return p.sideToMove }

// TurnNumber returns the number of plies (including passes) played so far.
func (p *Position) TurnNumber() int { return p.turnNumber }

// LastNonPassMove returns the coord of the last non-pass move, or PASS if
// none has been played.
func (p *Position) LastNonPassMove() int { return p.lastNonPassMove }

// PassedLast reports whether colour's most recent action was a pass.
func (p *Position) PassedLast(c Color) bool { return p.passedLast[colorIndex(c)] }

// Terminal reports whether the game has ended: both colours' last action
// was a pass (§3).
func (p *Position) Terminal() bool {
	return p.passedLast[0] && p.passedLast[1]
}

// At returns the colour occupying coord.
func (p *Position) At(coord int) Color { return p.points[coord].Color }

// ChainAt returns the chain occupying coord, or nil if coord is empty.
func (p *Position) ChainAt(coord int) *StoneChain {
	id := p.points[coord].ChainID
	if id == chainNone {
		return nil
	}
	return p.chains[id]
}

// Chains returns every live chain, for diagnostics and tests.
func (p *Position) Chains() []*StoneChain {
	var out []*StoneChain
	for _, ch := range p.chains {
		if !ch.dead {
			out = append(out, ch)
		}
	}
	return out
}

// String renders the board the way the teacher's BoardToString does:
// '.' empty, '@' black, 'O' white, top row first.
func (p *Position) String() string {
	var out bytes.Buffer
	for row := p.Size - 1; row >= 0; row-- {
		for col := 0; col < p.Size; col++ {
			switch p.points[row*p.Size+col].Color {
			case Empty:
				out.WriteByte('.')
			case Black:
				out.WriteByte('@')
			case White:
				out.WriteByte('O')
			}
		}
		if row > 0 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

// OverlayString renders the board like String, except that any empty
// point present in overlay is drawn as a one-character summary of its
// MoveInfo classification instead of '.', for debugging candidate moves
// in tests -- the teacher's BoardToString generalized to show why a move
// was classified the way it was, rather than just stone colour.
func (p *Position) OverlayString(overlay map[int]MoveInfo) string {
	var out bytes.Buffer
	for row := p.Size - 1; row >= 0; row-- {
		for col := 0; col < p.Size; col++ {
			coord := row*p.Size + col
			if info, ok := overlay[coord]; ok && p.points[coord].Color == Empty {
				out.WriteByte(overlayChar(info))
			} else {
				switch p.points[coord].Color {
				case Empty:
					out.WriteByte('.')
				case Black:
					out.WriteByte('@')
				case White:
					out.WriteByte('O')
				}
			}
		}
		if row > 0 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

// overlayChar picks one character for a point's MoveInfo, in priority
// order from most to least interesting for debugging.
func overlayChar(info MoveInfo) byte {
	switch {
	case info.Has(Capture):
		return 'c'
	case info.Has(Save):
		return 's'
	case info.Has(Atari):
		return 'a'
	case info.Has(SelfAtari):
		return 'x'
	case info.Has(FillsEye):
		return 'e'
	default:
		return '?'
	}
}
