package board

import "github.com/skybrian/gongo/internal/bitset"

// chainNone marks a point that belongs to no chain.
const chainNone = -1

// StoneChain is a maximal connected component of same-colour stones.
//
// Invariants (enforced by Position.MakeMove / mergeInto):
//   - frontier ∩ stones = ∅
//   - every orthogonal neighbour of a stone is in stones or frontier
//   - liberties = |frontier ∩ empty|
//   - dead chains are logically absent; their id is never reused within one
//     Position's lifetime
type StoneChain struct {
	id         int
	colour     Color
	stones     *bitset.Set
	frontier   *bitset.Set
	liberties  int
	zobristXOR uint64
	dead       bool
}

// ID returns the chain's id, stable only within one Position's lifetime.
func (c *StoneChain) ID() int { return c.id }

// Colour returns the chain's colour.
func (c *StoneChain) Colour() Color { return c.colour }

// Liberties returns the cached liberty count.
func (c *StoneChain) Liberties() int { return c.liberties }

// Size returns the number of stones in the chain.
func (c *StoneChain) Size() int { return c.stones.Count() }

// Dead reports whether this chain has been captured or merged away.
func (c *StoneChain) Dead() bool { return c.dead }

// Stones exposes the chain's member bitset for iteration.
func (c *StoneChain) Stones() *bitset.Set { return c.stones }

func newChain(id int, colour Color, area int) *StoneChain {
	return &StoneChain{
		id:       id,
		colour:   colour,
		stones:   bitset.New(area),
		frontier: bitset.New(area),
	}
}
