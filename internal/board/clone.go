package board

// Clone returns an independent deep copy of p. Cost is proportional to the
// number of words in the board's bitsets times the number of chains, not to
// board area times chain count, since each chain's Clone is O(words).
func (p *Position) Clone() *Position {
	c := &Position{
		Size:            p.Size,
		Area:            p.Area,
		Komi:            p.Komi,
		black:           p.black.Clone(),
		white:           p.white.Clone(),
		empty:           p.empty.Clone(),
		points:          make([]Point, len(p.points)),
		nbrs:            p.nbrs,
		chains:          make([]*StoneChain, len(p.chains)),
		sideToMove:      p.sideToMove,
		turnNumber:      p.turnNumber,
		currentHash:     p.currentHash,
		hashHistory:     append([]uint64(nil), p.hashHistory...),
		passedLast:      p.passedLast,
		lastNonPassMove: p.lastNonPassMove,
		zob:             p.zob,
		patterns:        p.patterns,
		scratchTouched:  make(map[int]bool),
	}
	copy(c.points, p.points)
	for i, ch := range p.chains {
		c.chains[i] = &StoneChain{
			id:         ch.id,
			colour:     ch.colour,
			stones:     ch.stones.Clone(),
			frontier:   ch.frontier.Clone(),
			liberties:  ch.liberties,
			zobristXOR: ch.zobristXOR,
			dead:       ch.dead,
		}
	}
	return c
}

// CloneFrom overwrites p in place with a deep copy of other, reusing p's
// existing bitset and chain allocations where their capacity already
// matches -- the allocation-avoiding counterpart to Clone, for search
// workers that want to recycle a scratch Position across playouts.
func (p *Position) CloneFrom(other *Position) {
	p.Size = other.Size
	p.Area = other.Area
	p.Komi = other.Komi
	p.nbrs = other.nbrs
	p.zob = other.zob
	p.patterns = other.patterns
	p.sideToMove = other.sideToMove
	p.turnNumber = other.turnNumber
	p.currentHash = other.currentHash
	p.passedLast = other.passedLast
	p.lastNonPassMove = other.lastNonPassMove

	if p.black == nil || p.black.Len() != other.Area {
		p.black = other.black.Clone()
		p.white = other.white.Clone()
		p.empty = other.empty.Clone()
	} else {
		p.black.CopyFrom(other.black)
		p.white.CopyFrom(other.white)
		p.empty.CopyFrom(other.empty)
	}

	if len(p.points) != len(other.points) {
		p.points = make([]Point, len(other.points))
	}
	copy(p.points, other.points)

	p.hashHistory = append(p.hashHistory[:0], other.hashHistory...)

	if cap(p.chains) >= len(other.chains) {
		p.chains = p.chains[:len(other.chains)]
	} else {
		p.chains = make([]*StoneChain, len(other.chains))
	}
	for i, ch := range other.chains {
		dst := p.chains[i]
		if dst == nil || dst.stones.Len() != ch.stones.Len() {
			dst = newChain(ch.id, ch.colour, p.Area)
			p.chains[i] = dst
		}
		dst.id = ch.id
		dst.colour = ch.colour
		dst.stones.CopyFrom(ch.stones)
		dst.frontier.CopyFrom(ch.frontier)
		dst.liberties = ch.liberties
		dst.zobristXOR = ch.zobristXOR
		dst.dead = ch.dead
	}

	if p.scratchTouched == nil {
		p.scratchTouched = make(map[int]bool)
	}
}
