package board

import "fmt"

// MakeMove plays a move for colour at coord (§4.4). The caller is
// responsible for classifying the move first with Check. MakeMove itself
// only rejects a move onto an occupied point, returning an error; a
// suicide or a superko repetition is not detected here and is played as
// given.
func (p *Position) MakeMove(color Color, coord int) error {
	if coord == PASS {
		p.passedLast[colorIndex(color)] = true
		p.currentHash ^= p.zob.BlackTurnKey
		p.sideToMove = color.Opposite()
		p.turnNumber++
		p.hashHistory = append(p.hashHistory, p.currentHash)
		return nil
	}

	if p.points[coord].Color != Empty {
		return fmt.Errorf("board: illegal make-move, %v is occupied", coord)
	}

	enemy := color.Opposite()
	p.passedLast[colorIndex(color)] = false

	// Snapshot neighbour chains before mutating anything.
	var enemyChains, friendlyChains []int
	seenEnemy, seenFriendly := map[int]bool{}, map[int]bool{}
	for _, nb := range p.nbrs.orth[coord] {
		switch p.points[nb].Color {
		case enemy:
			id := p.points[nb].ChainID
			if !seenEnemy[id] {
				seenEnemy[id] = true
				enemyChains = append(enemyChains, id)
			}
		case color:
			id := p.points[nb].ChainID
			if !seenFriendly[id] {
				seenFriendly[id] = true
				friendlyChains = append(friendlyChains, id)
			}
		}
	}

	p.setOccupied(coord, color)
	newChain := p.newChainAt(coord, color)

	touched := p.scratchTouched
	for k := range touched {
		delete(touched, k)
	}
	touched[newChain.id] = true

	// Capture any enemy chain this move reduces to zero liberties.
	var capturedCoords []int
	for _, id := range enemyChains {
		ch := p.chains[id]
		ch.liberties = ch.frontier.IntersectionCount(p.empty)
		if ch.liberties == 0 {
			p.currentHash ^= ch.zobristXOR
			ch.stones.Each(func(sc int) bool {
				capturedCoords = append(capturedCoords, sc)
				return true
			})
			for _, sc := range capturedCoords[len(capturedCoords)-ch.Size():] {
				p.clearToEmpty(sc)
			}
			ch.dead = true
		} else {
			touched[id] = true
		}
	}

	// Merge friendly neighbour chains into the new stone's chain.
	p.mergeInto(newChain, friendlyChains)
	p.currentHash ^= p.zob.Keys[colorIndex(color)][coord]

	// Bystander chains adjacent to a captured point gained a liberty; mark
	// them dirty so their cached liberty count is refreshed below.
	for _, sc := range capturedCoords {
		for _, nb := range p.nbrs.orth[sc] {
			if p.points[nb].Color != Empty {
				touched[p.points[nb].ChainID] = true
			}
		}
	}

	for id := range touched {
		ch := p.chains[id]
		if !ch.dead {
			ch.liberties = ch.frontier.IntersectionCount(p.empty)
		}
	}

	p.currentHash ^= p.zob.BlackTurnKey
	p.sideToMove = enemy
	p.turnNumber++
	p.lastNonPassMove = coord
	p.hashHistory = append(p.hashHistory, p.currentHash)
	return nil
}
