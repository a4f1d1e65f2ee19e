package board

import "math/rand"

// BadMove is returned by the random selectors when no candidate satisfies
// the request (§4.4); callers fall back to the next selector in the
// playout policy's chain, ultimately to Pass.
const BadMove = PASS

// RandomLegalNonEye picks a legal, non-eye-filling point for the side to
// move: starting from a uniformly random coord it scans forward (wrapping
// around the board) and returns the first such empty point, checking at
// most k empty points before giving up (bounded work per playout move,
// §4.4). The choice is not uniform over the legal points: a point that
// follows a run of occupied or rejected points is picked more often.
func (p *Position) RandomLegalNonEye(rng *rand.Rand, k int) int {
	n := p.Area
	start := rng.Intn(n)
	tried := 0
	for i := 0; i < n && tried < k; i++ {
		coord := (start + i) % n
		if p.points[coord].Color != Empty {
			continue
		}
		tried++
		if p.isLegalNonEye(p.sideToMove, coord) {
			return coord
		}
	}
	return BadMove
}

func (p *Position) isLegalNonEye(color Color, coord int) bool {
	info := p.Check(color, coord)
	if info.Illegal() {
		return false
	}
	return !info.Has(FillsEye)
}

// RandomAttacking returns a uniformly random point that would reduce some
// enemy chain to exactly targetLiberties (typically 1, an atari-creating
// move), or BadMove if none exists.
func (p *Position) RandomAttacking(rng *rand.Rand, targetLiberties int) int {
	var candidates []int
	seen := map[int]bool{}
	enemy := p.sideToMove.Opposite()
	for _, ch := range p.chains {
		if ch.dead || ch.colour != enemy || ch.liberties != targetLiberties+1 {
			continue
		}
		ch.frontier.Each(func(coord int) bool {
			if p.points[coord].Color == Empty && !seen[coord] {
				seen[coord] = true
				if p.isLegalNonEye(p.sideToMove, coord) {
					candidates = append(candidates, coord)
				}
			}
			return true
		})
	}
	if len(candidates) == 0 {
		return BadMove
	}
	return candidates[rng.Intn(len(candidates))]
}

// RandomSaving returns a uniformly random point that extends a friendly
// chain currently in atari, or BadMove if no friendly chain needs saving.
func (p *Position) RandomSaving(rng *rand.Rand) int {
	var candidates []int
	seen := map[int]bool{}
	for _, ch := range p.chains {
		if ch.dead || ch.colour != p.sideToMove || ch.liberties != 1 {
			continue
		}
		ch.frontier.Each(func(coord int) bool {
			if p.points[coord].Color == Empty && !seen[coord] {
				seen[coord] = true
				if p.isLegalNonEye(p.sideToMove, coord) {
					candidates = append(candidates, coord)
				}
			}
			return true
		})
	}
	if len(candidates) == 0 {
		return BadMove
	}
	return candidates[rng.Intn(len(candidates))]
}

// RandomLocalUrgent returns a uniformly random legal point adjacent to
// lastCoord whose MoveInfo intersects urgentMask (e.g. Atari|Save|Capture),
// or BadMove if lastCoord is PASS or no neighbour qualifies.
func (p *Position) RandomLocalUrgent(rng *rand.Rand, lastCoord int, urgentMask MoveInfo) int {
	if lastCoord == PASS {
		return BadMove
	}
	var candidates []int
	for _, nb := range p.nbrs.orth[lastCoord] {
		if p.points[nb].Color != Empty {
			continue
		}
		info := p.Check(p.sideToMove, nb)
		if info.Illegal() {
			continue
		}
		if info&urgentMask != 0 {
			candidates = append(candidates, nb)
		}
	}
	if len(candidates) == 0 {
		return BadMove
	}
	return candidates[rng.Intn(len(candidates))]
}
