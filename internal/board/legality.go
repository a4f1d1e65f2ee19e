package board

import "github.com/skybrian/gongo/internal/pattern"

// PatternMatcher is the subset of *pattern.Matcher the board engine needs
// for pat3_match/pat5_match classification (eye-fill suppression uses the
// eye rule in isEye, not patterns). A nil matcher (the default) means no patterns are loaded, so
// both flags are always false -- the silent degradation required by §7.
type PatternMatcher interface {
	HasMatch(n int, toPlay pattern.Stone, at pattern.Lookup) bool
}

// SetPatternMatcher installs the shared pattern DFA used for Pat3Match /
// Pat5Match classification.
func (p *Position) SetPatternMatcher(m PatternMatcher) { p.patterns = m }

func colorToStone(c Color) pattern.Stone {
	switch c {
	case Black:
		return pattern.StoneBlack
	case White:
		return pattern.StoneWhite
	default:
		return pattern.StoneEmpty
	}
}

// lookupAt builds a pattern.Lookup relative to coord, treating points
// outside the board as off-board.
func (p *Position) lookupAt(coord int) pattern.Lookup {
	row, col := coord/p.Size, coord%p.Size
	return func(dr, dc int) pattern.Stone {
		r, c := row+dr, col+dc
		if r < 0 || r >= p.Size || c < 0 || c >= p.Size {
			return pattern.StoneOffboard
		}
		return colorToStone(p.points[r*p.Size+c].Color)
	}
}

// Check classifies a candidate move for colour at coord (§4.4). It never
// mutates the position.
func (p *Position) Check(color Color, coord int) MoveInfo {
	if coord == PASS {
		return Legal
	}
	if p.points[coord].Color != Empty {
		return Occupied
	}

	enemy := color.Opposite()

	libAfter := 0
	capturesWithRepetition := 0
	putsAtari := false
	savesFriendly := false
	var soleCapturedChain *StoneChain

	for _, nb := range p.nbrs.orth[coord] {
		switch p.points[nb].Color {
		case Empty:
			libAfter++
		case color:
			ch := p.chains[p.points[nb].ChainID]
			libAfter += ch.liberties - 1
			if ch.liberties == 1 {
				savesFriendly = true
			}
		case enemy:
			ch := p.chains[p.points[nb].ChainID]
			switch ch.liberties {
			case 1:
				libAfter++
				capturesWithRepetition += ch.Size()
				soleCapturedChain = ch
			case 2:
				putsAtari = true
			}
		}
	}

	if libAfter == 0 && capturesWithRepetition == 0 {
		return Suicide
	}

	if capturesWithRepetition == 1 {
		candidate := p.currentHash ^ p.zob.Keys[colorIndex(color)][coord] ^ p.zob.BlackTurnKey
		candidate ^= soleCapturedChain.zobristXOR
		for _, h := range p.hashHistory {
			if h == candidate {
				return Repetition
			}
		}
	}

	info := Legal
	if libAfter == 1 {
		info |= SelfAtari
	}
	if capturesWithRepetition > 0 {
		info |= Capture
	}
	if savesFriendly && libAfter > 1 {
		info |= Save
	}
	if putsAtari {
		info |= Atari
	}
	if p.isEye(color, coord) {
		info |= FillsEye
	} else if p.isEyeShape(color, coord) {
		info |= EyeShape
	}
	if p.connectsChains(color, coord) {
		info |= Connection
	}
	if p.lastNonPassMove != PASS && p.isOrthogonal(coord, p.lastNonPassMove) {
		info |= Local
	}
	if p.patterns != nil {
		if p.patterns.HasMatch(3, colorToStone(color), p.lookupAt(coord)) {
			info |= Pat3Match
		}
		if p.patterns.HasMatch(5, colorToStone(color), p.lookupAt(coord)) {
			info |= Pat5Match
		}
	}
	return info
}

func (p *Position) isOrthogonal(a, b int) bool {
	for _, nb := range p.nbrs.orth[a] {
		if nb == b {
			return true
		}
	}
	return false
}

// isEye implements the eye rule of §4.4: an empty point surrounded by
// friendly stones each with more than one liberty, with at most one enemy
// diagonal (zero on the edge).
func (p *Position) isEye(color Color, coord int) bool {
	orth := p.nbrs.orth[coord]
	for _, nb := range orth {
		if p.points[nb].Color != color {
			return false
		}
		if p.chains[p.points[nb].ChainID].liberties <= 1 {
			return false
		}
	}
	enemyDiag := 0
	for _, nb := range p.nbrs.diag[coord] {
		if p.points[nb].Color == color.Opposite() {
			enemyDiag++
		}
	}
	maxAllowed := 1
	if len(orth) < 4 {
		maxAllowed = 0
	}
	return enemyDiag <= maxAllowed
}

// isEyeShape is a looser heuristic than isEye: every orthogonal neighbour
// is friendly (regardless of that chain's liberties or the diagonal
// count). It feeds the EyeShape MoveInfo flag and the best-of-N playout
// policy's weight table (§4.5); fills_eye (isEye) remains the strict flag
// used to suppress eye-fills during playouts.
func (p *Position) isEyeShape(color Color, coord int) bool {
	for _, nb := range p.nbrs.orth[coord] {
		if p.points[nb].Color != color {
			return false
		}
	}
	return true
}

// connectsChains reports whether playing at coord would join two or more
// distinct friendly chains.
func (p *Position) connectsChains(color Color, coord int) bool {
	seen := map[int]bool{}
	count := 0
	for _, nb := range p.nbrs.orth[coord] {
		if p.points[nb].Color == color {
			id := p.points[nb].ChainID
			if !seen[id] {
				seen[id] = true
				count++
			}
		}
	}
	return count >= 2
}

// WouldFillEye reports whether playing at coord for color would fill in an
// eye -- used by the playout policies to suppress eye-filling moves during
// simulation (§4.5).
func (p *Position) WouldFillEye(color Color, coord int) bool {
	if coord == PASS {
		return false
	}
	if p.points[coord].Color != Empty {
		return false
	}
	return p.isEye(color, coord)
}
