package board

// GetMoves enumerates candidate moves for the side to move (§4.4). During a
// playout (duringPlayout true) eye-filling moves are omitted outright,
// since the playout policies never want to consider them; outside a
// playout (tree search / GTP legal-move listing) every non-suicide,
// non-repetition point is returned so callers can inspect its full
// MoveInfo classification. Pass is only appended unconditionally outside a
// playout; during a playout it is appended only when no other move was
// admissible, so a playout never passes while a real move is available.
func (p *Position) GetMoves(duringPlayout bool) []Move {
	moves := make([]Move, 0, p.empty.Count()+1)
	p.empty.Each(func(coord int) bool {
		info := p.Check(p.sideToMove, coord)
		if info.Illegal() {
			return true
		}
		if duringPlayout && info.Has(FillsEye) {
			return true
		}
		moves = append(moves, Move{Color: p.sideToMove, Coord: coord})
		return true
	})
	if !duringPlayout || len(moves) == 0 {
		moves = append(moves, Move{Color: p.sideToMove, Coord: PASS})
	}
	return moves
}
