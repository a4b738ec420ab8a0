package game

// Perft counts the leaf positions reachable in exactly depth plies, walking
// every legal move of the side to move. Games that end early contribute
// nothing past their last position. It exists to validate move generation.
func Perft(s *State, depth int) int {
	if depth == 0 {
		return 1
	}
	if len(s.Roster(SideA)) == 0 || len(s.Roster(SideB)) == 0 {
		return 0
	}
	var n int
	for _, pm := range s.AllMoves(s.toMove) {
		n += Perft(s.Successor(pm.Piece, pm.Move), depth-1)
	}
	return n
}
