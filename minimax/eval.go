package minimax

import "github.com/alphacheckers/game"

// Evaluate is the material balance in favour of opp: the summed value of
// opp's pieces minus that of self's. A man is worth 1, a promoted piece 2.
// There is no positional term.
func Evaluate(self, opp []*game.Piece) float32 {
	return float32(material(opp) - material(self))
}

func material(roster []*game.Piece) int {
	var v int
	for _, p := range roster {
		v += p.Value()
	}
	return v
}
