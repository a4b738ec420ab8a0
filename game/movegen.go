package game

import "golang.org/x/exp/slices"

// LegalMoves generates the moves of p on the given board: plain steps first,
// then capture chains. Side-wide rules (ForcedCapture) need the whole roster
// and are applied by State.LegalMoves; only MergeChains is honoured here.
func LegalMoves(b Occupancy, p *Piece, rules Rules) []Move {
	moves := steps(b, p)
	moves = append(moves, jumps(b, p, p.Location, nil)...)
	if rules.MergeChains {
		moves = mergeChains(moves)
	}
	return moves
}

func steps(b Occupancy, p *Piece) []Move {
	var moves []Move
	for _, d := range p.Directions() {
		to := p.Location.Add(d)
		if to.InBounds() && b.At(to) == nil {
			moves = append(moves, Move{Destination: to})
		}
	}
	return moves
}

// jumps searches capture chains depth first from `from`. Every landing
// square yields a move carrying the chain captured so far; the landings of
// one level are listed before anything found deeper. captured is never
// mutated, so sibling branches do not see each other's victims.
func jumps(b Occupancy, p *Piece, from Square, captured []*Piece) []Move {
	var found []Move
	for _, d := range p.Directions() {
		victim := b.At(from.Add(d))
		if victim == nil || victim.Side == p.Side || slices.Index(captured, victim) >= 0 {
			continue
		}
		land := from.Add(d).Add(d)
		if !land.InBounds() || b.At(land) != nil {
			continue
		}
		chain := make([]*Piece, len(captured), len(captured)+1)
		copy(chain, captured)
		found = append(found, Move{Destination: land, Captured: append(chain, victim)})
	}
	for i, n := 0, len(found); i < n; i++ {
		found = append(found, jumps(b, p, found[i].Destination, found[i].Captured)...)
	}
	return found
}

// mergeChains keeps, for each capture destination, the longest chain.
// Ties go to the chain found first. Plain steps pass through untouched.
func mergeChains(moves []Move) []Move {
	best := make(map[Square]int)
	var out []Move
	for _, m := range moves {
		if !m.IsCapture() {
			out = append(out, m)
			continue
		}
		i, ok := best[m.Destination]
		if !ok {
			best[m.Destination] = len(out)
			out = append(out, m)
			continue
		}
		if len(m.Captured) > len(out[i].Captured) {
			out[i] = m
		}
	}
	return out
}

func capturesOnly(moves []Move) []Move {
	return slices.DeleteFunc(moves, func(m Move) bool { return !m.IsCapture() })
}
