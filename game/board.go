package game

// Occupancy is anything that can answer "who stands on this square".
type Occupancy interface {
	At(sq Square) *Piece
}

// Board is the 8x8 grid, indexed [y][x].
type Board [Size][Size]*Piece

// At returns the occupant of sq, or nil when the square is empty or off the
// board. Use Square.InBounds to tell the two apart.
func (b *Board) At(sq Square) *Piece {
	if !sq.InBounds() {
		return nil
	}
	return b[sq.Y][sq.X]
}

func (b *Board) set(p *Piece) { b[p.Location.Y][p.Location.X] = p }

func (b *Board) clear(sq Square) { b[sq.Y][sq.X] = nil }
