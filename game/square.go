package game

import "fmt"

// Size is the number of squares along each side of the board.
const Size = 8

// Square is a board coordinate. X grows to the right, Y grows downwards,
// so side A starts on rows 5-7 and side B on rows 0-2.
type Square struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Sq is shorthand for Square{x, y}.
func Sq(x, y int) Square { return Square{X: x, Y: y} }

// InBounds reports whether the square lies on the 8x8 grid.
func (s Square) InBounds() bool {
	return s.X >= 0 && s.X < Size && s.Y >= 0 && s.Y < Size
}

// Add offsets the square by d.
func (s Square) Add(d Square) Square {
	return Square{X: s.X + d.X, Y: s.Y + d.Y}
}

func (s Square) String() string { return fmt.Sprintf("%d,%d", s.X, s.Y) }
