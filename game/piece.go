package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// Side identifies one of the two players.
type Side int8

const (
	NoSide Side = iota
	SideA       // moves towards row 0, moves first
	SideB       // moves towards row 7
)

// Opponent returns the other side. NoSide has no opponent.
func (s Side) Opponent() Side {
	switch s {
	case SideA:
		return SideB
	case SideB:
		return SideA
	}
	return NoSide
}

func (s Side) IsValid() bool { return s == SideA || s == SideB }

func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	}
	return "none"
}

func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "A", "a":
		*s = SideA
	case "B", "b":
		*s = SideB
	case "none", "":
		*s = NoSide
	default:
		return errors.Errorf("unknown side %q", text)
	}
	return nil
}

// Piece is a single checker. A live piece is referenced by exactly one board
// cell and by its side's roster; identity is the pointer.
type Piece struct {
	Side     Side   `json:"side"`
	Promoted bool   `json:"promoted"`
	Location Square `json:"location"`
}

// Forward is the y direction an unpromoted piece of this side moves in.
func (p *Piece) Forward() int {
	if p.Side == SideA {
		return -1
	}
	return 1
}

// Directions lists the diagonal steps available to the piece, forward
// diagonals first.
func (p *Piece) Directions() []Square {
	f := p.Forward()
	if !p.Promoted {
		return []Square{{1, f}, {-1, f}}
	}
	return []Square{{1, f}, {-1, f}, {1, -f}, {-1, -f}}
}

// Value is the material worth of the piece.
func (p *Piece) Value() int {
	if p.Promoted {
		return 2
	}
	return 1
}

// promotionRow is the far back rank relative to the original forward direction.
func (p *Piece) promotionRow() int {
	if p.Side == SideA {
		return 0
	}
	return Size - 1
}

// crown promotes the piece if it stands on its promotion row. It reports
// whether the piece changed; an already promoted piece never does.
func (p *Piece) crown() bool {
	if p.Promoted || p.Location.Y != p.promotionRow() {
		return false
	}
	p.Promoted = true
	return true
}

func (p *Piece) String() string {
	if p == nil {
		return "<nil>"
	}
	if p.Promoted {
		return fmt.Sprintf("%v*(%v)", p.Side, p.Location)
	}
	return fmt.Sprintf("%v(%v)", p.Side, p.Location)
}
