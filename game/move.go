package game

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Move is a destination plus the ordered set of pieces jumped on the way.
// A move with no captures is a plain diagonal step.
type Move struct {
	Destination Square   `json:"destination"`
	Captured    []*Piece `json:"captured,omitempty"`
}

// PieceMove pairs a move with the piece that makes it.
type PieceMove struct {
	Piece *Piece
	Move  Move
}

func (m Move) IsCapture() bool { return len(m.Captured) > 0 }

// Captures reports whether p (by identity) is jumped by the move.
func (m Move) Captures(p *Piece) bool { return slices.Index(m.Captured, p) >= 0 }

// Same reports whether both moves land on the same square jumping the same
// pieces in the same order.
func (m Move) Same(other Move) bool {
	return m.Destination == other.Destination && slices.Equal(m.Captured, other.Captured)
}

func (m Move) String() string {
	if !m.IsCapture() {
		return "->" + m.Destination.String()
	}
	jumped := make([]string, len(m.Captured))
	for i, c := range m.Captured {
		jumped[i] = c.Location.String()
	}
	return fmt.Sprintf("->%v x[%s]", m.Destination, strings.Join(jumped, " "))
}
