package game

import (
	"strings"

	"github.com/pkg/errors"
)

// Diagram glyphs: lower case for men, upper case for promoted pieces.
const (
	glyphEmpty = '.'
	glyphA     = 'a'
	glyphB     = 'b'
)

func glyph(p *Piece) byte {
	var g byte = glyphEmpty
	switch {
	case p == nil:
		return g
	case p.Side == SideA:
		g = glyphA
	case p.Side == SideB:
		g = glyphB
	}
	if p.Promoted {
		g -= 'a' - 'A'
	}
	return g
}

// String draws the board with row 0 on top, one line per row.
func (s *State) String() string {
	var sb strings.Builder
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			sb.WriteByte(glyph(s.board[y][x]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard builds a position from a diagram in the format produced by
// String. Blank lines and spaces are ignored, so fixtures may be indented.
func ParseBoard(diagram string, toMove Side, rules Rules) (*State, error) {
	s := Empty(rules, toMove)
	var y int
	for _, line := range strings.Split(diagram, "\n") {
		line = strings.ReplaceAll(strings.TrimSpace(line), " ", "")
		if line == "" {
			continue
		}
		if y >= Size {
			return nil, errors.Errorf("diagram has more than %d rows", Size)
		}
		if len(line) != Size {
			return nil, errors.Errorf("row %d has %d squares, want %d", y, len(line), Size)
		}
		for x := 0; x < Size; x++ {
			c := line[x]
			var side Side
			switch c {
			case glyphEmpty:
				continue
			case glyphA, glyphA - 'a' + 'A':
				side = SideA
			case glyphB, glyphB - 'a' + 'A':
				side = SideB
			default:
				return nil, errors.Errorf("row %d: unknown square %q", y, c)
			}
			p := s.place(side, Sq(x, y))
			p.Promoted = c < 'a'
		}
		y++
	}
	if y != Size {
		return nil, errors.Errorf("diagram has %d rows, want %d", y, Size)
	}
	return s, nil
}
