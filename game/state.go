package game

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

const (
	// PiecesPerSide is the size of each roster in the initial layout.
	PiecesPerSide = 12
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
	ErrOccupied    = errors.New("square is occupied")
	ErrOffBoard    = errors.New("square is off the board")
)

// State is a complete game: the board, the two rosters and the side to move.
// Board occupancy and roster membership are kept in lockstep by every
// mutation; Verify checks that they still agree.
//
// A State is not safe for concurrent use. Hand a Clone to other goroutines.
type State struct {
	board   Board
	rosters [2][]*Piece
	toMove  Side
	rules   Rules

	ended  bool
	winner Side
	plies  int
}

// New returns a game in the initial 12-vs-12 layout with side A to move.
func New(rules Rules) *State {
	s := &State{rules: rules}
	s.Reset()
	return s
}

// Empty returns a board with no pieces, for setting up positions with Place.
func Empty(rules Rules, toMove Side) *State {
	return &State{rules: rules, toMove: toMove}
}

// Reset discards everything and rebuilds the initial layout.
func (s *State) Reset() {
	s.board = Board{}
	s.rosters = [2][]*Piece{}
	s.toMove = SideA
	s.ended = false
	s.winner = NoSide
	s.plies = 0
	for y := 0; y < 3; y++ {
		for x := (y + 1) % 2; x < Size; x += 2 {
			s.place(SideB, Sq(x, y))
		}
	}
	for y := Size - 3; y < Size; y++ {
		for x := (y + 1) % 2; x < Size; x += 2 {
			s.place(SideA, Sq(x, y))
		}
	}
}

// Place puts a new piece of the given side on sq, adding it to board and
// roster together. It is meant for setting up positions, not for play.
func (s *State) Place(side Side, sq Square) (*Piece, error) {
	if !side.IsValid() {
		return nil, errors.Errorf("cannot place a piece for side %v", side)
	}
	if !sq.InBounds() {
		return nil, errors.Wrapf(ErrOffBoard, "place %v", sq)
	}
	if s.board.At(sq) != nil {
		return nil, errors.Wrapf(ErrOccupied, "place %v", sq)
	}
	return s.place(side, sq), nil
}

func (s *State) place(side Side, sq Square) *Piece {
	p := &Piece{Side: side, Location: sq}
	s.board.set(p)
	s.rosters[side-1] = append(s.rosters[side-1], p)
	return p
}

// At returns the piece on sq, nil for empty or off-board squares.
func (s *State) At(sq Square) *Piece { return s.board.At(sq) }

// Board exposes the grid for read-only use.
func (s *State) Board() *Board { return &s.board }

// Roster returns the live pieces of a side. The slice belongs to the state
// and must not be modified.
func (s *State) Roster(side Side) []*Piece {
	if !side.IsValid() {
		return nil
	}
	return s.rosters[side-1]
}

func (s *State) ToMove() Side { return s.toMove }

func (s *State) Rules() Rules { return s.rules }

// Plies is the number of moves applied since the last reset.
func (s *State) Plies() int { return s.plies }

// Ended reports whether the game is decided and, if so, who won.
func (s *State) Ended() (ended bool, winner Side) { return s.ended, s.winner }

// Material is the summed piece value of a side.
func (s *State) Material(side Side) int {
	var v int
	for _, p := range s.Roster(side) {
		v += p.Value()
	}
	return v
}

// LegalMoves returns the moves p can make in this position. A piece that is
// not live on this board has no moves.
func (s *State) LegalMoves(p *Piece) []Move {
	if p == nil || s.board.At(p.Location) != p {
		return nil
	}
	moves := LegalMoves(&s.board, p, s.rules)
	if s.rules.ForcedCapture && s.canCapture(p.Side) {
		moves = capturesOnly(moves)
	}
	return moves
}

func (s *State) canCapture(side Side) bool {
	for _, p := range s.Roster(side) {
		if len(jumps(&s.board, p, p.Location, nil)) > 0 {
			return true
		}
	}
	return false
}

// AllMoves lists every legal (piece, move) pair of a side in roster order.
func (s *State) AllMoves(side Side) []PieceMove {
	var all []PieceMove
	for _, p := range s.Roster(side) {
		for _, m := range s.LegalMoves(p) {
			all = append(all, PieceMove{Piece: p, Move: m})
		}
	}
	return all
}

// HasMoves reports whether any piece of the side can move.
func (s *State) HasMoves(side Side) bool {
	for _, p := range s.Roster(side) {
		if len(s.LegalMoves(p)) > 0 {
			return true
		}
	}
	return false
}

// ApplyMove plays m with p, which must belong to the side to move, and flips
// the turn. After the move the game may have ended; check Ended. An illegal
// move leaves the state untouched.
func (s *State) ApplyMove(p *Piece, m Move) error {
	if s.ended {
		return ErrGameOver
	}
	if p == nil || p.Side != s.toMove || s.board.At(p.Location) != p {
		return errors.Wrapf(ErrIllegalMove, "%v cannot move now", p)
	}
	i := slices.IndexFunc(s.LegalMoves(p), m.Same)
	if i < 0 {
		return errors.Wrapf(ErrIllegalMove, "%v %v", p, m)
	}
	s.play(p, m)
	s.CheckEnded()
	return nil
}

// play mutates the position without validating the move or looking for the
// end of the game.
func (s *State) play(p *Piece, m Move) {
	for _, c := range m.Captured {
		s.remove(c)
	}
	s.board.clear(p.Location)
	p.Location = m.Destination
	s.board.set(p)
	p.crown()
	s.toMove = s.toMove.Opponent()
	s.plies++
}

func (s *State) remove(p *Piece) {
	r := &s.rosters[p.Side-1]
	if i := slices.Index(*r, p); i >= 0 {
		*r = slices.Delete(*r, i, i+1)
	}
	if s.board.At(p.Location) == p {
		s.board.clear(p.Location)
	}
}

// CheckEnded decides whether the position is over: an empty roster, or a
// side to move that owns pieces but cannot move. ApplyMove runs it after
// every move; positions built with Place or ParseBoard need it called once.
func (s *State) CheckEnded() (ended bool, winner Side) {
	if s.ended {
		return s.ended, s.winner
	}
	a, b := len(s.Roster(SideA)), len(s.Roster(SideB))
	switch {
	case a == 0 && b == 0:
		s.ended, s.winner = true, NoSide
	case a == 0:
		s.ended, s.winner = true, SideB
	case b == 0:
		s.ended, s.winner = true, SideA
	case !s.HasMoves(s.toMove):
		s.ended, s.winner = true, s.toMove.Opponent()
	}
	return s.ended, s.winner
}

// Resign ends the game in favour of the opponent of side. It is how callers
// record a loss the state cannot detect on its own, such as a search that
// found no move.
func (s *State) Resign(side Side) {
	s.ended, s.winner = true, side.Opponent()
}

// Clone returns an independent deep copy. Pieces are copied, so pointers
// taken from s do not match pieces of the clone; use Translate to map them.
func (s *State) Clone() *State {
	c := &State{
		toMove: s.toMove,
		rules:  s.rules,
		ended:  s.ended,
		winner: s.winner,
		plies:  s.plies,
	}
	for i, r := range s.rosters {
		c.rosters[i] = make([]*Piece, len(r))
		for j, p := range r {
			cp := *p
			c.rosters[i][j] = &cp
			c.board.set(&cp)
		}
	}
	return c
}

// Translate maps a move expressed against another copy of this game onto
// the pieces of s. Pieces are matched by location, which is unique.
func (s *State) Translate(from Square, m Move) (*Piece, Move, error) {
	p := s.board.At(from)
	if p == nil {
		return nil, Move{}, errors.Wrapf(ErrIllegalMove, "no piece on %v", from)
	}
	out := Move{Destination: m.Destination}
	if len(m.Captured) > 0 {
		out.Captured = make([]*Piece, len(m.Captured))
	}
	for i, c := range m.Captured {
		live := s.board.At(c.Location)
		if live == nil || live.Side != c.Side {
			return nil, Move{}, errors.Wrapf(ErrIllegalMove, "no capturable piece on %v", c.Location)
		}
		out.Captured[i] = live
	}
	return p, out, nil
}

// Successor returns a clone with m played by p. It is the search's way of
// stepping through hypothetical positions: the receiver is not touched and
// the end of the game is not evaluated.
//
// p must stand on its square in s and m must be one of s.LegalMoves(p).
// Successor panics otherwise; validate untrusted moves with ApplyMove or
// Translate instead.
func (s *State) Successor(p *Piece, m Move) *State {
	c := s.Clone()
	cp, cm, err := c.Translate(p.Location, m)
	if err != nil {
		panic(fmt.Sprintf("successor of inconsistent move %v %v: %v", p, m, err))
	}
	c.play(cp, cm)
	return c
}

// Verify checks that board and rosters describe the same set of pieces.
// Every breach found is reported.
func (s *State) Verify() error {
	var errs error
	seen := make(map[*Piece]bool)
	for i, r := range s.rosters {
		side := Side(i + 1)
		for _, p := range r {
			switch {
			case seen[p]:
				errs = multierror.Append(errs, errors.Errorf("%v listed twice", p))
			case p.Side != side:
				errs = multierror.Append(errs, errors.Errorf("%v in roster of %v", p, side))
			case !p.Location.InBounds():
				errs = multierror.Append(errs, errors.Errorf("%v is off the board", p))
			case s.board.At(p.Location) != p:
				errs = multierror.Append(errs, errors.Errorf("%v not on its square", p))
			}
			seen[p] = true
		}
	}
	for y := range s.board {
		for x, p := range s.board[y] {
			if p == nil {
				continue
			}
			if !seen[p] {
				errs = multierror.Append(errs, errors.Errorf("%v on %v has no roster entry", p, Sq(x, y)))
			} else if p.Location != Sq(x, y) {
				errs = multierror.Append(errs, errors.Errorf("%v found on %v", p, Sq(x, y)))
			}
		}
	}
	if errs != nil {
		return errors.WithMessage(errs, "board and rosters disagree")
	}
	return nil
}
