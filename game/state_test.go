package game

import (
	"math/rand"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialLayout(t *testing.T) {
	s := New(DefaultRules())
	require.NoError(t, s.Verify())
	assert.Equal(t, SideA, s.ToMove())
	assert.Len(t, s.Roster(SideA), PiecesPerSide)
	assert.Len(t, s.Roster(SideB), PiecesPerSide)
	ended, _ := s.Ended()
	assert.False(t, ended)

	want := `.b.b.b.b
b.b.b.b.
.b.b.b.b
........
........
a.a.a.a.
.a.a.a.a
a.a.a.a.
`
	assert.Equal(t, want, s.String())
}

func TestParseBoardRoundTrip(t *testing.T) {
	s := mustParse(t, ringDiagram, SideB, DefaultRules())
	again := mustParse(t, s.String(), SideB, DefaultRules())
	assert.Equal(t, s.String(), again.String())
	assert.True(t, again.At(Sq(0, 6)).Promoted)
	assert.Equal(t, SideB, again.ToMove())

	_, err := ParseBoard("........", SideA, DefaultRules())
	assert.Error(t, err)
	_, err = ParseBoard(ringDiagram+"\n........", SideA, DefaultRules())
	assert.Error(t, err)
	_, err = ParseBoard(`
		........
		........
		........
		...q....
		........
		........
		........
		........`, SideA, DefaultRules())
	assert.Error(t, err)
}

func TestPlace(t *testing.T) {
	s := Empty(DefaultRules(), SideA)
	p, err := s.Place(SideA, Sq(2, 2))
	require.NoError(t, err)
	assert.Same(t, p, s.At(Sq(2, 2)))
	assert.Equal(t, []*Piece{p}, s.Roster(SideA))

	_, err = s.Place(SideB, Sq(2, 2))
	assert.True(t, errors.Is(err, ErrOccupied))
	_, err = s.Place(SideB, Sq(9, 2))
	assert.True(t, errors.Is(err, ErrOffBoard))
	_, err = s.Place(NoSide, Sq(3, 3))
	assert.Error(t, err)
	assert.NoError(t, s.Verify())
}

func TestApplyMoveCapture(t *testing.T) {
	s := mustParse(t, `
		........
		........
		........
		........
		.....b..
		.b......
		a.......
		........`, SideA, DefaultRules())
	a, victim := s.At(Sq(0, 6)), s.At(Sq(1, 5))

	moves := s.LegalMoves(a)
	require.Len(t, moves, 1)
	require.NoError(t, s.ApplyMove(a, moves[0]))

	assert.Equal(t, Sq(2, 4), a.Location)
	assert.Same(t, a, s.At(Sq(2, 4)))
	assert.Nil(t, s.At(Sq(0, 6)))
	assert.Nil(t, s.At(Sq(1, 5)))
	assert.NotContains(t, s.Roster(SideB), victim)
	assert.Len(t, s.Roster(SideB), 1)
	assert.Equal(t, SideB, s.ToMove())
	assert.Equal(t, 1, s.Plies())
	assert.NoError(t, s.Verify())
	ended, _ := s.Ended()
	assert.False(t, ended)
}

func TestApplyMoveRejectsIllegal(t *testing.T) {
	s := New(DefaultRules())
	before := s.String()
	a := s.At(Sq(0, 5))
	b := s.At(Sq(1, 2))

	err := s.ApplyMove(a, Move{Destination: Sq(0, 4)})
	assert.True(t, errors.Is(err, ErrIllegalMove), "straight ahead is not a diagonal")
	err = s.ApplyMove(b, Move{Destination: Sq(0, 3)})
	assert.True(t, errors.Is(err, ErrIllegalMove), "side B is not to move")
	err = s.ApplyMove(nil, Move{Destination: Sq(0, 3)})
	assert.True(t, errors.Is(err, ErrIllegalMove))
	err = s.ApplyMove(a, Move{Destination: Sq(1, 4), Captured: []*Piece{b}})
	assert.True(t, errors.Is(err, ErrIllegalMove), "a step cannot claim captures")

	assert.Equal(t, before, s.String())
	assert.Equal(t, SideA, s.ToMove())
	assert.Equal(t, 0, s.Plies())
}

func TestPromotion(t *testing.T) {
	s := mustParse(t, `
		........
		.a......
		........
		........
		........
		........
		......b.
		a.......`, SideA, DefaultRules())
	a, b := s.At(Sq(1, 1)), s.At(Sq(6, 6))

	require.NoError(t, s.ApplyMove(a, Move{Destination: Sq(2, 0)}))
	assert.True(t, a.Promoted)
	require.NoError(t, s.ApplyMove(b, Move{Destination: Sq(7, 7)}))
	assert.True(t, b.Promoted)
	assert.Len(t, s.LegalMoves(a), 2, "a promoted piece may step backwards")

	// row 7 means nothing to side A
	assert.False(t, s.At(Sq(0, 7)).crown())
	assert.False(t, s.At(Sq(0, 7)).Promoted)
}

func TestCrownIsIdempotent(t *testing.T) {
	p := &Piece{Side: SideA, Location: Sq(4, 0)}
	assert.True(t, p.crown())
	snapshot := *p
	assert.False(t, p.crown())
	assert.Equal(t, snapshot, *p)

	// leaving and re-entering the back rank keeps the crown
	p.Location = Sq(5, 1)
	assert.False(t, p.crown())
	assert.True(t, p.Promoted)
}

func TestEmptyRosterEndsGame(t *testing.T) {
	s := mustParse(t, `
		........
		........
		........
		........
		........
		.b......
		a.......
		........`, SideA, DefaultRules())
	a := s.At(Sq(0, 6))
	require.NoError(t, s.ApplyMove(a, s.LegalMoves(a)[0]))

	ended, winner := s.Ended()
	assert.True(t, ended)
	assert.Equal(t, SideA, winner)
	assert.Empty(t, s.Roster(SideB))
	assert.True(t, errors.Is(s.ApplyMove(a, Move{Destination: Sq(3, 3)}), ErrGameOver))

	s.Reset()
	ended, _ = s.Ended()
	assert.False(t, ended)
	assert.Equal(t, SideA, s.ToMove())
	assert.Len(t, s.Roster(SideA), PiecesPerSide)
	assert.Len(t, s.Roster(SideB), PiecesPerSide)
	assert.Equal(t, New(DefaultRules()).String(), s.String())
	assert.NoError(t, s.Verify())
}

func TestNoLegalMovesEndsGame(t *testing.T) {
	s := mustParse(t, `
		........
		........
		........
		........
		....a...
		........
		........
		.b......`, SideA, DefaultRules())
	require.NoError(t, s.ApplyMove(s.At(Sq(4, 4)), Move{Destination: Sq(3, 3)}))

	ended, winner := s.Ended()
	assert.True(t, ended)
	assert.Equal(t, SideA, winner)
	assert.Len(t, s.Roster(SideB), 1, "stranded, not captured")
}

func TestResign(t *testing.T) {
	s := New(DefaultRules())
	s.Resign(SideB)
	ended, winner := s.Ended()
	assert.True(t, ended)
	assert.Equal(t, SideA, winner)
}

func TestCloneIsIndependent(t *testing.T) {
	s := New(DefaultRules())
	c := s.Clone()
	require.NoError(t, c.Verify())
	assert.Equal(t, s.String(), c.String())
	assert.NotSame(t, s.At(Sq(0, 5)), c.At(Sq(0, 5)))

	p := c.At(Sq(0, 5))
	require.NoError(t, c.ApplyMove(p, Move{Destination: Sq(1, 4)}))
	assert.NotEqual(t, s.String(), c.String())
	assert.Equal(t, Sq(0, 5), s.At(Sq(0, 5)).Location)
	assert.Equal(t, SideA, s.ToMove())
}

func TestSuccessorAndTranslate(t *testing.T) {
	s := mustParse(t, `
		........
		........
		........
		........
		........
		.b......
		a.......
		........`, SideA, DefaultRules())
	a := s.At(Sq(0, 6))
	m := s.LegalMoves(a)[0]
	before := s.String()

	next := s.Successor(a, m)
	assert.Equal(t, before, s.String())
	assert.Empty(t, next.Roster(SideB))
	assert.Equal(t, SideB, next.ToMove())
	assert.NoError(t, next.Verify())

	c := s.Clone()
	p, cm, err := c.Translate(a.Location, m)
	require.NoError(t, err)
	assert.Same(t, c.At(Sq(0, 6)), p)
	assert.Same(t, c.At(Sq(1, 5)), cm.Captured[0])
	require.NoError(t, c.ApplyMove(p, cm))

	_, _, err = c.Translate(Sq(5, 5), m)
	assert.True(t, errors.Is(err, ErrIllegalMove))
}

func TestVerifyReportsEveryBreach(t *testing.T) {
	s := New(DefaultRules())
	s.board.clear(Sq(0, 5))
	s.board.set(&Piece{Side: SideB, Location: Sq(3, 4)})

	err := s.Verify()
	require.Error(t, err)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 2)
}

// Random playouts must keep board and rosters in lockstep at every ply.
func TestRandomPlayoutsStayConsistent(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, rules := range []Rules{DefaultRules(), {ForcedCapture: true}, {MergeChains: true}} {
		s := New(rules)
		for game := 0; game < 20; game++ {
			for ply := 0; ply < 150; ply++ {
				if ended, _ := s.Ended(); ended {
					break
				}
				moves := s.AllMoves(s.ToMove())
				require.NotEmpty(t, moves, "live game without moves\n%v", s)
				pm := moves[r.Intn(len(moves))]
				require.NoError(t, s.ApplyMove(pm.Piece, pm.Move))
				require.NoError(t, s.Verify(), "after %v %v\n%v", pm.Piece, pm.Move, s)
				for y := 0; y < Size; y++ {
					for x := 0; x < Size; x++ {
						if p := s.At(Sq(x, y)); p != nil {
							assert.Equal(t, Sq(x, y), p.Location)
						}
					}
				}
			}
			s.Reset()
		}
	}
}

func TestCheckEndedOnSetUpPositions(t *testing.T) {
	stuck := mustParse(t, `
		a.......
		........
		........
		........
		........
		........
		........
		.......b`, SideA, DefaultRules())
	ended, _ := stuck.Ended()
	assert.False(t, ended, "parsing does not judge the position")
	ended, winner := stuck.CheckEnded()
	assert.True(t, ended)
	assert.Equal(t, SideB, winner)
	ended, winner = stuck.Ended()
	assert.True(t, ended)
	assert.Equal(t, SideB, winner)

	empty := Empty(DefaultRules(), SideA)
	_, err := empty.Place(SideB, Sq(3, 3))
	require.NoError(t, err)
	ended, winner = empty.CheckEnded()
	assert.True(t, ended)
	assert.Equal(t, SideB, winner)

	ended, _ = New(DefaultRules()).CheckEnded()
	assert.False(t, ended)
}

func TestSuccessorPanicsOnForeignMove(t *testing.T) {
	s := New(DefaultRules())
	assert.Panics(t, func() {
		s.Successor(&Piece{Side: SideA, Location: Sq(5, 5)}, Move{Destination: Sq(4, 4)})
	})
	assert.NotPanics(t, func() {
		s.Successor(s.At(Sq(0, 5)), Move{Destination: Sq(1, 4)})
	})
}
