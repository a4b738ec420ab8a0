package checkers

import (
	"context"
	"log"

	"github.com/alphacheckers/game"
	"github.com/alphacheckers/minimax"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Phase is where a session stands in the turn cycle.
type Phase int

const (
	AwaitingSelection    Phase = iota // human to move, nothing selected
	AwaitingDestination               // human to move, a piece is selected
	AwaitingOpponentMove              // engine to move
	Terminal                          // the game just ended
)

func (p Phase) String() string {
	switch p {
	case AwaitingSelection:
		return "awaiting selection"
	case AwaitingDestination:
		return "awaiting destination"
	case AwaitingOpponentMove:
		return "awaiting opponent move"
	case Terminal:
		return "terminal"
	}
	return "unknown phase"
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Session is a game between a human and the engine. It owns the live state
// and is driven by a UI collaborator through Select, MoveTo and Tick.
//
// A Session is not safe for concurrent use; the engine only ever works on
// a snapshot of the live state.
type Session struct {
	conf   Config
	state  *game.State
	human  game.Side
	agent  *Agent
	logger *log.Logger

	gameID   uuid.UUID
	phase    Phase
	selected *game.Piece
	options  []game.Move
	pending  <-chan Decision

	last  *Outcome
	games int
}

func NewSession(conf Config) (*Session, error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("invalid config %+v", conf)
	}
	logger := conf.logger(conf.Name + ": ")
	s := &Session{
		conf:   conf,
		state:  game.New(conf.Rules),
		human:  conf.Human,
		agent:  NewAgent("engine", conf.Human.Opponent(), conf.Search, logger),
		logger: logger,
	}
	s.start()
	return s, nil
}

func (s *Session) start() {
	s.gameID = uuid.New()
	s.selected, s.options, s.pending = nil, nil, nil
	s.phase = s.turnPhase()
	s.logger.Printf("game %v: human plays %v, %v to move", s.gameID, s.human, s.state.ToMove())
}

func (s *Session) turnPhase() Phase {
	if s.state.ToMove() == s.human {
		return AwaitingSelection
	}
	return AwaitingOpponentMove
}

// Reset abandons the current game and starts a fresh one from the initial
// layout. The record of finished games is kept.
func (s *Session) Reset() {
	s.state.Reset()
	s.start()
}

// Setup replaces the position with st and starts a new game from it. A
// position that is already decided, such as a side to move without moves,
// is scored at once and the session moves on to a fresh game.
func (s *Session) Setup(st *game.State) error {
	if err := st.Verify(); err != nil {
		return err
	}
	if ended, _ := st.Ended(); ended {
		return game.ErrGameOver
	}
	s.state = st
	s.start()
	if ended, winner := st.CheckEnded(); ended {
		s.finish(winner)
	}
	return nil
}

// Select makes the human's piece on sq the selected piece. Selecting the
// selected piece again clears the selection. A piece that cannot move is
// never selected, and selecting it clears any earlier selection.
func (s *Session) Select(sq game.Square) error {
	if s.phase != AwaitingSelection && s.phase != AwaitingDestination {
		return ErrNotYourTurn
	}
	p := s.state.At(sq)
	if p == nil || p.Side != s.human {
		return errors.Wrapf(ErrEmptySelection, "%v", sq)
	}
	if p == s.selected {
		s.deselect()
		return nil
	}
	moves := s.state.LegalMoves(p)
	if len(moves) == 0 {
		s.deselect()
		return errors.Wrapf(ErrEmptySelection, "%v cannot move", p)
	}
	s.selected, s.options, s.phase = p, moves, AwaitingDestination
	return nil
}

func (s *Session) deselect() {
	s.selected, s.options = nil, nil
	if s.phase == AwaitingDestination {
		s.phase = AwaitingSelection
	}
}

// MoveTo moves the selected piece to dst. When several chains end on dst the
// one capturing the most pieces is played. A destination that is not a legal
// target leaves the selection in place.
func (s *Session) MoveTo(dst game.Square) error {
	switch s.phase {
	case AwaitingDestination:
	case AwaitingOpponentMove:
		return ErrNotYourTurn
	default:
		return errors.Wrap(ErrEmptySelection, "no piece selected")
	}
	m, ok := pick(s.options, dst)
	if !ok {
		return errors.Wrapf(game.ErrIllegalMove, "%v to %v", s.selected, dst)
	}
	return s.Play(s.selected, m)
}

func pick(moves []game.Move, dst game.Square) (best game.Move, ok bool) {
	for _, m := range moves {
		if m.Destination != dst {
			continue
		}
		if !ok || len(m.Captured) > len(best.Captured) {
			best, ok = m, true
		}
	}
	return best, ok
}

// Play applies a move of the human's piece p directly.
func (s *Session) Play(p *game.Piece, m game.Move) error {
	if s.phase == AwaitingOpponentMove {
		return ErrNotYourTurn
	}
	if p == nil || p.Side != s.human {
		return errors.Wrapf(game.ErrIllegalMove, "%v does not belong to the human", p)
	}
	if err := s.state.ApplyMove(p, m); err != nil {
		return err
	}
	return s.afterMove()
}

// Tick gives the engine its turn. Synchronous sessions search and play
// before returning. Asynchronous sessions start a search on the first tick
// and play its answer on the first tick after it arrives; until then Tick
// returns immediately. Tick does nothing while the human is to move.
func (s *Session) Tick(ctx context.Context) error {
	if s.phase != AwaitingOpponentMove {
		return nil
	}

	var d Decision
	if s.conf.Async {
		if s.pending == nil {
			s.pending = s.agent.SearchAsync(ctx, s.state)
		}
		select {
		case d = <-s.pending:
			s.pending = nil
		default:
			return nil
		}
	} else {
		res, err := s.agent.Search(ctx, s.state)
		d = Decision{Result: res, Err: err}
	}

	if errors.Is(d.Err, minimax.ErrNoMoves) {
		s.state.Resign(s.agent.Player)
		s.finish(s.human)
		return nil
	}
	p, m, err := d.Resolve(s.state)
	if err != nil {
		return err
	}
	if err := s.state.ApplyMove(p, m); err != nil {
		return errors.WithMessage(err, "engine move")
	}
	return s.afterMove()
}

func (s *Session) afterMove() error {
	s.selected, s.options = nil, nil
	if err := s.state.Verify(); err != nil {
		if s.conf.Strict {
			return err
		}
		s.logger.Printf("game %v abandoned: %v", s.gameID, err)
		s.Reset()
		return nil
	}
	if ended, winner := s.state.Ended(); ended {
		s.finish(winner)
		return nil
	}
	s.phase = s.turnPhase()
	return nil
}

// finish records the outcome and starts the next game.
func (s *Session) finish(winner game.Side) {
	s.phase = Terminal
	o := outcomeOf(s.gameID, s.state, winner)
	s.last = &o
	s.games++
	s.agent.record(winner)
	s.logger.Printf("game %v over after %d plies: winner %v, margin %d", o.GameID, o.Plies, o.Winner, o.Margin)
	s.Reset()
}

// Snapshot copies what a UI needs to render the session.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		GameID: s.gameID,
		Board:  occupancy(s.state),
		ToMove: s.state.ToMove(),
		Phase:  s.phase,
		Games:  s.games,
	}
	if s.last != nil {
		o := *s.last
		snap.LastOutcome = &o
	}
	if s.selected != nil {
		sq := s.selected.Location
		snap.Selected = &sq
		for _, m := range s.options {
			if !slices.Contains(snap.Targets, m.Destination) {
				snap.Targets = append(snap.Targets, m.Destination)
			}
		}
	}
	return snap
}

// LegalMoves lists the moves of the piece on sq.
func (s *Session) LegalMoves(sq game.Square) []game.Move { return s.state.LegalMoves(s.state.At(sq)) }

func (s *Session) Phase() Phase { return s.phase }

// State exposes the live game for read-only use.
func (s *Session) State() *game.State { return s.state }

func (s *Session) Agent() *Agent { return s.agent }

// Close waits for outstanding engine searches.
func (s *Session) Close() { s.agent.Wait() }
