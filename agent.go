package checkers

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/alphacheckers/game"
	"github.com/alphacheckers/minimax"
)

// An Agent is a computer player for one side.
type Agent struct {
	Searcher *minimax.Searcher
	Player   game.Side

	// Statistics
	Wins float32
	Loss float32
	Draw float32
	sync.Mutex

	name    string
	logger  *log.Logger
	workers sync.WaitGroup
}

// NewAgent creates an agent playing side with the given search configuration.
// A nil logger logs to stderr with the agent's name as prefix.
func NewAgent(name string, side game.Side, conf minimax.Config, logger *log.Logger) *Agent {
	if logger == nil {
		logger = Config{}.logger(name + ": ")
	}
	return &Agent{
		Searcher: minimax.New(conf),
		Player:   side,
		name:     name,
		logger:   logger,
	}
}

// Decision is a search result detached from the position it was computed
// on. Resolve it against the live game before applying it.
type Decision struct {
	minimax.Result
	Err error
}

// Resolve maps the decision onto the pieces of st.
func (d Decision) Resolve(st *game.State) (*game.Piece, game.Move, error) {
	if d.Err != nil {
		return nil, game.Move{}, d.Err
	}
	return st.Translate(d.Piece, d.Move)
}

// Search searches the game state and returns the move to play. The captured
// pieces of the returned move belong to st.
func (a *Agent) Search(ctx context.Context, st *game.State) (minimax.Result, error) {
	start := time.Now()
	res, err := a.Searcher.Search(ctx, st, a.Player)
	if err != nil {
		a.logger.Printf("%s: no move at ply %d: %v", a.name, st.Plies(), err)
		return res, err
	}
	a.logger.Printf("%s: ply %d, best %v%v score %v, depth %d, nodes %d, %v",
		a.name, st.Plies(), res.Piece, res.Move, res.Score, res.Depth, res.Nodes, time.Since(start))
	return res, nil
}

// SearchAsync searches a snapshot of st on a worker goroutine. The live
// state is never touched by the worker; the single Decision arrives on the
// returned channel, which is then closed.
func (a *Agent) SearchAsync(ctx context.Context, st *game.State) <-chan Decision {
	snapshot := st.Clone()
	ch := make(chan Decision, 1)
	a.workers.Add(1)
	go func() {
		defer a.workers.Done()
		defer close(ch)
		res, err := a.Search(ctx, snapshot)
		ch <- Decision{Result: res, Err: err}
	}()
	return ch
}

// Wait blocks until every SearchAsync worker has delivered its decision.
func (a *Agent) Wait() { a.workers.Wait() }

func (a *Agent) Name() string { return a.name }

func (a *Agent) record(winner game.Side) {
	a.Lock()
	defer a.Unlock()
	switch winner {
	case game.NoSide:
		a.Draw++
	case a.Player:
		a.Wins++
	default:
		a.Loss++
	}
}

func (a *Agent) resetStats() {
	a.Lock()
	a.Wins = 0
	a.Loss = 0
	a.Draw = 0
	a.Unlock()
}
