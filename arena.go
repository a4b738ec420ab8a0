package checkers

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/alphacheckers/game"
	"github.com/alphacheckers/minimax"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Arena plays engine-vs-engine games. agentA always plays side A.
type Arena struct {
	game           *game.State
	agentA, agentB *Agent

	// state
	currentPlayer *Agent
	conf          Config
	logger        *log.Logger

	name       string
	gameNumber int // which game is this in
	outcomes   []Outcome
}

// MakeArena makes an arena for a and b, assigning them sides A and B.
func MakeArena(conf Config, a, b *Agent) Arena {
	a.Player = game.SideA
	b.Player = game.SideB

	name := conf.Name
	if name == "" {
		name = "UNKNOWN GAME"
	}
	return Arena{
		game:   game.New(conf.Rules),
		agentA: a,
		agentB: b,
		conf:   conf,
		logger: conf.logger(name + ": "),
		name:   name,
	}
}

// Play plays a game to its end and records the winner. Games still running
// after conf.MaxPlies plies are drawn, and the winner of a draw is NoSide.
func (a *Arena) Play(ctx context.Context) (Outcome, error) {
	defer a.game.Reset()
	id := uuid.New()
	a.gameNumber++
	a.currentPlayer = a.agentA

	var winner game.Side
	var ended bool
	for ended, winner = a.game.Ended(); !ended; ended, winner = a.game.Ended() {
		if a.conf.MaxPlies > 0 && a.game.Plies() >= a.conf.MaxPlies {
			winner = game.NoSide
			break
		}
		res, err := a.currentPlayer.Search(ctx, a.game)
		if errors.Is(err, minimax.ErrNoMoves) {
			a.game.Resign(a.currentPlayer.Player)
			continue
		}
		if err != nil {
			return Outcome{}, errors.WithMessagef(err, "game %v, ply %d", id, a.game.Plies())
		}
		p, m, err := a.game.Translate(res.Piece, res.Move)
		if err == nil {
			err = a.game.ApplyMove(p, m)
		}
		if err == nil {
			err = a.game.Verify()
		}
		if err != nil {
			return Outcome{}, errors.WithMessagef(err, "game %v, %v plays %v%v", id, a.currentPlayer.Name(), res.Piece, res.Move)
		}
		a.switchPlayer()
	}

	o := outcomeOf(id, a.game, winner)
	a.agentA.record(winner)
	a.agentB.record(winner)
	a.outcomes = append(a.outcomes, o)
	a.logger.Printf("game %d (%v): winner %v after %d plies, margin %d", a.gameNumber, id, o.Winner, o.Plies, o.Margin)
	return o, nil
}

// Reset forgets the games played and clears the statistics of both agents.
func (a *Arena) Reset() {
	a.game.Reset()
	a.gameNumber = 0
	a.outcomes = nil
	a.agentA.resetStats()
	a.agentB.resetStats()
}

// Run resets the arena and plays games one after another. A failed game is
// reported and the next one is started; cancelling ctx stops the run.
func (a *Arena) Run(ctx context.Context, games int) error {
	a.Reset()
	var errs error
	for i := 0; i < games; i++ {
		if err := ctx.Err(); err != nil {
			return multierror.Append(errs, err)
		}
		if _, err := a.Play(ctx); err != nil {
			if ctx.Err() != nil {
				return multierror.Append(errs, err)
			}
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}

// Stats returns the mean and standard deviation of the final material
// margin (side A minus side B) over the games played.
func (a *Arena) Stats() (mean, std float64) {
	if len(a.outcomes) == 0 {
		return 0, 0
	}
	margins := make([]float64, len(a.outcomes))
	for i, o := range a.outcomes {
		margins[i] = float64(o.Margin)
	}
	if len(margins) == 1 {
		return margins[0], 0
	}
	return stat.MeanStdDev(margins, nil)
}

// Outcomes of the games played, oldest first.
func (a *Arena) Outcomes() []Outcome { return a.outcomes }

// GameNumber returns the number of games started.
func (a *Arena) GameNumber() int { return a.gameNumber }

// Name of the arena
func (a *Arena) Name() string { return a.name }

// State of the game
func (a *Arena) State() *game.State { return a.game }

// Log the record of both players into w
func (a *Arena) Log(w io.Writer) {
	mean, std := a.Stats()
	fmt.Fprintf(w, "%s: %d games, margin %.2f ± %.2f\n", a.name, len(a.outcomes), mean, std)
	for _, ag := range []*Agent{a.agentA, a.agentB} {
		ag.Lock()
		fmt.Fprintf(w, "%v (%s): wins %v, losses %v, draws %v\n", ag.Player, ag.Name(), ag.Wins, ag.Loss, ag.Draw)
		ag.Unlock()
	}
}

func (a *Arena) switchPlayer() {
	switch a.currentPlayer {
	case a.agentA:
		a.currentPlayer = a.agentB
	case a.agentB:
		a.currentPlayer = a.agentA
	}
}
