package checkers

import (
	"encoding/json"
	"io"
	"log"
	"os"

	"github.com/alphacheckers/game"
	"github.com/alphacheckers/minimax"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrEmptySelection is returned for a selection that names no piece of
	// the side to move, or a piece that cannot move. Nothing changes.
	ErrEmptySelection = errors.New("nothing to select")
	// ErrNotYourTurn is returned when the human acts while the computer is
	// to move.
	ErrNotYourTurn = errors.New("computer to move")
)

// Config for a game between a human and the engine.
// It holds the rules, the search configuration, and which side the human plays.
type Config struct {
	Name     string         `json:"name"`
	Rules    game.Rules     `json:"rules"`
	Search   minimax.Config `json:"search"`
	Human    game.Side      `json:"human"`
	MaxPlies int            `json:"max_plies"` // engine-vs-engine games are drawn after this many plies; 0 means no cap
	Async    bool           `json:"async"`     // search on a worker goroutine and let Tick poll for the answer
	Strict   bool           `json:"strict"`    // return consistency violations instead of resetting

	Logger *log.Logger `json:"-"`
}

func DefaultConfig() Config {
	return Config{
		Name:     "alphacheckers",
		Rules:    game.DefaultRules(),
		Search:   minimax.DefaultConfig(),
		Human:    game.SideA,
		MaxPlies: 200,
	}
}

func (c Config) IsValid() bool {
	return c.Search.IsValid() && c.Human.IsValid() && c.MaxPlies >= 0
}

// LoadConfig reads a JSON config. Fields missing from the file keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.WithStack(err)
	}
	defer f.Close()
	return ReadConfig(f)
}

func ReadConfig(r io.Reader) (Config, error) {
	conf := DefaultConfig()
	if err := json.NewDecoder(r).Decode(&conf); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if !conf.IsValid() {
		return Config{}, errors.Errorf("invalid config %+v", conf)
	}
	return conf, nil
}

func (c Config) logger(prefix string) *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.New(os.Stderr, prefix, log.LstdFlags)
}

// Outcome is the record of a finished game. Winner is NoSide for a draw.
type Outcome struct {
	GameID uuid.UUID `json:"game_id"`
	Winner game.Side `json:"winner"`
	Plies  int       `json:"plies"`
	Margin int       `json:"margin"` // material of side A minus material of side B
}

// Occupant is what a UI needs to draw one square.
type Occupant struct {
	Side     game.Side `json:"side"` // NoSide for an empty square
	Promoted bool      `json:"promoted"`
}

// Snapshot is a read-only copy of everything a UI collaborator may look at.
type Snapshot struct {
	GameID      uuid.UUID                      `json:"game_id"`
	Board       [game.Size][game.Size]Occupant `json:"board"` // indexed [y][x]
	ToMove      game.Side                      `json:"to_move"`
	Phase       Phase                          `json:"phase"`
	Selected    *game.Square                   `json:"selected,omitempty"`
	Targets     []game.Square                  `json:"targets,omitempty"`
	LastOutcome *Outcome                       `json:"last_outcome,omitempty"`
	Games       int                            `json:"games"`
}

func occupancy(st *game.State) (b [game.Size][game.Size]Occupant) {
	for y := range b {
		for x := range b[y] {
			if p := st.At(game.Sq(x, y)); p != nil {
				b[y][x] = Occupant{Side: p.Side, Promoted: p.Promoted}
			}
		}
	}
	return b
}

func outcomeOf(id uuid.UUID, st *game.State, winner game.Side) Outcome {
	return Outcome{
		GameID: id,
		Winner: winner,
		Plies:  st.Plies(),
		Margin: st.Material(game.SideA) - st.Material(game.SideB),
	}
}
