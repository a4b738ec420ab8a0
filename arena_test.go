package checkers

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"

	"github.com/alphacheckers/game"
	"github.com/alphacheckers/minimax"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArena(t *testing.T, buf *bytes.Buffer, maxPlies int) Arena {
	t.Helper()
	conf := testConfig(buf)
	conf.Name = "test"
	conf.MaxPlies = maxPlies
	logger := log.New(buf, "", 0)
	a := NewAgent("shallow", game.SideB, minimax.Config{Depth: 1}, logger)
	b := NewAgent("deeper", game.SideA, minimax.Config{Depth: 2}, logger)
	return MakeArena(conf, a, b)
}

func TestMakeArenaAssignsSides(t *testing.T) {
	var buf bytes.Buffer
	arena := testArena(t, &buf, 10)
	assert.Equal(t, game.SideA, arena.agentA.Player)
	assert.Equal(t, game.SideB, arena.agentB.Player)
	assert.Equal(t, "test", arena.Name())
	assert.Equal(t, 0, arena.GameNumber())
}

func TestArenaPlay(t *testing.T) {
	var buf bytes.Buffer
	arena := testArena(t, &buf, 40)

	o, err := arena.Play(context.Background())
	require.NoError(t, err)
	assert.LessOrEqual(t, o.Plies, 40)
	if o.Plies == 40 {
		assert.Equal(t, game.NoSide, o.Winner, "capped games are draws")
	}
	assert.Equal(t, 1, arena.GameNumber())
	assert.Equal(t, 0, arena.State().Plies(), "the arena resets after each game")
	assert.NoError(t, arena.State().Verify())

	a, b := arena.agentA, arena.agentB
	assert.Equal(t, float32(1), a.Wins+a.Loss+a.Draw)
	assert.Equal(t, float32(1), b.Wins+b.Loss+b.Draw)
	assert.Equal(t, a.Wins, b.Loss)
	assert.Equal(t, a.Draw, b.Draw)
}

func TestArenaMaxPlies(t *testing.T) {
	var buf bytes.Buffer
	arena := testArena(t, &buf, 3)

	o, err := arena.Play(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, o.Plies)
	assert.Equal(t, game.NoSide, o.Winner)
	assert.Equal(t, float32(1), arena.agentA.Draw)
}

func TestArenaRunAndStats(t *testing.T) {
	var buf bytes.Buffer
	arena := testArena(t, &buf, 30)

	mean, std := arena.Stats()
	assert.Zero(t, mean)
	assert.Zero(t, std)

	require.NoError(t, arena.Run(context.Background(), 3))
	outcomes := arena.Outcomes()
	require.Len(t, outcomes, 3)
	assert.Equal(t, 3, arena.GameNumber())

	// both engines are deterministic, so every game is the same game
	for _, o := range outcomes[1:] {
		assert.Equal(t, outcomes[0].Winner, o.Winner)
		assert.Equal(t, outcomes[0].Plies, o.Plies)
		assert.NotEqual(t, outcomes[0].GameID, o.GameID)
	}
	mean, std = arena.Stats()
	assert.Equal(t, float64(outcomes[0].Margin), mean)
	assert.Zero(t, std)

	var out bytes.Buffer
	arena.Log(&out)
	assert.Contains(t, out.String(), "test: 3 games")
	assert.Equal(t, 3, strings.Count(out.String(), "\n"))
}

func TestArenaRunCancelled(t *testing.T) {
	var buf bytes.Buffer
	arena := testArena(t, &buf, 30)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := arena.Run(ctx, 2)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	assert.Empty(t, arena.Outcomes())
}

func TestArenaRunStartsFresh(t *testing.T) {
	var buf bytes.Buffer
	arena := testArena(t, &buf, 10)

	require.NoError(t, arena.Run(context.Background(), 2))
	require.Len(t, arena.Outcomes(), 2)
	require.NoError(t, arena.Run(context.Background(), 1))

	assert.Len(t, arena.Outcomes(), 1)
	assert.Equal(t, 1, arena.GameNumber())
	for _, ag := range []*Agent{arena.agentA, arena.agentB} {
		assert.Equal(t, float32(1), ag.Wins+ag.Loss+ag.Draw, ag.Name())
	}

	arena.Reset()
	assert.Empty(t, arena.Outcomes())
	assert.Zero(t, arena.agentA.Wins+arena.agentA.Loss+arena.agentA.Draw)
}
