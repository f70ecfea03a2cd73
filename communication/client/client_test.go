package client

import (
	"context"
	"hex/communication"
	"hex/engine"
	"hex/game"
	"hex/gamemaster"
	"hex/searcher/agent"
	"hex/server"
	"hex/store"
	"hex/utils"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	master := gamemaster.New(store.NewMemoryStore(), gamemaster.WithSeed(1))
	ts := httptest.NewServer(server.New(master, server.WithPlayouts(5)).Handler())
	t.Cleanup(ts.Close)
	return New(ts.URL + "/")
}

func TestClient(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	t.Run("playing a game to the end", func(t *testing.T) {
		view, err := c.CreateGame(ctx, 2, 2)
		require.NoError(t, err)

		for _, m := range []game.Move{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}} {
			view, err = c.Move(ctx, view.ID, m.X, m.Y)
			require.NoError(t, err)
		}
		require.Equal(t, engine.Status{State: engine.Terminal, Winner: game.Red}, view.Status)

		fetched, err := c.GetGame(ctx, view.ID)
		require.NoError(t, err)
		require.Equal(t, view, fetched)

		records, err := c.Games(ctx, 5)
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, view.History, records[0].Moves)
	})

	t.Run("automated turns", func(t *testing.T) {
		view, err := c.CreateGame(ctx, 3, 3)
		require.NoError(t, err)

		resp, err := c.Auto(ctx, view.ID, 0)

		require.NoError(t, err)
		require.Equal(t, 1, resp.View.Turn)
		require.Equal(t, game.Red, resp.View.Cells[resp.Move.X][resp.Move.Y])
	})

	t.Run("mapping errors", func(t *testing.T) {
		_, err := c.CreateGame(ctx, 1, 1)
		require.ErrorIs(t, err, communication.ErrBadRequest)
		require.Contains(t, err.Error(), "invalid board dimension")

		_, err = c.GetGame(ctx, "missing")
		require.ErrorIs(t, err, communication.ErrNotFound)

		view, _ := c.CreateGame(ctx, 3, 3)
		_, err = c.Move(ctx, view.ID, 1, 1)
		require.NoError(t, err)
		_, err = c.Move(ctx, view.ID, 1, 1)
		require.ErrorIs(t, err, communication.ErrConflict)
	})
}

func TestRemoteAgent(t *testing.T) {
	c := newTestClient(t)

	t.Run("evaluating a position remotely", func(t *testing.T) {
		b, _ := game.NewBoard(3, 3)
		for _, m := range []game.Move{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 0, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 2}, {X: 0, Y: 2}} {
			require.NoError(t, b.Play(m.X, m.Y))
		}

		move, metric, err := NewRemoteAgent(c, 3, time.Second).FindMove(b)

		require.NoError(t, err)
		require.Equal(t, game.Move{X: 1, Y: 2}, move)
		require.Equal(t, 3, metric.Simulations)
		score, _ := b.Score(1, 2)
		require.Equal(t, 1.0, score)
		require.Equal(t, 8, b.Turn(), "The remote agent does not play on the board")
	})

	t.Run("playing a local engine against a random agent", func(t *testing.T) {
		agents := []agent.Agent{NewRemoteAgent(c, 2, 0), agent.NewRandomAgent(utils.NewRandom(3))}
		e, err := engine.LocalEngine(agents, 3, 3, engine.WithSeed(3))
		require.NoError(t, err)

		winner, gameMetric, moves, err := e.Run()

		require.NoError(t, err)
		require.NotEqual(t, game.Empty, winner)
		require.Equal(t, len(moves), gameMetric.TotalMoves)
	})
}
