package client

import (
	"context"
	"hex/communication"
	"hex/experiments/metrics"
	"hex/game"
	"hex/searcher/agent"
	"time"
)

type remoteAgent struct {
	client   *Client
	playouts int
	timeout  time.Duration
}

// NewRemoteAgent returns an agent that has a server evaluate each position.
func NewRemoteAgent(c *Client, playouts int, timeout time.Duration) agent.Agent {
	return remoteAgent{client: c, playouts: playouts, timeout: timeout}
}

func (a remoteAgent) FindMove(board *game.Board) (game.Move, metrics.SearchMetric, error) {
	ctx := context.Background()
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := a.client.Evaluate(ctx, communication.EvaluateRequest{
		Cells:    board.Cells(),
		Playouts: a.playouts,
	})
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, err
	}

	// Mirror the scores locally so callers see them like a local evaluation
	for x := range resp.Scores {
		for y, score := range resp.Scores[x] {
			_ = board.SetScore(x, y, score)
		}
	}
	return resp.Move, metrics.SearchMetric{
		Playouts:    a.playouts,
		Cells:       len(board.EmptyCells()),
		Simulations: resp.Simulations,
		Duration:    time.Since(start),
	}, nil
}
