package agent

import (
	"hex/experiments/metrics"
	"hex/game"
)

type Agent interface {
	// FindMove picks a move for board.Player() and returns search metrics (if collected)
	FindMove(board *game.Board) (game.Move, metrics.SearchMetric, error)
}
