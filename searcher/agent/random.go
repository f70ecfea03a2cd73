package agent

import (
	"fmt"
	"hex/experiments/metrics"
	"hex/game"
	"hex/utils"
)

type randomAgent struct {
	random utils.Random
}

// NewRandomAgent returns a baseline agent that plays a uniformly random empty cell.
func NewRandomAgent(random utils.Random) Agent {
	return randomAgent{random: random}
}

func (a randomAgent) FindMove(board *game.Board) (game.Move, metrics.SearchMetric, error) {
	cells := board.EmptyCells()
	if len(cells) == 0 {
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("%w: board is full", game.ErrNoLegalMove)
	}
	return cells[a.random.IntRange(0, len(cells)-1)], metrics.SearchMetric{}, nil
}
