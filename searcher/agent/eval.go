package agent

import (
	"hex/experiments/metrics"
	"hex/game"
	"hex/searcher"
)

type evaluationAgent struct {
	mc *searcher.MonteCarlo
}

// NewEvaluationAgent returns an agent that always plays the best scored cell.
func NewEvaluationAgent(mc *searcher.MonteCarlo) Agent {
	return evaluationAgent{mc: mc}
}

func (a evaluationAgent) FindMove(board *game.Board) (game.Move, metrics.SearchMetric, error) {
	result, metric, err := a.mc.Evaluate(board)
	if err != nil {
		return game.Move{}, metric, err
	}
	return result.Move, metric, nil
}
