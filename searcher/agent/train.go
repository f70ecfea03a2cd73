package agent

import (
	"hex/experiments/metrics"
	"hex/game"
	"hex/searcher"
	"hex/utils"
	"math"
)

type trainingAgent struct {
	mc          *searcher.MonteCarlo
	random      utils.Random
	temperature float64
}

// NewTrainingAgent returns an agent for self-play that samples cells in proportion to
// their temperature-adjusted scores.
func NewTrainingAgent(mc *searcher.MonteCarlo, random utils.Random, temperature float64) Agent {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	return trainingAgent{mc: mc, random: random, temperature: temperature}
}

func (a trainingAgent) FindMove(board *game.Board) (game.Move, metrics.SearchMetric, error) {
	result, metric, err := a.mc.Evaluate(board)
	if err != nil {
		return game.Move{}, metric, err
	}

	cells := board.EmptyCells()
	policy := make([]float64, len(cells))
	for i, cell := range cells {
		policy[i] = result.Scores[cell.X][cell.Y]
	}
	policy = adjustTemperature(policy, a.temperature)
	if policy == nil { // Every cell lost all playouts
		return result.Move, metric, nil
	}
	return cells[sample(policy, a.random)], metric, nil
}

// adjustTemperature raises scores to 1/temperature and normalizes them. It returns nil
// when all scores are zero.
func adjustTemperature(policy []float64, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]float64, len(policy))
	for i, score := range policy {
		prob := math.Pow(score, exponent)
		sum += prob
		adjusted[i] = prob
	}
	if sum == 0 {
		return nil
	}
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}

func sample(policy []float64, random utils.Random) int {
	sampled := random.Float64Range(0, 1)
	cumulative := 0.0
	last := 0
	for i, prob := range policy {
		if prob == 0 {
			continue
		}
		last = i
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return last // Fallback in case of rounding errors
}
