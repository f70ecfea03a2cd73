package searcher

import "hex/game"

const WIN = 1.0
const LOSS = 1 - WIN

// Result is the outcome of one evaluation pass.
type Result struct {
	Move   game.Move
	Score  float64
	Scores [][]float64 // Win fraction per cell, indexed [x][y]; zero for occupied cells
}

func rewarder(winner game.Color) func(player game.Color) (reward float64) {
	return func(player game.Color) float64 {
		if player == winner {
			return WIN
		}
		return LOSS
	}
}
