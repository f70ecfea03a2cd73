package searcher

import (
	"fmt"
	"hex/game"
	"hex/utils"
)

// playout copies board, plays move for the side to move, then fills uniformly random
// empty cells for alternating sides until a color connects. It returns the winner.
func playout(board *game.Board, move game.Move, random utils.Random) (game.Color, error) {
	sim := board.Copy()
	if err := sim.Play(move.X, move.Y); err != nil {
		return game.Empty, err
	}

	empty := sim.EmptyCells()
	for {
		if winner := sim.Winner(); winner != game.Empty {
			return winner, nil
		}
		if len(empty) == 0 {
			return game.Empty, fmt.Errorf("%w: full board without a winner after %d moves", game.ErrInvariantViolation, sim.Turn())
		}

		// Swap-remove keeps the remaining slice equal to the set of empty cells
		i := random.IntRange(0, len(empty)-1)
		next := empty[i]
		empty[i] = empty[len(empty)-1]
		empty = empty[:len(empty)-1]

		if err := sim.Play(next.X, next.Y); err != nil {
			return game.Empty, fmt.Errorf("%w: %v", game.ErrInvariantViolation, err)
		}
	}
}
