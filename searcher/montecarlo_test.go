package searcher

import (
	"hex/game"
	"hex/utils"
	"testing"

	"github.com/stretchr/testify/require"
)

/**
Flat Monte Carlo evaluation:
- construction: bad goroutine count panics, defaults applied
- evaluation:
	- full board -> no legal move
	- single empty cell -> score 1 or 0 by the forced outcome
	- immediate win available -> best score 1
	- fixed seed -> same result across runs and goroutine counts
	- scores recorded on the live board, occupied cells zeroed
- rollout: always terminates with a winner, never an invariant violation
*/

func playAll(t *testing.T, b *game.Board, moves ...game.Move) {
	t.Helper()
	for _, m := range moves {
		require.NoError(t, b.Play(m.X, m.Y))
	}
}

// lastCellWins leaves only (1,2) empty with Red to move; playing it joins Red's column.
func lastCellWins(t *testing.T) *game.Board {
	b, err := game.NewBoard(3, 3)
	require.NoError(t, err)
	playAll(t, b,
		game.Move{X: 1, Y: 0}, game.Move{X: 2, Y: 0},
		game.Move{X: 1, Y: 1}, game.Move{X: 2, Y: 1},
		game.Move{X: 0, Y: 0}, game.Move{X: 0, Y: 1},
		game.Move{X: 2, Y: 2}, game.Move{X: 0, Y: 2},
	)
	return b
}

// lastCellLoses leaves only (1,2) empty with Red to move; Blue already holds row 1.
func lastCellLoses(t *testing.T) *game.Board {
	b, err := game.NewBoard(3, 3)
	require.NoError(t, err)
	playAll(t, b,
		game.Move{X: 0, Y: 0}, game.Move{X: 0, Y: 1},
		game.Move{X: 1, Y: 0}, game.Move{X: 1, Y: 1},
		game.Move{X: 2, Y: 2}, game.Move{X: 2, Y: 1},
		game.Move{X: 0, Y: 2}, game.Move{X: 2, Y: 0},
	)
	return b
}

func TestNewMonteCarlo(t *testing.T) {
	t.Run("panics without goroutines", func(t *testing.T) {
		require.Panics(t, func() { NewMonteCarlo(0) })
	})

	t.Run("applies defaults", func(t *testing.T) {
		m := NewMonteCarlo(2, WithPlayouts(0))
		require.Equal(t, DefaultPlayouts, m.Playouts(), "Non-positive playouts keep the default")
		require.NotNil(t, m.random)
	})
}

func TestMonteCarloEvaluate(t *testing.T) {
	t.Run("failing on a full board", func(t *testing.T) {
		b, _ := game.NewBoard(2, 2)
		playAll(t, b, b.EmptyCells()...)

		_, _, err := NewMonteCarlo(1, WithSeed(1)).Evaluate(b)

		require.ErrorIs(t, err, game.ErrNoLegalMove)
	})

	t.Run("scoring a winning last cell as 1", func(t *testing.T) {
		b := lastCellWins(t)
		require.Equal(t, game.Empty, b.Winner())

		got, _, err := NewMonteCarlo(1, WithPlayouts(10), WithSeed(1)).Evaluate(b)

		require.NoError(t, err)
		require.Equal(t, game.Move{X: 1, Y: 2}, got.Move)
		require.Equal(t, 1.0, got.Score)
	})

	t.Run("scoring a losing last cell as 0", func(t *testing.T) {
		b := lastCellLoses(t)

		got, _, err := NewMonteCarlo(1, WithPlayouts(10), WithSeed(1)).Evaluate(b)

		require.NoError(t, err)
		require.Equal(t, game.Move{X: 1, Y: 2}, got.Move)
		require.Equal(t, 0.0, got.Score)
	})

	t.Run("finding an immediate win", func(t *testing.T) {
		b, _ := game.NewBoard(3, 3)
		// Red holds (1,0) and (1,1); Blue is scattered. Red to move.
		playAll(t, b, game.Move{X: 1, Y: 0}, game.Move{X: 0, Y: 0}, game.Move{X: 1, Y: 1}, game.Move{X: 2, Y: 2})

		got, _, err := NewMonteCarlo(2, WithPlayouts(50), WithSeed(3)).Evaluate(b)

		require.NoError(t, err)
		require.Equal(t, 1.0, got.Scores[1][2], "Completing the column always wins")
		require.Equal(t, 1.0, got.Score)
	})

	t.Run("recording scores on the live board", func(t *testing.T) {
		b, _ := game.NewBoard(4, 3)
		playAll(t, b, game.Move{X: 1, Y: 1}, game.Move{X: 2, Y: 1})
		require.NoError(t, b.SetScore(1, 1, 0.9)) // stale score on an occupied cell

		got, _, err := NewMonteCarlo(3, WithPlayouts(20), WithSeed(8)).Evaluate(b)
		require.NoError(t, err)

		require.Equal(t, got.Scores, b.Scores())
		require.Zero(t, got.Scores[1][1], "Occupied cells are reset")
		require.Zero(t, got.Scores[2][1], "Occupied cells are reset")
		for _, cell := range b.EmptyCells() {
			score := got.Scores[cell.X][cell.Y]
			require.GreaterOrEqual(t, score, 0.0)
			require.LessOrEqual(t, score, 1.0)
			require.LessOrEqual(t, score, got.Score, "Best score is the maximum")
		}
		require.Equal(t, 2, b.Turn(), "Evaluation does not play on the live board")
		require.Equal(t, 2, b.Occupied())
	})

	t.Run("repeating results for a fixed seed", func(t *testing.T) {
		b, _ := game.NewBoard(4, 4)
		playAll(t, b, game.Move{X: 0, Y: 0}, game.Move{X: 3, Y: 3})

		first, _, err := NewMonteCarlo(1, WithPlayouts(30), WithRandom(utils.NewRandom(99))).Evaluate(b)
		require.NoError(t, err)
		second, _, err := NewMonteCarlo(1, WithPlayouts(30), WithRandom(utils.NewRandom(99))).Evaluate(b)
		require.NoError(t, err)
		parallel, _, err := NewMonteCarlo(4, WithPlayouts(30), WithRandom(utils.NewRandom(99))).Evaluate(b)
		require.NoError(t, err)

		require.Equal(t, first, second)
		require.Equal(t, first, parallel, "Goroutine count should not change the outcome")
	})

	t.Run("collecting metrics", func(t *testing.T) {
		b, _ := game.NewBoard(3, 3)
		playAll(t, b, game.Move{X: 1, Y: 1})

		_, metric, err := NewMonteCarlo(2, WithPlayouts(5), WithSeed(4), WithMetrics()).Evaluate(b)

		require.NoError(t, err)
		require.Equal(t, 8, metric.Cells)
		require.Equal(t, 40, metric.Simulations)
		require.Equal(t, 2, metric.Goroutines)
		require.LessOrEqual(t, metric.Wins, metric.Simulations)
	})
}

func TestPlayout(t *testing.T) {
	random := utils.NewRandom(2024)
	for _, size := range [][2]int{{2, 2}, {3, 5}, {5, 3}, {7, 7}} {
		b, _ := game.NewBoard(size[0], size[1])
		for i := 0; i < 200; i++ {
			cells := b.EmptyCells()
			move := cells[random.IntRange(0, len(cells)-1)]

			winner, err := playout(b, move, random)

			require.NoError(t, err, "Playouts must always reach a winner")
			require.NotEqual(t, game.Empty, winner)
		}
		require.Equal(t, 0, b.Turn(), "Playouts work on copies")
	}
}
