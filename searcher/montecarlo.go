package searcher

import (
	"errors"
	"fmt"
	"hex/experiments/metrics"
	"hex/game"
	"hex/utils"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(m *MonteCarlo)

// MonteCarlo scores every empty cell by the fraction of random playouts, started from a
// stone on that cell, that end in a win for the side to move.
type MonteCarlo struct {
	goroutines int
	playouts   int
	random     utils.Random
	metrics    metrics.Collector
}

func WithPlayouts(playouts int) Option {
	return func(m *MonteCarlo) {
		if playouts > 0 {
			m.playouts = playouts
		}
	}
}

// WithRandom injects the generator that seeds every cell's simulations.
func WithRandom(random utils.Random) Option {
	return func(m *MonteCarlo) {
		if random != nil {
			m.random = random
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MonteCarlo) {
		m.random = utils.NewRandom(seed)
	}
}

func WithMetrics() Option {
	return func(m *MonteCarlo) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMonteCarlo(goroutines int, options ...Option) *MonteCarlo {
	if goroutines <= 0 {
		panic("Must run at least one goroutine")
	}
	m := &MonteCarlo{ // Default values
		goroutines: goroutines,
		playouts:   DefaultPlayouts,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.random == nil {
		m.random = utils.NewRandom(uint64(time.Now().UnixNano()))
	}
	return m
}

func (m *MonteCarlo) Playouts() int {
	return m.playouts
}

type task struct {
	index  int
	move   game.Move
	random utils.Random
}

// Evaluate scores every empty cell of board for board.Player(), records the scores on the
// board and returns the best cell. Ties go to the first cell in row-major order.
func (m *MonteCarlo) Evaluate(board *game.Board) (Result, metrics.SearchMetric, error) {
	player := board.Player()
	cells := board.EmptyCells()
	if len(cells) == 0 {
		return Result{}, metrics.SearchMetric{}, fmt.Errorf("%w: board is full", game.ErrNoLegalMove)
	}

	m.metrics.Start(m.goroutines, m.playouts, len(cells))

	// Seeds are drawn in cell order before dispatch, so results do not depend on scheduling
	tasks := make(chan task, len(cells))
	for i, cell := range cells {
		tasks <- task{index: i, move: cell, random: utils.Fork(m.random)}
	}
	close(tasks)

	wins := make([]int, len(cells))
	errs := make([]error, len(cells))

	var wg sync.WaitGroup
	for i := 0; i < min(m.goroutines, len(cells)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for t := range tasks {
				wins[t.index], errs[t.index] = m.evaluateCell(board, player, t)
			}
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return Result{}, metrics.SearchMetric{}, err
	}

	scores := make([]float64, len(cells))
	for i := range cells {
		scores[i] = float64(wins[i]) / float64(m.playouts)
	}
	recordScores(board, cells, scores)

	best := utils.ArgMax(scores)
	result := Result{
		Move:   cells[best],
		Score:  scores[best],
		Scores: board.Scores(),
	}
	metric := m.metrics.Complete()

	log.Debug().
		Str("player", player.String()).
		Int("cells", len(cells)).
		Int("playouts", m.playouts).
		Stringer("best", result.Move).
		Float64("score", result.Score).
		Msg("evaluated board")

	return result, metric, nil
}

func (m *MonteCarlo) evaluateCell(board *game.Board, player game.Color, t task) (int, error) {
	reward := rewarder(player)
	total := 0.0
	for i := 0; i < m.playouts; i++ {
		winner, err := playout(board, t.move, t.random)
		if err != nil {
			return 0, err
		}
		m.metrics.AddSimulation()
		r := reward(winner)
		if r == WIN {
			m.metrics.AddWin()
		}
		total += r
	}
	return int(total), nil
}

// recordScores overwrites the board's score grid: evaluated cells get their win fraction,
// occupied cells are reset to zero.
func recordScores(board *game.Board, cells []game.Move, scores []float64) {
	board.ClearScores()
	for i, cell := range cells {
		_ = board.SetScore(cell.X, cell.Y, scores[i])
	}
}
