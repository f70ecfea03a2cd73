package engine

import (
	"fmt"
	"hex/experiments/metrics"
	"hex/game"
	"hex/searcher"
	"hex/searcher/agent"
	"hex/utils"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Option func(g *Game)

// Observer is called with every committed move and the view right after it, while the
// game is still locked. Observers must not call back into the game.
type Observer func(move game.Move, view View)

// Game owns a live board and is the only place moves are committed to it.
type Game struct {
	mu         sync.Mutex
	id         string
	board      *game.Board
	status     Status
	history    []game.Move
	goroutines int
	random     utils.Random
	lastSearch metrics.SearchMetric
	lastScore  float64
	startTime  time.Time
	observer   Observer
}

func WithID(id string) Option {
	return func(g *Game) {
		if id != "" {
			g.id = id
		}
	}
}

func WithGoroutines(goroutines int) Option {
	return func(g *Game) {
		if goroutines > 0 {
			g.goroutines = goroutines
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(g *Game) {
		g.random = utils.NewRandom(seed)
	}
}

func WithObserver(observer Observer) Option {
	return func(g *Game) {
		g.observer = observer
	}
}

func WithRandom(random utils.Random) Option {
	return func(g *Game) {
		if random != nil {
			g.random = random
		}
	}
}

// NewGame creates an in-progress game on an empty width x height board.
func NewGame(width, height int, options ...Option) (*Game, error) {
	board, err := game.NewBoard(width, height)
	if err != nil {
		return nil, err
	}
	g := &Game{ // Default values
		id:         uuid.NewString(),
		board:      board,
		status:     Status{State: InProgress, Winner: game.Empty},
		goroutines: searcher.DefaultGoroutines,
		startTime:  time.Now(),
	}
	for _, option := range options {
		option(g)
	}
	if g.random == nil {
		g.random = utils.NewRandom(uint64(time.Now().UnixNano()))
	}
	return g, nil
}

func (g *Game) ID() string {
	return g.id
}

func (g *Game) StartTime() time.Time {
	return g.startTime
}

func (g *Game) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.status
}

// ApplyMove plays (x, y) for the side to move.
func (g *Game) ApplyMove(x, y int) (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.applyMove(game.Move{X: x, Y: y})
}

func (g *Game) applyMove(move game.Move) (Status, error) {
	if g.status.State == Terminal {
		return g.status, game.ErrGameOver
	}

	player := g.board.Player()
	if err := g.board.Play(move.X, move.Y); err != nil {
		return g.status, err
	}
	g.history = append(g.history, move)

	if winner := g.board.Winner(); winner != game.Empty {
		g.status = Status{State: Terminal, Winner: winner}
		log.Info().Str("game", g.id).Str("winner", winner.String()).Int("turn", g.board.Turn()).Msg("game over")
	}

	log.Debug().Str("game", g.id).Str("player", player.String()).Stringer("move", move).Msg("move applied")
	if g.observer != nil {
		g.observer(move, g.view())
	}
	return g.status, nil
}

// StepAutomated evaluates the board with playouts simulations per empty cell and commits
// the best cell.
func (g *Game) StepAutomated(playouts int) (game.Move, Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status.State == Terminal {
		return game.Move{}, g.status, game.ErrGameOver
	}
	if playouts <= 0 {
		return game.Move{}, g.status, fmt.Errorf("playouts must be positive, got %d", playouts)
	}

	mc := searcher.NewMonteCarlo(g.goroutines,
		searcher.WithPlayouts(playouts),
		searcher.WithRandom(g.random),
		searcher.WithMetrics(),
	)
	return g.stepAgent(agent.NewEvaluationAgent(mc))
}

// StepAgent commits the move chosen by a.
func (g *Game) StepAgent(a agent.Agent) (game.Move, Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.stepAgent(a)
}

func (g *Game) stepAgent(a agent.Agent) (game.Move, Status, error) {
	if g.status.State == Terminal {
		return game.Move{}, g.status, game.ErrGameOver
	}

	g.board.ClearScores()
	move, metric, err := a.FindMove(g.board)
	if err != nil {
		return game.Move{}, g.status, err
	}
	g.lastSearch = metric
	g.lastScore, _ = g.board.Score(move.X, move.Y)

	status, err := g.applyMove(move)
	if err != nil {
		return game.Move{}, status, fmt.Errorf("agent chose an illegal move %s: %w", move, err)
	}
	return move, status, nil
}

// LastSearch returns the metrics and the chosen cell's score of the most recent agent
// step. Agents that do not evaluate report a zero score.
func (g *Game) LastSearch() (metrics.SearchMetric, float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.lastSearch, g.lastScore
}

func (g *Game) String() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.board.String()
}

// View returns a snapshot safe to hand to other goroutines.
func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.view()
}

func (g *Game) view() View {
	history := make([]game.Move, len(g.history))
	copy(history, g.history)

	return View{
		ID:      g.id,
		Width:   g.board.Width(),
		Height:  g.board.Height(),
		Cells:   g.board.Cells(),
		Scores:  g.board.Scores(),
		Turn:    g.board.Turn(),
		ToMove:  g.board.Player(),
		Status:  g.status,
		History: history,
	}
}
