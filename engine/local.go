package engine

import (
	"fmt"
	"hex/experiments/metrics"
	"hex/game"
	"hex/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
)

// Engine plays agents against each other on a local game. Agents[0] plays Red.
type Engine struct {
	Game   *Game
	Agents []agent.Agent
}

var _ Runner = (*Engine)(nil)

func LocalEngine(agents []agent.Agent, width, height int, options ...Option) (*Engine, error) {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}
	g, err := NewGame(width, height, options...)
	if err != nil {
		return nil, err
	}
	return &Engine{
		Game:   g,
		Agents: agents,
	}, nil
}

// Run executes the entire game loop until a winner is found.
func (e *Engine) Run() (game.Color, metrics.GameMetric, []metrics.MoveMetric, error) {
	view := e.Game.View()
	gameMetric := metrics.GameMetric{
		Width:          view.Width,
		Height:         view.Height,
		StartingPlayer: view.ToMove,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Str("game", e.Game.ID()).Msgf("%s is starting", view.ToMove)

	// A hex board always fills up with exactly one winner, MaxMoves is a safety net
	step := 1
	for e.Game.Status().State == InProgress && step <= MaxMoves {
		player := e.Game.View().ToMove
		agentIndex := 0
		if player == game.Blue {
			agentIndex = 1
		}

		move, status, err := e.Game.StepAgent(e.Agents[agentIndex])
		if err != nil {
			return game.Empty, gameMetric, moveMetrics, fmt.Errorf("step %d: %w", step, err)
		}

		search, score := e.Game.LastSearch()
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Move:         move,
			Score:        score,
			SearchMetric: search,
		})
		log.Debug().Str("game", e.Game.ID()).Int("step", step).Str("player", player.String()).Stringer("move", move).Float64("score", score).Msg("agent moved")

		if status.State == Terminal {
			gameMetric.Winner = status.Winner
		}
		step++
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	if gameMetric.Winner == game.Empty {
		return game.Empty, gameMetric, moveMetrics, fmt.Errorf("%w: no winner after %d moves", game.ErrInvariantViolation, len(moveMetrics))
	}
	return gameMetric.Winner, gameMetric, moveMetrics, nil
}
