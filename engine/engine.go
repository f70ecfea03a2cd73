package engine

import (
	"fmt"
	"hex/experiments/metrics"
	"hex/game"
)

const MaxMoves = game.MaxSize * game.MaxSize

type Runner interface {
	// Run plays a game till there's a winner
	Run() (winner game.Color, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// State is the turn controller's state: a game is in progress until a color connects.
type State int

const (
	InProgress State = iota
	Terminal
)

func (s State) String() string {
	if s == Terminal {
		return "terminal"
	}
	return "in_progress"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "in_progress":
		*s = InProgress
	case "terminal":
		*s = Terminal
	default:
		return fmt.Errorf("unknown game state %q", text)
	}
	return nil
}

// Status is the controller state together with the winner once Terminal.
type Status struct {
	State  State      `json:"state"`
	Winner game.Color `json:"winner"`
}

// View is the display snapshot of a game. Grids are indexed [x][y].
type View struct {
	ID      string         `json:"id"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Cells   [][]game.Color `json:"cells"`
	Scores  [][]float64    `json:"scores"`
	Turn    int            `json:"turn"`
	ToMove  game.Color     `json:"to_move"`
	Status  Status         `json:"status"`
	History []game.Move    `json:"history"`
}
