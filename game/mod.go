package game

import (
	"errors"
	"fmt"
)

const (
	MinSize = 2
	MaxSize = 15
)

var (
	ErrInvalidDimension   = errors.New("invalid board dimension")
	ErrOutOfBounds        = errors.New("cell out of bounds")
	ErrCellOccupied       = errors.New("cell already occupied")
	ErrGameOver           = errors.New("game is over - no moves allowed")
	ErrNoLegalMove        = errors.New("no legal move")
	ErrInvariantViolation = errors.New("internal invariant violation")
	ErrInvalidPosition    = errors.New("invalid position")
)

// Color is the occupancy of a cell. Red connects top to bottom, Blue connects left to right.
type Color int

const (
	Empty Color = iota
	Red
	Blue
)

func (c Color) String() string {
	switch c {
	case Empty:
		return "empty"
	case Red:
		return "red"
	case Blue:
		return "blue"
	default:
		return "unknown"
	}
}

func ParseColor(s string) (Color, error) {
	switch s {
	case "empty", "":
		return Empty, nil
	case "red":
		return Red, nil
	case "blue":
		return Blue, nil
	default:
		return Empty, fmt.Errorf("unknown color %q", s)
	}
}

func (c Color) MarshalText() ([]byte, error) {
	if c < Empty || c > Blue {
		return nil, fmt.Errorf("unknown color %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Opponent returns the other player's color, or Empty for Empty.
func (c Color) Opponent() Color {
	switch c {
	case Red:
		return Blue
	case Blue:
		return Red
	default:
		return Empty
	}
}
