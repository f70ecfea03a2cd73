package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hex/game"
	"time"
)

var ErrNotFound = errors.New("game record not found")

// Record is a finished game.
type Record struct {
	ID        string      `json:"id"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Winner    game.Color  `json:"winner"`
	Moves     []game.Move `json:"moves"`
	StartedAt time.Time   `json:"started_at"`
	EndedAt   time.Time   `json:"ended_at"`
}

type Store interface {
	SaveGame(ctx context.Context, record Record) error
	GetGame(ctx context.Context, id string) (Record, error)
	// ListGames returns the most recently ended games first.
	ListGames(ctx context.Context, limit int) ([]Record, error)
	Close() error
}

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// normalizeLimit defaults non-positive limits and clamps large ones to maxListLimit.
func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	default:
		return limit
	}
}

func validateRecord(record Record) error {
	if record.ID == "" {
		return fmt.Errorf("empty game id")
	}
	if record.Width <= 0 || record.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", game.ErrInvalidDimension, record.Width, record.Height)
	}
	return nil
}

func encodeMoves(moves []game.Move) (string, error) {
	if moves == nil {
		moves = []game.Move{}
	}
	raw, err := json.Marshal(moves)
	if err != nil {
		return "", fmt.Errorf("failed to encode moves: %w", err)
	}
	return string(raw), nil
}

func decodeMoves(raw string) ([]game.Move, error) {
	var moves []game.Move
	if err := json.Unmarshal([]byte(raw), &moves); err != nil {
		return nil, fmt.Errorf("failed to decode moves: %w", err)
	}
	return moves, nil
}
