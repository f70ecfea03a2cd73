package communication

import (
	"context"
	"errors"
	"hex/engine"
	"hex/game"
	"hex/store"
)

// Errors reported by a remote server, keyed by HTTP status class.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrServer     = errors.New("server error")
)

// Communicator abstracts how a player talks to a game server.
type Communicator interface {
	CreateGame(ctx context.Context, width, height int) (engine.View, error)
	GetGame(ctx context.Context, id string) (engine.View, error)
	Move(ctx context.Context, id string, x, y int) (engine.View, error)
	Auto(ctx context.Context, id string, playouts int) (AutoResponse, error)
	Games(ctx context.Context, limit int) ([]store.Record, error)
}

type CreateRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type MoveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type AutoRequest struct {
	Playouts int `json:"playouts"`
}

type AutoResponse struct {
	Move  game.Move   `json:"move"`
	Score float64     `json:"score"`
	View  engine.View `json:"view"`
}

// EvaluateRequest asks the server to evaluate a position for the side to move.
type EvaluateRequest struct {
	Cells    [][]game.Color `json:"cells"`
	Playouts int            `json:"playouts"`
	Seed     *uint64        `json:"seed,omitempty"`
}

type EvaluateResponse struct {
	Move        game.Move   `json:"move"`
	Score       float64     `json:"score"`
	Scores      [][]float64 `json:"scores"`
	Simulations int         `json:"simulations"`
}

// Update is pushed over the websocket for every committed move. The first message
// carries the current view and no move.
type Update struct {
	Type string       `json:"type"` // "view", "move" or "ping"
	Move *game.Move   `json:"move,omitempty"`
	View *engine.View `json:"view,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
