package game

import "fmt"

// Move places the side to move's stone at (X, Y).
type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.X, m.Y)
}
