package game

// offset is a neighbor displacement on the skewed hex grid.
type offset struct{ dx, dy int }

// neighborOffsets lists the six hex neighbors in scan order.
var neighborOffsets = []offset{
	{-1, 0}, {1, 0},
	{0, -1}, {1, -1},
	{0, 1}, {-1, 1},
}

// Neighbors returns the in-bounds neighbors of (x, y).
func (b *Board) Neighbors(x, y int) []Move {
	return b.neighbors(x, y, neighborOffsets)
}

func (b *Board) neighbors(x, y int, offsets []offset) []Move {
	moves := make([]Move, 0, len(offsets))
	for _, o := range offsets {
		nx, ny := x+o.dx, y+o.dy
		if b.InBounds(nx, ny) {
			moves = append(moves, Move{X: nx, Y: ny})
		}
	}
	return moves
}

// reachesGoal reports whether (x, y) lies on the far edge for color.
func (b *Board) reachesGoal(color Color, x, y int) bool {
	switch color {
	case Red:
		return y == b.height-1
	case Blue:
		return x == b.width-1
	default:
		return false
	}
}

// seeds lists the near-edge cells for color in increasing coordinate order.
func (b *Board) seeds(color Color) []Move {
	var moves []Move
	switch color {
	case Red:
		for x := 0; x < b.width; x++ {
			moves = append(moves, Move{X: x, Y: 0})
		}
	case Blue:
		for y := 0; y < b.height; y++ {
			moves = append(moves, Move{X: 0, Y: y})
		}
	}
	return moves
}
