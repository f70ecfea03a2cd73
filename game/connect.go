package game

// HasConnection reports whether the stone at (x, y) is joined by same-colored cells to its
// color's far edge: the bottom row for Red, the right column for Blue. Empty or out of
// bounds cells have no connection.
func (b *Board) HasConnection(x, y int) bool {
	return b.hasConnection(x, y, neighborOffsets, make([]bool, len(b.cells)))
}

// hasConnection flood-fills from (x, y) with an explicit stack. visited is owned by the
// caller and may be shared between seeds of the same color.
func (b *Board) hasConnection(x, y int, offsets []offset, visited []bool) bool {
	if !b.InBounds(x, y) {
		return false
	}
	color := b.cells[b.index(x, y)]
	if color == Empty || visited[b.index(x, y)] {
		return false
	}

	stack := []Move{{X: x, Y: y}}
	visited[b.index(x, y)] = true
	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if b.reachesGoal(color, cell.X, cell.Y) {
			return true
		}

		for _, n := range b.neighbors(cell.X, cell.Y, offsets) {
			i := b.index(n.X, n.Y)
			if visited[i] || b.cells[i] != color {
				continue
			}
			visited[i] = true
			stack = append(stack, n)
		}
	}
	return false
}

// Winner returns the color holding a connected edge-to-edge path, or Empty while the game
// is undecided. Red is checked before Blue, seeds in increasing coordinate order.
func (b *Board) Winner() Color {
	for _, color := range []Color{Red, Blue} {
		visited := make([]bool, len(b.cells))
		for _, seed := range b.seeds(color) {
			if b.cells[b.index(seed.X, seed.Y)] != color {
				continue
			}
			if b.hasConnection(seed.X, seed.Y, neighborOffsets, visited) {
				return color
			}
		}
	}
	return Empty
}
