package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func row(y, width int) []Move {
	moves := make([]Move, 0, width)
	for x := 0; x < width; x++ {
		moves = append(moves, Move{X: x, Y: y})
	}
	return moves
}

func column(x, height int) []Move {
	moves := make([]Move, 0, height)
	for y := 0; y < height; y++ {
		moves = append(moves, Move{X: x, Y: y})
	}
	return moves
}

// randomBoard fills each cell with Red, Blue or Empty at random.
func randomBoard(r *rand.Rand, width, height int, full bool) *Board {
	b, _ := NewBoard(width, height)
	for i := range b.cells {
		n := r.Intn(3)
		if full {
			n = 1 + r.Intn(2)
		}
		if n != 0 {
			b.cells[i] = Color(n)
			b.turn++
		}
	}
	return b
}

func permutations(offsets []offset) [][]offset {
	if len(offsets) <= 1 {
		return [][]offset{append([]offset(nil), offsets...)}
	}
	var result [][]offset
	for i := range offsets {
		rest := make([]offset, 0, len(offsets)-1)
		rest = append(rest, offsets[:i]...)
		rest = append(rest, offsets[i+1:]...)
		for _, p := range permutations(rest) {
			result = append(result, append([]offset{offsets[i]}, p...))
		}
	}
	return result
}

func TestNeighbors(t *testing.T) {
	b, _ := NewBoard(3, 3)

	require.Equal(t, []Move{{0, 1}, {2, 1}, {1, 0}, {2, 0}, {1, 2}, {0, 2}}, b.Neighbors(1, 1))
	require.Equal(t, []Move{{1, 0}, {0, 1}}, b.Neighbors(0, 0))
	require.Equal(t, []Move{{1, 2}, {2, 1}}, b.Neighbors(2, 2))
}

func TestHasConnection(t *testing.T) {
	t.Run("empty cell has no connection", func(t *testing.T) {
		b, _ := NewBoard(3, 3)
		require.False(t, b.HasConnection(0, 0))
		require.False(t, b.HasConnection(-1, 0))
	})

	t.Run("red column reaches the bottom row", func(t *testing.T) {
		b, _ := NewBoard(3, 3)
		place(b, Red, column(0, 3)...)

		require.True(t, b.HasConnection(0, 0))
		require.True(t, b.HasConnection(0, 1))
	})

	t.Run("red row does not reach the bottom row", func(t *testing.T) {
		b, _ := NewBoard(3, 3)
		place(b, Red, row(0, 3)...)

		require.False(t, b.HasConnection(0, 0))
	})

	t.Run("diagonal hex link connects", func(t *testing.T) {
		b, _ := NewBoard(3, 3)
		// (2,0) -> (1,1) -> (0,2) via the (x-1,y+1) neighbor
		place(b, Red, Move{2, 0}, Move{1, 1}, Move{0, 2})

		require.True(t, b.HasConnection(2, 0))
	})

	t.Run("non-adjacent diagonal does not connect", func(t *testing.T) {
		b, _ := NewBoard(3, 3)
		// (0,0) and (1,1) are not hex neighbors
		place(b, Red, Move{0, 0}, Move{1, 1}, Move{2, 2})

		require.False(t, b.HasConnection(0, 0))
	})

	t.Run("opponent stones block", func(t *testing.T) {
		b, _ := NewBoard(3, 3)
		place(b, Red, Move{0, 0}, Move{0, 2})
		place(b, Blue, Move{0, 1})

		require.False(t, b.HasConnection(0, 0))
	})

	t.Run("does not mutate the board", func(t *testing.T) {
		b, _ := NewBoard(4, 4)
		place(b, Blue, row(1, 4)...)
		before := b.Cells()

		require.True(t, b.HasConnection(0, 1))
		require.Equal(t, before, b.Cells())
		require.Equal(t, 4, b.Turn())
	})
}

func TestHasConnectionNeighborOrder(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	orders := permutations(neighborOffsets)
	require.Len(t, orders, 720)

	for i := 0; i < 4; i++ {
		b := randomBoard(r, 5, 4, false)
		for y := 0; y < b.height; y++ {
			for x := 0; x < b.width; x++ {
				want := b.HasConnection(x, y)
				for _, order := range orders {
					got := b.hasConnection(x, y, order, make([]bool, len(b.cells)))
					require.Equal(t, want, got, "cell (%d,%d) with order %v on\n%s", x, y, order, b)
				}
			}
		}
	}
}

func TestWinner(t *testing.T) {
	t.Run("no winner on an empty board", func(t *testing.T) {
		b, _ := NewBoard(3, 3)
		require.Equal(t, Empty, b.Winner())
	})

	t.Run("a full top row is not a red win", func(t *testing.T) {
		b, _ := NewBoard(3, 3)
		place(b, Red, row(0, 3)...)

		require.Equal(t, Empty, b.Winner())
	})

	t.Run("filling every row with red wins once top meets bottom", func(t *testing.T) {
		b, _ := NewBoard(3, 3)
		place(b, Red, row(0, 3)...)
		place(b, Red, row(1, 3)...)
		require.Equal(t, Empty, b.Winner(), "Two rows do not reach y=2")

		place(b, Red, row(2, 3)...)
		require.Equal(t, Red, b.Winner())
	})

	t.Run("a full top row is a blue win", func(t *testing.T) {
		b, _ := NewBoard(3, 3)
		place(b, Blue, row(0, 3)...)

		require.Equal(t, Blue, b.Winner())
	})

	t.Run("a full left column is a red win", func(t *testing.T) {
		b, _ := NewBoard(3, 3)
		place(b, Red, column(0, 3)...)

		require.Equal(t, Red, b.Winner())
	})

	t.Run("path built from the far edge first is still found", func(t *testing.T) {
		b, _ := NewBoard(4, 4)
		place(b, Blue, Move{3, 2}, Move{2, 2}, Move{1, 2}, Move{0, 2})

		require.Equal(t, Blue, b.Winner())
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		r := rand.New(rand.NewSource(11))
		for i := 0; i < 20; i++ {
			b := randomBoard(r, 6, 5, false)
			require.Equal(t, b.Winner(), b.Winner())
		}
	})

	t.Run("every full board has exactly one winner", func(t *testing.T) {
		r := rand.New(rand.NewSource(3))
		for i := 0; i < 50; i++ {
			b := randomBoard(r, 2+r.Intn(6), 2+r.Intn(6), true)

			red, blue := false, false
			for _, s := range b.seeds(Red) {
				c, _ := b.ColorAt(s.X, s.Y)
				red = red || (c == Red && b.HasConnection(s.X, s.Y))
			}
			for _, s := range b.seeds(Blue) {
				c, _ := b.ColorAt(s.X, s.Y)
				blue = blue || (c == Blue && b.HasConnection(s.X, s.Y))
			}
			require.True(t, red != blue, "exactly one color should connect on\n%s", b)
			require.NotEqual(t, Empty, b.Winner())
		}
	})
}
