package game

import "fmt"

// NewBoardFromCells loads a position from a grid indexed [x][y]. Red moves first, so a
// legal position holds as many Red stones as Blue stones, or one more.
func NewBoardFromCells(cells [][]Color) (*Board, error) {
	width := len(cells)
	height := 0
	if width > 0 {
		height = len(cells[0])
	}
	b, err := NewBoard(width, height)
	if err != nil {
		return nil, err
	}

	red, blue := 0, 0
	for x := range cells {
		if len(cells[x]) != height {
			return nil, fmt.Errorf("%w: column %d has %d cells, want %d", ErrInvalidDimension, x, len(cells[x]), height)
		}
		for y, c := range cells[x] {
			switch c {
			case Empty:
			case Red:
				red++
			case Blue:
				blue++
			default:
				return nil, fmt.Errorf("%w: unknown color %d at (%d,%d)", ErrInvalidPosition, int(c), x, y)
			}
			b.cells[b.index(x, y)] = c
		}
	}
	if red != blue && red != blue+1 {
		return nil, fmt.Errorf("%w: %d red and %d blue stones", ErrInvalidPosition, red, blue)
	}
	b.turn = red + blue
	return b, nil
}
