package game

import (
	"fmt"
	"strings"
)

// Board is a width x height rhombus of hexagonal cells. Cells are stored row-major,
// indexed x + y*width.
type Board struct {
	width  int
	height int
	cells  []Color
	scores []float64 // Monte Carlo win fractions, display only. Nil until first set
	turn   int       // Number of stones played so far
}

// NewBoard returns an empty board with Red to move.
func NewBoard(width, height int) (*Board, error) {
	if width < MinSize || height < MinSize || width > MaxSize || height > MaxSize {
		return nil, fmt.Errorf("%w: %dx%d (supported %d..%d)", ErrInvalidDimension, width, height, MinSize, MaxSize)
	}
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Color, width*height),
		scores: make([]float64, width*height),
	}, nil
}

// Copy returns a board with the same occupancy and turn. Scores are not carried over and
// are only allocated once the copy sets one.
func (b *Board) Copy() *Board {
	cellsCopy := make([]Color, len(b.cells))
	copy(cellsCopy, b.cells)

	return &Board{
		width:  b.width,
		height: b.height,
		cells:  cellsCopy,
		turn:   b.turn,
	}
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }
func (b *Board) Turn() int   { return b.turn }

// Player returns the color to move: Red on even turns, Blue on odd turns.
func (b *Board) Player() Color {
	if b.turn%2 == 0 {
		return Red
	}
	return Blue
}

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Board) index(x, y int) int {
	return x + y*b.width
}

func (b *Board) checkBounds(x, y int) error {
	if !b.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d board", ErrOutOfBounds, x, y, b.width, b.height)
	}
	return nil
}

func (b *Board) ColorAt(x, y int) (Color, error) {
	if err := b.checkBounds(x, y); err != nil {
		return Empty, err
	}
	return b.cells[b.index(x, y)], nil
}

func (b *Board) IsEmpty(x, y int) (bool, error) {
	c, err := b.ColorAt(x, y)
	if err != nil {
		return false, err
	}
	return c == Empty, nil
}

// Play places the current player's stone at (x, y) and advances the turn.
// A failed call leaves the board untouched.
func (b *Board) Play(x, y int) error {
	if err := b.checkBounds(x, y); err != nil {
		return err
	}
	i := b.index(x, y)
	if b.cells[i] != Empty {
		return fmt.Errorf("%w: (%d,%d) holds %s", ErrCellOccupied, x, y, b.cells[i])
	}
	b.cells[i] = b.Player()
	b.turn++
	return nil
}

// EmptyCells lists the empty cells row by row.
func (b *Board) EmptyCells() []Move {
	moves := make([]Move, 0, len(b.cells)-b.turn)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.cells[b.index(x, y)] == Empty {
				moves = append(moves, Move{X: x, Y: y})
			}
		}
	}
	return moves
}

// Occupied counts non-empty cells. It always equals Turn().
func (b *Board) Occupied() int {
	n := 0
	for _, c := range b.cells {
		if c != Empty {
			n++
		}
	}
	return n
}

func (b *Board) Score(x, y int) (float64, error) {
	if err := b.checkBounds(x, y); err != nil {
		return 0, err
	}
	if b.scores == nil {
		return 0, nil
	}
	return b.scores[b.index(x, y)], nil
}

func (b *Board) SetScore(x, y int, score float64) error {
	if err := b.checkBounds(x, y); err != nil {
		return err
	}
	if b.scores == nil {
		b.scores = make([]float64, len(b.cells))
	}
	b.scores[b.index(x, y)] = score
	return nil
}

// ClearScores resets every score to zero.
func (b *Board) ClearScores() {
	for i := range b.scores {
		b.scores[i] = 0
	}
}

// Cells returns a copy of the occupancy grid indexed [x][y].
func (b *Board) Cells() [][]Color {
	grid := make([][]Color, b.width)
	for x := range grid {
		grid[x] = make([]Color, b.height)
		for y := range grid[x] {
			grid[x][y] = b.cells[b.index(x, y)]
		}
	}
	return grid
}

// Scores returns a copy of the score grid indexed [x][y].
func (b *Board) Scores() [][]float64 {
	grid := make([][]float64, b.width)
	for x := range grid {
		grid[x] = make([]float64, b.height)
		for y := range grid[x] {
			if b.scores != nil {
				grid[x][y] = b.scores[b.index(x, y)]
			}
		}
	}
	return grid
}

// String draws the board as a skewed grid, each row shifted right by half a cell.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		sb.WriteString(strings.Repeat(" ", y))
		for x := 0; x < b.width; x++ {
			switch b.cells[b.index(x, y)] {
			case Red:
				sb.WriteString("R ")
			case Blue:
				sb.WriteString("B ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
