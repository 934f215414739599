package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Cell is the content of a single board square. The same type is used for
// player marks.
type Cell string

const (
	EmptyCell Cell = ""
	PlayerX   Cell = "X"
	PlayerO   Cell = "O"

	// PlayerTie is stored as the winner of a finished game that ended in a draw.
	PlayerTie Cell = "-"
)

const (
	BoardSide = 3
	BoardSize = BoardSide * BoardSide
)

// Line is an ordered triple of cell indices that wins when held by one player.
type Line [3]int

// WinLines is the fixed set of winning lines: rows, then columns, then diagonals.
var WinLines = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a 3x3 grid stored row-major.
type Board [BoardSize]Cell

// IsPlayer reports whether the cell is one of the two player marks.
func (that Cell) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the other player's mark. Non-player cells are returned as is.
func (that Cell) Opponent() Cell {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return that
	}
}

func ParseMark(raw string) (Cell, error) {
	switch mark := Cell(strings.ToUpper(strings.TrimSpace(raw))); mark {
	case PlayerX, PlayerO:
		return mark, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, raw)
	}
}

// ParseBoard builds a board from nine textual cells. Empty cells may be
// written as "", "_", "-" or "null".
func ParseBoard(cells []string) (Board, error) {
	var board Board

	if len(cells) != BoardSize {
		return board, fmt.Errorf("%w: expected %d cells, got %d", apperror.ErrInvalidBoard, BoardSize, len(cells))
	}

	for i, raw := range cells {
		switch strings.TrimSpace(raw) {
		case "", "_", "-", "null":
			board[i] = EmptyCell
		default:
			mark, err := ParseMark(raw)
			if err != nil {
				return board, fmt.Errorf("cell %d: %w", i, err)
			}
			board[i] = mark
		}
	}

	return board, nil
}

// Index converts a (row, col) pair into a flat cell index.
func Index(row, col int) int {
	return row*BoardSide + col
}

// IsValidIndex reports whether idx addresses a cell of the board.
func IsValidIndex(idx int) bool {
	return idx >= 0 && idx < BoardSize
}

func (that Board) At(row, col int) Cell {
	return that[Index(row, col)]
}

// EmptyCells returns the indices of all empty cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that Board) Count(mark Cell) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}

	return count
}

// NextTurn infers whose move it is from the mark counts. X always opens, so
// X may be at most one mark ahead of O.
func (that Board) NextTurn() (Cell, error) {
	switch that.Count(PlayerX) - that.Count(PlayerO) {
	case 0:
		return PlayerX, nil
	case 1:
		return PlayerO, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %d X against %d O", apperror.ErrInvalidBoard, that.Count(PlayerX), that.Count(PlayerO))
	}
}

// String renders the board as three rows, using "." for empty cells.
func (that Board) String() string {
	var sb strings.Builder

	for row := range BoardSide {
		if row > 0 {
			sb.WriteByte('\n')
		}

		for col := range BoardSide {
			cell := that.At(row, col)
			if cell == EmptyCell {
				sb.WriteByte('.')
				continue
			}

			sb.WriteString(string(cell))
		}
	}

	return sb.String()
}
