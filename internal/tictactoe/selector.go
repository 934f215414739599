package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// MoveSelector picks the bot's next cell according to a difficulty.
type MoveSelector struct {
	rnd Randomizer
}

func NewMoveSelector(rnd Randomizer) *MoveSelector {
	return &MoveSelector{rnd: rnd}
}

// SelectMove returns the cell player should take on board, or false when no
// cell is left. The caller's board is never modified.
//
// Easy picks uniformly among empty cells, hard runs a full minimax search and
// medium flips a fair coin between the two on every call. Anything else is
// treated as hard.
func (that *MoveSelector) SelectMove(board entity.Board, player entity.Cell, difficulty entity.Difficulty) (int, bool) {
	switch difficulty {
	case entity.DifficultyEasy:
		return that.randomMove(board)
	case entity.DifficultyMedium:
		if that.rnd.IntN(2) == 0 {
			return that.bestMove(board, player)
		}
		return that.randomMove(board)
	default:
		return that.bestMove(board, player)
	}
}

func (that *MoveSelector) randomMove(board entity.Board) (int, bool) {
	available := board.EmptyCells()
	if len(available) == 0 {
		return NoMove, false
	}

	return available[that.rnd.IntN(len(available))], true
}

// bestMove searches on its own copy of the board.
func (that *MoveSelector) bestMove(board entity.Board, player entity.Cell) (int, bool) {
	result := Search(&board, player)
	if result.Index == NoMove {
		return NoMove, false
	}

	return result.Index, true
}
