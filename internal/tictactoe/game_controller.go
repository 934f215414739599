package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// MakeTurn places player's mark on cell and advances the game state.
func MakeTurn(game *entity.Game, player entity.Cell, cell int) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := validateMove(game, player, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	game.Board[cell] = player
	game.Moves = append(game.Moves, cell)
	updateGameStatus(game, player)

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(game *entity.Game, player entity.Cell, cell int) error {
	if !entity.IsValidIndex(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if game.Turn != player {
		return apperror.ErrNotYourTurn
	}

	if game.Board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(game *entity.Game, player entity.Cell) {
	switch outcome := Evaluate(game.Board); outcome.Status {
	case entity.Win:
		game.Winner = outcome.Winner
		game.Status = entity.StatusFinished
		game.Turn = entity.EmptyCell
	case entity.Draw:
		game.Winner = entity.PlayerTie
		game.Status = entity.StatusFinished
		game.Turn = entity.EmptyCell
	default:
		game.Turn = player.Opponent()
	}
}
