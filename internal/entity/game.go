package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

// Game is the full state of a single match between a player and the bot.
type Game struct {
	ID         string     `json:"id"`
	PlayerID   string     `json:"player_id"`
	Board      Board      `json:"board"`
	Turn       Cell       `json:"player_turn"`
	Winner     Cell       `json:"winner"`
	Status     string     `json:"status"`
	Difficulty Difficulty `json:"difficulty"`
	PlayerMark Cell       `json:"player_mark"`
	BotMark    Cell       `json:"bot_mark"`
	Moves      []int      `json:"moves"`
}

// NewGame returns an empty board with X to move. The bot takes the mark the
// player did not choose.
func NewGame(id, playerID string, difficulty Difficulty, playerMark Cell) *Game {
	return &Game{
		ID:         id,
		PlayerID:   playerID,
		Turn:       PlayerX,
		Status:     StatusOngoing,
		Difficulty: difficulty,
		PlayerMark: playerMark,
		BotMark:    playerMark.Opponent(),
		Moves:      []int{},
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsBotTurn() bool {
	return that.IsOngoing() && that.Turn == that.BotMark
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// Result describes a finished game from the player's point of view.
func (that *Game) Result() GameResult {
	switch {
	case !that.IsFinished():
		return ""
	case that.Winner == that.PlayerMark:
		return ResultPlayerWon
	case that.Winner == that.BotMark:
		return ResultComputerWon
	default:
		return ResultDraw
	}
}
