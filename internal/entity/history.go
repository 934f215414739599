package entity

import (
	"errors"
	"time"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

type GameResult string

const (
	ResultPlayerWon   GameResult = "player_won"
	ResultComputerWon GameResult = "computer_won"
	ResultDraw        GameResult = "draw"
)

type HistoryEntry struct {
	GameID     string     `json:"game_id"`
	Result     GameResult `json:"result"`
	Difficulty Difficulty `json:"difficulty"`
	FinishedAt time.Time  `json:"finished_at"`
}

// Score is the running tally of finished games for a player.
type Score struct {
	Player   int64 `json:"player"`
	Computer int64 `json:"computer"`
	Draws    int64 `json:"draws"`
}

type History struct {
	Entries []HistoryEntry `json:"entries"`
	Score   Score          `json:"score"`
}
