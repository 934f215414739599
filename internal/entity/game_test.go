package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// When: a new game is created for a player who plays O
	game := NewGame("123", "p1", DifficultyMedium, PlayerO)

	// Then: the board is empty, X moves first and the bot plays X
	expectedGame := &Game{
		ID:         "123",
		PlayerID:   "p1",
		Board:      Board{},
		Turn:       PlayerX,
		Winner:     EmptyCell,
		Status:     StatusOngoing,
		Difficulty: DifficultyMedium,
		PlayerMark: PlayerO,
		BotMark:    PlayerX,
		Moves:      []int{},
	}

	require.Equal(t, expectedGame, game)
	assert.True(t, game.IsBotTurn())
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		// Given: a game with StatusFinished
		game := &Game{Status: StatusFinished}

		// Then: it should report finished and not ongoing
		assert.True(t, game.IsFinished())
		assert.False(t, game.IsOngoing())
	})

	t.Run("IsBotTurn is false once the game is finished", func(t *testing.T) {
		// Given: a finished game where the turn still points at the bot
		game := &Game{Status: StatusFinished, Turn: PlayerO, BotMark: PlayerO}

		// Then: the bot has nothing to play
		assert.False(t, game.IsBotTurn())
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		game := &Game{Status: "unknown"}

		err := game.ConfirmOngoingState()

		require.ErrorIs(t, err, ErrUnknownGameStatus)
		assert.Contains(t, err.Error(), "unknown")
	})
}

func TestGame_Result(t *testing.T) {
	tests := []struct {
		name     string
		game     *Game
		expected GameResult
	}{
		{
			name:     "ongoing game has no result",
			game:     &Game{Status: StatusOngoing, PlayerMark: PlayerX, BotMark: PlayerO},
			expected: "",
		},
		{
			name:     "player mark wins",
			game:     &Game{Status: StatusFinished, Winner: PlayerX, PlayerMark: PlayerX, BotMark: PlayerO},
			expected: ResultPlayerWon,
		},
		{
			name:     "bot mark wins",
			game:     &Game{Status: StatusFinished, Winner: PlayerX, PlayerMark: PlayerO, BotMark: PlayerX},
			expected: ResultComputerWon,
		},
		{
			name:     "tie",
			game:     &Game{Status: StatusFinished, Winner: PlayerTie, PlayerMark: PlayerX, BotMark: PlayerO},
			expected: ResultDraw,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.game.Result())
		})
	}
}
