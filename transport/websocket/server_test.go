package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGameManager struct {
	mock.Mock
}

func (that *mockGameManager) StartGame(ctx context.Context, playerID string, difficulty entity.Difficulty, playerMark entity.Cell) (*entity.Game, error) {
	args := that.Called(ctx, playerID, difficulty, playerMark)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	args := that.Called(ctx, gameID)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameManager) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	args := that.Called(ctx, gameID, cell)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameManager) ChangeDifficulty(ctx context.Context, gameID string, difficulty entity.Difficulty) (*entity.Game, error) {
	args := that.Called(ctx, gameID, difficulty)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameManager) ResetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	args := that.Called(ctx, gameID)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameManager) SuggestMove(board entity.Board, player entity.Cell, difficulty entity.Difficulty) (*usecase.Suggestion, error) {
	args := that.Called(board, player, difficulty)
	suggestion, _ := args.Get(0).(*usecase.Suggestion)
	return suggestion, args.Error(1)
}

func (that *mockGameManager) History(ctx context.Context, playerID string) (*entity.History, error) {
	args := that.Called(ctx, playerID)
	history, _ := args.Get(0).(*entity.History)
	return history, args.Error(1)
}

func dial(t *testing.T) (*mockGameManager, *websocket.Conn) {
	t.Helper()

	manager := &mockGameManager{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	srv := httptest.NewServer(New(logger, manager))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = resp.Body.Close()
		_ = conn.Close()
		manager.AssertExpectations(t)
	})

	return manager, conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, request string) (string, ResponsePayload) {
	t.Helper()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(request)))

	var message Message
	require.NoError(t, conn.ReadJSON(&message))

	var payload ResponsePayload
	require.NoError(t, json.Unmarshal(message.Payload, &payload))

	return message.Action, payload
}

func TestServer_GameFlow(t *testing.T) {
	manager, conn := dial(t)

	game := entity.NewGame("g1", "p1", entity.DifficultyHard, entity.PlayerX)
	manager.On("StartGame", mock.Anything, "p1", entity.DifficultyHard, entity.PlayerX).Return(game, nil).Once()

	// When: a new game is requested
	action, payload := roundTrip(t, conn, `{"action":"game:new","payload":{"player_id":"p1","difficulty":"hard","mark":"X"}}`)

	// Then: the game comes back under the same action
	assert.Equal(t, actionGameNew, action)
	require.NotNil(t, payload.Game)
	assert.Equal(t, "g1", payload.Game.ID)
	assert.Empty(t, payload.Error)

	played := entity.NewGame("g1", "p1", entity.DifficultyHard, entity.PlayerX)
	played.Board[4] = entity.PlayerX
	played.Board[0] = entity.PlayerO
	manager.On("MakeTurn", mock.Anything, "g1", 4).Return(played, nil).Once()

	action, payload = roundTrip(t, conn, `{"action":"game:turn","payload":{"game_id":"g1","cell":4}}`)

	assert.Equal(t, actionGameTurn, action)
	require.NotNil(t, payload.Game)
	assert.Equal(t, entity.PlayerO, payload.Game.Board[0])

	manager.On("ChangeDifficulty", mock.Anything, "g1", entity.DifficultyEasy).Return(played, nil).Once()

	action, _ = roundTrip(t, conn, `{"action":"game:difficulty","payload":{"game_id":"g1","difficulty":"easy"}}`)
	assert.Equal(t, actionGameDifficulty, action)

	manager.On("GetGame", mock.Anything, "g1").Return(played, nil).Once()

	action, payload = roundTrip(t, conn, `{"action":"game:get","payload":{"game_id":"g1"}}`)
	assert.Equal(t, actionGameGet, action)
	assert.Equal(t, played.Board, payload.Game.Board)

	history := &entity.History{Score: entity.Score{Player: 2}}
	manager.On("History", mock.Anything, "p1").Return(history, nil).Once()

	action, payload = roundTrip(t, conn, `{"action":"history:get","payload":{"player_id":"p1"}}`)
	assert.Equal(t, actionHistoryGet, action)
	require.NotNil(t, payload.History)
	assert.Equal(t, int64(2), payload.History.Score.Player)

	fresh := entity.NewGame("g2", "p1", entity.DifficultyEasy, entity.PlayerX)
	manager.On("ResetGame", mock.Anything, "g1").Return(fresh, nil).Once()

	action, payload = roundTrip(t, conn, `{"action":"game:reset","payload":{"game_id":"g1"}}`)
	assert.Equal(t, actionGameReset, action)
	require.NotNil(t, payload.Game)
	assert.Equal(t, "g2", payload.Game.ID)
}

func TestServer_SuggestMove(t *testing.T) {
	manager, conn := dial(t)

	// Given: an opening board where X took the centre
	board := entity.Board{4: entity.PlayerX}
	after := board
	after[0] = entity.PlayerO

	manager.On("SuggestMove", board, entity.PlayerO, entity.DifficultyHard).Return(&usecase.Suggestion{
		Cell:    0,
		Player:  entity.PlayerO,
		Board:   after,
		Outcome: entity.Outcome{Status: entity.InProgress},
	}, nil).Once()

	// When: asking for O's reply
	action, payload := roundTrip(t, conn, `{"action":"move:suggest","payload":{"board":["","","","","X","","","",""],"mark":"O","difficulty":"hard"}}`)

	// Then: the move comes back without touching any stored game
	assert.Equal(t, actionMoveSuggest, action)
	require.NotNil(t, payload.Move)
	assert.Equal(t, 0, payload.Move.Cell)
	assert.Equal(t, "in_progress", payload.Move.Status)
	assert.Equal(t, after, payload.Move.Board)
}

func TestServer_Errors(t *testing.T) {
	tests := []struct {
		name     string
		request  string
		setup    func(m *mockGameManager)
		action   string
		expected string
	}{
		{
			name:     "malformed json",
			request:  `{"action":`,
			action:   actionError,
			expected: "malformed message",
		},
		{
			name:     "unknown action",
			request:  `{"action":"game:leave"}`,
			action:   "game:leave",
			expected: "unknown action",
		},
		{
			name:     "missing cell",
			request:  `{"action":"game:turn","payload":{"game_id":"g1"}}`,
			action:   actionGameTurn,
			expected: "invalid payload: cell is required",
		},
		{
			name:     "unknown difficulty",
			request:  `{"action":"game:new","payload":{"difficulty":"impossible"}}`,
			action:   actionGameNew,
			expected: apperror.ErrUnknownDifficulty.Error(),
		},
		{
			name:     "short board",
			request:  `{"action":"move:suggest","payload":{"board":["X"]}}`,
			action:   actionMoveSuggest,
			expected: apperror.ErrInvalidBoard.Error(),
		},
		{
			name:    "concurrent turn",
			request: `{"action":"game:turn","payload":{"game_id":"g1","cell":4}}`,
			setup: func(m *mockGameManager) {
				m.On("MakeTurn", mock.Anything, "g1", 4).Return(nil, apperror.ErrGameConflict).Once()
			},
			action:   actionGameTurn,
			expected: apperror.ErrGameConflict.Error(),
		},
		{
			name:    "occupied cell",
			request: `{"action":"game:turn","payload":{"game_id":"g1","cell":4}}`,
			setup: func(m *mockGameManager) {
				m.On("MakeTurn", mock.Anything, "g1", 4).Return(nil, apperror.ErrCellOccupied).Once()
			},
			action:   actionGameTurn,
			expected: apperror.ErrCellOccupied.Error(),
		},
		{
			name:    "internal failure is hidden",
			request: `{"action":"game:get","payload":{"game_id":"g1"}}`,
			setup: func(m *mockGameManager) {
				m.On("GetGame", mock.Anything, "g1").Return(nil, errors.New("dial tcp 10.0.0.1:6379")).Once()
			},
			action:   actionGameGet,
			expected: "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, conn := dial(t)
			if tt.setup != nil {
				tt.setup(manager)
			}

			action, payload := roundTrip(t, conn, tt.request)

			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.expected, payload.Error)
			assert.Nil(t, payload.Game)
		})
	}
}

func TestServer_KeepsConnectionAfterError(t *testing.T) {
	manager, conn := dial(t)

	_, payload := roundTrip(t, conn, `not json`)
	require.Equal(t, "malformed message", payload.Error)

	game := entity.NewGame("g1", "p1", entity.DifficultyEasy, entity.PlayerX)
	manager.On("GetGame", mock.Anything, "g1").Return(game, nil).Once()

	_, payload = roundTrip(t, conn, `{"action":"game:get","payload":{"game_id":"g1"}}`)
	require.NotNil(t, payload.Game)
	assert.Equal(t, entity.DifficultyEasy, payload.Game.Difficulty)
}
