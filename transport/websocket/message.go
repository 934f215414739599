package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	actionGameNew        = "game:new"
	actionGameGet        = "game:get"
	actionGameTurn       = "game:turn"
	actionGameDifficulty = "game:difficulty"
	actionGameReset      = "game:reset"
	actionMoveSuggest    = "move:suggest"
	actionHistoryGet     = "history:get"
	actionError          = "error"
)

var errBadPayload = errors.New("invalid payload")

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	PlayerID   string   `json:"player_id,omitempty"`
	GameID     string   `json:"game_id,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
	Mark       string   `json:"mark,omitempty"`
	Cell       *int     `json:"cell,omitempty"`
	Board      []string `json:"board,omitempty"`
}

// Move is the reply to move:suggest.
type Move struct {
	Cell   int          `json:"cell"`
	Player entity.Cell  `json:"player"`
	Board  entity.Board `json:"board"`
	Status string       `json:"status"`
	Winner entity.Cell  `json:"winner,omitempty"`
}

type ResponsePayload struct {
	Game    *entity.Game    `json:"game,omitempty"`
	History *entity.History `json:"history,omitempty"`
	Move    *Move           `json:"move,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func decodePayload(raw json.RawMessage) (*Payload, error) {
	payload := &Payload{}
	if len(raw) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(raw, payload); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadPayload, err)
	}

	return payload, nil
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload *ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err = conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

func (that *Server) sendError(conn *websocket.Conn, action, reason string) error {
	return that.sendMessage(conn, action, &ResponsePayload{Error: reason})
}

// clientMessage hides internal failures and keeps domain errors readable.
func clientMessage(err error) string {
	if errors.Is(err, errBadPayload) {
		return err.Error()
	}

	known := []error{
		apperror.ErrGameNotFound,
		apperror.ErrGameConflict,
		apperror.ErrGameFinished,
		apperror.ErrNotYourTurn,
		apperror.ErrCellOccupied,
		apperror.ErrInvalidCell,
		apperror.ErrInvalidMark,
		apperror.ErrUnknownDifficulty,
		apperror.ErrInvalidBoard,
		apperror.ErrNoLegalMove,
	}

	for _, target := range known {
		if errors.Is(err, target) {
			return target.Error()
		}
	}

	return "internal error"
}
