package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var errBadRequest = errors.New("bad request")

type handlers struct {
	logger  *slog.Logger
	manager gameManager
}

func newHandlers(logger *slog.Logger, manager gameManager) *handlers {
	return &handlers{
		logger:  logger.With("component", "rest"),
		manager: manager,
	}
}

type startGameRequest struct {
	PlayerID   string `json:"player_id"`
	Difficulty string `json:"difficulty"`
	Mark       string `json:"mark"`
}

// turnRequest takes either a flat cell index or a row and column pair.
type turnRequest struct {
	Cell *int `json:"cell"`
	Row  *int `json:"row"`
	Col  *int `json:"col"`
}

func (that turnRequest) index() (int, error) {
	switch {
	case that.Cell != nil:
		return *that.Cell, nil
	case that.Row != nil && that.Col != nil:
		if *that.Row < 0 || *that.Row >= entity.BoardSide || *that.Col < 0 || *that.Col >= entity.BoardSide {
			return 0, fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidCell, *that.Row, *that.Col)
		}

		return entity.Index(*that.Row, *that.Col), nil
	default:
		return 0, fmt.Errorf("%w: cell or row and col are required", errBadRequest)
	}
}

type difficultyRequest struct {
	Difficulty string `json:"difficulty"`
}

type moveRequest struct {
	Board      []string `json:"board"`
	Player     string   `json:"player"`
	Difficulty string   `json:"difficulty"`
}

type moveResponse struct {
	Cell   int          `json:"cell"`
	Player entity.Cell  `json:"player"`
	Board  entity.Board `json:"board"`
	Status string       `json:"status"`
	Winner entity.Cell  `json:"winner,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) startGame(w http.ResponseWriter, r *http.Request) {
	var req startGameRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, "startGame", err)
		return
	}

	var (
		difficulty entity.Difficulty
		mark       entity.Cell
		err        error
	)

	if req.Difficulty != "" {
		if difficulty, err = entity.ParseDifficulty(req.Difficulty); err != nil {
			that.writeError(w, "startGame", err)
			return
		}
	}

	if req.Mark != "" {
		if mark, err = entity.ParseMark(req.Mark); err != nil {
			that.writeError(w, "startGame", err)
			return
		}
	}

	game, err := that.manager.StartGame(r.Context(), req.PlayerID, difficulty, mark)
	if err != nil {
		that.writeError(w, "startGame", err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.manager.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "getGame", err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, "makeTurn", err)
		return
	}

	cell, err := req.index()
	if err != nil {
		that.writeError(w, "makeTurn", err)
		return
	}

	game, err := that.manager.MakeTurn(r.Context(), chi.URLParam(r, "id"), cell)
	if err != nil {
		that.writeError(w, "makeTurn", err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) changeDifficulty(w http.ResponseWriter, r *http.Request) {
	var req difficultyRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, "changeDifficulty", err)
		return
	}

	difficulty, err := entity.ParseDifficulty(req.Difficulty)
	if err != nil {
		that.writeError(w, "changeDifficulty", err)
		return
	}

	game, err := that.manager.ChangeDifficulty(r.Context(), chi.URLParam(r, "id"), difficulty)
	if err != nil {
		that.writeError(w, "changeDifficulty", err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) resetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.manager.ResetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "resetGame", err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.manager.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "deleteGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// suggestMove answers for a board sent by the caller. Nothing is stored.
func (that *handlers) suggestMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, "suggestMove", err)
		return
	}

	board, err := entity.ParseBoard(req.Board)
	if err != nil {
		that.writeError(w, "suggestMove", err)
		return
	}

	var (
		player     entity.Cell
		difficulty entity.Difficulty
	)

	if req.Player != "" {
		if player, err = entity.ParseMark(req.Player); err != nil {
			that.writeError(w, "suggestMove", err)
			return
		}
	}

	if req.Difficulty != "" {
		if difficulty, err = entity.ParseDifficulty(req.Difficulty); err != nil {
			that.writeError(w, "suggestMove", err)
			return
		}
	}

	suggestion, err := that.manager.SuggestMove(board, player, difficulty)
	if err != nil {
		that.writeError(w, "suggestMove", err)
		return
	}

	writeJSON(w, http.StatusOK, moveResponse{
		Cell:   suggestion.Cell,
		Player: suggestion.Player,
		Board:  suggestion.Board,
		Status: suggestion.Outcome.Status.String(),
		Winner: suggestion.Outcome.Winner,
	})
}

func (that *handlers) history(w http.ResponseWriter, r *http.Request) {
	history, err := that.manager.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "history", err)
		return
	}

	writeJSON(w, http.StatusOK, history)
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	that.logger.Debug("request rejected", "method", method, "error", err)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameConflict),
		errors.Is(err, apperror.ErrNoLegalMove):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, apperror.ErrUnknownDifficulty),
		errors.Is(err, apperror.ErrInvalidBoard),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
