package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type gameManager interface {
	StartGame(ctx context.Context, playerID string, difficulty entity.Difficulty, playerMark entity.Cell) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	ChangeDifficulty(ctx context.Context, gameID string, difficulty entity.Difficulty) (*entity.Game, error)
	ResetGame(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
	SuggestMove(board entity.Board, player entity.Cell, difficulty entity.Difficulty) (*usecase.Suggestion, error)
	History(ctx context.Context, playerID string) (*entity.History, error)
}

// NewRouter wires the game routes. Callers may mount more handlers on the
// returned router before serving it.
func NewRouter(logger *slog.Logger, manager gameManager) chi.Router {
	h := newHandlers(logger, manager)

	r := chi.NewRouter()
	r.Get("/ping", pingHandler)

	r.Post("/games", h.startGame)
	r.Get("/games/{id}", h.getGame)
	r.Delete("/games/{id}", h.deleteGame)
	r.Post("/games/{id}/turn", h.makeTurn)
	r.Put("/games/{id}/difficulty", h.changeDifficulty)
	r.Post("/games/{id}/reset", h.resetGame)

	r.Post("/moves", h.suggestMove)

	r.Get("/players/{id}/history", h.history)

	return r
}

// Start serves handler until ctx is cancelled, then shuts the server down.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
