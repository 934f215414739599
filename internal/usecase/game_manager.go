package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, update func(game *entity.Game) error) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type historyRepo interface {
	Append(ctx context.Context, playerID string, entry entity.HistoryEntry) error
	GetByPlayerID(ctx context.Context, playerID string) (*entity.History, error)
}

type moveSelector interface {
	SelectMove(board entity.Board, player entity.Cell, difficulty entity.Difficulty) (int, bool)
}

type GameManager struct {
	logger *slog.Logger

	gameRepo    gameRepo
	historyRepo historyRepo
	bot         moveSelector

	thinkDelay        time.Duration
	defaultDifficulty entity.Difficulty

	now   func() time.Time
	newID func() string
}

type Option func(*GameManager)

// WithThinkDelay makes the bot wait before answering, like a human opponent would.
func WithThinkDelay(delay time.Duration) Option {
	return func(that *GameManager) {
		that.thinkDelay = delay
	}
}

func WithDefaultDifficulty(difficulty entity.Difficulty) Option {
	return func(that *GameManager) {
		that.defaultDifficulty = difficulty
	}
}

func WithClock(now func() time.Time) Option {
	return func(that *GameManager) {
		that.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(that *GameManager) {
		that.newID = newID
	}
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, historyRepo historyRepo, bot moveSelector, opts ...Option) *GameManager {
	manager := &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:    gameRepo,
		historyRepo: historyRepo,
		bot:         bot,

		defaultDifficulty: entity.DifficultyHard,

		now:   time.Now,
		newID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// StartGame creates a game for playerID. An empty playerID gets a fresh one,
// an empty difficulty falls back to the default and an empty mark means X.
// When the bot holds X it opens the game right away.
func (that *GameManager) StartGame(ctx context.Context, playerID string, difficulty entity.Difficulty, playerMark entity.Cell) (*entity.Game, error) {
	if playerID == "" {
		playerID = that.newID()
	}

	if difficulty == "" {
		difficulty = that.defaultDifficulty
	}

	if err := difficulty.Validate(); err != nil {
		return nil, err
	}

	if playerMark == entity.EmptyCell {
		playerMark = entity.PlayerX
	}

	if !playerMark.IsPlayer() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, playerMark)
	}

	game := entity.NewGame(that.newID(), playerID, difficulty, playerMark)

	if game.IsBotTurn() {
		if err := that.botTurn(ctx, game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game started", "gameID", game.ID, "playerID", playerID, "difficulty", difficulty)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn applies the player's move and, if the game goes on, the bot's reply.
// Both moves are committed together; a concurrent change to the same game
// makes the call fail with apperror.ErrGameConflict. A game that finishes is
// written to the player's history by the one call that finished it.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	game, err := that.gameRepo.Update(ctx, gameID, func(game *entity.Game) error {
		if err := tictactoe.MakeTurn(game, game.PlayerMark, cell); err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		if game.IsBotTurn() {
			if err := that.botTurn(ctx, game); err != nil {
				return fmt.Errorf("bot failed to make turn: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if game.IsFinished() {
		if err = that.recordResult(ctx, game); err != nil {
			return nil, err
		}

		log.Info("game finished", "result", game.Result())
	}

	return game, nil
}

func (that *GameManager) ChangeDifficulty(ctx context.Context, gameID string, difficulty entity.Difficulty) (*entity.Game, error) {
	if err := difficulty.Validate(); err != nil {
		return nil, err
	}

	game, err := that.gameRepo.Update(ctx, gameID, func(game *entity.Game) error {
		if err := game.ConfirmOngoingState(); err != nil {
			return fmt.Errorf("failed to change difficulty: %w", err)
		}

		game.Difficulty = difficulty

		return nil
	})
	if err != nil {
		return nil, err
	}

	return game, nil
}

// ResetGame drops the game and starts a fresh one for the same player with
// the same difficulty and mark.
func (that *GameManager) ResetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = that.DeleteGame(ctx, gameID); err != nil {
		return nil, err
	}

	return that.StartGame(ctx, game.PlayerID, game.Difficulty, game.PlayerMark)
}

func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", gameID)

	return nil
}

// Suggestion is the bot's answer for a board that is not stored anywhere.
type Suggestion struct {
	Cell    int            `json:"cell"`
	Player  entity.Cell    `json:"player"`
	Board   entity.Board   `json:"board"`
	Outcome entity.Outcome `json:"-"`
}

// SuggestMove picks a move for a caller-supplied board. An empty player is
// inferred from the mark counts and an empty difficulty uses the default.
// The returned board has the move applied.
func (that *GameManager) SuggestMove(board entity.Board, player entity.Cell, difficulty entity.Difficulty) (*Suggestion, error) {
	if difficulty == "" {
		difficulty = that.defaultDifficulty
	}

	if err := difficulty.Validate(); err != nil {
		return nil, err
	}

	if tictactoe.Evaluate(board).IsTerminal() {
		return nil, apperror.ErrGameFinished
	}

	turn, err := board.NextTurn()
	if err != nil {
		return nil, err
	}

	switch {
	case player == entity.EmptyCell:
		player = turn
	case !player.IsPlayer():
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, player)
	case player != turn:
		return nil, apperror.ErrNotYourTurn
	}

	cell, ok := that.bot.SelectMove(board, player, difficulty)
	if !ok {
		return nil, apperror.ErrNoLegalMove
	}

	board[cell] = player

	return &Suggestion{
		Cell:    cell,
		Player:  player,
		Board:   board,
		Outcome: tictactoe.Evaluate(board),
	}, nil
}

func (that *GameManager) History(ctx context.Context, playerID string) (*entity.History, error) {
	history, err := that.historyRepo.GetByPlayerID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	return history, nil
}

func (that *GameManager) botTurn(ctx context.Context, game *entity.Game) error {
	if err := that.think(ctx); err != nil {
		return err
	}

	cell, ok := that.bot.SelectMove(game.Board, game.BotMark, game.Difficulty)
	if !ok {
		return apperror.ErrNoLegalMove
	}

	if err := tictactoe.MakeTurn(game, game.BotMark, cell); err != nil {
		return fmt.Errorf("bot picked cell %d: %w", cell, err)
	}

	that.logger.Debug("bot moved", "gameID", game.ID, "cell", cell, "difficulty", game.Difficulty, "board", game.Board.String())

	return nil
}

func (that *GameManager) think(ctx context.Context) error {
	if that.thinkDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(that.thinkDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("bot interrupted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

func (that *GameManager) recordResult(ctx context.Context, game *entity.Game) error {
	entry := entity.HistoryEntry{
		GameID:     game.ID,
		Result:     game.Result(),
		Difficulty: game.Difficulty,
		FinishedAt: that.now().UTC(),
	}

	if err := that.historyRepo.Append(ctx, game.PlayerID, entry); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	return nil
}
