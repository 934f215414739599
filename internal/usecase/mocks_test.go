package usecase

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/mock"
)

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

// Update hands the stored game to update, like the redis repository does
// inside its transaction. A configured error is returned before update runs.
func (that *mockGameRepo) Update(ctx context.Context, id string, update func(game *entity.Game) error) (*entity.Game, error) {
	args := that.Called(ctx, id)
	if err := args.Error(1); err != nil {
		return nil, err
	}

	game, _ := args.Get(0).(*entity.Game)
	if err := update(game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

type mockHistoryRepo struct {
	mock.Mock
}

func (that *mockHistoryRepo) Append(ctx context.Context, playerID string, entry entity.HistoryEntry) error {
	args := that.Called(ctx, playerID, entry)
	return args.Error(0)
}

func (that *mockHistoryRepo) GetByPlayerID(ctx context.Context, playerID string) (*entity.History, error) {
	args := that.Called(ctx, playerID)
	history, _ := args.Get(0).(*entity.History)
	return history, args.Error(1)
}

type mockSelector struct {
	mock.Mock
}

func (that *mockSelector) SelectMove(board entity.Board, player entity.Cell, difficulty entity.Difficulty) (int, bool) {
	args := that.Called(board, player, difficulty)
	return args.Int(0), args.Bool(1)
}
