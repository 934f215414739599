package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type HistoryRepository interface {
	Append(ctx context.Context, playerID string, entry entity.HistoryEntry) error
	GetByPlayerID(ctx context.Context, playerID string) (*entity.History, error)
}

type dbHistory struct {
	client *redis.Client
}

func NewHistoryRepository(client *redis.Client) HistoryRepository {
	return &dbHistory{
		client: client,
	}
}

func historyKey(playerID string) string {
	return "history:" + playerID
}

func scoreKey(playerID string) string {
	return "score:" + playerID
}

// Append pushes the entry and bumps the matching score counter in one transaction.
func (that *dbHistory) Append(ctx context.Context, playerID string, entry entity.HistoryEntry) error {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("could not marshal history entry: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, historyKey(playerID), entryJSON)
		pipe.HIncrBy(ctx, scoreKey(playerID), string(entry.Result), 1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}

	return nil
}

func (that *dbHistory) GetByPlayerID(ctx context.Context, playerID string) (*entity.History, error) {
	rawEntries, err := that.client.LRange(ctx, historyKey(playerID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	history := &entity.History{
		Entries: make([]entity.HistoryEntry, 0, len(rawEntries)),
	}

	for _, raw := range rawEntries {
		var entry entity.HistoryEntry
		if err = json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history entry: %w", err)
		}
		history.Entries = append(history.Entries, entry)
	}

	counters, err := that.client.HGetAll(ctx, scoreKey(playerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	for result, raw := range counters {
		count, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid score counter %s: %w", result, err)
		}

		switch entity.GameResult(result) {
		case entity.ResultPlayerWon:
			history.Score.Player = count
		case entity.ResultComputerWon:
			history.Score.Computer = count
		case entity.ResultDraw:
			history.Score.Draws = count
		}
	}

	return history, nil
}
