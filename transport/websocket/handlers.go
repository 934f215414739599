package websocket

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func (that *Server) handleNewGame(ctx context.Context, payload *Payload) (*ResponsePayload, error) {
	var (
		difficulty entity.Difficulty
		mark       entity.Cell
		err        error
	)

	if payload.Difficulty != "" {
		if difficulty, err = entity.ParseDifficulty(payload.Difficulty); err != nil {
			return nil, err
		}
	}

	if payload.Mark != "" {
		if mark, err = entity.ParseMark(payload.Mark); err != nil {
			return nil, err
		}
	}

	game, err := that.manager.StartGame(ctx, payload.PlayerID, difficulty, mark)
	if err != nil {
		return nil, err
	}

	return &ResponsePayload{Game: game}, nil
}

func (that *Server) handleGetGame(ctx context.Context, payload *Payload) (*ResponsePayload, error) {
	if payload.GameID == "" {
		return nil, fmt.Errorf("%w: game_id is required", errBadPayload)
	}

	game, err := that.manager.GetGame(ctx, payload.GameID)
	if err != nil {
		return nil, err
	}

	return &ResponsePayload{Game: game}, nil
}

func (that *Server) handleGameTurn(ctx context.Context, payload *Payload) (*ResponsePayload, error) {
	if payload.GameID == "" {
		return nil, fmt.Errorf("%w: game_id is required", errBadPayload)
	}

	if payload.Cell == nil {
		return nil, fmt.Errorf("%w: cell is required", errBadPayload)
	}

	game, err := that.manager.MakeTurn(ctx, payload.GameID, *payload.Cell)
	if err != nil {
		return nil, err
	}

	that.logger.Debug("player made a turn", "gameID", game.ID, "status", game.Status)

	return &ResponsePayload{Game: game}, nil
}

func (that *Server) handleChangeDifficulty(ctx context.Context, payload *Payload) (*ResponsePayload, error) {
	if payload.GameID == "" {
		return nil, fmt.Errorf("%w: game_id is required", errBadPayload)
	}

	difficulty, err := entity.ParseDifficulty(payload.Difficulty)
	if err != nil {
		return nil, err
	}

	game, err := that.manager.ChangeDifficulty(ctx, payload.GameID, difficulty)
	if err != nil {
		return nil, err
	}

	return &ResponsePayload{Game: game}, nil
}

func (that *Server) handleResetGame(ctx context.Context, payload *Payload) (*ResponsePayload, error) {
	if payload.GameID == "" {
		return nil, fmt.Errorf("%w: game_id is required", errBadPayload)
	}

	game, err := that.manager.ResetGame(ctx, payload.GameID)
	if err != nil {
		return nil, err
	}

	return &ResponsePayload{Game: game}, nil
}

func (that *Server) handleSuggestMove(_ context.Context, payload *Payload) (*ResponsePayload, error) {
	board, err := entity.ParseBoard(payload.Board)
	if err != nil {
		return nil, err
	}

	var (
		player     entity.Cell
		difficulty entity.Difficulty
	)

	if payload.Mark != "" {
		if player, err = entity.ParseMark(payload.Mark); err != nil {
			return nil, err
		}
	}

	if payload.Difficulty != "" {
		if difficulty, err = entity.ParseDifficulty(payload.Difficulty); err != nil {
			return nil, err
		}
	}

	suggestion, err := that.manager.SuggestMove(board, player, difficulty)
	if err != nil {
		return nil, err
	}

	return &ResponsePayload{Move: &Move{
		Cell:   suggestion.Cell,
		Player: suggestion.Player,
		Board:  suggestion.Board,
		Status: suggestion.Outcome.Status.String(),
		Winner: suggestion.Outcome.Winner,
	}}, nil
}

func (that *Server) handleGetHistory(ctx context.Context, payload *Payload) (*ResponsePayload, error) {
	if payload.PlayerID == "" {
		return nil, fmt.Errorf("%w: player_id is required", errBadPayload)
	}

	history, err := that.manager.History(ctx, payload.PlayerID)
	if err != nil {
		return nil, err
	}

	return &ResponsePayload{History: history}, nil
}
