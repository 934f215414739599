package tictactoe

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// NoMove is returned in place of a cell index when there is nothing to play.
const NoMove = -1

// winScore is the value of a win found right after the root placement.
// Each extra ply costs one point, so faster wins and slower losses rank higher.
const winScore = 10

type SearchResult struct {
	Index int
	Score int
}

// Search runs an exhaustive minimax over the remaining game tree with
// maximizer to move and returns the best cell for it. Ties go to the lowest
// index. The board is used as scratch space and is restored before returning.
func Search(board *entity.Board, maximizer entity.Cell) SearchResult {
	if !maximizer.IsPlayer() || board.IsFull() {
		return SearchResult{Index: NoMove}
	}

	s := searcher{board: board, maximizer: maximizer}

	if outcome := Evaluate(*board); outcome.IsTerminal() {
		return SearchResult{Index: NoMove, Score: s.score(outcome, 0)}
	}

	best := SearchResult{Index: NoMove, Score: math.MinInt}
	for idx, cell := range board {
		if cell != entity.EmptyCell {
			continue
		}

		score := s.play(idx, maximizer, func() int {
			return s.minimax(0, false)
		})

		if score > best.Score {
			best = SearchResult{Index: idx, Score: score}
		}
	}

	return best
}

type searcher struct {
	board     *entity.Board
	maximizer entity.Cell
}

// minimax scores the current board. depth is the number of plies played
// since the root placement.
func (that *searcher) minimax(depth int, maximizing bool) int {
	if outcome := Evaluate(*that.board); outcome.IsTerminal() {
		return that.score(outcome, depth)
	}

	mark := that.maximizer
	best := math.MinInt
	if !maximizing {
		mark = that.maximizer.Opponent()
		best = math.MaxInt
	}

	for idx, cell := range that.board {
		if cell != entity.EmptyCell {
			continue
		}

		score := that.play(idx, mark, func() int {
			return that.minimax(depth+1, !maximizing)
		})

		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}

// play puts mark on idx for the duration of next and always clears it afterwards.
func (that *searcher) play(idx int, mark entity.Cell, next func() int) int {
	that.board[idx] = mark
	defer func() {
		that.board[idx] = entity.EmptyCell
	}()

	return next()
}

func (that *searcher) score(outcome entity.Outcome, depth int) int {
	switch {
	case outcome.Status != entity.Win:
		return 0
	case outcome.Winner == that.maximizer:
		return winScore - depth
	default:
		return depth - winScore
	}
}
