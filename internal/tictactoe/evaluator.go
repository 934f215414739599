package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// Evaluate reports whether the board is won, drawn or still in progress.
// Lines are checked in entity.WinLines order and the first completed one wins.
func Evaluate(board entity.Board) entity.Outcome {
	for _, line := range entity.WinLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a.IsPlayer() && a == b && b == c {
			return entity.Outcome{Status: entity.Win, Winner: a}
		}
	}

	// the game will continue until all the squares are full
	if !board.IsFull() {
		return entity.Outcome{Status: entity.InProgress}
	}

	return entity.Outcome{Status: entity.Draw}
}
