package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameNotFound      = errors.New("game not found")
	ErrGameConflict      = errors.New("game was changed by another request")
	ErrInvalidBoard      = errors.New("invalid board")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrInvalidMark       = errors.New("invalid player mark")
	ErrNoLegalMove       = errors.New("no legal move left")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)
