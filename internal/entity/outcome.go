package entity

type OutcomeStatus int

const (
	InProgress OutcomeStatus = iota
	Win
	Draw
)

func (that OutcomeStatus) String() string {
	switch that {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

// Outcome is the state of a board derived purely from its cells.
// Winner is set only when Status is Win.
type Outcome struct {
	Status OutcomeStatus
	Winner Cell
}

func (that Outcome) IsTerminal() bool {
	return that.Status != InProgress
}
