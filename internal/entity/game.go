package entity

const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusDraw       = "draw"
)

const (
	OutcomeX    Outcome = "X"
	OutcomeO    Outcome = "O"
	OutcomeDraw Outcome = "Draw"
)

// Outcome is the recorded result of one completed game.
type Outcome string

// Game is the state of one game instance. Round identifies the instance and changes on every reset.
type Game struct {
	Board       Board  `json:"board"`
	Turn        Mark   `json:"turn"`
	Status      string `json:"status"`
	Winner      Mark   `json:"winner,omitempty"`
	WinningLine *Line  `json:"winning_line,omitempty"`
	Round       int    `json:"round"`
}

func NewGame() *Game {
	return &Game{
		Turn:   PlayerX,
		Status: StatusInProgress,
		Round:  1,
	}
}

func (that *Game) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that *Game) IsWon() bool {
	return that.Status == StatusWon
}

func (that *Game) IsDraw() bool {
	return that.Status == StatusDraw
}

// IsTerminal reports whether no further moves are accepted.
func (that *Game) IsTerminal() bool {
	return that.IsWon() || that.IsDraw()
}

// Outcome returns the outcome of a terminal game.
func (that *Game) Outcome() (Outcome, bool) {
	switch {
	case that.IsWon():
		return Outcome(that.Winner), true
	case that.IsDraw():
		return OutcomeDraw, true
	default:
		return "", false
	}
}
