package tictactoe

import "github.com/rocketscienceinc/tictactoe-session/internal/entity"

// RecordIfTerminal appends the outcome of a finished game once per round.
// It returns true when an entry was appended.
func RecordIfTerminal(history *entity.History, gameInstance *entity.Game) bool {
	outcome, ok := gameInstance.Outcome()
	if !ok {
		return false
	}

	if history.RecordedRound == gameInstance.Round {
		return false
	}

	history.Outcomes = append(history.Outcomes, outcome)
	history.RecordedRound = gameInstance.Round

	return true
}

// ClearHistory empties the log. The recorded round is kept so the current game is not logged twice.
func ClearHistory(history *entity.History) {
	history.Outcomes = []entity.Outcome{}
}

func Tally(history *entity.History) entity.Tally {
	var tally entity.Tally
	for _, outcome := range history.Outcomes {
		switch outcome {
		case entity.OutcomeX:
			tally.X++
		case entity.OutcomeO:
			tally.O++
		case entity.OutcomeDraw:
			tally.Draw++
		}
	}

	return tally
}
