package entity

// History is the session-scoped log of finished games.
type History struct {
	Outcomes []Outcome `json:"outcomes"`
	// RecordedRound is the last game round appended to Outcomes, 0 if none.
	RecordedRound int `json:"recorded_round"`
}

// Tally holds per-outcome counters of a history.
type Tally struct {
	X    int `json:"x"`
	O    int `json:"o"`
	Draw int `json:"draw"`
}
