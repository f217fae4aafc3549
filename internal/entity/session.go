package entity

import "time"

const (
	RenderFlat    RenderMode = "flat"
	RenderSpatial RenderMode = "spatial"
)

// RenderMode selects how the presentation draws the board. The game core ignores it.
type RenderMode string

func (that RenderMode) IsValid() bool {
	return that == RenderFlat || that == RenderSpatial
}

// Session owns the game and the outcome history of one browser session.
type Session struct {
	ID         string     `json:"id"`
	Game       *Game      `json:"game"`
	History    *History   `json:"history"`
	RenderMode RenderMode `json:"render_mode"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:         id,
		Game:       NewGame(),
		History:    &History{Outcomes: []Outcome{}},
		RenderMode: RenderSpatial,
		UpdatedAt:  time.Now().UTC(),
	}
}
