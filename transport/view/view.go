// Package view renders sessions into the JSON shape read by the browser presentations.
package view

import (
	"errors"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/tictactoe"
)

// SessionCookie names the cookie holding the session id on both transports.
const SessionCookie = "user_session"

type Session struct {
	ID          string           `json:"id"`
	Board       []string         `json:"board"`
	Turn        string           `json:"turn"`
	Status      string           `json:"status"`
	Winner      string           `json:"winner,omitempty"`
	WinningLine []int            `json:"winning_line,omitempty"`
	Round       int              `json:"round"`
	History     []entity.Outcome `json:"history"`
	Tally       entity.Tally     `json:"tally"`
	RenderMode  string           `json:"render_mode"`
	Rejected    string           `json:"rejected,omitempty"`
}

func FromSession(session *entity.Session) *Session {
	result := &Session{
		ID:         session.ID,
		Board:      session.Game.Board.Strings(),
		Turn:       string(session.Game.Turn),
		Status:     session.Game.Status,
		Winner:     string(session.Game.Winner),
		Round:      session.Game.Round,
		History:    session.History.Outcomes,
		Tally:      tictactoe.Tally(session.History),
		RenderMode: string(session.RenderMode),
	}

	if session.Game.WinningLine != nil {
		result.WinningLine = session.Game.WinningLine[:]
	}

	if result.History == nil {
		result.History = []entity.Outcome{}
	}

	return result
}

// Rejection returns the user-facing reason of a rejected move and true, or false for other errors.
func Rejection(err error) (string, bool) {
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		return "game is already finished", true
	case errors.Is(err, apperror.ErrCellOccupied):
		return "cell is already occupied", true
	case errors.Is(err, apperror.ErrInvalidCell):
		return "invalid cell index", true
	case errors.Is(err, apperror.ErrInvalidMove):
		return "invalid move", true
	default:
		return "", false
	}
}
