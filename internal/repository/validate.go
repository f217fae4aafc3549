package repository

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/tictactoe"
)

// validateSession rejects decoded sessions whose game could not come from legal play.
func validateSession(session *entity.Session) error {
	if session.Game == nil || session.History == nil {
		return fmt.Errorf("%w: incomplete session", apperror.ErrInvalidInput)
	}

	if err := tictactoe.ValidateGame(session.Game); err != nil {
		return err
	}

	if !session.RenderMode.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownRenderMode, session.RenderMode)
	}

	return nil
}
