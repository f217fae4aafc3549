package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/repository"
	"github.com/rocketscienceinc/tictactoe-session/internal/tictactoe"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// SessionManager is the entry point of the presentation layer. Every event is handled
// as one load, mutate and save cycle, and cycles never overlap.
type SessionManager struct {
	logger *slog.Logger
	repo   sessionRepo

	mu sync.Mutex
}

func NewSessionManager(logger *slog.Logger, repo sessionRepo) *SessionManager {
	return &SessionManager{
		logger: logger.With("component", "session_manager"),
		repo:   repo,
	}
}

// Connect returns the session with the given id or starts a new one when the id is empty or unknown.
func (that *SessionManager) Connect(ctx context.Context, sessionID string) (*entity.Session, error) {
	log := that.logger.With("method", "Connect")

	that.mu.Lock()
	defer that.mu.Unlock()

	if sessionID != "" {
		session, err := that.repo.GetByID(ctx, sessionID)
		if err == nil {
			return session, nil
		}

		if !errors.Is(err, repository.ErrSessionNotFound) {
			return nil, fmt.Errorf("failed to get session: %w", err)
		}

		log.Debug("session not found, new one created", "session", sessionID)
	}

	return that.create(ctx, uuid.NewString())
}

// Resume returns the session with the given id and starts a new one under that id when it is missing.
// The id must come from the server, never from a client.
func (that *SessionManager) Resume(ctx context.Context, sessionID string) (*entity.Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: empty session id", apperror.ErrInvalidInput)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.repo.GetByID(ctx, sessionID)
	if err == nil {
		return session, nil
	}

	if !errors.Is(err, repository.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return that.create(ctx, sessionID)
}

// create saves a fresh session. Callers hold mu.
func (that *SessionManager) create(ctx context.Context, sessionID string) (*entity.Session, error) {
	session := entity.NewSession(sessionID)
	if err := that.repo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "session", session.ID)

	return session, nil
}

// Get returns the session without changing it.
func (that *SessionManager) Get(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := that.repo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// ClickCell applies a move for the player to act and records the outcome if the game ended.
// A rejected move returns the unchanged session together with an error wrapping apperror.ErrInvalidMove.
func (that *SessionManager) ClickCell(ctx context.Context, sessionID string, cell int) (*entity.Session, error) {
	log := that.logger.With("method", "ClickCell", "session", sessionID)

	var rejected error

	session, err := that.update(ctx, sessionID, func(session *entity.Session) bool {
		if rejected = tictactoe.ApplyMove(session.Game, cell); rejected != nil {
			return false
		}

		if tictactoe.RecordIfTerminal(session.History, session.Game) {
			outcome, _ := session.Game.Outcome()
			log.Info("game finished", "round", session.Game.Round, "outcome", outcome)
		}

		return true
	})
	if err != nil {
		return nil, err
	}

	if rejected != nil {
		log.Debug("move rejected", "cell", cell, "reason", rejected)
		return session, fmt.Errorf("failed to make move: %w", rejected)
	}

	return session, nil
}

// Restart starts a new game. The history is kept.
func (that *SessionManager) Restart(ctx context.Context, sessionID string) (*entity.Session, error) {
	return that.update(ctx, sessionID, func(session *entity.Session) bool {
		tictactoe.Reset(session.Game)
		return true
	})
}

// ClearHistory empties the outcome log. The game is kept.
func (that *SessionManager) ClearHistory(ctx context.Context, sessionID string) (*entity.Session, error) {
	return that.update(ctx, sessionID, func(session *entity.Session) bool {
		tictactoe.ClearHistory(session.History)
		return true
	})
}

// SetRenderMode stores the presentation's view mode.
func (that *SessionManager) SetRenderMode(ctx context.Context, sessionID string, mode entity.RenderMode) (*entity.Session, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownRenderMode, mode)
	}

	return that.update(ctx, sessionID, func(session *entity.Session) bool {
		if session.RenderMode == mode {
			return false
		}

		session.RenderMode = mode
		return true
	})
}

// Close drops the session from storage.
func (that *SessionManager) Close(ctx context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.repo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session closed", "session", sessionID)

	return nil
}

// update loads the session, applies mutate and saves it when mutate reports a change.
func (that *SessionManager) update(ctx context.Context, sessionID string, mutate func(*entity.Session) bool) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.repo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if !mutate(session) {
		return session, nil
	}

	session.UpdatedAt = time.Now().UTC()
	if err = that.repo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, nil
}
