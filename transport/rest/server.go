package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type sessionUseCase interface {
	Connect(ctx context.Context, sessionID string) (*entity.Session, error)
	ClickCell(ctx context.Context, sessionID string, cell int) (*entity.Session, error)
	Restart(ctx context.Context, sessionID string) (*entity.Session, error)
	ClearHistory(ctx context.Context, sessionID string) (*entity.Session, error)
	SetRenderMode(ctx context.Context, sessionID string, mode entity.RenderMode) (*entity.Session, error)
	Close(ctx context.Context, sessionID string) error
}

type Server struct {
	logger    *slog.Logger
	sessions  sessionUseCase
	cookieTTL time.Duration
}

// New - cookieTTL should match the session storage ttl so the cookie never outlives its session.
func New(logger *slog.Logger, sessions sessionUseCase, cookieTTL time.Duration) *Server {
	return &Server{
		logger:    logger.With("component", "rest"),
		sessions:  sessions,
		cookieTTL: cookieTTL,
	}
}

// Handler - returns the routes of the HTTP API.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", that.handlePing)

	mux.HandleFunc("GET /api/session", that.handleGetSession)
	mux.HandleFunc("DELETE /api/session", that.handleCloseSession)
	mux.HandleFunc("POST /api/cells/{index}", that.handleCellClick)
	mux.HandleFunc("POST /api/restart", that.handleRestart)
	mux.HandleFunc("POST /api/history/clear", that.handleClearHistory)
	mux.HandleFunc("PUT /api/mode", that.handleRenderMode)

	return mux
}

// Start - serves the HTTP API until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
