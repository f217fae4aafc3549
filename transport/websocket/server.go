package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/repository"
	"github.com/rocketscienceinc/tictactoe-session/transport/view"
)

const (
	shutdownTimeout = 5 * time.Second
	writeTimeout    = 10 * time.Second
)

type sessionUseCase interface {
	Get(ctx context.Context, sessionID string) (*entity.Session, error)
	Resume(ctx context.Context, sessionID string) (*entity.Session, error)
	ClickCell(ctx context.Context, sessionID string, cell int) (*entity.Session, error)
	Restart(ctx context.Context, sessionID string) (*entity.Session, error)
	ClearHistory(ctx context.Context, sessionID string) (*entity.Session, error)
	SetRenderMode(ctx context.Context, sessionID string, mode entity.RenderMode) (*entity.Session, error)
	Close(ctx context.Context, sessionID string) error
}

type handlerFunc func(ctx context.Context, conn *connection, message *Message) error

// connection is one client socket bound to the session it plays in.
type connection struct {
	ws        *websocket.Conn
	sessionID string
}

type Server struct {
	logger    *slog.Logger
	sessions  sessionUseCase
	upgrader  websocket.Upgrader
	cookieTTL time.Duration

	handlers map[string]handlerFunc
}

// New - cookieTTL should match the session storage ttl so the cookie never outlives its session.
func New(logger *slog.Logger, sessions sessionUseCase, cookieTTL time.Duration) *Server {
	server := &Server{
		logger:    logger.With("component", "websocket"),
		sessions:  sessions,
		cookieTTL: cookieTTL,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionTurn] = server.handleTurn
	server.handlers[actionRestart] = server.handleRestart
	server.handlers[actionClearHistory] = server.handleClearHistory
	server.handlers[actionRenderMode] = server.handleRenderMode
	server.handlers[actionClose] = server.handleClose

	return server
}

// Handler - returns the /ws route. Connections are closed when ctx is canceled.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(ctx),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
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

// upgradeToWebSocket - upgrades the connection and binds it to the session of the cookie.
// Nothing is stored until the upgrade succeeds.
func (that *Server) upgradeToWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	sessionID, known, err := that.cookieSession(ctx, r)
	if err != nil {
		log.Error("failed to get session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	header := http.Header{}
	if !known {
		sessionID = uuid.NewString()
		header.Add("Set-Cookie", view.NewSessionCookie(sessionID, that.cookieTTL).String())
	}

	ws, err := that.upgrader.Upgrade(w, r, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	if _, err = that.sessions.Resume(ctx, sessionID); err != nil {
		log.Error("failed to connect session", "session", sessionID, "error", err)
		_ = ws.Close()
		return
	}

	conn := &connection{ws: ws, sessionID: sessionID}

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-connCtx.Done()
		_ = ws.Close()
	}()

	log.Info("WebSocket connection established", "session", sessionID)

	if err = that.handleMessages(connCtx, conn); err != nil {
		log.Info("WebSocket connection closed", "session", conn.sessionID, "reason", err)
	}
}

// cookieSession - reports the id of the request cookie and whether its session is still stored.
func (that *Server) cookieSession(ctx context.Context, r *http.Request) (string, bool, error) {
	cookie, err := r.Cookie(view.SessionCookie)
	if err != nil || cookie.Value == "" {
		return "", false, nil
	}

	_, err = that.sessions.Get(ctx, cookie.Value)
	switch {
	case err == nil:
		return cookie.Value, true, nil
	case errors.Is(err, repository.ErrSessionNotFound):
		return "", false, nil
	default:
		return "", false, err
	}
}

// handleMessages - processes messages from the client until the connection fails.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, body, err := conn.ws.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(body, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			continue
		}

		if err = handler(ctx, conn, &message); err != nil {
			return fmt.Errorf("failed to process %s: %w", message.Action, err)
		}
	}
}

func (that *Server) sendMessage(conn *connection, action string, payload ResponsePayload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = conn.ws.WriteJSON(Message{Action: action, Payload: payloadBytes}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
