package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/repository"
	"github.com/rocketscienceinc/tictactoe-session/transport/view"
)

func decodePayload(message *Message) (RequestPayload, error) {
	var payload RequestPayload
	if len(message.Payload) == 0 {
		return payload, nil
	}

	err := json.Unmarshal(message.Payload, &payload)

	return payload, err
}

// handleConnect - returns the session bound to the connection cookie, starting a new one after a close.
func (that *Server) handleConnect(ctx context.Context, conn *connection, message *Message) error {
	session, err := that.sessions.Resume(ctx, conn.sessionID)

	return that.reply(conn, message.Action, session, err)
}

func (that *Server) handleTurn(ctx context.Context, conn *connection, message *Message) error {
	payload, err := decodePayload(message)
	if err != nil || payload.Cell == nil {
		return that.sendError(conn, message.Action, "cell is required")
	}

	session, err := that.sessions.ClickCell(ctx, conn.sessionID, *payload.Cell)

	return that.reply(conn, message.Action, session, err)
}

func (that *Server) handleRestart(ctx context.Context, conn *connection, message *Message) error {
	session, err := that.sessions.Restart(ctx, conn.sessionID)

	return that.reply(conn, message.Action, session, err)
}

func (that *Server) handleClearHistory(ctx context.Context, conn *connection, message *Message) error {
	session, err := that.sessions.ClearHistory(ctx, conn.sessionID)

	return that.reply(conn, message.Action, session, err)
}

func (that *Server) handleRenderMode(ctx context.Context, conn *connection, message *Message) error {
	payload, err := decodePayload(message)
	if err != nil {
		return that.sendError(conn, message.Action, "invalid payload")
	}

	session, err := that.sessions.SetRenderMode(ctx, conn.sessionID, payload.Mode)

	return that.reply(conn, message.Action, session, err)
}

func (that *Server) handleClose(ctx context.Context, conn *connection, message *Message) error {
	if err := that.sessions.Close(ctx, conn.sessionID); err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		return that.reply(conn, message.Action, nil, err)
	}

	return that.sendMessage(conn, message.Action, ResponsePayload{})
}

// reply - sends the session state, turning expected errors into a readable error field.
// Only transport failures are returned.
func (that *Server) reply(conn *connection, action string, session *entity.Session, err error) error {
	var payload ResponsePayload

	if session != nil {
		payload.Session = view.FromSession(session)
	}

	if reason, rejected := view.Rejection(err); rejected {
		if payload.Session != nil {
			payload.Session.Rejected = reason
		}
		payload.Error = reason

		return that.sendMessage(conn, action, payload)
	}

	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrInvalidInput):
		payload.Error = err.Error()
	case errors.Is(err, repository.ErrSessionNotFound):
		payload.Error = "session not found"
	default:
		that.logger.Error("failed to process message", "action", action, "session", conn.sessionID, "error", err)
		payload.Error = "internal error"
	}

	return that.sendMessage(conn, action, payload)
}

func (that *Server) sendError(conn *connection, action, reason string) error {
	return that.sendMessage(conn, action, ResponsePayload{Error: reason})
}
