package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/transport/view"
)

type modeRequest struct {
	Mode entity.RenderMode `json:"mode"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := that.connect(w, r)
	if !ok {
		return
	}

	that.writeJSON(w, http.StatusOK, view.FromSession(session))
}

func (that *Server) handleCellClick(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleCellClick")

	cell, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cell index must be a number"})
		return
	}

	session, ok := that.connect(w, r)
	if !ok {
		return
	}

	updated, err := that.sessions.ClickCell(r.Context(), session.ID, cell)
	if reason, rejected := view.Rejection(err); rejected {
		response := view.FromSession(updated)
		response.Rejected = reason
		that.writeJSON(w, http.StatusOK, response)
		return
	}

	if err != nil {
		log.Error("failed to make move", "session", session.ID, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	that.writeJSON(w, http.StatusOK, view.FromSession(updated))
}

func (that *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	session, ok := that.connect(w, r)
	if !ok {
		return
	}

	updated, err := that.sessions.Restart(r.Context(), session.ID)
	that.respond(w, "handleRestart", updated, err)
}

func (that *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	session, ok := that.connect(w, r)
	if !ok {
		return
	}

	updated, err := that.sessions.ClearHistory(r.Context(), session.ID)
	that.respond(w, "handleClearHistory", updated, err)
}

func (that *Server) handleRenderMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	session, ok := that.connect(w, r)
	if !ok {
		return
	}

	updated, err := that.sessions.SetRenderMode(r.Context(), session.ID, req.Mode)
	that.respond(w, "handleRenderMode", updated, err)
}

func (that *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleCloseSession")

	cookie, err := r.Cookie(view.SessionCookie)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err = that.sessions.Close(r.Context(), cookie.Value); err != nil {
		log.Debug("failed to close session", "session", cookie.Value, "error", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     view.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

// connect - resolves the session of the request cookie, creating one when needed.
func (that *Server) connect(w http.ResponseWriter, r *http.Request) (*entity.Session, bool) {
	log := that.logger.With("method", "connect")

	var sessionID string
	if cookie, err := r.Cookie(view.SessionCookie); err == nil {
		sessionID = cookie.Value
	}

	session, err := that.sessions.Connect(r.Context(), sessionID)
	if err != nil {
		log.Error("failed to connect session", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return nil, false
	}

	if session.ID != sessionID {
		http.SetCookie(w, view.NewSessionCookie(session.ID, that.cookieTTL))
	}

	return session, true
}

func (that *Server) respond(w http.ResponseWriter, method string, session *entity.Session, err error) {
	switch {
	case errors.Is(err, apperror.ErrInvalidInput):
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case err != nil:
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	default:
		that.writeJSON(w, http.StatusOK, view.FromSession(session))
	}
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
