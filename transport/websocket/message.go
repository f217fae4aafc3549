package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/transport/view"
)

const (
	actionConnect      = "connect"
	actionTurn         = "game:turn"
	actionRestart      = "game:restart"
	actionClearHistory = "history:clear"
	actionRenderMode   = "view:mode"
	actionClose        = "session:close"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RequestPayload carries the arguments of client actions.
type RequestPayload struct {
	Cell *int              `json:"cell,omitempty"`
	Mode entity.RenderMode `json:"mode,omitempty"`
}

type ResponsePayload struct {
	Session *view.Session `json:"session,omitempty"`
	Error   string        `json:"error,omitempty"`
}
