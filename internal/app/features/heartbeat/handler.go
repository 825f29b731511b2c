// internal/app/features/heartbeat/handler.go
package heartbeat

import (
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"go.uber.org/zap"
)

// Handler keeps an open admin panel signed in while it is in use.
type Handler struct {
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

// NewHandler creates a new heartbeat handler.
func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		SessionMgr: sessionMgr,
		Log:        logger,
	}
}

// ServeHeartbeat handles POST /admin/heartbeat. The dashboard calls it
// periodically; each call restarts the session lifetime and reports when
// the session will now expire.
func (h *Handler) ServeHeartbeat(w http.ResponseWriter, r *http.Request) {
	expires, err := h.SessionMgr.Touch(w, r)
	if errors.Is(err, auth.ErrNotSignedIn) {
		respond.Unauthorized(w, auth.MsgUnauthorized)
		return
	}
	if err != nil {
		h.Log.Warn("session refresh failed", zap.Error(err))
		respond.ServerError(w, "Could not refresh session.")
		return
	}
	respond.OK(w, "", respond.M{"expiresAt": expires.Format(time.RFC3339)})
}
