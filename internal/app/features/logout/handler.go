// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Activity   *activitylog.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, activity *activitylog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Activity:   activity,
	}
}

// ServeLogout handles GET /admin/logout.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok && u.IsAdmin() {
		h.Activity.Record(r.Context(), r, activitylog.Logout, "Admin signed out. Username: "+u.Username)
	}

	// A session that fails to decode still gets an expired cookie.
	if err := h.SessionMgr.Logout(w, r); err != nil {
		h.Log.Error("logout: clear session", zap.Error(err))
	}

	http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
}
