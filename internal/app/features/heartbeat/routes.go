// internal/app/features/heartbeat/routes.go
package heartbeat

import (
	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted at /admin/heartbeat.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Require an admin to be signed in
	r.Use(sm.RequireAdmin)

	r.Post("/", h.ServeHeartbeat)

	return r
}
