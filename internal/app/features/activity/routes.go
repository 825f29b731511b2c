// internal/app/features/activity/routes.go
package activity

import (
	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted at /admin/activity.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSuperAdmin)
	r.Get("/", h.List)
	r.Get("/export.csv", h.ServeCSV)
	return r
}
