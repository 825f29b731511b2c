// internal/app/features/achievements/routes.go
package achievements

import (
	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// PublicRoutes is mounted at /api/achievements.
func PublicRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}

// AdminRoutes is mounted at /admin/achievements.
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireAdmin)
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}
