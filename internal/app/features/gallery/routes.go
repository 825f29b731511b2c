// internal/app/features/gallery/routes.go
package gallery

import (
	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// PublicRoutes is mounted at /api/gallery.
func PublicRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}

// AdminRoutes is mounted at /admin/gallery.
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireAdmin)
	r.Get("/", h.List)
	r.Post("/upload", h.Upload)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}
