// internal/app/features/admissions/routes.go
package admissions

import (
	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// PublicRoutes registers the admission form endpoints on the /api router.
func PublicRoutes(r chi.Router, h *Handler) {
	r.Post("/submit-application", h.Submit)
	r.Get("/signed-pdf/*", h.SignedPDF)
}

// AdminRoutes is mounted at /admin/applications.
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireAdmin)
	r.Get("/", h.List)
	r.Get("/{id}", h.Detail)
	r.Delete("/{id}", h.Delete)
	return r
}
