// internal/app/features/systemusers/routes.go
package systemusers

import (
	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes registers account management on the admin router. Every route is
// superadmin-only.
func Routes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(g chi.Router) {
		g.Use(sm.RequireSuperAdmin)
		g.Post("/create-user", h.Create)
		g.Get("/users", h.List)
		g.Delete("/users/{id}", h.Delete)
	})
}
