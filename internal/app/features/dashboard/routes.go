// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes registers GET / on the admin router. The page is never cached so
// the back button cannot show the dashboard after logout.
func Routes(r chi.Router, h *Handler) {
	r.With(auth.NoCache).Get("/", h.ServeAdmin)
}
