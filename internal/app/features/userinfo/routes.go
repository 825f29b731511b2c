// internal/app/features/userinfo/routes.go
package userinfo

import (
	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers GET /me on the admin router. No auth middleware is
// required because the handler itself checks the session via
// auth.CurrentUser; the answer is never cached.
func MountRoutes(r chi.Router, h *Handler) {
	r.With(auth.NoCache).Get("/me", h.ServeUserInfo)
}
