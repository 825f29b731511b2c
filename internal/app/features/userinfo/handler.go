// internal/app/features/userinfo/handler.go
package userinfo

import (
	"net/http"

	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/dalemusser/auxilium/internal/app/system/respond"
)

// Handler tells the admin panel scripts who is signed in.
type Handler struct{}

// NewHandler creates a new userinfo handler.
func NewHandler() *Handler {
	return &Handler{}
}

// ServeUserInfo returns the current admin, if any.
//
// Response format:
//
//	{ "success": true, "message": "", "isAuthenticated": bool,
//	  "user": { "_id": "...", "username": "...", "role": "..." } | null }
func (h *Handler) ServeUserInfo(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok || !user.IsAdmin() {
		respond.OK(w, "", respond.M{"isAuthenticated": false, "user": nil})
		return
	}
	respond.OK(w, "", respond.M{
		"isAuthenticated": true,
		"user": respond.M{
			"_id":      user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}
