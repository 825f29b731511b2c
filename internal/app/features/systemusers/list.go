// internal/app/features/systemusers/list.go
package systemusers

import (
	"context"
	"net/http"

	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"github.com/dalemusser/auxilium/internal/app/system/timeouts"
)

const msgListFailed = "Error fetching admin users."

// List handles GET /admin/users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	users, err := h.Users.ListAdmins(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list users failed", err, msgListFailed)
		return
	}
	role := ""
	if u, ok := auth.CurrentUser(r); ok {
		role = u.Role
	}
	respond.OK(w, "", respond.M{"users": users, "currentUserRole": role})
}
