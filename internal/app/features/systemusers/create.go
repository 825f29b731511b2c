// internal/app/features/systemusers/create.go
package systemusers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	userstore "github.com/dalemusser/auxilium/internal/app/store/users"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/dalemusser/auxilium/internal/app/system/authutil"
	"github.com/dalemusser/auxilium/internal/app/system/formutil"
	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"github.com/dalemusser/auxilium/internal/app/system/timeouts"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"go.uber.org/zap"
)

const (
	msgCredentialsRequired = "Username and password are required."
	msgPasswordShort       = "Password must be at least 8 characters."
	msgUserExists          = "User already exists."
	msgCreateFailed        = "Error creating user."
)

// Create handles POST /admin/create-user. New accounts are always admins.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	vals, err := formutil.Parse(w, r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "create user: bad body", err, msgCredentialsRequired)
		return
	}
	username := authutil.NormalizeUsername(vals.Get("username"))
	password := vals.Raw("password")
	if username == "" || password == "" {
		respond.BadRequest(w, msgCredentialsRequired)
		return
	}

	hash, err := authutil.HashPassword(password)
	if errors.Is(err, authutil.ErrPasswordTooShort) {
		respond.BadRequest(w, msgPasswordShort)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create user: hash password", err, msgCreateFailed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Users.Create(ctx, username, hash, models.RoleAdmin); err != nil {
		if errors.Is(err, userstore.ErrDuplicateUsername) {
			respond.Conflict(w, msgUserExists)
			return
		}
		h.ErrLog.LogServerError(w, r, "create user failed", err, msgCreateFailed, zap.String("username", username))
		return
	}

	by := ""
	if u, ok := auth.CurrentUser(r); ok {
		by = u.Username
	}
	h.Activity.Record(ctx, r, activitylog.UserCreated,
		fmt.Sprintf("New admin user '%s' created by %s.", username, by))
	respond.OK(w, fmt.Sprintf("Admin user '%s' created successfully!", username), nil)
}
