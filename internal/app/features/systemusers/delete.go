// internal/app/features/systemusers/delete.go
package systemusers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"github.com/dalemusser/auxilium/internal/app/system/timeouts"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	msgDeleteSelf       = "Cannot delete your own account while logged in."
	msgDeleteSuperAdmin = "Cannot delete a Superadmin account."
	msgBadUserID        = "Invalid user ID format."
	msgUserNotFound     = "User not found."
	msgDeleteFailed     = "Error deleting user."
)

// Delete handles DELETE /admin/users/{id}. Superadmin accounts and the
// caller's own account cannot be removed.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	me, _ := auth.CurrentUser(r)
	if me != nil && me.ID == idHex {
		respond.Forbidden(w, msgDeleteSelf)
		return
	}
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		respond.BadRequest(w, msgBadUserID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, msgUserNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete user: lookup failed", err, msgDeleteFailed, zap.String("user_id", idHex))
		return
	}
	if u.Role == models.RoleSuperAdmin {
		respond.Forbidden(w, msgDeleteSuperAdmin)
		return
	}

	n, err := h.Users.Delete(ctx, oid)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete user failed", err, msgDeleteFailed, zap.String("user_id", idHex))
		return
	}
	if n == 0 {
		respond.NotFound(w, msgUserNotFound)
		return
	}

	if h.Sessions != nil {
		if _, err := h.Sessions.DeleteByUser(ctx, idHex); err != nil {
			h.Log.Warn("revoke sessions of deleted user failed", zap.String("user_id", idHex), zap.Error(err))
		}
	}

	by := ""
	if me != nil {
		by = me.Username
	}
	h.Activity.Record(ctx, r, activitylog.UserDeleted,
		fmt.Sprintf("Deleted admin user: %s. ID: %s by %s", u.Username, idHex, by))
	respond.OK(w, fmt.Sprintf("Admin user '%s' deleted successfully.", u.Username), nil)
}
