// internal/app/features/activity/list.go
package activity

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"github.com/dalemusser/auxilium/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgListFailed = "Error fetching activity logs."
	msgBadUserID  = "Invalid user ID format."
)

// parseFilter reads ?limit, ?user and ?action. ok is false after a 400 has
// been written.
func parseFilter(w http.ResponseWriter, r *http.Request) (filter, bool) {
	f := filter{
		limit:  ParseLimit(query.Get(r, "limit")),
		action: strings.ToUpper(query.Get(r, "action")),
	}
	if u := query.Get(r, "user"); u != "" {
		oid, err := primitive.ObjectIDFromHex(u)
		if err != nil {
			respond.BadRequest(w, msgBadUserID)
			return filter{}, false
		}
		f.user = oid
	}
	return f, true
}

// List handles GET /admin/activity.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f, ok := parseFilter(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	logs, err := h.fetch(ctx, f)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "activity list failed", err, msgListFailed)
		return
	}
	respond.OK(w, "", respond.M{"logs": logs})
}
