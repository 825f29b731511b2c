// internal/app/features/admissions/admindelete.go
package admissions

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/auxilium/internal/app/store/storekit"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/media"
	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"github.com/dalemusser/auxilium/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const msgDeleteFailed = "Error deleting application/message."

// Delete handles DELETE /admin/applications/{id}. The id may name either an
// admission or a contact message; admissions are tried first.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := storekit.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid application ID format.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	app, err := h.Applications.Delete(ctx, id)
	switch {
	case err == nil:
		media.DeleteAll(ctx, h.Media, media.AssetsOfApplication(app), h.Log)
		h.Activity.Record(ctx, r, activitylog.AppDeleted,
			fmt.Sprintf("Deleted admission application for pupil ID: %s.", id.Hex()))
		respond.OK(w, "Admission application deleted successfully.", nil)
		return
	case !errors.Is(err, storekit.ErrNotFound):
		h.ErrLog.LogServerError(w, r, "delete application failed", err, msgDeleteFailed, zap.String("id", id.Hex()))
		return
	}

	_, err = h.Contacts.Delete(ctx, id)
	switch {
	case err == nil:
		h.Activity.Record(ctx, r, activitylog.MsgDeleted,
			fmt.Sprintf("Deleted contact message ID: %s.", id.Hex()))
		respond.OK(w, "Contact message deleted successfully.", nil)
	case errors.Is(err, storekit.ErrNotFound):
		respond.NotFound(w, "Application or message not found.")
	default:
		h.ErrLog.LogServerError(w, r, "delete contact message failed", err, msgDeleteFailed, zap.String("id", id.Hex()))
	}
}
