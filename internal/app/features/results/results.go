// internal/app/features/results/results.go
package results

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/auxilium/internal/app/features/shared"
	resultstore "github.com/dalemusser/auxilium/internal/app/store/results"
	"github.com/dalemusser/auxilium/internal/app/store/storekit"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/inputval"
	"github.com/dalemusser/auxilium/internal/app/system/limits"
	"github.com/dalemusser/auxilium/internal/app/system/media"
	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"github.com/dalemusser/auxilium/internal/app/system/timeouts"
	"github.com/dalemusser/auxilium/internal/app/system/upload"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"go.uber.org/zap"
)

const (
	msgListFailed   = "Error fetching results."
	msgMissing      = "Missing photo, type, name, or percentage."
	msgBadPercent   = "Invalid percentage value."
	msgCreated      = "Result entry created successfully."
	msgCreateFailed = "Error creating result entry."
	msgNotFound     = "Result entry not found."
	msgUpdated      = "Result entry updated successfully."
	msgUpdateFailed = "Error updating result entry."
	msgBadID        = "Invalid result ID format."
	msgDeleted      = "Result entry deleted successfully."
	msgDeleteFailed = "Error deleting result entry."
)

// List handles GET /api/results and GET /admin/results: by board, highest
// percentage first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Results.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list results failed", err, msgListFailed)
		return
	}
	respond.OK(w, "", respond.M{"results": list})
}

// Create handles POST /admin/results.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	vals, ok := shared.ParseForm(w, r, h.ErrLog, limits.MaxProfilePhotoSize, msgCreateFailed)
	if !ok {
		return
	}
	file, ok := shared.File(w, r, FileField, limits.MaxProfilePhotoSize)
	if !ok {
		return
	}
	if file == nil || vals.Get("type") == "" || vals.Get("studentName") == "" || vals.Get("percentage") == "" {
		respond.BadRequest(w, msgMissing)
		return
	}
	in, pctOK := readInput(vals)
	if !pctOK {
		respond.BadRequest(w, msgBadPercent)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.BadRequest(w, res.Join())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	folder := "results/" + in.Type
	asset, err := upload.Store(ctx, h.Media, file, media.UploadInput{
		Folder:    folder,
		Kind:      media.KindImage,
		Transform: media.Fill(400, 400, true),
	})
	h.Metrics.Upload("results", err == nil)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "result photo upload failed", err, msgCreateFailed)
		return
	}

	res, err := h.Results.Create(ctx, models.Result{
		Type:        in.Type,
		StudentName: in.StudentName,
		Percentage:  in.Percentage,
		Photo:       media.PhotoOf(asset),
	})
	if err != nil {
		shared.Cleanup(r, h.Media, h.Log, asset)
		h.ErrLog.LogServerError(w, r, "result insert failed", err, msgCreateFailed)
		return
	}

	h.Activity.Record(ctx, r, activitylog.ResultCreated,
		fmt.Sprintf("Created new %s result for: %s (%s%%).", res.Type, res.StudentName, pct(res.Percentage)))
	respond.OK(w, msgCreated, respond.M{"result": res})
}

// Update handles PUT /admin/results/{id}. The photo is not changed.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, msgBadID)
	if !ok {
		return
	}
	vals, ok := shared.ParseForm(w, r, h.ErrLog, limits.MaxJSONBody, msgUpdateFailed)
	if !ok {
		return
	}
	in, pctOK := readInput(vals)
	if !pctOK {
		respond.BadRequest(w, msgBadPercent)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.BadRequest(w, res.Join())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	res, err := h.Results.Update(ctx, id, resultstore.Update{
		Type:        in.Type,
		StudentName: in.StudentName,
		Percentage:  in.Percentage,
	})
	if errors.Is(err, storekit.ErrNotFound) {
		respond.NotFound(w, msgNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "result update failed", err, msgUpdateFailed, zap.String("id", id.Hex()))
		return
	}

	h.Activity.Record(ctx, r, activitylog.ResultUpdated,
		fmt.Sprintf("Updated %s result for: %s (%s%%). ID: %s", res.Type, res.StudentName, pct(res.Percentage), id.Hex()))
	respond.OK(w, msgUpdated, respond.M{"result": res})
}

// Delete handles DELETE /admin/results/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, msgBadID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res, err := h.Results.Delete(ctx, id)
	if errors.Is(err, storekit.ErrNotFound) {
		respond.NotFound(w, msgNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "result delete failed", err, msgDeleteFailed, zap.String("id", id.Hex()))
		return
	}
	shared.DropPhoto(ctx, h.Media, res.Photo, media.KindImage, h.Log)

	h.Activity.Record(ctx, r, activitylog.ResultDeleted,
		fmt.Sprintf("Deleted %s result for: %s. ID: %s", res.Type, res.StudentName, id.Hex()))
	respond.OK(w, msgDeleted, nil)
}
