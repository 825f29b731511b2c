// internal/app/features/faculty/faculty.go
package faculty

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/auxilium/internal/app/features/shared"
	facultystore "github.com/dalemusser/auxilium/internal/app/store/faculty"
	"github.com/dalemusser/auxilium/internal/app/store/storekit"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/formutil"
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
	msgListFailed   = "Error fetching faculty data."
	msgMissing      = "Missing photo, name, subject/designation, qualification, or description."
	msgCreated      = "Faculty profile created successfully."
	msgCreateFailed = "Error creating faculty profile."
	msgNotFound     = "Faculty profile not found."
	msgUpdated      = "Profile updated successfully."
	msgUpdateFailed = "Error updating faculty profile."
	msgBadID        = "Invalid faculty ID format."
	msgDeleteFailed = "Error deleting faculty profile"
)

func inputFrom(v formutil.Values) profileInput {
	return profileInput{
		Name:                 v.Get("name"),
		SubjectOrDesignation: v.Get("subjectOrDesignation"),
		Qualification:        v.Get("qualification"),
		Description:          v.Get("description"),
	}
}

// List handles GET /api/faculty and GET /admin/faculty, ordered by name.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	profiles, err := h.Faculty.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list faculty failed", err, msgListFailed)
		return
	}
	respond.OK(w, "", respond.M{"profiles": profiles})
}

func (h *Handler) storePhoto(ctx context.Context, f *upload.File) (media.Asset, error) {
	asset, err := upload.Store(ctx, h.Media, f, media.UploadInput{
		Folder:    folder,
		Kind:      media.KindImage,
		Transform: media.Fill(600, 600, true),
	})
	h.Metrics.Upload(folder, err == nil)
	return asset, err
}

// Create handles POST /admin/faculty.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	vals, ok := shared.ParseForm(w, r, h.ErrLog, limits.MaxProfilePhotoSize, msgCreateFailed)
	if !ok {
		return
	}
	file, ok := shared.File(w, r, FileField, limits.MaxProfilePhotoSize)
	if !ok {
		return
	}
	in := inputFrom(vals)
	if file == nil || in.Name == "" || in.SubjectOrDesignation == "" || in.Qualification == "" || in.Description == "" {
		respond.BadRequest(w, msgMissing)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.BadRequest(w, res.Join())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	asset, err := h.storePhoto(ctx, file)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "faculty photo upload failed", err, msgCreateFailed)
		return
	}

	f, err := h.Faculty.Create(ctx, models.Faculty{
		Name:                 in.Name,
		SubjectOrDesignation: in.SubjectOrDesignation,
		Qualification:        in.Qualification,
		Description:          in.Description,
		Photo:                media.PhotoOf(asset),
	})
	if err != nil {
		shared.Cleanup(r, h.Media, h.Log, asset)
		h.ErrLog.LogServerError(w, r, "faculty insert failed", err, msgCreateFailed)
		return
	}

	h.Activity.Record(ctx, r, activitylog.FacultyCreated,
		fmt.Sprintf("Created new faculty profile for: %s. ID: %s", f.Name, f.ID.Hex()))
	respond.OK(w, msgCreated, respond.M{"faculty": f})
}

// Update handles PUT /admin/faculty/{id}. The profile must exist before a
// replacement photo is uploaded; the old photo is destroyed once the update
// is saved and the new one is removed again if it is not.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, msgBadID)
	if !ok {
		return
	}
	vals, ok := shared.ParseForm(w, r, h.ErrLog, limits.MaxProfilePhotoSize, msgUpdateFailed)
	if !ok {
		return
	}
	file, ok := shared.File(w, r, FileField, limits.MaxProfilePhotoSize)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	current, err := h.Faculty.GetByID(ctx, id)
	if errors.Is(err, storekit.ErrNotFound) {
		respond.NotFound(w, msgNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "faculty lookup failed", err, msgUpdateFailed, zap.String("id", id.Hex()))
		return
	}

	in := inputFrom(vals)
	if res := inputval.Validate(in); res.HasErrors() {
		respond.BadRequest(w, res.Join())
		return
	}

	upd := facultystore.Update{
		Name:                 in.Name,
		SubjectOrDesignation: in.SubjectOrDesignation,
		Qualification:        in.Qualification,
		Description:          in.Description,
	}
	var fresh *media.Asset
	if file != nil {
		asset, err := h.storePhoto(ctx, file)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "faculty photo upload failed", err, msgUpdateFailed, zap.String("id", id.Hex()))
			return
		}
		fresh = &asset
		p := media.PhotoOf(asset)
		upd.Photo = &p
	}

	f, err := h.Faculty.Update(ctx, id, upd)
	if err != nil {
		if fresh != nil {
			shared.Cleanup(r, h.Media, h.Log, *fresh)
		}
		if errors.Is(err, storekit.ErrNotFound) {
			respond.NotFound(w, msgNotFound)
			return
		}
		h.ErrLog.LogServerError(w, r, "faculty update failed", err, msgUpdateFailed, zap.String("id", id.Hex()))
		return
	}
	if fresh != nil {
		shared.DropPhoto(ctx, h.Media, current.Photo, media.KindImage, h.Log)
	}

	h.Activity.Record(ctx, r, activitylog.FacultyUpdated,
		fmt.Sprintf("Updated faculty profile: %s. ID: %s. Image updated: %t", f.Name, id.Hex(), fresh != nil))
	respond.OK(w, msgUpdated, respond.M{"faculty": f})
}

// Delete handles DELETE /admin/faculty/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, msgBadID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	f, err := h.Faculty.Delete(ctx, id)
	if errors.Is(err, storekit.ErrNotFound) {
		respond.NotFound(w, msgNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "faculty delete failed", err, msgDeleteFailed, zap.String("id", id.Hex()))
		return
	}
	shared.DropPhoto(ctx, h.Media, f.Photo, media.KindImage, h.Log)

	h.Activity.Record(ctx, r, activitylog.FacultyDeleted,
		fmt.Sprintf("Deleted faculty profile: %s. ID: %s", f.Name, id.Hex()))
	respond.OK(w, fmt.Sprintf("Faculty profile \"%s\" deleted successfully.", f.Name), nil)
}
