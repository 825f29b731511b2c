// internal/app/features/alumni/alumni.go
package alumni

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/auxilium/internal/app/features/shared"
	alumnistore "github.com/dalemusser/auxilium/internal/app/store/alumni"
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
	msgListFailed   = "Error fetching alumni profiles"
	msgMissing      = "Missing profile photo, name, title, or description."
	msgCreated      = "Alumnus profile created successfully."
	msgCreateFailed = "Error creating alumnus profile."
	msgNotFound     = "Alumnus profile not found."
	msgUpdated      = "Profile updated successfully."
	msgUpdateFailed = "Error updating alumnus profile. Check server console for details."
	msgBadID        = "Invalid alumnus ID format."
	msgDeleteFailed = "Error deleting alumnus profile"
)

func inputFrom(v formutil.Values) profileInput {
	return profileInput{
		Name:               v.Get("name"),
		TitleOrAchievement: v.Get("titleOrAchievement"),
		Description:        v.Get("description"),
		GraduationYear:     v.Get("graduationYear"),
	}
}

// List handles GET /api/alumni and GET /admin/alumni.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	profiles, err := h.Alumni.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list alumni failed", err, msgListFailed)
		return
	}
	respond.OK(w, "", respond.M{"profiles": profiles})
}

func (h *Handler) storePhoto(ctx context.Context, f *upload.File) (media.Asset, error) {
	asset, err := upload.Store(ctx, h.Media, f, media.UploadInput{
		Folder:    folder,
		Kind:      media.KindImage,
		Transform: photoTransform,
	})
	h.Metrics.Upload(folder, err == nil)
	return asset, err
}

// Create handles POST /admin/alumni.
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
	if file == nil || in.Name == "" || in.TitleOrAchievement == "" || in.Description == "" {
		respond.BadRequest(w, msgMissing)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.BadRequest(w, res.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	asset, err := h.storePhoto(ctx, file)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "alumni photo upload failed", err, msgCreateFailed)
		return
	}

	a, err := h.Alumni.Create(ctx, models.Alumnus{
		Name:               in.Name,
		TitleOrAchievement: in.TitleOrAchievement,
		Description:        in.Description,
		GraduationYear:     in.GraduationYear,
		Photo:              media.PhotoOf(asset),
	})
	if err != nil {
		shared.Cleanup(r, h.Media, h.Log, asset)
		h.ErrLog.LogServerError(w, r, "alumni insert failed", err, msgCreateFailed)
		return
	}

	h.Activity.Record(ctx, r, activitylog.AlumnusCreated,
		fmt.Sprintf("Created new alumnus profile for: %s. ID: %s", a.Name, a.ID.Hex()))
	respond.OK(w, msgCreated, respond.M{"alumnus": a})
}

// Update handles PUT /admin/alumni/{id}. A new profilePhoto replaces the
// old one; the old file is removed only after the update is saved.
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

	current, err := h.Alumni.GetByID(ctx, id)
	if errors.Is(err, storekit.ErrNotFound) {
		respond.NotFound(w, msgNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "alumni lookup failed", err, msgUpdateFailed, zap.String("id", id.Hex()))
		return
	}

	in := inputFrom(vals)
	if res := inputval.Validate(in); res.HasErrors() {
		respond.BadRequest(w, "Validation failed: "+res.Join())
		return
	}

	upd := alumnistore.Update{
		Name:               in.Name,
		TitleOrAchievement: in.TitleOrAchievement,
		Description:        in.Description,
		GraduationYear:     in.GraduationYear,
	}
	var fresh *media.Asset
	if file != nil {
		asset, err := h.storePhoto(ctx, file)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "alumni photo upload failed", err, msgUpdateFailed, zap.String("id", id.Hex()))
			return
		}
		fresh = &asset
		p := media.PhotoOf(asset)
		upd.Photo = &p
	}

	a, err := h.Alumni.Update(ctx, id, upd)
	if err != nil {
		if fresh != nil {
			shared.Cleanup(r, h.Media, h.Log, *fresh)
		}
		if errors.Is(err, storekit.ErrNotFound) {
			respond.NotFound(w, msgNotFound)
			return
		}
		h.ErrLog.LogServerError(w, r, "alumni update failed", err, msgUpdateFailed, zap.String("id", id.Hex()))
		return
	}
	if fresh != nil {
		shared.DropPhoto(ctx, h.Media, current.Photo, media.KindImage, h.Log)
	}

	h.Activity.Record(ctx, r, activitylog.AlumnusUpdated,
		fmt.Sprintf("Updated alumnus profile: %s. ID: %s", a.Name, id.Hex()))
	respond.OK(w, msgUpdated, respond.M{"alumnus": a})
}

// Delete handles DELETE /admin/alumni/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, msgBadID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, err := h.Alumni.Delete(ctx, id)
	if errors.Is(err, storekit.ErrNotFound) {
		respond.NotFound(w, msgNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "alumni delete failed", err, msgDeleteFailed, zap.String("id", id.Hex()))
		return
	}
	shared.DropPhoto(ctx, h.Media, a.Photo, media.KindImage, h.Log)

	h.Activity.Record(ctx, r, activitylog.AlumnusDeleted,
		fmt.Sprintf("Deleted alumnus profile: %s. ID: %s", a.Name, id.Hex()))
	respond.OK(w, fmt.Sprintf("Alumnus profile \"%s\" deleted successfully.", a.Name), nil)
}
