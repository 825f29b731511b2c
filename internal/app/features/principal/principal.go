// internal/app/features/principal/principal.go
package principal

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/auxilium/internal/app/features/shared"
	principalstore "github.com/dalemusser/auxilium/internal/app/store/principal"
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
	msgNone         = "No principal message found."
	msgFetchFailed  = "Error fetching principal message."
	msgListFailed   = "Error fetching principal messages."
	msgMissing      = "Missing photo, message, or principal name."
	msgCreated      = "Principal's message created successfully."
	msgCreateFailed = "Error creating Principal's message. Ensure required fields are filled and the file is an image."
	msgNotFound     = "Principal message not found."
	msgUpdated      = "Message updated successfully."
	msgUpdateFailed = "Error updating Principal's message."
	msgBadID        = "Invalid message ID format."
	msgDeleted      = "Principal's message deleted successfully."
	msgDeleteFailed = "Error deleting principal message"
)

func inputFrom(v formutil.Values) messageInput {
	return messageInput{
		PrincipalName: v.Get("principalName"),
		MessageText:   v.Get("messageText"),
		Qualification: v.Get("qualification"),
		FromYear:      v.Get("fromYear"),
		ToYear:        v.Get("toYear"),
	}
}

// Current handles GET /api/principal-message.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Messages.Latest(ctx)
	if errors.Is(err, storekit.ErrNotFound) {
		respond.NotFound(w, msgNone)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "principal message lookup failed", err, msgFetchFailed)
		return
	}
	respond.OK(w, "", respond.M{"profile": m})
}

// List handles GET /admin/principal-message, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	profiles, err := h.Messages.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list principal messages failed", err, msgListFailed)
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

// Create handles POST /admin/principal-message. The site shows a single
// message, so every earlier message and its photo is removed. The new photo
// is uploaded first so a failed upload leaves the current message in place.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	vals, ok := shared.ParseForm(w, r, h.ErrLog, limits.MaxAdmissionFileSize, msgCreateFailed)
	if !ok {
		return
	}
	file, ok := shared.File(w, r, FileField, limits.MaxAdmissionFileSize)
	if !ok {
		return
	}
	in := inputFrom(vals)
	if file == nil || in.MessageText == "" || in.PrincipalName == "" {
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
		h.ErrLog.LogServerError(w, r, "principal photo upload failed", err, msgCreateFailed)
		return
	}

	removed, err := h.Messages.DeleteAll(ctx)
	if err != nil {
		shared.Cleanup(r, h.Media, h.Log, asset)
		h.ErrLog.LogServerError(w, r, "principal message clear failed", err, msgCreateFailed)
		return
	}
	for _, old := range removed {
		shared.DropPhoto(ctx, h.Media, old.Photo, media.KindImage, h.Log)
	}

	m, err := h.Messages.Create(ctx, models.PrincipalMessage{
		PrincipalName: in.PrincipalName,
		MessageText:   in.MessageText,
		Qualification: in.Qualification,
		FromYear:      in.FromYear,
		ToYear:        in.ToYear,
		Photo:         media.PhotoOf(asset),
	})
	if err != nil {
		shared.Cleanup(r, h.Media, h.Log, asset)
		h.ErrLog.LogServerError(w, r, "principal message insert failed", err, msgCreateFailed,
			zap.Int("removed", len(removed)))
		return
	}

	h.Activity.Record(ctx, r, activitylog.PrinMsgCreated,
		fmt.Sprintf("Created new Principal's Message by: %s. ID: %s", m.PrincipalName, m.ID.Hex()))
	respond.OK(w, msgCreated, respond.M{"profile": m})
}

// Update handles PUT /admin/principal-message/{id} with an optional new
// principalPhoto.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, msgBadID)
	if !ok {
		return
	}
	vals, ok := shared.ParseForm(w, r, h.ErrLog, limits.MaxAdmissionFileSize, msgUpdateFailed)
	if !ok {
		return
	}
	file, ok := shared.File(w, r, FileField, limits.MaxAdmissionFileSize)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	current, err := h.Messages.GetByID(ctx, id)
	if errors.Is(err, storekit.ErrNotFound) {
		respond.NotFound(w, msgNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "principal message lookup failed", err, msgUpdateFailed, zap.String("id", id.Hex()))
		return
	}

	in := inputFrom(vals)
	if res := inputval.Validate(in); res.HasErrors() {
		respond.BadRequest(w, res.Join())
		return
	}

	upd := principalstore.Update{
		PrincipalName: in.PrincipalName,
		MessageText:   in.MessageText,
		Qualification: in.Qualification,
		FromYear:      in.FromYear,
		ToYear:        in.ToYear,
	}
	var fresh *media.Asset
	if file != nil {
		asset, err := h.storePhoto(ctx, file)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "principal photo upload failed", err, msgUpdateFailed, zap.String("id", id.Hex()))
			return
		}
		fresh = &asset
		p := media.PhotoOf(asset)
		upd.Photo = &p
	}

	m, err := h.Messages.Update(ctx, id, upd)
	if err != nil {
		if fresh != nil {
			shared.Cleanup(r, h.Media, h.Log, *fresh)
		}
		if errors.Is(err, storekit.ErrNotFound) {
			respond.NotFound(w, msgNotFound)
			return
		}
		h.ErrLog.LogServerError(w, r, "principal message update failed", err, msgUpdateFailed, zap.String("id", id.Hex()))
		return
	}
	if fresh != nil {
		shared.DropPhoto(ctx, h.Media, current.Photo, media.KindImage, h.Log)
	}

	h.Activity.Record(ctx, r, activitylog.PrinMsgUpdated,
		fmt.Sprintf("Updated Principal's Message: %s. ID: %s. Image updated: %t", m.PrincipalName, id.Hex(), fresh != nil))
	respond.OK(w, msgUpdated, respond.M{"profile": m})
}

// Delete handles DELETE /admin/principal-message/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, msgBadID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := h.Messages.Delete(ctx, id)
	if errors.Is(err, storekit.ErrNotFound) {
		respond.NotFound(w, msgNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "principal message delete failed", err, msgDeleteFailed, zap.String("id", id.Hex()))
		return
	}
	shared.DropPhoto(ctx, h.Media, m.Photo, media.KindImage, h.Log)

	h.Activity.Record(ctx, r, activitylog.PrinMsgDeleted,
		fmt.Sprintf("Deleted Principal's Message: %s. ID: %s", m.PrincipalName, id.Hex()))
	respond.OK(w, msgDeleted, nil)
}
