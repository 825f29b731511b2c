// internal/app/features/gallery/upload.go
package gallery

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/auxilium/internal/app/features/shared"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/limits"
	"github.com/dalemusser/auxilium/internal/app/system/media"
	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"github.com/dalemusser/auxilium/internal/app/system/timeouts"
	"github.com/dalemusser/auxilium/internal/app/system/upload"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"go.uber.org/zap"
)

const (
	msgUploadFailed = "Error uploading gallery item"
	msgBadType      = "Invalid media type. Must be photo or video."
	msgNoTitle      = "Title is required."
	msgNoFile       = "No media file uploaded."
)

// Upload handles POST /admin/gallery/upload.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	vals, ok := shared.ParseForm(w, r, h.ErrLog, limits.MaxGalleryFileSize, msgUploadFailed)
	if !ok {
		return
	}
	file, ok := shared.File(w, r, FileField, limits.MaxGalleryFileSize)
	if !ok {
		return
	}

	typ := strings.ToLower(vals.Get("type"))
	title := vals.Get("title")
	switch {
	case !models.IsValidGalleryType(typ):
		respond.BadRequest(w, msgBadType)
		return
	case title == "":
		respond.BadRequest(w, msgNoTitle)
		return
	case file == nil:
		respond.BadRequest(w, msgNoFile)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	asset, err := upload.Store(ctx, h.Media, file, media.UploadInput{
		Folder: "gallery/" + typ,
		Kind:   kindOf(typ),
	})
	h.Metrics.Upload("gallery", err == nil)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "gallery upload failed", err, msgUploadFailed, zap.String("type", typ))
		return
	}

	item, err := h.Items.Create(ctx, models.GalleryItem{
		Type:        typ,
		Title:       title,
		Description: vals.Get("description"),
		Photo:       media.PhotoOf(asset),
	})
	if err != nil {
		shared.Cleanup(r, h.Media, h.Log, asset)
		h.ErrLog.LogServerError(w, r, "gallery insert failed", err, msgUploadFailed, zap.String("public_id", asset.PublicID))
		return
	}

	h.Activity.Record(ctx, r, activitylog.GalleryUpload,
		fmt.Sprintf("Uploaded new %s: %s. ID: %s", item.Type, item.Title, item.ID.Hex()))
	respond.OK(w, "", respond.M{"item": item})
}
