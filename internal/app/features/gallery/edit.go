// internal/app/features/gallery/edit.go
package gallery

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/auxilium/internal/app/features/shared"
	"github.com/dalemusser/auxilium/internal/app/store/storekit"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/limits"
	"github.com/dalemusser/auxilium/internal/app/system/media"
	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"github.com/dalemusser/auxilium/internal/app/system/timeouts"
	"go.uber.org/zap"
)

const (
	msgBadID        = "Invalid gallery item ID format."
	msgItemNotFound = "Gallery item not found."
	msgUpdateFailed = "Error updating gallery item"
	msgDeleteFailed = "Error deleting item. Check Cloudinary/DB status."
)

// Update handles PUT /admin/gallery/{id}. Only the title and description
// change; the media file stays as uploaded.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, msgBadID)
	if !ok {
		return
	}
	vals, ok := shared.ParseForm(w, r, h.ErrLog, limits.MaxJSONBody, msgUpdateFailed)
	if !ok {
		return
	}
	title := vals.Get("title")
	if title == "" {
		respond.BadRequest(w, "Title is required for update.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	item, err := h.Items.UpdateText(ctx, id, title, vals.Get("description"))
	if errors.Is(err, storekit.ErrNotFound) {
		respond.NotFound(w, msgItemNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "gallery update failed", err, msgUpdateFailed, zap.String("id", id.Hex()))
		return
	}

	h.Activity.Record(ctx, r, activitylog.GalleryUpdate,
		fmt.Sprintf("Updated %s title/desc: %s. ID: %s", item.Type, item.Title, item.ID.Hex()))
	respond.OK(w, "Gallery item updated successfully!", respond.M{"item": item})
}

// Delete handles DELETE /admin/gallery/{id}. The document goes first; the
// remote file is then destroyed as the matching resource type.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, msgBadID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	item, err := h.Items.Delete(ctx, id)
	if errors.Is(err, storekit.ErrNotFound) {
		respond.NotFound(w, "Not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "gallery delete failed", err, msgDeleteFailed, zap.String("id", id.Hex()))
		return
	}

	if item.HasAsset() {
		media.DeleteAll(ctx, h.Media, []media.Asset{media.AssetOf(item.Photo, kindOf(item.Type))}, h.Log)
	}
	h.Activity.Record(ctx, r, activitylog.GalleryDelete,
		fmt.Sprintf("Deleted %s: %s. ID: %s", item.Type, item.Title, item.ID.Hex()))
	respond.OK(w, "Item deleted", nil)
}
