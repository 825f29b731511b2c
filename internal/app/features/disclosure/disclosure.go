// internal/app/features/disclosure/disclosure.go
package disclosure

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/auxilium/internal/app/features/shared"
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
	msgListFailed   = "Error fetching disclosure documents."
	msgMissing      = "Missing file, title, or document type."
	msgCreated      = "Document uploaded successfully."
	msgCreateFailed = "Error creating disclosure document."
	msgNotFound     = "Document not found."
	msgBadID        = "Invalid document ID format."
	msgDeleteFailed = "Error deleting document."
)

// Public handles GET /api/disclosure, most recent upload first.
func (h *Handler) Public(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	docs, err := h.Documents.Recent(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list disclosures failed", err, msgListFailed)
		return
	}
	respond.OK(w, "", respond.M{"disclosures": docs})
}

// List handles GET /admin/disclosure, grouped by type then title.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	docs, err := h.Documents.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list disclosures failed", err, msgListFailed)
		return
	}
	respond.OK(w, "", respond.M{"documents": docs})
}

// Create handles POST /admin/disclosure. PDFs are stored as raw files;
// anything else is left to the media service to classify.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	vals, ok := shared.ParseForm(w, r, h.ErrLog, limits.MaxAdmissionFileSize, msgCreateFailed)
	if !ok {
		return
	}
	file, ok := shared.File(w, r, FileField, limits.MaxAdmissionFileSize)
	if !ok {
		return
	}
	in := documentInput{Title: vals.Get("title"), Type: vals.Get("type")}
	if file == nil || in.Title == "" || in.Type == "" {
		respond.BadRequest(w, msgMissing)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.BadRequest(w, res.Join())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	kind := media.KindAuto
	if media.IsPDF(file.ContentType, file.Filename) {
		kind = media.KindRaw
	}
	asset, err := upload.Store(ctx, h.Media, file, media.UploadInput{
		Folder: "public_disclosures/" + media.FolderSegment(in.Type),
		Kind:   kind,
	})
	h.Metrics.Upload("public_disclosures", err == nil)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "disclosure upload failed", err, msgCreateFailed, zap.String("type", in.Type))
		return
	}

	doc, err := h.Documents.Create(ctx, models.DisclosureDocument{
		Type:  in.Type,
		Title: in.Title,
		Photo: media.PhotoOf(asset),
	})
	if err != nil {
		shared.Cleanup(r, h.Media, h.Log, asset)
		h.ErrLog.LogServerError(w, r, "disclosure insert failed", err, msgCreateFailed)
		return
	}

	h.Activity.Record(ctx, r, activitylog.DisclosureCreated,
		fmt.Sprintf("Uploaded new disclosure document: %s (%s). ID: %s", doc.Title, doc.Type, doc.ID.Hex()))
	respond.OK(w, msgCreated, respond.M{"document": doc})
}

// Delete handles DELETE /admin/disclosure/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, msgBadID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	doc, err := h.Documents.Delete(ctx, id)
	if errors.Is(err, storekit.ErrNotFound) {
		respond.NotFound(w, msgNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "disclosure delete failed", err, msgDeleteFailed, zap.String("id", id.Hex()))
		return
	}
	if doc.HasAsset() {
		media.DeleteAll(ctx, h.Media, []media.Asset{assetOf(doc)}, h.Log)
	}

	h.Activity.Record(ctx, r, activitylog.DisclosureDeleted,
		fmt.Sprintf("Deleted disclosure document: %s (%s). ID: %s", doc.Title, doc.Type, id.Hex()))
	respond.OK(w, fmt.Sprintf("Document \"%s\" deleted successfully.", doc.Title), nil)
}
