// internal/app/features/gallery/list.go
package gallery

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"github.com/dalemusser/auxilium/internal/app/system/timeouts"
	"github.com/dalemusser/auxilium/internal/domain/models"
)

// List handles GET /api/gallery and GET /admin/gallery, newest first.
// ?type=photo or ?type=video narrows the list; other values are ignored.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	kind := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type")))
	if !models.IsValidGalleryType(kind) {
		kind = ""
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	items, err := h.Items.List(ctx, kind)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list gallery failed", err, "Error fetching gallery")
		return
	}
	respond.OK(w, "", respond.M{"items": items})
}
