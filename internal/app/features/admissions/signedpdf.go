// internal/app/features/admissions/signedpdf.go
package admissions

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	msgMissingPublicID = "Missing publicId parameter."
	msgSignFailed      = "Error creating signed URL."
)

// SignedPDF handles GET /api/signed-pdf/{publicId...}. Public ids contain
// slashes, so the whole remaining path is the id.
func (h *Handler) SignedPDF(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "*")
	publicID, err := url.PathUnescape(raw)
	if err != nil {
		publicID = raw
	}
	publicID = strings.Trim(publicID, "/ ")
	if publicID == "" {
		respond.BadRequest(w, msgMissingPublicID)
		return
	}

	link, err := h.Media.SignedDownloadURL(publicID, "pdf", h.SignedURLTTL)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "signed url failed", err, msgSignFailed, zap.String("public_id", publicID))
		return
	}
	respond.OK(w, "", respond.M{"url": link})
}
