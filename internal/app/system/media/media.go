// Package media stores uploaded photos, videos and documents with a remote
// media service and hands back the URL and id the site keeps in MongoDB.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/dalemusser/auxilium/internal/domain/models"
	"go.uber.org/zap"
)

// Kind is the remote resource type an upload is stored as.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindRaw   Kind = "raw"
	KindAuto  Kind = "auto"
)

// Delivery types. Private uploads need a signed link to be read.
const (
	DeliveryPublic  = "upload"
	DeliveryPrivate = "authenticated"
)

// ErrNotConfigured is returned when no media credentials were supplied.
var ErrNotConfigured = errors.New("media: service not configured")

// UploadInput describes one file to store.
type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Folder      string
	Kind        Kind
	Private     bool
	Transform   string // e.g. Fill(400, 400, true)
}

// Asset identifies a stored file.
type Asset struct {
	URL          string
	PublicID     string
	ResourceType string
	Delivery     string
}

// Uploader is implemented by Cloudinary and by test fakes.
type Uploader interface {
	Upload(ctx context.Context, in UploadInput) (Asset, error)
	Delete(ctx context.Context, a Asset) error
	SignedDownloadURL(publicID, format string, ttl time.Duration) (string, error)
}

// IsPDF reports whether the file is a PDF by content type or extension.
func IsPDF(contentType, filename string) bool {
	if strings.Contains(strings.ToLower(contentType), "pdf") {
		return true
	}
	return strings.EqualFold(path.Ext(filename), ".pdf")
}

// KindFor picks the resource type for an uploaded document: PDFs are raw,
// images and videos keep their type, anything else is left to the service.
func KindFor(contentType, filename string) Kind {
	ct := strings.ToLower(contentType)
	switch {
	case IsPDF(contentType, filename):
		return KindRaw
	case strings.HasPrefix(ct, "image/"):
		return KindImage
	case strings.HasPrefix(ct, "video/"):
		return KindVideo
	default:
		return KindAuto
	}
}

// Fill returns a crop-to-fill transformation of w x h, centered on a face
// when face is true.
func Fill(w, h int, face bool) string {
	if face {
		return fmt.Sprintf("c_fill,g_face,h_%d,w_%d", h, w)
	}
	return fmt.Sprintf("c_fill,h_%d,w_%d", h, w)
}

// FolderSegment turns a trimmed label into a folder name by replacing each
// whitespace character with an underscore, so "A  B" becomes "A__B"
// ("Minority Certificate" → "Minority_Certificate").
func FolderSegment(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DeleteAll removes each asset, logging failures. It never returns an error;
// callers use it to clean up after a failed database write.
func DeleteAll(ctx context.Context, up Uploader, assets []Asset, log *zap.Logger) {
	for _, a := range assets {
		if a.PublicID == "" {
			continue
		}
		if err := up.Delete(ctx, a); err != nil && log != nil {
			log.Warn("media cleanup failed",
				zap.String("public_id", a.PublicID),
				zap.String("resource_type", a.ResourceType),
				zap.Error(err))
		}
	}
}

// Disabled rejects every call with ErrNotConfigured. It lets the site serve
// read-only pages in development without media credentials.
type Disabled struct{}

func (Disabled) Upload(context.Context, UploadInput) (Asset, error) { return Asset{}, ErrNotConfigured }
func (Disabled) Delete(context.Context, Asset) error                { return ErrNotConfigured }
func (Disabled) SignedDownloadURL(string, string, time.Duration) (string, error) {
	return "", ErrNotConfigured
}

// PhotoOf converts an uploaded asset into the reference stored on documents.
func PhotoOf(a Asset) models.Photo {
	return models.Photo{
		CloudinaryURL:      a.URL,
		CloudinaryPublicID: a.PublicID,
		ResourceType:       a.ResourceType,
	}
}

// AssetOf rebuilds the asset behind a stored photo. Documents saved without
// a resource type fall back to def.
func AssetOf(p models.Photo, def Kind) Asset {
	rt := p.ResourceType
	if rt == "" {
		rt = string(def)
	}
	return Asset{
		URL:          p.CloudinaryURL,
		PublicID:     p.CloudinaryPublicID,
		ResourceType: rt,
		Delivery:     DeliveryPublic,
	}
}

// AssetsOfApplication returns the private assets attached to an admission.
func AssetsOfApplication(a models.Application) []Asset {
	out := make([]Asset, 0, len(a.UploadedFilesInfo))
	for _, f := range a.UploadedFilesInfo {
		rt := f.ResourceType
		if rt == "" {
			rt = string(KindFor(f.MimeType, f.OriginalName))
			if rt == string(KindAuto) {
				rt = string(KindImage)
			}
		}
		out = append(out, Asset{
			URL:          f.CloudinaryURL,
			PublicID:     f.CloudinaryPublicID,
			ResourceType: rt,
			Delivery:     DeliveryPrivate,
		})
	}
	return out
}
