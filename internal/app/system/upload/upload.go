// Package upload reads files out of multipart requests and enforces the
// per-field count and per-file size limits.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dalemusser/auxilium/internal/app/system/limits"
	"github.com/dalemusser/auxilium/internal/app/system/media"
)

var (
	// ErrBodyTooLarge means the whole request exceeded its cap.
	ErrBodyTooLarge = errors.New("request body too large")
	// ErrNotMultipart means the request did not carry a multipart form.
	ErrNotMultipart = errors.New("request is not multipart/form-data")
)

// LimitError reports a file that broke a size or count limit. Its message
// is safe to show to the client.
type LimitError struct {
	Field string
	msg   string
}

func (e *LimitError) Error() string { return e.msg }

// IsLimit reports whether err is a client-caused size or count violation.
func IsLimit(err error) bool {
	var le *LimitError
	return errors.As(err, &le) || errors.Is(err, ErrBodyTooLarge)
}

// File is one uploaded file.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Size        int64
	header      *multipart.FileHeader
}

// Open returns the file contents. Callers close it.
func (f *File) Open() (io.ReadCloser, error) {
	return f.header.Open()
}

// Rule limits how many files a field may carry.
type Rule struct {
	Field    string
	MaxCount int
}

// Parse reads the multipart form of r, capping the body at maxBody bytes.
func Parse(w http.ResponseWriter, r *http.Request, maxBody int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return ErrNotMultipart
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseMultipartForm(limits.MultipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large") {
			return ErrBodyTooLarge
		}
		return fmt.Errorf("parse multipart form: %w", err)
	}
	return nil
}

func newFile(field string, h *multipart.FileHeader) *File {
	return &File{
		Field:       field,
		Filename:    h.Filename,
		ContentType: h.Header.Get("Content-Type"),
		Size:        h.Size,
		header:      h,
	}
}

func checkSize(field string, h *multipart.FileHeader, maxSize int64) error {
	if maxSize > 0 && h.Size > maxSize {
		return &LimitError{
			Field: field,
			msg:   fmt.Sprintf("File %q in %s exceeds the %d MB limit.", h.Filename, field, maxSize>>20),
		}
	}
	return nil
}

// Single returns the one file in field, or nil when none was sent. More than
// one file or an oversized file is a LimitError.
func Single(r *http.Request, field string, maxSize int64) (*File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	hs := r.MultipartForm.File[field]
	switch len(hs) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, &LimitError{Field: field, msg: fmt.Sprintf("Only one file is allowed for %s.", field)}
	}
	if err := checkSize(field, hs[0], maxSize); err != nil {
		return nil, err
	}
	return newFile(field, hs[0]), nil
}

// Collect returns the files of every field named in rules, in rule order.
// Fields not named in rules are ignored.
func Collect(r *http.Request, rules []Rule, maxSize int64) ([]*File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	var out []*File
	for _, rule := range rules {
		hs := r.MultipartForm.File[rule.Field]
		if rule.MaxCount > 0 && len(hs) > rule.MaxCount {
			return nil, &LimitError{
				Field: rule.Field,
				msg:   fmt.Sprintf("Too many files for %s (max %d).", rule.Field, rule.MaxCount),
			}
		}
		for _, h := range hs {
			if err := checkSize(rule.Field, h, maxSize); err != nil {
				return nil, err
			}
			out = append(out, newFile(rule.Field, h))
		}
	}
	return out, nil
}

// Value returns the first value of a text field of the parsed form.
func Value(r *http.Request, key string) string {
	if r.MultipartForm != nil {
		if vs := r.MultipartForm.Value[key]; len(vs) > 0 {
			return vs[0]
		}
	}
	return r.FormValue(key)
}

// Values returns every text field of the parsed multipart form, first value
// per key.
func Values(r *http.Request) map[string]string {
	out := map[string]string{}
	if r.MultipartForm == nil {
		return out
	}
	for k, vs := range r.MultipartForm.Value {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}

// Store streams f to the media service. Filename and ContentType of in are
// filled from f when empty.
func Store(ctx context.Context, up media.Uploader, f *File, in media.UploadInput) (media.Asset, error) {
	rc, err := f.Open()
	if err != nil {
		return media.Asset{}, fmt.Errorf("open %s: %w", f.Field, err)
	}
	defer rc.Close()

	in.Reader = rc
	if in.Filename == "" {
		in.Filename = f.Filename
	}
	if in.ContentType == "" {
		in.ContentType = f.ContentType
	}
	return up.Upload(ctx, in)
}
