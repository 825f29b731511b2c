// Package site serves the public website: static files from the public
// directory with index.html as the fallback for client-side routes.
package site

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"go.uber.org/zap"
)

// IndexFile is served for any path that is not a file on disk.
const IndexFile = "index.html"

// MsgNotFound is the JSON message for unknown API and admin paths.
const MsgNotFound = "Not found"

// Handler serves the public directory.
type Handler struct {
	Dir string
	Log *zap.Logger
}

func NewHandler(dir string, logger *zap.Logger) *Handler {
	return &Handler{Dir: dir, Log: logger}
}

// ServeHTTP serves the requested file when it exists, otherwise index.html.
// API and admin paths never fall back to the page; they get a JSON 404
// whatever the method.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if isReserved(r.URL.Path) {
		respond.NotFound(w, MsgNotFound)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if name, ok := h.file(r.URL.Path); ok {
		h.serve(w, r, name)
		return
	}
	h.serve(w, r, filepath.Join(h.Dir, IndexFile))
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, name string) {
	f, err := os.Open(name)
	if err != nil {
		h.Log.Warn("site file missing", zap.String("path", name), zap.Error(err))
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil || fi.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, fi.Name(), fi.ModTime(), f)
}

// file maps a URL path to a regular file inside Dir.
func (h *Handler) file(urlPath string) (string, bool) {
	clean := path.Clean("/" + urlPath)
	if clean == "/" {
		return "", false
	}
	name := filepath.Join(h.Dir, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
	fi, err := os.Stat(name)
	if err != nil || fi.IsDir() {
		return "", false
	}
	return name, true
}

func isReserved(p string) bool {
	for _, prefix := range []string{"/api/", "/admin/"} {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return p == "/api" || p == "/admin"
}
