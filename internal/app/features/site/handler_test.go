package site_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dalemusser/auxilium/internal/app/features/site"
	"go.uber.org/zap"
)

func newSite(t *testing.T) *site.Handler {
	t.Helper()
	dir := t.TempDir()
	write := func(name, body string) {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("index.html", "<html>home</html>")
	write("js/script.js", "console.log('hi')")
	return site.NewHandler(dir, zap.NewNop())
}

func TestServeHTTP(t *testing.T) {
	h := newSite(t)

	tests := []struct {
		name   string
		method string
		path   string
		status int
		body   string
	}{
		{"root", "GET", "/", http.StatusOK, "home"},
		{"asset", "GET", "/js/script.js", http.StatusOK, "console.log"},
		{"client route", "GET", "/gallery/photos", http.StatusOK, "home"},
		{"directory", "GET", "/js", http.StatusOK, "home"},
		{"traversal", "GET", "/../../etc/passwd", http.StatusOK, "home"},
		{"post", "POST", "/", http.StatusMethodNotAllowed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.body != "" && !strings.Contains(rec.Body.String(), tt.body) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.body)
			}
		})
	}
}

func TestServeHTTP_NoIndex(t *testing.T) {
	h := site.NewHandler(t.TempDir(), zap.NewNop())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/anything", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestServeHTTP_ReservedPathsAnswerJSON(t *testing.T) {
	h := newSite(t)

	for _, tc := range []struct{ method, path string }{
		{"GET", "/api/unknown"},
		{"GET", "/api"},
		{"GET", "/admin/unknown"},
		{"POST", "/api/unknown"},
		{"DELETE", "/admin/nothing/1"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			if rec.Code != http.StatusNotFound {
				t.Fatalf("status = %d, want 404", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			var body struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v (body %q)", err, rec.Body.String())
			}
			if body.Success || body.Message != site.MsgNotFound {
				t.Errorf("body = %+v", body)
			}
		})
	}
}
