package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/auxilium/internal/app/system/metrics"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := metrics.New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/admin/alumni/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin/alumni/"+id, nil))
	}

	out := scrape(t, m)
	want := `auxilium_http_requests_total{method="GET",route="/admin/alumni/{id}",status="404"} 2`
	if !strings.Contains(out, want) {
		t.Errorf("missing %q in:\n%s", want, out)
	}
}

func TestCounters(t *testing.T) {
	m := metrics.New()
	m.Login("ok")
	m.Login("invalid")
	m.Upload("alumni_profiles", true)
	m.Submission("contact", false)

	out := scrape(t, m)
	for _, want := range []string{
		`auxilium_admin_logins_total{result="ok"} 1`,
		`auxilium_admin_logins_total{result="invalid"} 1`,
		`auxilium_media_uploads_total{folder="alumni_profiles",result="ok"} 1`,
		`auxilium_form_submissions_total{form="contact",result="error"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *metrics.Metrics
	m.Login("ok")
	m.Upload("x", false)
	m.Submission("contact", true)

	called := false
	h := m.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Error("nil middleware should pass through")
	}
}
