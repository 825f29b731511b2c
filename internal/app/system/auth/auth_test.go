package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"go.uber.org/zap"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		24*time.Hour,
		false,
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

type fakeFetcher map[string]*auth.SessionUser

func (f fakeFetcher) FetchSessionUser(_ context.Context, id string) (*auth.SessionUser, error) {
	if id == "broken" {
		return nil, errors.New("db down")
	}
	return f[id], nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "s", "", time.Hour, false, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty session key")
	}
}

func TestRequireAdmin_NoUser_API_Returns401JSON(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireAdmin(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/admin/applications", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	body := decodeMessage(t, rec)
	if body["success"] != false || body["message"] != auth.MsgUnauthorized {
		t.Errorf("body = %v", body)
	}
}

func TestRequireAdmin_NoUser_Browser_Redirects(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireAdmin(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/admin/applications", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != auth.LoginPath {
		t.Errorf("Location = %q", loc)
	}
}

func TestRequireAdmin_XHRWithHTMLAccept_GetsJSON(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireAdmin(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/admin/applications", nil)
	req.Header.Set("Accept", "text/html")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireAdmin_Roles(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireAdmin(okHandler())

	tests := []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"superadmin", http.StatusOK},
		{"guest", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/applications", nil)
			req = auth.WithTestUser(req, &auth.SessionUser{ID: "1", Username: "u", Role: tt.role})
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("role %s: got %d, want %d", tt.role, rec.Code, tt.want)
			}
		})
	}
}

func TestRequireSuperAdmin(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireSuperAdmin(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "1", Username: "a", Role: "admin"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("admin: expected %d, got %d", http.StatusForbidden, rec.Code)
	}
	if body := decodeMessage(t, rec); body["message"] != auth.MsgForbidden {
		t.Errorf("body = %v", body)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "2", Username: "s", Role: "superadmin"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("superadmin: expected 200, got %d", rec.Code)
	}
}

func TestNoCache(t *testing.T) {
	rec := httptest.NewRecorder()
	auth.NoCache(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if rec.Header().Get("Cache-Control") == "" || rec.Header().Get("Pragma") != "no-cache" || rec.Header().Get("Expires") != "0" {
		t.Errorf("headers = %v", rec.Header())
	}
}

// loginCookies signs userID in and returns the cookies the browser would keep.
func loginCookies(t *testing.T, sm *auth.SessionManager, userID string) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
	if err := sm.Login(rec, req, userID); err != nil {
		t.Fatalf("Login: %v", err)
	}
	return rec.Result().Cookies()
}

func TestLoadSessionUser_FetchesCurrentUser(t *testing.T) {
	sm := newTestSessionManager(t)
	sm.SetUserFetcher(fakeFetcher{"u1": {ID: "u1", Username: "principal", Role: "superadmin"}})
	cookies := loginCookies(t, sm, "u1")

	var got *auth.SessionUser
	handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil || got.Username != "principal" || !got.IsSuperAdmin() {
		t.Fatalf("CurrentUser = %+v", got)
	}
}

func TestLoadSessionUser_DeletedUserIsAnonymous(t *testing.T) {
	sm := newTestSessionManager(t)
	sm.SetUserFetcher(fakeFetcher{})

	for _, id := range []string{"gone", "broken"} {
		cookies := loginCookies(t, sm, id)
		found := true
		handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, found = auth.CurrentUser(r)
		}))
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if found {
			t.Errorf("%s: expected no current user", id)
		}
	}
}

func TestLogout_ExpiresCookie(t *testing.T) {
	sm := newTestSessionManager(t)
	cookies := loginCookies(t, sm, "u1")

	req := httptest.NewRequest(http.MethodGet, "/admin/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	if err := sm.Logout(rec, req); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	out := rec.Result().Cookies()
	if len(out) != 1 || out[0].MaxAge >= 0 {
		t.Errorf("expected an expired cookie, got %+v", out)
	}
}

func TestTouch(t *testing.T) {
	sm := newTestSessionManager(t)

	rec := httptest.NewRecorder()
	if _, err := sm.Touch(rec, httptest.NewRequest(http.MethodPost, "/admin/heartbeat", nil)); !errors.Is(err, auth.ErrNotSignedIn) {
		t.Fatalf("Touch without login = %v, want ErrNotSignedIn", err)
	}

	cookies := loginCookies(t, sm, "u1")
	req := httptest.NewRequest(http.MethodPost, "/admin/heartbeat", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	expires, err := sm.Touch(rec, req)
	if err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if d := time.Until(expires); d < 23*time.Hour || d > 25*time.Hour {
		t.Errorf("expiry in %v, want about 24h", d)
	}
	if out := rec.Result().Cookies(); len(out) != 1 || out[0].MaxAge <= 0 {
		t.Errorf("expected a refreshed cookie, got %+v", out)
	}
}

func TestSessionUserRoles(t *testing.T) {
	var nilUser *auth.SessionUser
	if nilUser.IsAdmin() || nilUser.IsSuperAdmin() {
		t.Error("nil user must not be admin")
	}
	if !(&auth.SessionUser{Role: "admin"}).IsAdmin() {
		t.Error("admin should be admin")
	}
	if (&auth.SessionUser{Role: "admin"}).IsSuperAdmin() {
		t.Error("admin should not be superadmin")
	}
}
