package userinfo_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/auxilium/internal/app/features/userinfo"
	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/dalemusser/auxilium/internal/testutil"
	"github.com/go-chi/chi/v5"
)

func TestServeUserInfo_Unauthenticated(t *testing.T) {
	rec := httptest.NewRecorder()
	userinfo.NewHandler().ServeUserInfo(rec, testutil.JSONRequest(http.MethodGet, "/admin/me", ""))

	body := testutil.AssertEnvelope(t, rec, http.StatusOK, true, "")
	if body["isAuthenticated"] != false {
		t.Errorf("isAuthenticated = %v, want false", body["isAuthenticated"])
	}
	if body["user"] != nil {
		t.Errorf("user = %v, want null", body["user"])
	}
}

func TestServeUserInfo_Authenticated(t *testing.T) {
	tests := []struct {
		name string
		user testutil.TestUser
	}{
		{"admin", testutil.AdminUser()},
		{"superadmin", testutil.SuperAdminUser()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.WithUser(testutil.JSONRequest(http.MethodGet, "/admin/me", ""), tt.user)
			rec := httptest.NewRecorder()
			userinfo.NewHandler().ServeUserInfo(rec, req)

			body := testutil.AssertEnvelope(t, rec, http.StatusOK, true, "")
			if body["isAuthenticated"] != true {
				t.Fatalf("isAuthenticated = %v, want true", body["isAuthenticated"])
			}
			u, _ := body["user"].(map[string]any)
			if u["username"] != tt.user.Username || u["role"] != tt.user.Role {
				t.Errorf("user = %v, want %+v", u, tt.user)
			}
		})
	}
}

func TestServeUserInfo_GuestIsAnonymous(t *testing.T) {
	req := auth.WithTestUser(testutil.JSONRequest(http.MethodGet, "/admin/me", ""),
		&auth.SessionUser{ID: "g1", Username: "visitor", Role: "guest"})
	rec := httptest.NewRecorder()
	userinfo.NewHandler().ServeUserInfo(rec, req)

	body := testutil.AssertEnvelope(t, rec, http.StatusOK, true, "")
	if body["isAuthenticated"] != false {
		t.Errorf("isAuthenticated = %v, want false", body["isAuthenticated"])
	}
}

func TestMountRoutes_NoCache(t *testing.T) {
	r := chi.NewRouter()
	userinfo.MountRoutes(r, userinfo.NewHandler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.JSONRequest(http.MethodGet, "/me", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("Cache-Control") == "" {
		t.Error("expected Cache-Control to be set")
	}
}
