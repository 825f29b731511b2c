package login_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apierrors "github.com/dalemusser/auxilium/internal/app/features/errors"
	"github.com/dalemusser/auxilium/internal/app/features/login"
	"github.com/dalemusser/auxilium/internal/app/store/activity"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/dalemusser/auxilium/internal/app/system/ratelimit"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"github.com/dalemusser/auxilium/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const testKey = "test-session-key-for-testing-only-0123456789"

func newHandler(t *testing.T, limiter *ratelimit.LoginLimiter) (*login.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	sm, err := auth.NewSessionManager(testKey, "test-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	if limiter != nil {
		t.Cleanup(limiter.Stop)
	}
	act := activitylog.New(activity.New(db), zap.NewNop(), activitylog.DestDB)
	return login.NewHandler(db, sm, limiter, act, nil, apierrors.NewErrorLogger(zap.NewNop()), zap.NewNop()), db
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			return c
		}
	}
	return nil
}

func TestHandleLogin_JSONSuccess(t *testing.T) {
	h, db := newHandler(t, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	u := testutil.NewFixtures(t, db).CreateAdmin(ctx, "office")

	req := testutil.JSONRequest("POST", "/admin/login", `{"username":"Office","password":"password123"}`)
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	body := testutil.AssertEnvelope(t, rec, http.StatusOK, true, login.MsgSuccess)
	user, _ := body["user"].(map[string]any)
	if user["username"] != "office" || user["role"] != models.RoleAdmin {
		t.Errorf("user = %v", user)
	}
	if sessionCookie(rec) == nil {
		t.Error("expected a session cookie")
	}

	got, err := h.Users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.LastLogin == nil {
		t.Error("last login was not recorded")
	}

	logs, _ := activity.New(db).Recent(ctx, 5)
	if len(logs) != 1 || logs[0].Action != activitylog.Login || logs[0].Details != "Admin login successful. Username: office" {
		t.Errorf("activity = %+v", logs)
	}
}

func TestHandleLogin_BrowserRedirects(t *testing.T) {
	h, db := newHandler(t, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	testutil.NewFixtures(t, db).CreateSuperAdmin(ctx, "principal")

	tests := []struct {
		name     string
		password string
		location string
	}{
		{"success", "password123", "/admin"},
		{"wrong password", "nope", "/admin?error=true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.FormRequest("POST", "/admin/login", "username=principal&password="+tt.password)
			req.Header.Set("Accept", "text/html")
			rec := httptest.NewRecorder()
			h.HandleLogin(rec, req)

			if rec.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want 303", rec.Code)
			}
			if loc := rec.Header().Get("Location"); loc != tt.location {
				t.Errorf("Location = %q, want %q", loc, tt.location)
			}
		})
	}
}

func TestHandleLogin_Rejected(t *testing.T) {
	h, db := newHandler(t, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	fx.CreateAdmin(ctx, "office")
	fx.CreateUser(ctx, "visitor", "password123", models.RoleGuest)

	tests := []struct {
		name string
		body string
	}{
		{"unknown user", `{"username":"ghost","password":"password123"}`},
		{"wrong password", `{"username":"office","password":"wrong-password"}`},
		{"guest role", `{"username":"visitor","password":"password123"}`},
		{"empty", `{"username":"","password":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.HandleLogin(rec, testutil.JSONRequest("POST", "/admin/login", tt.body))
			testutil.AssertEnvelope(t, rec, http.StatusUnauthorized, false, login.MsgInvalid)
			if sessionCookie(rec) != nil {
				t.Error("no session cookie expected")
			}
		})
	}

	logs, _ := activity.New(db).Recent(ctx, 5)
	if len(logs) != 0 {
		t.Errorf("activity = %+v, want none", logs)
	}
}

func TestHandleLogin_RateLimitedPerUsername(t *testing.T) {
	h, db := newHandler(t, ratelimit.NewLoginLimiter(100, 2))
	ctx, cancel := testutil.TestContext()
	defer cancel()
	testutil.NewFixtures(t, db).CreateAdmin(ctx, "office")

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.HandleLogin(rec, testutil.JSONRequest("POST", "/admin/login", `{"username":"office","password":"bad"}`))
		testutil.AssertEnvelope(t, rec, http.StatusUnauthorized, false, login.MsgInvalid)
	}

	// The right password is refused while the account is throttled.
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, testutil.JSONRequest("POST", "/admin/login", `{"username":"office","password":"password123"}`))
	testutil.AssertEnvelope(t, rec, http.StatusBadRequest, false, ratelimit.MsgTooManyForUser)
}

func TestHandleLogin_SuccessClearsUserCounter(t *testing.T) {
	h, db := newHandler(t, ratelimit.NewLoginLimiter(100, 2))
	ctx, cancel := testutil.TestContext()
	defer cancel()
	testutil.NewFixtures(t, db).CreateAdmin(ctx, "office")

	rec := httptest.NewRecorder()
	h.HandleLogin(rec, testutil.JSONRequest("POST", "/admin/login", `{"username":"office","password":"bad"}`))
	testutil.AssertEnvelope(t, rec, http.StatusUnauthorized, false, "")

	rec = httptest.NewRecorder()
	h.HandleLogin(rec, testutil.JSONRequest("POST", "/admin/login", `{"username":"office","password":"password123"}`))
	testutil.AssertEnvelope(t, rec, http.StatusOK, true, "")

	for i := 0; i < 2; i++ {
		rec = httptest.NewRecorder()
		h.HandleLogin(rec, testutil.JSONRequest("POST", "/admin/login", `{"username":"office","password":"password123"}`))
		testutil.AssertEnvelope(t, rec, http.StatusOK, true, "")
	}
}
