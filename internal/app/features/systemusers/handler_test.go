package systemusers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apierrors "github.com/dalemusser/auxilium/internal/app/features/errors"
	"github.com/dalemusser/auxilium/internal/app/features/systemusers"
	"github.com/dalemusser/auxilium/internal/app/store/activity"
	"github.com/dalemusser/auxilium/internal/app/store/sessions"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"github.com/dalemusser/auxilium/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*systemusers.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	act := activitylog.New(activity.New(db), zap.NewNop(), activitylog.DestDB)
	sess := sessions.New(db, []byte("test-session-key-must-be-32-chars-long"))
	return systemusers.NewHandler(db, sess, act, apierrors.NewErrorLogger(zap.NewNop()), zap.NewNop()), db
}

// signIn stores a session belonging to userID.
func signIn(t *testing.T, store *sessions.Store, userID string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	sess, err := store.Get(req, "auxilium-admin")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	sess.Values["user_id"] = userID
	if err := sess.Save(req, httptest.NewRecorder()); err != nil {
		t.Fatalf("save session: %v", err)
	}
}

func TestCreate(t *testing.T) {
	h, db := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	testutil.NewFixtures(t, db).CreateAdmin(ctx, "office")
	super := testutil.SuperAdminUser()

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"ok", `{"username":"clerk","password":"longenough"}`, http.StatusOK, "Admin user 'clerk' created successfully!"},
		{"missing password", `{"username":"clerk2"}`, http.StatusBadRequest, "Username and password are required."},
		{"missing username", `{"password":"longenough"}`, http.StatusBadRequest, "Username and password are required."},
		{"short password", `{"username":"clerk3","password":"short"}`, http.StatusBadRequest, "Password must be at least 8 characters."},
		{"duplicate folded", `{"username":"OFFICE","password":"longenough"}`, http.StatusConflict, "User already exists."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.WithUser(testutil.JSONRequest("POST", "/admin/create-user", tt.body), super)
			rec := httptest.NewRecorder()
			h.Create(rec, req)
			testutil.AssertEnvelope(t, rec, tt.status, tt.status == http.StatusOK, tt.message)
		})
	}

	u, err := h.Users.GetByUsername(ctx, "clerk")
	if err != nil {
		t.Fatalf("created user not found: %v", err)
	}
	if u.Role != models.RoleAdmin {
		t.Errorf("role = %q, want admin", u.Role)
	}

	logs, _ := activity.New(db).Recent(ctx, 10)
	if len(logs) != 1 || logs[0].Action != activitylog.UserCreated {
		t.Errorf("activity = %+v", logs)
	} else if want := "New admin user 'clerk' created by " + super.Username + "."; logs[0].Details != want {
		t.Errorf("details = %q, want %q", logs[0].Details, want)
	}
}

func TestDelete(t *testing.T) {
	h, db := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	me := fx.CreateSuperAdmin(ctx, "principal")
	other := fx.CreateSuperAdmin(ctx, "owner")
	admin := fx.CreateAdmin(ctx, "office")
	signIn(t, h.Sessions, admin.ID.Hex())

	tests := []struct {
		name    string
		id      string
		status  int
		message string
	}{
		{"self", me.ID.Hex(), http.StatusForbidden, "Cannot delete your own account while logged in."},
		{"bad id", "nope", http.StatusBadRequest, "Invalid user ID format."},
		{"missing", primitive.NewObjectID().Hex(), http.StatusNotFound, "User not found."},
		{"superadmin", other.ID.Hex(), http.StatusForbidden, "Cannot delete a Superadmin account."},
		{"admin", admin.ID.Hex(), http.StatusOK, "Admin user 'office' deleted successfully."},
		{"already gone", admin.ID.Hex(), http.StatusNotFound, "User not found."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewRequest("DELETE", "/admin/users/"+tt.id)
			req = testutil.WithUser(req, testutil.UserFrom(me))
			req = testutil.WithChiURLParam(req, "id", tt.id)
			rec := httptest.NewRecorder()
			h.Delete(rec, req)
			testutil.AssertEnvelope(t, rec, tt.status, tt.status == http.StatusOK, tt.message)
		})
	}

	logs, _ := activity.New(db).Recent(ctx, 10)
	if len(logs) != 1 || logs[0].Action != activitylog.UserDeleted {
		t.Errorf("activity = %+v", logs)
	}
	if n, _ := h.Sessions.Count(ctx); n != 0 {
		t.Errorf("sessions left for deleted user = %d", n)
	}
}

func TestList(t *testing.T) {
	h, db := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	fx.CreateAdmin(ctx, "office")
	fx.CreateSuperAdmin(ctx, "principal")
	fx.CreateUser(ctx, "visitor", "password123", models.RoleGuest)

	req := testutil.WithUser(testutil.NewRequest("GET", "/admin/users"), testutil.SuperAdminUser())
	rec := httptest.NewRecorder()
	h.List(rec, req)

	body := testutil.AssertEnvelope(t, rec, http.StatusOK, true, "")
	users, _ := body["users"].([]any)
	if len(users) != 2 {
		t.Fatalf("users = %v, want office and principal", users)
	}
	first, _ := users[0].(map[string]any)
	if first["username"] != "office" {
		t.Errorf("first = %v, want office (sorted by username)", first)
	}
	if _, leaked := first["password_hash"]; leaked {
		t.Error("password hash exposed")
	}
	if body["currentUserRole"] != models.RoleSuperAdmin {
		t.Errorf("currentUserRole = %v", body["currentUserRole"])
	}
}

func TestRoutes_SuperAdminOnly(t *testing.T) {
	h, _ := newHandler(t)
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only-0123456789", "test-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	r := chi.NewRouter()
	systemusers.Routes(r, h, sm)

	req := testutil.WithUser(testutil.JSONRequest("GET", "/users", ""), testutil.AdminUser())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	testutil.AssertEnvelope(t, rec, http.StatusForbidden, false, auth.MsgForbidden)
}
