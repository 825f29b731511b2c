package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"github.com/dalemusser/auxilium/internal/app/system/timeouts"
	"github.com/dalemusser/auxilium/internal/domain/models"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	DefaultSessionName = "auxilium-admin"

	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
)

// Messages returned to API callers that fail an access check.
const (
	MsgUnauthorized = "Unauthorized"
	MsgForbidden    = "Forbidden: Superadmin access required"
)

// LoginPath is where browsers are sent when they may not see a page.
const LoginPath = "/admin"

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is the signed-in user injected into r.Context(). It is
// re-read from the users collection on every request so role changes and
// deletions take effect immediately.
type SessionUser struct {
	ID       string
	Username string
	Role     string
}

// IsAdmin reports whether the user may use the admin panel.
func (u *SessionUser) IsAdmin() bool {
	return u != nil && (u.Role == models.RoleAdmin || u.Role == models.RoleSuperAdmin)
}

// IsSuperAdmin reports whether the user may manage other admins.
func (u *SessionUser) IsSuperAdmin() bool {
	return u != nil && u.Role == models.RoleSuperAdmin
}

// UserFetcher loads a session user by id. It returns (nil, nil) when the
// user no longer exists.
type UserFetcher interface {
	FetchSessionUser(ctx context.Context, id string) (*SessionUser, error)
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok && u != nil
}

// WithTestUser injects u the way LoadSessionUser does. Handler tests use it
// to skip the session round trip.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager reads and writes the admin session and guards routes.
type SessionManager struct {
	store   sessions.Store
	name    string
	fetcher UserFetcher
	log     *zap.Logger
}

// Options returns cookie options for the admin session. Secure cookies are
// used in production; plain http://localhost needs secure=false.
func Options(domain string, maxAge time.Duration, secure bool) *sessions.Options {
	return &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// NewSessionManager builds a manager over a signed cookie store. Production
// uses NewWithStore with the MongoDB store instead.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if err := checkKey(sessionKey, logger); err != nil {
		return nil, err
	}
	cs := sessions.NewCookieStore([]byte(sessionKey))
	cs.Options = Options(domain, maxAge, secure)
	cs.MaxAge(cs.Options.MaxAge)
	return NewWithStore(cs, name, logger), nil
}

// NewWithStore wraps an existing gorilla store.
func NewWithStore(store sessions.Store, name string, logger *zap.Logger) *SessionManager {
	if name == "" {
		name = DefaultSessionName
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{store: store, name: name, log: logger}
}

func checkKey(sessionKey string, logger *zap.Logger) error {
	if sessionKey == "" {
		return errors.New("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 && logger != nil {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	return nil
}

// CheckKey validates a session key for stores built outside this package.
func CheckKey(sessionKey string, logger *zap.Logger) error {
	return checkKey(sessionKey, logger)
}

// SetUserFetcher wires the users store in after construction.
func (sm *SessionManager) SetUserFetcher(f UserFetcher) {
	sm.fetcher = f
}

// Name returns the cookie name.
func (sm *SessionManager) Name() string { return sm.name }

// LoadSessionUser injects the user into context if they are logged in and
// still exist.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			sm.log.Warn("session load failed", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		isAuth, _ := sess.Values[isAuthKey].(bool)
		id, _ := sess.Values[userIDKey].(string)
		if !isAuth || id == "" || sm.fetcher == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		u, err := sm.fetcher.FetchSessionUser(ctx, id)
		cancel()
		switch {
		case err != nil:
			sm.log.Error("session user lookup failed", zap.String("user_id", id), zap.Error(err))
		case u != nil:
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin lets admins and superadmins through. Others get a JSON 401
// or, in a browser, a redirect to the login page.
func (sm *SessionManager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := CurrentUser(r); ok && u.IsAdmin() {
			next.ServeHTTP(w, r)
			return
		}
		if wantsJSON(r) {
			respond.Unauthorized(w, MsgUnauthorized)
			return
		}
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
	})
}

// RequireSuperAdmin lets only superadmins through. Others get a JSON 403
// or a redirect to the dashboard.
func (sm *SessionManager) RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := CurrentUser(r); ok && u.IsSuperAdmin() {
			next.ServeHTTP(w, r)
			return
		}
		if wantsJSON(r) {
			respond.Forbidden(w, MsgForbidden)
			return
		}
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
	})
}

// NoCache stops browsers from showing admin pages from history after
// logout.
func NoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

// idResetter is implemented by stores that keep server-side records, so a
// login can move to a fresh id.
type idResetter interface {
	Delete(ctx context.Context, id string) error
}

// Login marks the session as belonging to userID. Server-side sessions get
// a new id so a pre-login cookie cannot be reused.
func (sm *SessionManager) Login(w http.ResponseWriter, r *http.Request, userID string) error {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil && sess == nil {
		return fmt.Errorf("get session: %w", err)
	}
	if del, ok := sm.store.(idResetter); ok && sess.ID != "" {
		if err := del.Delete(r.Context(), sess.ID); err != nil {
			sm.log.Warn("old session delete failed", zap.Error(err))
		}
		sess.ID = ""
	}
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = userID
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Logout destroys the session.
func (sm *SessionManager) Logout(w http.ResponseWriter, r *http.Request) error {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil && sess == nil {
		return fmt.Errorf("get session: %w", err)
	}
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// ErrNotSignedIn is returned by Touch for a session without a user.
var ErrNotSignedIn = errors.New("auth: not signed in")

// Touch saves the session again so the cookie and the stored record get a
// fresh expiry, which it returns.
func (sm *SessionManager) Touch(w http.ResponseWriter, r *http.Request) (time.Time, error) {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil && sess == nil {
		return time.Time{}, fmt.Errorf("get session: %w", err)
	}
	if ok, _ := sess.Values[isAuthKey].(bool); !ok {
		return time.Time{}, ErrNotSignedIn
	}
	if err := sess.Save(r, w); err != nil {
		return time.Time{}, fmt.Errorf("save session: %w", err)
	}
	return time.Now().UTC().Add(time.Duration(sess.Options.MaxAge) * time.Second), nil
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// wantsJSON treats XHR calls, JSON Accept headers and clients that do not
// ask for HTML as API callers.
func wantsJSON(r *http.Request) bool {
	if r.Header.Get("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "json") {
		return true
	}
	return !strings.Contains(accept, "text/html")
}

// WantsJSON is wantsJSON for handlers that choose between a redirect and a
// JSON body themselves.
func WantsJSON(r *http.Request) bool {
	return wantsJSON(r)
}
