// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"time"

	apierrors "github.com/dalemusser/auxilium/internal/app/features/errors"
	userstore "github.com/dalemusser/auxilium/internal/app/store/users"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/dalemusser/auxilium/internal/app/system/authutil"
	"github.com/dalemusser/auxilium/internal/app/system/formutil"
	"github.com/dalemusser/auxilium/internal/app/system/metrics"
	"github.com/dalemusser/auxilium/internal/app/system/ratelimit"
	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"github.com/dalemusser/auxilium/internal/app/system/timeouts"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	MsgInvalid      = "Invalid username or password."
	MsgSuccess      = "Login successful."
	msgBadRequest   = "Invalid login request."
	msgSessionError = "Unable to create session. Please try again."

	// Browser redirects after a failed attempt. The login page reads the
	// error flag to pick its message.
	failedPath  = auth.LoginPath + "?error=true"
	limitedPath = auth.LoginPath + "?error=limited"
)

type Handler struct {
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	Activity   *activitylog.Logger
	Metrics    *metrics.Metrics
	ErrLog     *apierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, sm *auth.SessionManager, limiter *ratelimit.LoginLimiter, activity *activitylog.Logger, m *metrics.Metrics, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      userstore.New(db),
		SessionMgr: sm,
		Limiter:    limiter,
		Activity:   activity,
		Metrics:    m,
		ErrLog:     errLog,
		Log:        logger,
	}
}

// HandleLogin handles POST /admin/login. Browsers are redirected back to the
// admin page; API callers get a JSON envelope.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	vals, err := formutil.Parse(w, r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "login: bad body", err, msgBadRequest)
		return
	}
	username := authutil.NormalizeUsername(vals.Get("username"))
	password := vals.Raw("password")

	if h.Limiter != nil {
		if msg, ok := h.Limiter.Check(r, username); !ok {
			h.Log.Warn("login rate limited",
				zap.String("username", username),
				zap.String("ip", ratelimit.ClientIP(r)))
			h.Metrics.Login("limited")
			h.fail(w, r, http.StatusBadRequest, msg, limitedPath)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.authenticate(ctx, username, password)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "login: user lookup failed", err, msgSessionError, zap.String("username", username))
		return
	}
	if u == nil {
		h.Log.Info("login rejected", zap.String("username", username), zap.String("ip", ratelimit.ClientIP(r)))
		h.Metrics.Login("invalid")
		h.fail(w, r, http.StatusUnauthorized, MsgInvalid, failedPath)
		return
	}

	if err := h.SessionMgr.Login(w, r, u.ID.Hex()); err != nil {
		h.ErrLog.LogServerError(w, r, "login: save session failed", err, msgSessionError, zap.String("username", u.Username))
		return
	}
	if h.Limiter != nil {
		h.Limiter.Succeeded(username)
	}
	if err := h.Users.TouchLastLogin(ctx, u.ID, time.Now()); err != nil {
		h.Log.Warn("login: last login not recorded", zap.Error(err), zap.String("user_id", u.ID.Hex()))
	}

	su := &auth.SessionUser{ID: u.ID.Hex(), Username: u.Username, Role: u.Role}
	h.Activity.RecordFor(ctx, r, su, activitylog.Login, "Admin login successful. Username: "+u.Username)
	h.Metrics.Login("ok")

	if !auth.WantsJSON(r) {
		http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
		return
	}
	respond.OK(w, MsgSuccess, respond.M{"user": respond.M{
		"_id":      u.ID.Hex(),
		"username": u.Username,
		"role":     u.Role,
	}})
}

// authenticate returns the account when the credentials match an admin or
// superadmin, nil when they do not, and an error only for lookup failures.
func (h *Handler) authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, nil
	}
	u, err := h.Users.GetByUsername(ctx, username)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !authutil.CheckPassword(password, u.PasswordHash) || !u.IsAdmin() {
		return nil, nil
	}
	return u, nil
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, msg, redirect string) {
	if auth.WantsJSON(r) {
		respond.Error(w, status, msg)
		return
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}
