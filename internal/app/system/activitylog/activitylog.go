// internal/app/system/activitylog/activitylog.go
package activitylog

import (
	"context"
	"net/http"

	"github.com/dalemusser/auxilium/internal/app/store/activity"
	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/dalemusser/auxilium/internal/app/system/ratelimit"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Admin actions recorded in the activity log.
const (
	Login  = "LOGIN"
	Logout = "LOGOUT"

	UserCreated = "USER_CREATED"
	UserDeleted = "USER_DELETED"

	AppDeleted = "APP_DELETED"
	MsgDeleted = "MSG_DELETED"

	GalleryUpload = "GALLERY_UPLOAD"
	GalleryUpdate = "GALLERY_UPDATE"
	GalleryDelete = "GALLERY_DELETE"

	AlumnusCreated = "ALUMNUS_CREATED"
	AlumnusUpdated = "ALUMNUS_UPDATED"
	AlumnusDeleted = "ALUMNUS_DELETED"

	FacultyCreated = "FACULTY_CREATED"
	FacultyUpdated = "FACULTY_UPDATED"
	FacultyDeleted = "FACULTY_DELETED"

	PrinMsgCreated = "PRIN_MSG_CREATED"
	PrinMsgUpdated = "PRIN_MSG_UPDATED"
	PrinMsgDeleted = "PRIN_MSG_DELETED"

	AchievementCreated = "ACHIEVEMENT_CREATED"
	AchievementUpdated = "ACHIEVEMENT_UPDATED"
	AchievementDeleted = "ACHIEVEMENT_DELETED"

	ResultCreated = "RESULT_CREATED"
	ResultUpdated = "RESULT_UPDATED"
	ResultDeleted = "RESULT_DELETED"

	DisclosureCreated = "DISCLOSURE_CREATED"
	DisclosureDeleted = "DISCLOSURE_DELETED"
)

// Destinations for the activity_log setting.
const (
	DestAll = "all" // MongoDB + zap
	DestDB  = "db"
	DestLog = "log"
	DestOff = "off"
)

// ValidDestination reports whether s is a known activity_log value.
func ValidDestination(s string) bool {
	switch s {
	case DestAll, DestDB, DestLog, DestOff:
		return true
	}
	return false
}

// Logger records admin actions. A nil *Logger is a no-op so handlers under
// test can run without one.
type Logger struct {
	store  *activity.Store
	zapLog *zap.Logger
	dest   string
}

// New creates a Logger writing to dest ("all", "db", "log" or "off").
func New(store *activity.Store, zapLog *zap.Logger, dest string) *Logger {
	if !ValidDestination(dest) {
		dest = DestAll
	}
	if zapLog == nil {
		zapLog = zap.NewNop()
	}
	return &Logger{store: store, zapLog: zapLog, dest: dest}
}

// Record logs action for the signed-in user. Without a user it does nothing.
func (l *Logger) Record(ctx context.Context, r *http.Request, action, details string) {
	if l == nil {
		return
	}
	u, ok := auth.CurrentUser(r)
	if !ok {
		return
	}
	l.RecordFor(ctx, r, u, action, details)
}

// RecordFor logs action for u. Login uses it before the session user is in
// the request context.
func (l *Logger) RecordFor(ctx context.Context, r *http.Request, u *auth.SessionUser, action, details string) {
	if l == nil || u == nil || l.dest == DestOff {
		return
	}
	uid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		l.zapLog.Warn("activity log skipped, bad user id", zap.String("user_id", u.ID), zap.String("action", action))
		return
	}
	entry := models.ActivityLog{
		UserID:   uid,
		Username: u.Username,
		Action:   action,
		Details:  details,
	}
	if r != nil {
		entry.IP = ratelimit.ClientIP(r)
	}

	if l.dest == DestAll || l.dest == DestLog {
		l.zapLog.Info("admin activity",
			zap.String("action", action),
			zap.String("user_id", u.ID),
			zap.String("username", u.Username),
			zap.String("ip", entry.IP),
			zap.String("details", details))
	}
	if (l.dest == DestAll || l.dest == DestDB) && l.store != nil {
		if err := l.store.Log(ctx, entry); err != nil {
			l.zapLog.Error("failed to store activity log",
				zap.Error(err),
				zap.String("action", action))
		}
	}
}
