// internal/app/features/systemusers/handler.go
package systemusers

import (
	apierrors "github.com/dalemusser/auxilium/internal/app/features/errors"
	"github.com/dalemusser/auxilium/internal/app/store/sessions"
	userstore "github.com/dalemusser/auxilium/internal/app/store/users"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves superadmin management of admin accounts.
type Handler struct {
	Users    *userstore.Store
	Sessions *sessions.Store // optional; a deleted admin's sessions are revoked
	Activity *activitylog.Logger
	ErrLog   *apierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, sess *sessions.Store, activity *activitylog.Logger, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    userstore.New(db),
		Sessions: sess,
		Activity: activity,
		ErrLog:   errLog,
		Log:      logger,
	}
}
