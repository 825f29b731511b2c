// internal/app/features/activity/handler.go
package activity

import (
	"context"
	"strconv"

	apierrors "github.com/dalemusser/auxilium/internal/app/features/errors"
	"github.com/dalemusser/auxilium/internal/app/store/activity"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// Handler serves the activity log to superadmins.
type Handler struct {
	Activity *activity.Store
	ErrLog   *apierrors.ErrorLogger
	Log      *zap.Logger
}

// NewHandler creates a new activity Handler.
func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Activity: activity.New(db),
		ErrLog:   errLog,
		Log:      logger,
	}
}

// ParseLimit reads ?limit, falling back to DefaultLimit and capping at
// MaxLimit.
func ParseLimit(raw string) int64 {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return int64(n)
}

// filter selects which entries a request asks for.
type filter struct {
	user   primitive.ObjectID
	action string
	limit  int64
}

func (h *Handler) fetch(ctx context.Context, f filter) ([]models.ActivityLog, error) {
	switch {
	case !f.user.IsZero():
		return h.Activity.ByUser(ctx, f.user, f.limit)
	case f.action != "":
		return h.Activity.ByAction(ctx, f.action, f.limit)
	default:
		return h.Activity.Recent(ctx, f.limit)
	}
}
