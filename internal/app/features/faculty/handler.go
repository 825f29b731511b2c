// internal/app/features/faculty/handler.go
package faculty

import (
	apierrors "github.com/dalemusser/auxilium/internal/app/features/errors"
	facultystore "github.com/dalemusser/auxilium/internal/app/store/faculty"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/media"
	"github.com/dalemusser/auxilium/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// FileField is the multipart field carrying the portrait.
const FileField = "profilePhoto"

const folder = "faculty_profiles"

type Handler struct {
	Faculty  *facultystore.Store
	Media    media.Uploader
	Activity *activitylog.Logger
	Metrics  *metrics.Metrics
	ErrLog   *apierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, up media.Uploader, activity *activitylog.Logger, m *metrics.Metrics, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Faculty:  facultystore.New(db),
		Media:    up,
		Activity: activity,
		Metrics:  m,
		ErrLog:   errLog,
		Log:      logger,
	}
}

type profileInput struct {
	Name                 string `validate:"required,max=100" label:"Name"`
	SubjectOrDesignation string `validate:"required,max=100" label:"Subject or designation"`
	Qualification        string `validate:"required,max=150" label:"Qualification"`
	Description          string `validate:"required,max=500" label:"Description"`
}
