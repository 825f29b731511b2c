// internal/app/features/alumni/handler.go
package alumni

import (
	apierrors "github.com/dalemusser/auxilium/internal/app/features/errors"
	alumnistore "github.com/dalemusser/auxilium/internal/app/store/alumni"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/media"
	"github.com/dalemusser/auxilium/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	// FileField is the multipart field carrying the portrait.
	FileField = "profilePhoto"
	folder    = "alumni_profiles"
)

var photoTransform = media.Fill(400, 400, true)

type Handler struct {
	Alumni   *alumnistore.Store
	Media    media.Uploader
	Activity *activitylog.Logger
	Metrics  *metrics.Metrics
	ErrLog   *apierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, up media.Uploader, activity *activitylog.Logger, m *metrics.Metrics, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Alumni:   alumnistore.New(db),
		Media:    up,
		Activity: activity,
		Metrics:  m,
		ErrLog:   errLog,
		Log:      logger,
	}
}

// profileInput holds the editable text of a profile.
type profileInput struct {
	Name               string `validate:"required,max=100" label:"Name"`
	TitleOrAchievement string `validate:"required,max=150" label:"Title or achievement"`
	Description        string `validate:"required,max=1000" label:"Description"`
	GraduationYear     string `validate:"max=20" label:"Graduation year"`
}
