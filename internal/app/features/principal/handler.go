// internal/app/features/principal/handler.go
package principal

import (
	apierrors "github.com/dalemusser/auxilium/internal/app/features/errors"
	principalstore "github.com/dalemusser/auxilium/internal/app/store/principal"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/media"
	"github.com/dalemusser/auxilium/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// FileField is the multipart field carrying the principal's photo.
const FileField = "principalPhoto"

const folder = "principal_message"

type Handler struct {
	Messages *principalstore.Store
	Media    media.Uploader
	Activity *activitylog.Logger
	Metrics  *metrics.Metrics
	ErrLog   *apierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, up media.Uploader, activity *activitylog.Logger, m *metrics.Metrics, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Messages: principalstore.New(db),
		Media:    up,
		Activity: activity,
		Metrics:  m,
		ErrLog:   errLog,
		Log:      logger,
	}
}

type messageInput struct {
	PrincipalName string `validate:"required,max=100" label:"Principal name"`
	MessageText   string `validate:"required" label:"Message"`
	Qualification string `validate:"max=150" label:"Qualification"`
	FromYear      string `validate:"max=10" label:"From year"`
	ToYear        string `validate:"max=10" label:"To year"`
}
