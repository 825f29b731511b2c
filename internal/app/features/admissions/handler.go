// internal/app/features/admissions/handler.go
package admissions

import (
	"time"

	apierrors "github.com/dalemusser/auxilium/internal/app/features/errors"
	applicationstore "github.com/dalemusser/auxilium/internal/app/store/applications"
	contactstore "github.com/dalemusser/auxilium/internal/app/store/contacts"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/media"
	"github.com/dalemusser/auxilium/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultSignedURLTTL is how long a signed document link stays valid.
const DefaultSignedURLTTL = time.Hour

// Handler serves the public admission form and the admin inbox that lists
// admissions alongside contact messages.
type Handler struct {
	Applications *applicationstore.Store
	Contacts     *contactstore.Store
	Media        media.Uploader
	SignedURLTTL time.Duration
	Activity     *activitylog.Logger
	Metrics      *metrics.Metrics
	ErrLog       *apierrors.ErrorLogger
	Log          *zap.Logger
}

func NewHandler(db *mongo.Database, up media.Uploader, signedTTL time.Duration, activity *activitylog.Logger, m *metrics.Metrics, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if signedTTL <= 0 {
		signedTTL = DefaultSignedURLTTL
	}
	return &Handler{
		Applications: applicationstore.New(db),
		Contacts:     contactstore.New(db),
		Media:        up,
		SignedURLTTL: signedTTL,
		Activity:     activity,
		Metrics:      m,
		ErrLog:       errLog,
		Log:          logger,
	}
}
