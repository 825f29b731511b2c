// internal/app/features/gallery/handler.go
package gallery

import (
	apierrors "github.com/dalemusser/auxilium/internal/app/features/errors"
	gallerystore "github.com/dalemusser/auxilium/internal/app/store/gallery"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/media"
	"github.com/dalemusser/auxilium/internal/app/system/metrics"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// FileField is the multipart field carrying the photo or video.
const FileField = "mediaFile"

type Handler struct {
	Items    *gallerystore.Store
	Media    media.Uploader
	Activity *activitylog.Logger
	Metrics  *metrics.Metrics
	ErrLog   *apierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, up media.Uploader, activity *activitylog.Logger, m *metrics.Metrics, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Items:    gallerystore.New(db),
		Media:    up,
		Activity: activity,
		Metrics:  m,
		ErrLog:   errLog,
		Log:      logger,
	}
}

// kindOf maps a gallery type to the media resource type it is stored as.
func kindOf(galleryType string) media.Kind {
	if galleryType == models.GalleryVideo {
		return media.KindVideo
	}
	return media.KindImage
}
