// internal/app/features/disclosure/handler.go
package disclosure

import (
	"strings"

	apierrors "github.com/dalemusser/auxilium/internal/app/features/errors"
	disclosurestore "github.com/dalemusser/auxilium/internal/app/store/disclosures"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/media"
	"github.com/dalemusser/auxilium/internal/app/system/metrics"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// FileField is the multipart field carrying the certificate.
const FileField = "documentFile"

type Handler struct {
	Documents *disclosurestore.Store
	Media     media.Uploader
	Activity  *activitylog.Logger
	Metrics   *metrics.Metrics
	ErrLog    *apierrors.ErrorLogger
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, up media.Uploader, activity *activitylog.Logger, m *metrics.Metrics, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Documents: disclosurestore.New(db),
		Media:     up,
		Activity:  activity,
		Metrics:   m,
		ErrLog:    errLog,
		Log:       logger,
	}
}

type documentInput struct {
	Title string `validate:"required,max=100" label:"Title"`
	Type  string `validate:"required,disclosure_type" label:"Document type"`
}

// assetOf returns the stored file of d. Documents saved before the resource
// type was recorded are treated as raw when the URL names a PDF.
func assetOf(d models.DisclosureDocument) media.Asset {
	def := media.KindImage
	u := strings.ToLower(d.CloudinaryURL)
	if strings.HasSuffix(u, ".pdf") || strings.Contains(u, "f_pdf") {
		def = media.KindRaw
	}
	return media.AssetOf(d.Photo, def)
}
