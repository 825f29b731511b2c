// internal/app/features/results/handler.go
package results

import (
	"math"
	"strconv"
	"strings"

	apierrors "github.com/dalemusser/auxilium/internal/app/features/errors"
	resultstore "github.com/dalemusser/auxilium/internal/app/store/results"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/formutil"
	"github.com/dalemusser/auxilium/internal/app/system/media"
	"github.com/dalemusser/auxilium/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// FileField is the multipart field carrying the student's photo.
const FileField = "photo"

type Handler struct {
	Results  *resultstore.Store
	Media    media.Uploader
	Activity *activitylog.Logger
	Metrics  *metrics.Metrics
	ErrLog   *apierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, up media.Uploader, activity *activitylog.Logger, m *metrics.Metrics, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Results:  resultstore.New(db),
		Media:    up,
		Activity: activity,
		Metrics:  m,
		ErrLog:   errLog,
		Log:      logger,
	}
}

type resultInput struct {
	Type        string  `validate:"required,oneof=ICSE ISC" label:"Type"`
	StudentName string  `validate:"required,max=100" label:"Student name"`
	Percentage  float64 `validate:"gte=0,lte=100" label:"Percentage"`
}

// readInput returns the input and whether the percentage parsed as a
// number between 0 and 100.
func readInput(v formutil.Values) (resultInput, bool) {
	in := resultInput{
		Type:        strings.ToUpper(v.Get("type")),
		StudentName: v.Get("studentName"),
	}
	p, err := strconv.ParseFloat(v.Get("percentage"), 64)
	if err != nil || math.IsNaN(p) || p < 0 || p > 100 {
		return in, false
	}
	in.Percentage = p
	return in, true
}

func pct(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
