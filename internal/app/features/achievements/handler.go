// internal/app/features/achievements/handler.go
package achievements

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	apierrors "github.com/dalemusser/auxilium/internal/app/features/errors"
	"github.com/dalemusser/auxilium/internal/app/features/shared"
	achievementstore "github.com/dalemusser/auxilium/internal/app/store/achievements"
	"github.com/dalemusser/auxilium/internal/app/store/storekit"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/app/system/formutil"
	"github.com/dalemusser/auxilium/internal/app/system/inputval"
	"github.com/dalemusser/auxilium/internal/app/system/limits"
	"github.com/dalemusser/auxilium/internal/app/system/media"
	"github.com/dalemusser/auxilium/internal/app/system/metrics"
	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"github.com/dalemusser/auxilium/internal/app/system/timeouts"
	"github.com/dalemusser/auxilium/internal/app/system/upload"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// FileField is the multipart field carrying the photo.
const FileField = "photo"

const (
	folder          = "achievements"
	msgListFailed   = "Error fetching achievements."
	msgMissing      = "Missing photo, title, or description."
	msgCreated      = "Achievement created successfully."
	msgCreateFailed = "Error creating achievement."
	msgNotFound     = "Achievement not found."
	msgUpdated      = "Achievement updated successfully."
	msgUpdateFailed = "Error updating achievement."
	msgBadID        = "Invalid achievement ID format."
	msgDeleteFailed = "Error deleting achievement."
)

type Handler struct {
	Achievements *achievementstore.Store
	Media        media.Uploader
	Activity     *activitylog.Logger
	Metrics      *metrics.Metrics
	ErrLog       *apierrors.ErrorLogger
	Log          *zap.Logger
}

func NewHandler(db *mongo.Database, up media.Uploader, activity *activitylog.Logger, m *metrics.Metrics, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Achievements: achievementstore.New(db),
		Media:        up,
		Activity:     activity,
		Metrics:      m,
		ErrLog:       errLog,
		Log:          logger,
	}
}

type achievementInput struct {
	Title       string `validate:"required,max=150" label:"Title"`
	Description string `validate:"required,max=1000" label:"Description"`
}

func inputFrom(v formutil.Values) achievementInput {
	return achievementInput{Title: v.Get("title"), Description: v.Get("description")}
}

// List handles GET /api/achievements and GET /admin/achievements.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Achievements.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list achievements failed", err, msgListFailed)
		return
	}
	respond.OK(w, "", respond.M{"achievements": list})
}

// Create handles POST /admin/achievements. Photos are cropped to a
// landscape 800x600.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	vals, ok := shared.ParseForm(w, r, h.ErrLog, limits.MaxProfilePhotoSize, msgCreateFailed)
	if !ok {
		return
	}
	file, ok := shared.File(w, r, FileField, limits.MaxProfilePhotoSize)
	if !ok {
		return
	}
	in := inputFrom(vals)
	if file == nil || in.Title == "" || in.Description == "" {
		respond.BadRequest(w, msgMissing)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.BadRequest(w, res.Join())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	asset, err := upload.Store(ctx, h.Media, file, media.UploadInput{
		Folder:    folder,
		Kind:      media.KindImage,
		Transform: media.Fill(800, 600, false),
	})
	h.Metrics.Upload(folder, err == nil)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "achievement photo upload failed", err, msgCreateFailed)
		return
	}

	a, err := h.Achievements.Create(ctx, models.Achievement{
		Title:       in.Title,
		Description: in.Description,
		Photo:       media.PhotoOf(asset),
	})
	if err != nil {
		shared.Cleanup(r, h.Media, h.Log, asset)
		h.ErrLog.LogServerError(w, r, "achievement insert failed", err, msgCreateFailed)
		return
	}

	h.Activity.Record(ctx, r, activitylog.AchievementCreated,
		fmt.Sprintf("Created new achievement: %s. ID: %s", a.Title, a.ID.Hex()))
	respond.OK(w, msgCreated, respond.M{"achievement": a})
}

// Update handles PUT /admin/achievements/{id}. The photo is not changed.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, msgBadID)
	if !ok {
		return
	}
	vals, ok := shared.ParseForm(w, r, h.ErrLog, limits.MaxJSONBody, msgUpdateFailed)
	if !ok {
		return
	}
	in := inputFrom(vals)
	if res := inputval.Validate(in); res.HasErrors() {
		respond.BadRequest(w, res.Join())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Achievements.UpdateText(ctx, id, in.Title, in.Description)
	if errors.Is(err, storekit.ErrNotFound) {
		respond.NotFound(w, msgNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "achievement update failed", err, msgUpdateFailed, zap.String("id", id.Hex()))
		return
	}

	h.Activity.Record(ctx, r, activitylog.AchievementUpdated,
		fmt.Sprintf("Updated achievement: %s. ID: %s", a.Title, id.Hex()))
	respond.OK(w, msgUpdated, respond.M{"achievement": a})
}

// Delete handles DELETE /admin/achievements/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, msgBadID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, err := h.Achievements.Delete(ctx, id)
	if errors.Is(err, storekit.ErrNotFound) {
		respond.NotFound(w, msgNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "achievement delete failed", err, msgDeleteFailed, zap.String("id", id.Hex()))
		return
	}
	shared.DropPhoto(ctx, h.Media, a.Photo, media.KindImage, h.Log)

	h.Activity.Record(ctx, r, activitylog.AchievementDeleted,
		fmt.Sprintf("Deleted achievement: %s. ID: %s", a.Title, id.Hex()))
	respond.OK(w, fmt.Sprintf("Achievement \"%s\" deleted successfully.", a.Title), nil)
}
