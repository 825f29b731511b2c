// internal/app/features/admissions/submit.go
package admissions

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/auxilium/internal/app/system/formutil"
	"github.com/dalemusser/auxilium/internal/app/system/limits"
	"github.com/dalemusser/auxilium/internal/app/system/media"
	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"github.com/dalemusser/auxilium/internal/app/system/timeouts"
	"github.com/dalemusser/auxilium/internal/app/system/upload"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgSubmitted    = "Application saved successfully!"
	msgSubmitFailed = "Error submitting application"
	msgTooLarge     = "Upload exceeds the allowed size."
	dateOfBirthForm = "2006-01-02"
)

// fileRules lists the document fields the admission form accepts.
var fileRules = []upload.Rule{
	{Field: models.FileTC, MaxCount: 1},
	{Field: models.FileBirth, MaxCount: 1},
	{Field: models.FileAadhar, MaxCount: 1},
	{Field: models.FileParentID, MaxCount: 1},
	{Field: models.FileStudentPhoto, MaxCount: limits.MaxStudentPhotos},
	{Field: models.FilePassport, MaxCount: 1},
}

func maxSubmissionBody() int64 {
	n := 0
	for _, rule := range fileRules {
		n += rule.MaxCount
	}
	return int64(n)*limits.MaxAdmissionFileSize + limits.FormOverhead
}

// Submit handles POST /api/submit-application.
//
// Every document is stored privately; PDFs go up as raw files so they can be
// fetched later through a signed link. If any upload or the final insert
// fails, whatever was already uploaded is deleted.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	vals, err := formutil.ParseAny(w, r, maxSubmissionBody())
	if err != nil {
		h.Metrics.Submission("admission", false)
		if errors.Is(err, upload.ErrBodyTooLarge) {
			respond.BadRequest(w, msgTooLarge)
			return
		}
		h.ErrLog.LogBadRequest(w, r, "admission: bad body", err, msgSubmitFailed)
		return
	}

	files, err := upload.Collect(r, fileRules, limits.MaxAdmissionFileSize)
	if err != nil {
		h.Metrics.Submission("admission", false)
		if upload.IsLimit(err) {
			respond.BadRequest(w, err.Error())
			return
		}
		h.ErrLog.LogServerError(w, r, "admission: read files failed", err, msgSubmitFailed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	ref := uuid.NewString()
	var uploaded []media.Asset
	fail := func(logMsg string, err error) {
		h.Metrics.Submission("admission", false)
		cctx, ccancel := context.WithTimeout(context.WithoutCancel(r.Context()), timeouts.Long())
		defer ccancel()
		media.DeleteAll(cctx, h.Media, uploaded, h.Log)
		h.ErrLog.LogServerError(w, r, logMsg, err, msgSubmitFailed,
			zap.String("submission", ref),
			zap.Int("cleaned_up", len(uploaded)))
	}

	info := make([]models.UploadedFile, 0, len(files))
	for _, f := range files {
		kind := media.KindImage
		if media.IsPDF(f.ContentType, f.Filename) {
			kind = media.KindRaw
		}
		asset, err := upload.Store(ctx, h.Media, f, media.UploadInput{
			Folder:  "admissions/" + f.Field,
			Kind:    kind,
			Private: true,
		})
		h.Metrics.Upload("admissions", err == nil)
		if err != nil {
			fail("admission: upload failed", err)
			return
		}
		uploaded = append(uploaded, asset)
		info = append(info, models.UploadedFile{
			FieldName:          f.Field,
			OriginalName:       f.Filename,
			MimeType:           f.ContentType,
			Size:               f.Size,
			CloudinaryURL:      asset.URL,
			CloudinaryPublicID: asset.PublicID,
			ResourceType:       asset.ResourceType,
		})
	}

	app := applicationFrom(vals)
	app.UploadedFilesInfo = info

	saved, err := h.Applications.Create(ctx, app)
	if err != nil {
		fail("admission: save failed", err)
		return
	}

	h.Metrics.Submission("admission", true)
	h.Log.Info("admission received",
		zap.String("submission", ref),
		zap.String("app_id", saved.ID.Hex()),
		zap.Int("files", len(info)))
	respond.OK(w, msgSubmitted, respond.M{"appId": saved.ID})
}

// applicationFrom copies every text field into FormDetails and lifts out
// the fields the admin inbox shows.
func applicationFrom(vals formutil.Values) models.Application {
	details := make(map[string]string, len(vals))
	for k, v := range vals {
		details[k] = strings.TrimSpace(v)
	}
	app := models.Application{
		SubmissionDate: time.Now().UTC(),
		PupilName:      vals.Get("pupilName"),
		FatherName:     vals.Get("fatherName"),
		MotherName:     vals.Get("motherName"),
		AdmissionClass: vals.Get("admissionClass"),
		FormDetails:    details,
	}
	if dob, err := time.Parse(dateOfBirthForm, vals.Get("dateOfBirth")); err == nil {
		app.DateOfBirth = &dob
	}
	return app
}
