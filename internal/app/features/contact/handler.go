// internal/app/features/contact/handler.go
package contact

import (
	"context"
	"net/http"
	"time"

	apierrors "github.com/dalemusser/auxilium/internal/app/features/errors"
	contactstore "github.com/dalemusser/auxilium/internal/app/store/contacts"
	"github.com/dalemusser/auxilium/internal/app/system/formutil"
	"github.com/dalemusser/auxilium/internal/app/system/htmlsanitize"
	"github.com/dalemusser/auxilium/internal/app/system/mailer"
	"github.com/dalemusser/auxilium/internal/app/system/metrics"
	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"github.com/dalemusser/auxilium/internal/app/system/timeouts"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	msgMissing = "Missing required fields: name, email, or message."
	msgSaved   = "Message saved and email notification sent!"
	msgFailed  = "Error saving message"
)

type Handler struct {
	Messages *contactstore.Store
	Mailer   *mailer.Mailer
	NotifyTo string // blank disables the notification
	Metrics  *metrics.Metrics
	ErrLog   *apierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, mail *mailer.Mailer, notifyTo string, m *metrics.Metrics, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Messages: contactstore.New(db),
		Mailer:   mail,
		NotifyTo: notifyTo,
		Metrics:  m,
		ErrLog:   errLog,
		Log:      logger,
	}
}

// Submit handles POST /api/contact. The body may be JSON or a urlencoded
// form. The notification is sent in the background; a mail failure is
// logged and never fails the request.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	vals, err := formutil.Parse(w, r)
	if err != nil {
		h.Metrics.Submission("contact", false)
		h.ErrLog.LogBadRequest(w, r, "contact: bad body", err, msgMissing)
		return
	}

	msg := models.ContactMessage{
		Name:    htmlsanitize.StripTags(vals.Get("name")),
		Email:   vals.Get("email"),
		Mobile:  htmlsanitize.StripTags(vals.Get("mobile")),
		Subject: htmlsanitize.StripTags(vals.Get("subject")),
		Message: htmlsanitize.StripTags(vals.Get("message")),
		Date:    time.Now().UTC(),
	}
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		h.Metrics.Submission("contact", false)
		respond.BadRequest(w, msgMissing)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	saved, err := h.Messages.Create(ctx, msg)
	if err != nil {
		h.Metrics.Submission("contact", false)
		h.ErrLog.LogServerError(w, r, "contact: save failed", err, msgFailed)
		return
	}
	h.Metrics.Submission("contact", true)

	if h.Mailer != nil && h.NotifyTo != "" {
		e := mailer.ContactNotification(mailer.ContactNotice{
			Name:        saved.Name,
			Email:       saved.Email,
			Mobile:      saved.Mobile,
			Subject:     saved.Subject,
			Message:     saved.Message,
			SubmittedAt: saved.Date,
		})
		e.To = h.NotifyTo
		h.Mailer.SendAsync(e)
	}

	respond.OK(w, msgSaved, nil)
}
