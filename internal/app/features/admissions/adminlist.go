// internal/app/features/admissions/adminlist.go
package admissions

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/dalemusser/auxilium/internal/app/store/storekit"
	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"github.com/dalemusser/auxilium/internal/app/system/timeouts"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Row kinds in the admin inbox.
const (
	RowAdmission = "Admission"
	RowContact   = "Contact"
)

// inboxRow is one admission or contact message. Date, PupilName,
// AdmissionClass and FormDetails are filled for both kinds so the panel can
// render one table.
type inboxRow struct {
	ID             primitive.ObjectID `json:"_id"`
	Type           string             `json:"type"`
	Date           time.Time          `json:"date"`
	PupilName      string             `json:"pupilName"`
	AdmissionClass string             `json:"admissionClass"`
	FormDetails    map[string]string  `json:"formDetails"`

	SubmissionDate    *time.Time            `json:"submissionDate,omitempty"`
	DateOfBirth       *time.Time            `json:"dateOfBirth,omitempty"`
	FatherName        string                `json:"fatherName,omitempty"`
	MotherName        string                `json:"motherName,omitempty"`
	UploadedFilesInfo []models.UploadedFile `json:"uploadedFilesInfo,omitempty"`

	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Mobile  string `json:"mobile,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message,omitempty"`
}

func admissionRow(a models.Application) inboxRow {
	submitted := a.SubmissionDate
	details := a.FormDetails
	if details == nil {
		details = map[string]string{}
	}
	return inboxRow{
		ID:                a.ID,
		Type:              RowAdmission,
		Date:              a.SubmissionDate,
		PupilName:         a.PupilName,
		AdmissionClass:    a.AdmissionClass,
		FormDetails:       details,
		SubmissionDate:    &submitted,
		DateOfBirth:       a.DateOfBirth,
		FatherName:        a.FatherName,
		MotherName:        a.MotherName,
		UploadedFilesInfo: a.UploadedFilesInfo,
	}
}

func contactRow(m models.ContactMessage) inboxRow {
	return inboxRow{
		ID:             m.ID,
		Type:           RowContact,
		Date:           m.Date,
		PupilName:      m.Name,
		AdmissionClass: "N/A",
		FormDetails:    map[string]string{},
		Name:           m.Name,
		Email:          m.Email,
		Mobile:         m.Mobile,
		Subject:        m.Subject,
		Message:        m.Message,
	}
}

// List handles GET /admin/applications: admissions and contact messages in
// one list, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	apps, err := h.Applications.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list applications failed", err, "Error fetching applications")
		return
	}
	msgs, err := h.Contacts.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list contact messages failed", err, "Error fetching applications")
		return
	}

	rows := make([]inboxRow, 0, len(apps)+len(msgs))
	for _, a := range apps {
		rows = append(rows, admissionRow(a))
	}
	for _, m := range msgs {
		rows = append(rows, contactRow(m))
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })

	respond.OK(w, "", respond.M{"applications": rows})
}

// admissionDetail is the shape the admission modal reads.
type admissionDetail struct {
	ID             primitive.ObjectID `json:"_id"`
	PupilName      string             `json:"pupilName"`
	AdmissionClass string             `json:"admissionClass"`
	DateOfBirth    *time.Time         `json:"dateOfBirth"`
	FormDetails    map[string]string  `json:"formDetails"`
	Documents      map[string]*string `json:"documents"`
}

// detailDocuments are the fields shown in the modal. Passport scans are
// kept but not shown.
var detailDocuments = []string{
	models.FileBirth,
	models.FileAadhar,
	models.FileTC,
	models.FileStudentPhoto,
	models.FileParentID,
}

// Detail handles GET /admin/applications/{id}.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := storekit.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid application ID format.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	app, err := h.Applications.GetByID(ctx, id)
	if errors.Is(err, storekit.ErrNotFound) {
		respond.NotFound(w, "Application not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get application failed", err, "Error fetching details", zap.String("id", id.Hex()))
		return
	}

	docs := make(map[string]*string, len(detailDocuments))
	for _, field := range detailDocuments {
		docs[field] = app.FirstFileURL(field)
	}
	details := app.FormDetails
	if details == nil {
		details = map[string]string{}
	}

	respond.OK(w, "", respond.M{"application": admissionDetail{
		ID:             app.ID,
		PupilName:      app.PupilName,
		AdmissionClass: app.AdmissionClass,
		DateOfBirth:    app.DateOfBirth,
		FormDetails:    details,
		Documents:      docs,
	}})
}
