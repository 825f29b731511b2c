package admissions_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/auxilium/internal/app/features/admissions"
	apierrors "github.com/dalemusser/auxilium/internal/app/features/errors"
	"github.com/dalemusser/auxilium/internal/app/store/activity"
	"github.com/dalemusser/auxilium/internal/app/system/activitylog"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"github.com/dalemusser/auxilium/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*admissions.Handler, *testutil.FakeMedia, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fm := &testutil.FakeMedia{}
	act := activitylog.New(activity.New(db), zap.NewNop(), activitylog.DestDB)
	h := admissions.NewHandler(db, fm, 0, act, nil, apierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	return h, fm, db
}

var admissionFields = map[string]string{
	"pupilName":      "Asha Verma",
	"dateOfBirth":    "2019-04-12",
	"fatherName":     "Ravi Verma",
	"motherName":     "Sita Verma",
	"admissionClass": "Class I",
	"address":        "12 Park Road",
}

func TestSubmit_StoresApplicationAndFiles(t *testing.T) {
	h, fm, _ := newHandler(t)

	req := testutil.MultipartRequest(t, "POST", "/api/submit-application", admissionFields,
		testutil.PDF(models.FileBirth, "birth.pdf"),
		testutil.JPEG(models.FileStudentPhoto, "front.jpg"),
		testutil.JPEG(models.FileStudentPhoto, "side.jpg"),
	)
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	body := testutil.AssertEnvelope(t, rec, http.StatusOK, true, "Application saved successfully!")
	if body["appId"] == nil {
		t.Fatalf("appId missing: %v", body)
	}

	if fm.UploadCount() != 3 {
		t.Fatalf("uploads = %d, want 3", fm.UploadCount())
	}
	for _, in := range fm.Uploads {
		if !in.Private {
			t.Errorf("upload to %s should be private", in.Folder)
		}
		if !strings.HasPrefix(in.Folder, "admissions/") {
			t.Errorf("folder = %q", in.Folder)
		}
	}
	if fm.Uploads[0].Kind != "raw" {
		t.Errorf("pdf kind = %q, want raw", fm.Uploads[0].Kind)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	apps, err := h.Applications.List(ctx)
	if err != nil || len(apps) != 1 {
		t.Fatalf("stored = %d, %v", len(apps), err)
	}
	app := apps[0]
	if app.PupilName != "Asha Verma" || app.AdmissionClass != "Class I" {
		t.Errorf("app = %+v", app)
	}
	if app.DateOfBirth == nil || app.DateOfBirth.Year() != 2019 {
		t.Errorf("dateOfBirth = %v", app.DateOfBirth)
	}
	if app.FormDetails["address"] != "12 Park Road" {
		t.Errorf("formDetails = %v", app.FormDetails)
	}
	if len(app.UploadedFilesInfo) != 3 {
		t.Errorf("files = %d", len(app.UploadedFilesInfo))
	}
}

func TestSubmit_TooManyFiles(t *testing.T) {
	h, fm, _ := newHandler(t)

	req := testutil.MultipartRequest(t, "POST", "/api/submit-application", admissionFields,
		testutil.PDF(models.FileTC, "tc1.pdf"),
		testutil.PDF(models.FileTC, "tc2.pdf"),
	)
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	testutil.AssertEnvelope(t, rec, http.StatusBadRequest, false, "")
	if fm.UploadCount() != 0 {
		t.Errorf("nothing should be uploaded, got %d", fm.UploadCount())
	}
}

func TestSubmit_UploadFailureCleansUp(t *testing.T) {
	h, fm, _ := newHandler(t)
	fm.FailAfter = 1

	req := testutil.MultipartRequest(t, "POST", "/api/submit-application", admissionFields,
		testutil.PDF(models.FileTC, "tc.pdf"),
		testutil.PDF(models.FileBirth, "birth.pdf"),
	)
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	testutil.AssertEnvelope(t, rec, http.StatusInternalServerError, false, "Error submitting application")
	if got := fm.DeletedIDs(); len(got) != 1 {
		t.Errorf("deleted = %v, want the one uploaded file", got)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	n, _ := h.Applications.Count(ctx)
	if n != 0 {
		t.Errorf("applications = %d, want 0", n)
	}
}

func TestSignedPDF(t *testing.T) {
	h, fm, _ := newHandler(t)

	r := chi.NewRouter()
	admissions.PublicRoutes(r, h)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/signed-pdf/admissions/file_tc/abc123", nil))
	body := testutil.AssertEnvelope(t, rec, http.StatusOK, true, "")
	url, _ := body["url"].(string)
	if !strings.Contains(url, "admissions/file_tc/abc123.pdf") {
		t.Errorf("url = %q", url)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/signed-pdf/", nil))
	testutil.AssertEnvelope(t, rec, http.StatusBadRequest, false, "Missing publicId parameter.")

	fm.FailAll = true
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/signed-pdf/x", nil))
	testutil.AssertEnvelope(t, rec, http.StatusInternalServerError, false, "Error creating signed URL.")
}

func TestList_MergesAdmissionsAndMessages(t *testing.T) {
	h, _, db := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	now := time.Now().UTC()
	fx.CreateApplication(ctx, "Older Pupil", now.Add(-2*time.Hour))
	fx.CreateContactMessage(ctx, "Parent", now.Add(-time.Hour))
	fx.CreateApplication(ctx, "Newest Pupil", now)

	req := testutil.WithUser(testutil.NewRequest("GET", "/admin/applications"), testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.List(rec, req)

	body := testutil.AssertEnvelope(t, rec, http.StatusOK, true, "")
	rows, _ := body["applications"].([]any)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	want := []struct{ typ, name string }{
		{admissions.RowAdmission, "Newest Pupil"},
		{admissions.RowContact, "Parent"},
		{admissions.RowAdmission, "Older Pupil"},
	}
	for i, w := range want {
		row := rows[i].(map[string]any)
		if row["type"] != w.typ || row["pupilName"] != w.name {
			t.Errorf("row %d = %v %v, want %s %s", i, row["type"], row["pupilName"], w.typ, w.name)
		}
	}
	if rows[1].(map[string]any)["admissionClass"] != "N/A" {
		t.Errorf("contact row admissionClass = %v", rows[1].(map[string]any)["admissionClass"])
	}
}

func TestDetail(t *testing.T) {
	h, _, db := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	app := testutil.NewFixtures(t, db).CreateApplication(ctx, "Asha", time.Now().UTC(), models.FileBirth)

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"found", app.ID.Hex(), http.StatusOK},
		{"bad id", "nope", http.StatusBadRequest},
		{"missing", "0123456789abcdef01234567", http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.WithChiURLParam(testutil.NewRequest("GET", "/admin/applications/"+tc.id), "id", tc.id)
			rec := httptest.NewRecorder()
			h.Detail(rec, req)
			body := testutil.AssertEnvelope(t, rec, tc.status, tc.status == http.StatusOK, "")
			if tc.status != http.StatusOK {
				return
			}
			a := body["application"].(map[string]any)
			docs := a["documents"].(map[string]any)
			if docs[models.FileBirth] == nil {
				t.Errorf("birth certificate url missing: %v", docs)
			}
			if v, ok := docs[models.FileTC]; !ok || v != nil {
				t.Errorf("file_tc should be present and null, got %v (%v)", v, ok)
			}
		})
	}
}

func TestDelete_Application(t *testing.T) {
	h, fm, db := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	app := testutil.NewFixtures(t, db).CreateApplication(ctx, "Asha", time.Now().UTC(), models.FileTC, models.FileBirth)
	user := testutil.AdminUser()

	req := testutil.WithUser(testutil.WithChiURLParam(testutil.NewRequest("DELETE", "/"), "id", app.ID.Hex()), user)
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	testutil.AssertEnvelope(t, rec, http.StatusOK, true, "Admission application deleted successfully.")
	if got := fm.DeletedIDs(); len(got) != 2 {
		t.Errorf("deleted assets = %v", got)
	}
	for _, a := range fm.Deleted {
		if a.Delivery != "authenticated" || a.ResourceType != "raw" {
			t.Errorf("asset = %+v", a)
		}
	}

	logs, err := activity.New(db).Recent(ctx, 10)
	if err != nil || len(logs) != 1 || logs[0].Action != activitylog.AppDeleted {
		t.Fatalf("activity = %+v, %v", logs, err)
	}
	if !strings.Contains(logs[0].Details, app.ID.Hex()) {
		t.Errorf("details = %q", logs[0].Details)
	}
}

func TestDelete_ContactMessage(t *testing.T) {
	h, fm, db := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	msg := testutil.NewFixtures(t, db).CreateContactMessage(ctx, "Parent", time.Now().UTC())

	req := testutil.WithUser(testutil.WithChiURLParam(testutil.NewRequest("DELETE", "/"), "id", msg.ID.Hex()), testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	testutil.AssertEnvelope(t, rec, http.StatusOK, true, "Contact message deleted successfully.")
	if len(fm.Deleted) != 0 {
		t.Errorf("no assets should be deleted")
	}
}

func TestDelete_NotFound(t *testing.T) {
	h, _, _ := newHandler(t)

	req := testutil.WithChiURLParam(testutil.NewRequest("DELETE", "/"), "id", "0123456789abcdef01234567")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)
	testutil.AssertEnvelope(t, rec, http.StatusNotFound, false, "Application or message not found.")
}
