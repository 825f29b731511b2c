package principal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "github.com/dalemusser/auxilium/internal/app/features/errors"
	"github.com/dalemusser/auxilium/internal/app/features/principal"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"github.com/dalemusser/auxilium/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*principal.Handler, *testutil.FakeMedia) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fm := &testutil.FakeMedia{}
	return principal.NewHandler(db, fm, nil, nil, apierrors.NewErrorLogger(zap.NewNop()), zap.NewNop()), fm
}

var fields = map[string]string{
	"principalName": "Dr. Mehta",
	"messageText":   "Welcome to a new academic year.",
	"qualification": "Ph.D.",
	"fromYear":      "2015",
	"toYear":        "Present",
}

func TestCurrent_None(t *testing.T) {
	h, _ := newHandler(t)

	rec := httptest.NewRecorder()
	h.Current(rec, testutil.NewRequest("GET", "/api/principal-message"))
	testutil.AssertEnvelope(t, rec, http.StatusNotFound, false, "No principal message found.")
}

func TestCreate_ReplacesExisting(t *testing.T) {
	h, fm := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	old, err := h.Messages.Create(ctx, models.PrincipalMessage{
		PrincipalName: "Former Principal",
		MessageText:   "Goodbye",
		Photo:         models.Photo{CloudinaryURL: "https://media.test/old", CloudinaryPublicID: "principal_message/old"},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := httptest.NewRecorder()
	h.Create(rec, testutil.MultipartRequest(t, "POST", "/admin/principal-message", fields, testutil.JPEG(principal.FileField, "p.jpg")))
	body := testutil.AssertEnvelope(t, rec, http.StatusOK, true, "Principal's message created successfully.")
	if p := body["profile"].(map[string]any); p["principalName"] != "Dr. Mehta" {
		t.Errorf("profile = %v", p)
	}

	list, _ := h.Messages.List(ctx)
	if len(list) != 1 || list[0].ID == old.ID {
		t.Fatalf("messages = %+v, want only the new one", list)
	}
	if ids := fm.DeletedIDs(); len(ids) != 1 || ids[0] != "principal_message/old" {
		t.Errorf("deleted = %v", ids)
	}
	if fm.Uploads[0].Transform != "c_fill,g_face,h_600,w_600" {
		t.Errorf("transform = %q", fm.Uploads[0].Transform)
	}

	rec = httptest.NewRecorder()
	h.Current(rec, testutil.NewRequest("GET", "/api/principal-message"))
	testutil.AssertEnvelope(t, rec, http.StatusOK, true, "")
}

func TestCreate_UploadFailureKeepsCurrent(t *testing.T) {
	h, fm := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := h.Messages.Create(ctx, models.PrincipalMessage{PrincipalName: "P", MessageText: "M"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	fm.FailAll = true

	rec := httptest.NewRecorder()
	h.Create(rec, testutil.MultipartRequest(t, "POST", "/", fields, testutil.JPEG(principal.FileField, "p.jpg")))
	testutil.AssertEnvelope(t, rec, http.StatusInternalServerError, false, "")

	if list, _ := h.Messages.List(ctx); len(list) != 1 {
		t.Errorf("messages = %d, want the original kept", len(list))
	}
}

func TestCreate_Missing(t *testing.T) {
	h, _ := newHandler(t)

	rec := httptest.NewRecorder()
	h.Create(rec, testutil.MultipartRequest(t, "POST", "/", map[string]string{"principalName": "x"}, testutil.JPEG(principal.FileField, "p.jpg")))
	testutil.AssertEnvelope(t, rec, http.StatusBadRequest, false, "Missing photo, message, or principal name.")
}

func TestUpdateAndDelete(t *testing.T) {
	h, fm := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m, _ := h.Messages.Create(ctx, models.PrincipalMessage{
		PrincipalName: "P",
		MessageText:   "M",
		Photo:         models.Photo{CloudinaryPublicID: "principal_message/p"},
	})

	req := testutil.JSONRequest("PUT", "/", `{"principalName":"Dr. P","messageText":"New text"}`)
	rec := httptest.NewRecorder()
	h.Update(rec, testutil.WithChiURLParam(req, "id", m.ID.Hex()))
	body := testutil.AssertEnvelope(t, rec, http.StatusOK, true, "Message updated successfully.")
	if p := body["profile"].(map[string]any); p["messageText"] != "New text" {
		t.Errorf("profile = %v", p)
	}

	rec = httptest.NewRecorder()
	h.Delete(rec, testutil.WithChiURLParam(testutil.NewRequest("DELETE", "/"), "id", "nope"))
	testutil.AssertEnvelope(t, rec, http.StatusBadRequest, false, "Invalid message ID format.")

	rec = httptest.NewRecorder()
	h.Delete(rec, testutil.WithChiURLParam(testutil.NewRequest("DELETE", "/"), "id", m.ID.Hex()))
	testutil.AssertEnvelope(t, rec, http.StatusOK, true, "Principal's message deleted successfully.")
	if ids := fm.DeletedIDs(); len(ids) != 1 || ids[0] != "principal_message/p" {
		t.Errorf("deleted = %v", ids)
	}

	rec = httptest.NewRecorder()
	h.Delete(rec, testutil.WithChiURLParam(testutil.NewRequest("DELETE", "/"), "id", m.ID.Hex()))
	testutil.AssertEnvelope(t, rec, http.StatusNotFound, false, "Principal message not found.")
}
