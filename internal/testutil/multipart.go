package testutil

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
)

// FilePart is one file in a multipart test request.
type FilePart struct {
	Field       string
	Filename    string
	ContentType string
	Body        []byte
}

// MultipartRequest builds a multipart/form-data request from text fields and
// files.
func MultipartRequest(t *testing.T, method, target string, fields map[string]string, files ...FilePart) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.Field+`"; filename="`+f.Filename+`"`)
		h.Set("Content-Type", f.ContentType)
		w, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("create part %s: %v", f.Field, err)
		}
		if _, err := w.Write(f.Body); err != nil {
			t.Fatalf("write part %s: %v", f.Field, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	r.Header.Set("Accept", "application/json")
	return r
}

// JPEG returns a FilePart with a small fake JPEG body.
func JPEG(field, name string) FilePart {
	return FilePart{Field: field, Filename: name, ContentType: "image/jpeg", Body: []byte("\xff\xd8\xff\xe0fake-jpeg")}
}

// PDF returns a FilePart with a small fake PDF body.
func PDF(field, name string) FilePart {
	return FilePart{Field: field, Filename: name, ContentType: "application/pdf", Body: []byte("%PDF-1.4 fake")}
}
