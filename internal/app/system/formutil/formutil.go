// Package formutil reads simple flat request bodies that may arrive as JSON
// from the admin panel scripts or as urlencoded forms from plain HTML forms.
//
// Example usage:
//
//	vals, err := formutil.Parse(w, r)
//	if err != nil {
//		respond.BadRequest(w, "Invalid request body.")
//		return
//	}
//	name := vals.Get("name")
package formutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/auxilium/internal/app/system/limits"
	"github.com/dalemusser/auxilium/internal/app/system/upload"
)

// Values holds the first value of each submitted field.
type Values map[string]string

// Get returns the trimmed value of key.
func (v Values) Get(key string) string {
	return strings.TrimSpace(v[key])
}

// Raw returns the value of key untouched.
func (v Values) Raw(key string) string {
	return v[key]
}

// Has reports whether key was submitted at all.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// IsJSON reports whether the request body is JSON.
func IsJSON(r *http.Request) bool {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mt == "application/json"
}

// Parse decodes a JSON object or a urlencoded form, capped at
// limits.MaxJSONBody. JSON numbers and booleans become their text form;
// nested objects and arrays are rejected.
func Parse(w http.ResponseWriter, r *http.Request) (Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBody)
	if IsJSON(r) {
		return parseJSON(r)
	}
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}
	out := Values{}
	for k, vs := range r.PostForm {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out, nil
}

// ParseAny also accepts multipart bodies, capped at maxBody, so an edit may
// carry an optional replacement file. Files are read with upload.Single.
func ParseAny(w http.ResponseWriter, r *http.Request, maxBody int64) (Values, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := upload.Parse(w, r, maxBody); err != nil {
			return nil, err
		}
		return Values(upload.Values(r)), nil
	}
	return Parse(w, r)
}

func parseJSON(r *http.Request) (Values, error) {
	var raw map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	out := make(Values, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case nil:
		case string:
			out[k] = t
		case json.Number:
			out[k] = t.String()
		case bool:
			out[k] = strconv.FormatBool(t)
		default:
			return nil, errors.New("field " + k + " must be a string")
		}
	}
	return out, nil
}
