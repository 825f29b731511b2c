// Package respond writes the JSON envelopes every API endpoint returns:
//
//	{ "success": true,  "message": "...", "<resource>": ... }
//	{ "success": false, "message": "..." }
package respond

import (
	"encoding/json"
	"net/http"
)

// M holds the resource keys merged into a success envelope.
type M map[string]any

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 success envelope. An empty message is omitted.
func OK(w http.ResponseWriter, message string, fields M) {
	body := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = true
	if message != "" {
		body["message"] = message
	}
	JSON(w, http.StatusOK, body)
}

// Error writes a failure envelope.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

func BadRequest(w http.ResponseWriter, message string)   { Error(w, http.StatusBadRequest, message) }
func NotFound(w http.ResponseWriter, message string)     { Error(w, http.StatusNotFound, message) }
func Forbidden(w http.ResponseWriter, message string)    { Error(w, http.StatusForbidden, message) }
func Unauthorized(w http.ResponseWriter, message string) { Error(w, http.StatusUnauthorized, message) }
func Conflict(w http.ResponseWriter, message string)     { Error(w, http.StatusConflict, message) }
func ServerError(w http.ResponseWriter, message string)  { Error(w, http.StatusInternalServerError, message) }
