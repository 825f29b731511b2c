// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/auxilium/internal/app/system/auth"
	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ErrorLogger logs a failure with request context and writes the JSON
// error envelope the client sees. The logged message and the client message
// are kept apart so internal details never leave the server.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{Log: logger}
}

func (el *ErrorLogger) fields(r *http.Request, err error, extra []zap.Field) []zap.Field {
	fs := make([]zap.Field, 0, len(extra)+5)
	fs = append(fs,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	if id := middleware.GetReqID(r.Context()); id != "" {
		fs = append(fs, zap.String("request_id", id))
	}
	if u, ok := auth.CurrentUser(r); ok {
		fs = append(fs, zap.String("user", u.Username))
	}
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	return append(fs, extra...)
}

// LogServerError logs at Error and responds 500 with userMsg.
func (el *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string, extra ...zap.Field) {
	el.Log.Error(logMsg, el.fields(r, err, extra)...)
	respond.ServerError(w, userMsg)
}

// LogBadRequest logs at Warn and responds 400 with userMsg.
func (el *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string, extra ...zap.Field) {
	el.Log.Warn(logMsg, el.fields(r, err, extra)...)
	respond.BadRequest(w, userMsg)
}

// LogForbidden logs at Warn and responds 403 with userMsg.
func (el *ErrorLogger) LogForbidden(w http.ResponseWriter, r *http.Request, logMsg string, userMsg string, extra ...zap.Field) {
	el.Log.Warn(logMsg, el.fields(r, nil, extra)...)
	respond.Forbidden(w, userMsg)
}
