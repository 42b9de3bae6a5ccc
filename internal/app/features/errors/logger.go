// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrorLogger pairs structured logging with user-facing error pages so
// handlers don't repeat the log-then-render dance. Each logged error gets
// a correlation id that also appears on the rendered page, making it easy
// to find the matching log line from a screenshot.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger around the given zap logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogBadRequest logs a warning and renders a 400 page.
// logMsg goes to the log; userMsg goes to the page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	id := uuid.NewString()
	e.log.Warn(logMsg,
		zap.String("error_id", id),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	RenderError(w, r, http.StatusBadRequest, userMsg+" (ref "+id+")", backURL)
}

// LogNotFound logs a warning and renders a 404 page.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	id := uuid.NewString()
	e.log.Warn(logMsg,
		zap.String("error_id", id),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	RenderError(w, r, http.StatusNotFound, userMsg+" (ref "+id+")", backURL)
}

// LogServerError logs an error and renders a 500 page.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	id := uuid.NewString()
	e.log.Error(logMsg,
		zap.String("error_id", id),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	RenderError(w, r, http.StatusInternalServerError, userMsg+" (ref "+id+")", backURL)
}
