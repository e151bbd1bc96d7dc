// internal/app/features/errors/errlog.go
package errors

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
)

// ErrorLogger pairs server-error responses with structured logging. Internal
// failures log the real error and return a generic message; details never
// reach the client.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger creates an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// Internal logs err with request context and writes a 500.
func (e *ErrorLogger) Internal(w http.ResponseWriter, r *http.Request, msg string, err error) {
	e.log.Error(msg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	httpjson.Message(w, http.StatusInternalServerError, "internal server error")
}
