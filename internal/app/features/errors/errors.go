// internal/app/features/errors/errors.go
//
// Package errors renders the API's error responses. Every error is a JSON
// body of the form {"message": "..."} with the matching status code, so
// clients branch on status and show message verbatim.
package errors

import (
	"net/http"

	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
)

// BadRequest writes a 400 with the given message.
func BadRequest(w http.ResponseWriter, msg string) {
	httpjson.Message(w, http.StatusBadRequest, msg)
}

// Unauthorized writes a 401.
func Unauthorized(w http.ResponseWriter) {
	httpjson.Message(w, http.StatusUnauthorized, "unauthorized")
}

// Forbidden writes a 403 with the given message.
func Forbidden(w http.ResponseWriter, msg string) {
	httpjson.Message(w, http.StatusForbidden, msg)
}

// NotFound writes a 404 with the given message.
func NotFound(w http.ResponseWriter, msg string) {
	httpjson.Message(w, http.StatusNotFound, msg)
}

// Conflict writes a 409 with the given message.
func Conflict(w http.ResponseWriter, msg string) {
	httpjson.Message(w, http.StatusConflict, msg)
}

// Gone writes a 410 with the given message. Used for expired tokens and
// invitations, which are distinct from tokens that were never valid.
func Gone(w http.ResponseWriter, msg string) {
	httpjson.Message(w, http.StatusGone, msg)
}
