// internal/app/features/auth/logout.go
package auth

import (
	"net/http"

	sessionauth "github.com/taskhubhq/taskhub/internal/app/system/auth"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
)

// HandleLogout clears the session cookie. Logging out an already-anonymous
// request succeeds; there is nothing to protect.
//
// POST /auth/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := sessionauth.SignOut(w, r); err != nil {
		h.ErrLog.Internal(w, r, "clear session", err)
		return
	}
	httpjson.Message(w, http.StatusOK, "logged out")
}
