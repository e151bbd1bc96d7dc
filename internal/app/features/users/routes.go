// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	sessionauth "github.com/taskhubhq/taskhub/internal/app/system/auth"
)

// Routes mounts the profile endpoints. Every route operates on the caller's
// own account and requires a session.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(sessionauth.RequireSignedIn)

	r.Get("/profile", h.ServeProfile)
	r.Put("/profile", h.HandleUpdateProfile)
	r.Put("/change-password", h.HandleChangePassword)

	return r
}
