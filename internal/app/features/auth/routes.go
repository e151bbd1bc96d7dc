// internal/app/features/auth/routes.go
package auth

import "github.com/go-chi/chi/v5"

// Routes mounts the account endpoints. All of them are reachable without a
// session; they are how a session comes to exist.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)
	r.Post("/verify-email", h.HandleVerifyEmail)
	r.Post("/request-reset-password", h.HandleRequestPasswordReset)
	r.Post("/reset-password", h.HandleResetPassword)

	return r
}
