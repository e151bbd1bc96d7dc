// internal/app/features/workspaces/routes.go
package workspaces

import (
	"github.com/go-chi/chi/v5"

	sessionauth "github.com/taskhubhq/taskhub/internal/app/system/auth"
)

// Routes mounts the workspace endpoints. Identity comes from the session;
// per-workspace permission checks live in each handler against the loaded
// member list.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(sessionauth.RequireSignedIn)

	r.Post("/", h.HandleCreate)
	r.Get("/", h.ServeList)
	r.Post("/accept-invite-token", h.HandleAcceptInviteToken)

	r.Route("/{workspaceID}", func(r chi.Router) {
		r.Get("/", h.ServeDetails)
		r.Put("/", h.HandleUpdate)
		r.Delete("/", h.HandleDelete)

		r.Post("/invite-member", h.HandleInviteMember)
		r.Post("/accept-generate-invite", h.HandleAcceptGeneratedInvite)
		r.Post("/transfer-ownership", h.HandleTransferOwnership)

		r.Get("/projects", h.ServeProjects)
		r.Get("/stats", h.ServeStats)
	})

	return r
}
