// internal/app/features/projects/routes.go
package projects

import (
	"github.com/go-chi/chi/v5"

	sessionauth "github.com/taskhubhq/taskhub/internal/app/system/auth"
)

// Routes mounts the project endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(sessionauth.RequireSignedIn)

	r.Post("/{workspaceID}/create-project", h.HandleCreate)
	r.Get("/{workspaceID}/archived", h.ServeArchived)

	r.Get("/{projectID}", h.ServeDetails)
	r.Get("/{projectID}/tasks", h.ServeTasks)
	r.Post("/{projectID}/archive", h.HandleArchive)

	return r
}
