// internal/app/features/tasks/routes.go
package tasks

import (
	"github.com/go-chi/chi/v5"

	sessionauth "github.com/taskhubhq/taskhub/internal/app/system/auth"
)

// Routes mounts the task endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(sessionauth.RequireSignedIn)

	r.Get("/my-tasks", h.ServeMyTasks)
	r.Post("/{projectID}/create-task", h.HandleCreate)
	r.Get("/{resourceID}/activity", h.ServeActivity)

	r.Route("/{taskID}", func(r chi.Router) {
		r.Get("/", h.ServeDetails)

		r.Put("/title", h.HandleUpdateTitle)
		r.Put("/description", h.HandleUpdateDescription)
		r.Put("/status", h.HandleUpdateStatus)
		r.Put("/priority", h.HandleUpdatePriority)
		r.Put("/assignees", h.HandleUpdateAssignees)

		r.Post("/add-subtask", h.HandleAddSubTask)
		r.Put("/update-subtask/{subTaskID}", h.HandleUpdateSubTask)

		r.Post("/add-comment", h.HandleAddComment)
		r.Get("/comments", h.ServeComments)

		r.Post("/watch", h.HandleToggleWatch)
		r.Post("/archive", h.HandleArchive)
	})

	return r
}
