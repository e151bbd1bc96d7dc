// internal/app/features/projects/tasks.go
package projects

import (
	"context"
	"net/http"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	taskstore "github.com/taskhubhq/taskhub/internal/app/store/tasks"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

type projectTasksResponse struct {
	Project models.Project `json:"project"`
	Tasks   []models.Task  `json:"tasks"`
}

// ServeTasks returns the project together with its live tasks. Project
// members only.
//
// GET /projects/{projectID}/tasks
func (h *Handler) ServeTasks(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, ok := h.projectFromPath(ctx, w, r)
	if !ok {
		return
	}
	if !authz.IsProjectMember(*p, userID) {
		apierrors.Forbidden(w, "you are not a member of this project")
		return
	}

	tasks, err := taskstore.New(h.DB).FindByProject(ctx, p.ID)
	if err != nil {
		h.ErrLog.Internal(w, r, "list project tasks", err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	httpjson.Respond(w, http.StatusOK, projectTasksResponse{Project: *p, Tasks: tasks})
}
