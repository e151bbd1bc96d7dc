// internal/app/features/tasks/details.go
package tasks

import (
	"context"
	"net/http"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

type taskDetailsResponse struct {
	Task    models.Task    `json:"task"`
	Project models.Project `json:"project"`
}

// ServeDetails returns one task with its owning project. Project members
// only.
//
// GET /tasks/{taskID}
func (h *Handler) ServeDetails(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	t, p, ok := h.taskWithProject(ctx, w, r, userID)
	if !ok {
		return
	}

	httpjson.Respond(w, http.StatusOK, taskDetailsResponse{Task: *t, Project: *p})
}
