// internal/app/features/tasks/mytasks.go
package tasks

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

// ServeMyTasks lists the caller's live assigned tasks across every project,
// newest first.
//
// GET /tasks/my-tasks
func (h *Handler) ServeMyTasks(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := taskstore.New(h.DB).FindByAssignee(ctx, userID)
	if err != nil {
		h.ErrLog.Internal(w, r, "list my tasks", err)
		return
	}
	if list == nil {
		list = []models.Task{}
	}

	httpjson.Respond(w, http.StatusOK, list)
}
