// internal/app/features/tasks/archive.go
package tasks

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	taskstore "github.com/taskhubhq/taskhub/internal/app/store/tasks"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

// HandleArchive flips the task's archive flag. Any project member may
// toggle it. Archived tasks drop out of listings but stay addressable by
// id.
//
// POST /tasks/{taskID}/archive
func (h *Handler) HandleArchive(w http.ResponseWriter, r *http.Request) {
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

	updated, err := taskstore.New(h.DB).ToggleArchived(ctx, t.ID)
	if err != nil {
		if err == taskstore.ErrNotFound {
			apierrors.NotFound(w, "task not found")
			return
		}
		h.ErrLog.Internal(w, r, "toggle task archive", err)
		return
	}

	// Archived tasks drop out of the completion ratio.
	h.refreshProjectProgress(ctx, p.ID)

	verb := "unarchived"
	if updated.IsArchived {
		verb = "archived"
	}
	h.Activity.Record(userID, models.ActionUpdatedTask, models.ResourceTask,
		updated.ID, verb+" task "+updated.Title)

	h.Log.Info("task archive toggled",
		zap.String("task_id", updated.ID.Hex()),
		zap.Bool("is_archived", updated.IsArchived),
		zap.String("by", userID.Hex()))

	httpjson.Respond(w, http.StatusOK, updated)
}
