// internal/app/features/tasks/watch.go
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

type watchResponse struct {
	Message  string `json:"message"`
	Watching bool   `json:"watching"`
}

// HandleToggleWatch adds or removes the caller on the task's watcher list.
// Any project member may watch, viewers included; watching grants no other
// permission.
//
// POST /tasks/{taskID}/watch
func (h *Handler) HandleToggleWatch(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	t, _, ok := h.taskWithProject(ctx, w, r, userID)
	if !ok {
		return
	}

	watching, err := taskstore.New(h.DB).ToggleWatch(ctx, t.ID, userID)
	if err != nil {
		if err == taskstore.ErrNotFound {
			apierrors.NotFound(w, "task not found")
			return
		}
		h.ErrLog.Internal(w, r, "toggle watch", err)
		return
	}

	verb := "stopped watching"
	if watching {
		verb = "started watching"
	}
	h.Activity.Record(userID, models.ActionUpdatedTask, models.ResourceTask,
		t.ID, verb+" task "+t.Title)

	h.Log.Info("task watch toggled",
		zap.String("task_id", t.ID.Hex()),
		zap.String("user_id", userID.Hex()),
		zap.Bool("watching", watching))

	msg := "stopped watching task"
	if watching {
		msg = "watching task"
	}
	httpjson.Respond(w, http.StatusOK, watchResponse{Message: msg, Watching: watching})
}
