// internal/app/features/tasks/subtasks.go
package tasks

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	taskstore "github.com/taskhubhq/taskhub/internal/app/store/tasks"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/htmlsanitize"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/inputval"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

type addSubTaskInput struct {
	Title string `json:"title" validate:"required,max=200" label:"Title"`
}

// HandleAddSubTask appends a checklist entry to the task.
//
// POST /tasks/{taskID}/add-subtask
func (h *Handler) HandleAddSubTask(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}
	var in addSubTaskInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		apierrors.BadRequest(w, result.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	t, p, ok := h.taskWithProject(ctx, w, r, userID)
	if !ok || !requireEdit(w, *p, userID) {
		return
	}

	st, err := taskstore.New(h.DB).AddSubTask(ctx, t.ID, htmlsanitize.PlainText(in.Title))
	if err != nil {
		if err == taskstore.ErrNotFound {
			apierrors.NotFound(w, "task not found")
			return
		}
		h.ErrLog.Internal(w, r, "add sub-task", err)
		return
	}

	h.Activity.Record(userID, models.ActionCreatedSubTask, models.ResourceTask,
		t.ID, "added sub-task "+st.Title)

	h.Log.Info("sub-task added",
		zap.String("task_id", t.ID.Hex()),
		zap.String("subtask_id", st.ID.Hex()),
		zap.String("by", userID.Hex()))

	httpjson.Respond(w, http.StatusCreated, st)
}

type updateSubTaskInput struct {
	Title     string `json:"title" validate:"required,max=200" label:"Title"`
	Completed bool   `json:"completed" label:"Completed"`
}

// HandleUpdateSubTask updates one checklist entry. Completing every entry
// does not change the parent task's status.
//
// PUT /tasks/{taskID}/update-subtask/{subTaskID}
func (h *Handler) HandleUpdateSubTask(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	subTaskID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "subTaskID"))
	if err != nil {
		apierrors.BadRequest(w, "invalid sub-task id")
		return
	}

	var in updateSubTaskInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		apierrors.BadRequest(w, result.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	t, p, ok := h.taskWithProject(ctx, w, r, userID)
	if !ok || !requireEdit(w, *p, userID) {
		return
	}

	err = taskstore.New(h.DB).UpdateSubTask(ctx, t.ID, subTaskID, htmlsanitize.PlainText(in.Title), in.Completed)
	if err != nil {
		if err == taskstore.ErrSubTaskNotFound {
			apierrors.NotFound(w, "sub-task not found")
			return
		}
		h.ErrLog.Internal(w, r, "update sub-task", err)
		return
	}

	h.Activity.Record(userID, models.ActionUpdatedSubTask, models.ResourceTask,
		t.ID, "updated sub-task "+in.Title)

	httpjson.Message(w, http.StatusOK, "sub-task updated")
}
