// internal/app/features/tasks/update.go
package tasks

import (
	"context"
	"net/http"

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

// recordTaskUpdate logs the field change and writes the OK response.
func (h *Handler) recordTaskUpdate(w http.ResponseWriter, userID, taskID primitive.ObjectID, what string) {
	h.Activity.Record(userID, models.ActionUpdatedTask, models.ResourceTask,
		taskID, "updated task "+what)
	h.Log.Info("task updated",
		zap.String("task_id", taskID.Hex()),
		zap.String("field", what),
		zap.String("by", userID.Hex()))
	httpjson.Message(w, http.StatusOK, "task updated")
}

type updateTitleInput struct {
	Title string `json:"title" validate:"required,max=200" label:"Title"`
}

// HandleUpdateTitle replaces the task title.
//
// PUT /tasks/{taskID}/title
func (h *Handler) HandleUpdateTitle(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}
	var in updateTitleInput
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

	if err := taskstore.New(h.DB).UpdateTitle(ctx, t.ID, htmlsanitize.PlainText(in.Title)); err != nil {
		h.ErrLog.Internal(w, r, "update task title", err)
		return
	}
	h.recordTaskUpdate(w, userID, t.ID, "title")
}

type updateDescriptionInput struct {
	Description string `json:"description" validate:"max=2000" label:"Description"`
}

// HandleUpdateDescription replaces the task description.
//
// PUT /tasks/{taskID}/description
func (h *Handler) HandleUpdateDescription(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}
	var in updateDescriptionInput
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

	if err := taskstore.New(h.DB).UpdateDescription(ctx, t.ID, htmlsanitize.Sanitize(in.Description)); err != nil {
		h.ErrLog.Internal(w, r, "update task description", err)
		return
	}
	h.recordTaskUpdate(w, userID, t.ID, "description")
}

type updateStatusInput struct {
	Status string `json:"status" validate:"required" label:"Status"`
}

// HandleUpdateStatus sets the task status. Any project member may set it,
// and any valid status may follow any other; there is no transition order
// to enforce.
//
// PUT /tasks/{taskID}/status
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}
	var in updateStatusInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	if !models.ValidTaskStatus(in.Status) {
		apierrors.BadRequest(w, "invalid task status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	t, p, ok := h.taskWithProject(ctx, w, r, userID)
	if !ok {
		return
	}

	if err := taskstore.New(h.DB).UpdateStatus(ctx, t.ID, in.Status); err != nil {
		h.ErrLog.Internal(w, r, "update task status", err)
		return
	}
	h.refreshProjectProgress(ctx, p.ID)
	h.recordTaskUpdate(w, userID, t.ID, "status to "+in.Status)
}

type updatePriorityInput struct {
	Priority string `json:"priority" validate:"required" label:"Priority"`
}

// HandleUpdatePriority sets the task priority.
//
// PUT /tasks/{taskID}/priority
func (h *Handler) HandleUpdatePriority(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}
	var in updatePriorityInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	if !models.ValidTaskPriority(in.Priority) {
		apierrors.BadRequest(w, "invalid task priority")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	t, p, ok := h.taskWithProject(ctx, w, r, userID)
	if !ok || !requireEdit(w, *p, userID) {
		return
	}

	if err := taskstore.New(h.DB).UpdatePriority(ctx, t.ID, in.Priority); err != nil {
		h.ErrLog.Internal(w, r, "update task priority", err)
		return
	}
	h.recordTaskUpdate(w, userID, t.ID, "priority to "+in.Priority)
}

type updateAssigneesInput struct {
	Assignees []string `json:"assignees" validate:"max=50" label:"Assignees"`
}

// HandleUpdateAssignees replaces the assignee list. Every assignee must be
// a member of the owning project.
//
// PUT /tasks/{taskID}/assignees
func (h *Handler) HandleUpdateAssignees(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}
	var in updateAssigneesInput
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

	assignees := make([]primitive.ObjectID, 0, len(in.Assignees))
	for _, a := range in.Assignees {
		aid, err := primitive.ObjectIDFromHex(a)
		if err != nil {
			apierrors.BadRequest(w, "invalid assignee id")
			return
		}
		if !p.IsMember(aid) {
			apierrors.BadRequest(w, "all assignees must be project members")
			return
		}
		assignees = append(assignees, aid)
	}

	if err := taskstore.New(h.DB).UpdateAssignees(ctx, t.ID, assignees); err != nil {
		h.ErrLog.Internal(w, r, "update task assignees", err)
		return
	}
	h.recordTaskUpdate(w, userID, t.ID, "assignees")
}
