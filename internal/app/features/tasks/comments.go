// internal/app/features/tasks/comments.go
package tasks

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	commentstore "github.com/taskhubhq/taskhub/internal/app/store/comments"
	taskstore "github.com/taskhubhq/taskhub/internal/app/store/tasks"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/htmlsanitize"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/inputval"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

type addCommentInput struct {
	Text string `json:"text" validate:"required,max=5000" label:"Comment"`
}

// HandleAddComment appends a comment to the task. The text is sanitized
// before storage; basic formatting survives, markup that can execute does
// not.
//
// POST /tasks/{taskID}/add-comment
func (h *Handler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}
	var in addCommentInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		apierrors.BadRequest(w, result.First())
		return
	}

	text := htmlsanitize.Sanitize(in.Text)
	if text == "" {
		apierrors.BadRequest(w, "comment is empty after sanitization")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	t, p, ok := h.taskWithProject(ctx, w, r, userID)
	if !ok || !requireEdit(w, *p, userID) {
		return
	}

	created, err := commentstore.New(h.DB).Create(ctx, models.Comment{
		Task:   t.ID,
		Author: userID,
		Text:   text,
	})
	if err != nil {
		h.ErrLog.Internal(w, r, "create comment", err)
		return
	}
	if err := taskstore.New(h.DB).PushComment(ctx, t.ID, created.ID); err != nil {
		h.ErrLog.Internal(w, r, "attach comment to task", err)
		return
	}

	h.Activity.Record(userID, models.ActionAddedComment, models.ResourceTask,
		t.ID, "commented on task "+t.Title)

	h.Log.Info("comment added",
		zap.String("task_id", t.ID.Hex()),
		zap.String("comment_id", created.ID.Hex()),
		zap.String("by", userID.Hex()))

	httpjson.Respond(w, http.StatusCreated, created)
}

// ServeComments lists the task's comments, newest first. Project members
// only; viewers included.
//
// GET /tasks/{taskID}/comments
func (h *Handler) ServeComments(w http.ResponseWriter, r *http.Request) {
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

	list, err := commentstore.New(h.DB).FindByTask(ctx, t.ID)
	if err != nil {
		h.ErrLog.Internal(w, r, "list comments", err)
		return
	}
	if list == nil {
		list = []models.Comment{}
	}

	httpjson.Respond(w, http.StatusOK, list)
}
