// internal/app/features/tasks/create.go
package tasks

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	projectstore "github.com/taskhubhq/taskhub/internal/app/store/projects"
	taskstore "github.com/taskhubhq/taskhub/internal/app/store/tasks"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/htmlsanitize"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/inputval"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

type createTaskInput struct {
	Title       string     `json:"title" validate:"required,max=200" label:"Title"`
	Description string     `json:"description" validate:"max=2000" label:"Description"`
	Status      string     `json:"status" label:"Status"`
	Priority    string     `json:"priority" label:"Priority"`
	DueDate     *time.Time `json:"dueDate" label:"Due date"`
	Assignees   []string   `json:"assignees" validate:"max=50" label:"Assignees"`
}

// HandleCreate creates a task in a project. Managers and contributors only.
// Assignees must be project members; the creator becomes the first watcher.
//
// POST /tasks/{projectID}/create-task
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
	if err != nil {
		apierrors.BadRequest(w, "invalid project id")
		return
	}

	var in createTaskInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		apierrors.BadRequest(w, result.First())
		return
	}
	if in.Status != "" && !models.ValidTaskStatus(in.Status) {
		apierrors.BadRequest(w, "invalid task status")
		return
	}
	if in.Priority != "" && !models.ValidTaskPriority(in.Priority) {
		apierrors.BadRequest(w, "invalid task priority")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := projectstore.New(h.DB).GetByID(ctx, projectID)
	if err != nil {
		if err == projectstore.ErrNotFound {
			apierrors.NotFound(w, "project not found")
			return
		}
		h.ErrLog.Internal(w, r, "load project", err)
		return
	}
	if !authz.IsProjectMember(*p, userID) {
		apierrors.Forbidden(w, "you are not a member of this project")
		return
	}
	if !requireEdit(w, *p, userID) {
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

	created, err := taskstore.New(h.DB).Create(ctx, models.Task{
		Title:       htmlsanitize.PlainText(in.Title),
		Description: htmlsanitize.Sanitize(in.Description),
		Project:     p.ID,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		Assignees:   assignees,
		CreatedBy:   userID,
	})
	if err != nil {
		h.ErrLog.Internal(w, r, "create task", err)
		return
	}

	if err := projectstore.New(h.DB).PushTask(ctx, p.ID, created.ID); err != nil {
		h.ErrLog.Internal(w, r, "attach task to project", err)
		return
	}

	h.Activity.Record(userID, models.ActionCreatedTask, models.ResourceTask,
		created.ID, "created task "+created.Title)

	h.Log.Info("task created",
		zap.String("task_id", created.ID.Hex()),
		zap.String("project_id", p.ID.Hex()),
		zap.String("created_by", userID.Hex()))

	httpjson.Respond(w, http.StatusCreated, created)
}
