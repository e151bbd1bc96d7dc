// internal/app/features/tasks/helpers.go
package tasks

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	projectstore "github.com/taskhubhq/taskhub/internal/app/store/projects"
	taskstore "github.com/taskhubhq/taskhub/internal/app/store/tasks"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

// taskWithProject parses {taskID}, loads the task and its owning project,
// and verifies the caller belongs to that project. Task authorization is
// always derived from the project member list. On failure it writes the
// error response and returns ok=false.
func (h *Handler) taskWithProject(ctx context.Context, w http.ResponseWriter, r *http.Request, userID primitive.ObjectID) (*models.Task, *models.Project, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "taskID"))
	if err != nil {
		apierrors.BadRequest(w, "invalid task id")
		return nil, nil, false
	}

	t, err := taskstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if err == taskstore.ErrNotFound {
			apierrors.NotFound(w, "task not found")
			return nil, nil, false
		}
		h.ErrLog.Internal(w, r, "load task", err)
		return nil, nil, false
	}

	p, err := projectstore.New(h.DB).GetByID(ctx, t.Project)
	if err != nil {
		if err == projectstore.ErrNotFound {
			apierrors.NotFound(w, "project not found")
			return nil, nil, false
		}
		h.ErrLog.Internal(w, r, "load task's project", err)
		return nil, nil, false
	}

	if !authz.IsProjectMember(*p, userID) {
		apierrors.Forbidden(w, "you are not a member of this project")
		return nil, nil, false
	}
	return t, p, true
}

// requireEdit rejects read-only project members. Returns false after
// writing the response when the caller may not mutate the project.
func requireEdit(w http.ResponseWriter, p models.Project, userID primitive.ObjectID) bool {
	if !authz.CanEditProject(p, userID) {
		apierrors.Forbidden(w, "viewers cannot modify tasks")
		return false
	}
	return true
}

// refreshProjectProgress recomputes the project's completion percentage
// from its live tasks. The percentage is denormalized display data; a
// failed refresh is logged and does not fail the triggering request.
func (h *Handler) refreshProjectProgress(ctx context.Context, projectID primitive.ObjectID) {
	tasks, err := taskstore.New(h.DB).FindByProject(ctx, projectID)
	if err != nil {
		h.Log.Warn("refresh project progress: list tasks", zap.String("project_id", projectID.Hex()), zap.Error(err))
		return
	}
	progress := 0
	if len(tasks) > 0 {
		done := 0
		for _, t := range tasks {
			if t.Status == models.TaskStatusDone {
				done++
			}
		}
		progress = done * 100 / len(tasks)
	}
	if err := projectstore.New(h.DB).UpdateProgress(ctx, projectID, progress); err != nil {
		h.Log.Warn("refresh project progress", zap.String("project_id", projectID.Hex()), zap.Error(err))
	}
}
