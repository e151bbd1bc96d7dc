// internal/app/features/workspaces/delete.go
package workspaces

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	commentstore "github.com/taskhubhq/taskhub/internal/app/store/comments"
	invitationstore "github.com/taskhubhq/taskhub/internal/app/store/invitations"
	projectstore "github.com/taskhubhq/taskhub/internal/app/store/projects"
	taskstore "github.com/taskhubhq/taskhub/internal/app/store/tasks"
	workspacestore "github.com/taskhubhq/taskhub/internal/app/store/workspaces"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
)

// HandleDelete removes the workspace and everything under it: projects,
// their tasks, the tasks' comments, and pending invitations. Owner only.
// Activity entries are kept; the audit trail outlives the resource it
// describes.
//
// DELETE /workspaces/{workspaceID}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	ws, ok := h.workspaceFromPath(ctx, w, r)
	if !ok {
		return
	}
	if !authz.CanManageWorkspace(*ws, userID) {
		apierrors.Forbidden(w, "only the workspace owner can delete it")
		return
	}

	projects := projectstore.New(h.DB)
	all, err := projects.FindAllByWorkspace(ctx, ws.ID)
	if err != nil {
		h.ErrLog.Internal(w, r, "list projects for delete", err)
		return
	}
	projectIDs := make([]primitive.ObjectID, 0, len(all))
	for _, p := range all {
		projectIDs = append(projectIDs, p.ID)
	}

	tasks := taskstore.New(h.DB)
	allTasks, err := tasks.FindAllByProjects(ctx, projectIDs)
	if err != nil {
		h.ErrLog.Internal(w, r, "list tasks for delete", err)
		return
	}
	taskIDs := make([]primitive.ObjectID, 0, len(allTasks))
	for _, t := range allTasks {
		taskIDs = append(taskIDs, t.ID)
	}
	if _, err := commentstore.New(h.DB).DeleteByTasks(ctx, taskIDs); err != nil {
		h.ErrLog.Internal(w, r, "delete workspace comments", err)
		return
	}

	tasksDeleted, err := tasks.DeleteByProjects(ctx, projectIDs)
	if err != nil {
		h.ErrLog.Internal(w, r, "delete workspace tasks", err)
		return
	}
	projectsDeleted, err := projects.DeleteByWorkspace(ctx, ws.ID)
	if err != nil {
		h.ErrLog.Internal(w, r, "delete workspace projects", err)
		return
	}
	if _, err := invitationstore.New(h.DB).DeleteByWorkspace(ctx, ws.ID); err != nil {
		h.ErrLog.Internal(w, r, "delete workspace invitations", err)
		return
	}
	if err := workspacestore.New(h.DB).Delete(ctx, ws.ID); err != nil {
		if err == workspacestore.ErrNotFound {
			apierrors.NotFound(w, "workspace not found")
			return
		}
		h.ErrLog.Internal(w, r, "delete workspace", err)
		return
	}

	h.Log.Info("workspace deleted",
		zap.String("workspace_id", ws.ID.Hex()),
		zap.String("deleted_by", userID.Hex()),
		zap.Int64("projects_deleted", projectsDeleted),
		zap.Int64("tasks_deleted", tasksDeleted))

	httpjson.Message(w, http.StatusOK, "workspace deleted")
}
