// internal/app/features/tasks/activity.go
package tasks

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	activitystore "github.com/taskhubhq/taskhub/internal/app/store/activity"
	projectstore "github.com/taskhubhq/taskhub/internal/app/store/projects"
	taskstore "github.com/taskhubhq/taskhub/internal/app/store/tasks"
	workspacestore "github.com/taskhubhq/taskhub/internal/app/store/workspaces"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

// ServeActivity lists a resource's activity entries, newest first. The
// resource id may name a task, a project, or a workspace; the caller must
// be able to see the resource before its history is shown.
//
// GET /tasks/{resourceID}/activity
func (h *Handler) ServeActivity(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	resourceID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "resourceID"))
	if err != nil {
		apierrors.BadRequest(w, "invalid resource id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	allowed, err := h.canViewResource(ctx, resourceID, userID)
	if err != nil {
		h.ErrLog.Internal(w, r, "resolve activity resource", err)
		return
	}
	if !allowed {
		apierrors.Forbidden(w, "you do not have access to this resource")
		return
	}

	list, err := activitystore.New(h.DB).GetByResource(ctx, resourceID, 0)
	if err != nil {
		h.ErrLog.Internal(w, r, "list activity", err)
		return
	}
	if list == nil {
		list = []models.ActivityLog{}
	}

	httpjson.Respond(w, http.StatusOK, list)
}

// canViewResource resolves resourceID against tasks, projects, and
// workspaces in turn, and reports whether userID may see it. Unknown ids
// are simply not visible.
func (h *Handler) canViewResource(ctx context.Context, resourceID, userID primitive.ObjectID) (bool, error) {
	if t, err := taskstore.New(h.DB).GetByID(ctx, resourceID); err == nil {
		p, err := projectstore.New(h.DB).GetByID(ctx, t.Project)
		if err != nil {
			if err == projectstore.ErrNotFound {
				return false, nil
			}
			return false, err
		}
		return authz.IsProjectMember(*p, userID), nil
	} else if err != taskstore.ErrNotFound {
		return false, err
	}

	if p, err := projectstore.New(h.DB).GetByID(ctx, resourceID); err == nil {
		return authz.IsProjectMember(*p, userID), nil
	} else if err != projectstore.ErrNotFound {
		return false, err
	}

	if ws, err := workspacestore.New(h.DB).GetByID(ctx, resourceID); err == nil {
		return authz.IsWorkspaceMember(*ws, userID), nil
	} else if err != workspacestore.ErrNotFound {
		return false, err
	}

	return false, nil
}
