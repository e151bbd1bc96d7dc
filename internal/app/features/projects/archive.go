// internal/app/features/projects/archive.go
package projects

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	projectstore "github.com/taskhubhq/taskhub/internal/app/store/projects"
	workspacestore "github.com/taskhubhq/taskhub/internal/app/store/workspaces"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

// HandleArchive flips the project's archive flag. Any project member may
// toggle it. The flip is a single conditional write; two racing requests
// end with the flag flipped twice, not a lost update.
//
// POST /projects/{projectID}/archive
func (h *Handler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, ok := h.projectFromPath(ctx, w, r)
	if !ok {
		return
	}
	if !authz.IsProjectMember(*p, userID) {
		apierrors.Forbidden(w, "you are not a member of this project")
		return
	}

	updated, err := projectstore.New(h.DB).ToggleArchived(ctx, p.ID)
	if err != nil {
		if err == projectstore.ErrNotFound {
			apierrors.NotFound(w, "project not found")
			return
		}
		h.ErrLog.Internal(w, r, "toggle project archive", err)
		return
	}

	verb := "unarchived"
	if updated.IsArchived {
		verb = "archived"
	}
	h.Activity.Record(userID, models.ActionUpdatedProject, models.ResourceProject,
		updated.ID, verb+" project "+updated.Title)

	h.Log.Info("project archive toggled",
		zap.String("project_id", updated.ID.Hex()),
		zap.Bool("is_archived", updated.IsArchived),
		zap.String("by", userID.Hex()))

	httpjson.Respond(w, http.StatusOK, updated)
}

// ServeArchived lists a workspace's archived projects. Members only.
//
// GET /projects/{workspaceID}/archived
func (h *Handler) ServeArchived(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	workspaceID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "workspaceID"))
	if err != nil {
		apierrors.BadRequest(w, "invalid workspace id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ws, err := workspacestore.New(h.DB).GetByID(ctx, workspaceID)
	if err != nil {
		if err == workspacestore.ErrNotFound {
			apierrors.NotFound(w, "workspace not found")
			return
		}
		h.ErrLog.Internal(w, r, "load workspace", err)
		return
	}
	if !authz.IsWorkspaceMember(*ws, userID) {
		apierrors.Forbidden(w, "you are not a member of this workspace")
		return
	}

	list, err := projectstore.New(h.DB).FindByWorkspace(ctx, ws.ID, true)
	if err != nil {
		h.ErrLog.Internal(w, r, "list archived projects", err)
		return
	}
	if list == nil {
		list = []models.Project{}
	}

	httpjson.Respond(w, http.StatusOK, list)
}
