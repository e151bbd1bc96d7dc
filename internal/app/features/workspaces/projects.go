// internal/app/features/workspaces/projects.go
package workspaces

import (
	"context"
	"net/http"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	projectstore "github.com/taskhubhq/taskhub/internal/app/store/projects"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

// ServeProjects lists the workspace's live projects. Members only.
//
// GET /workspaces/{workspaceID}/projects
func (h *Handler) ServeProjects(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ws, ok := h.workspaceFromPath(ctx, w, r)
	if !ok {
		return
	}
	if !authz.IsWorkspaceMember(*ws, userID) {
		apierrors.Forbidden(w, "you are not a member of this workspace")
		return
	}

	list, err := projectstore.New(h.DB).FindByWorkspace(ctx, ws.ID, false)
	if err != nil {
		h.ErrLog.Internal(w, r, "list workspace projects", err)
		return
	}
	if list == nil {
		list = []models.Project{}
	}

	httpjson.Respond(w, http.StatusOK, list)
}
