// internal/app/features/workspaces/update.go
package workspaces

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	workspacestore "github.com/taskhubhq/taskhub/internal/app/store/workspaces"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/htmlsanitize"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/inputval"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

type updateWorkspaceInput struct {
	Name        string `json:"name" validate:"required,max=100" label:"Name"`
	Description string `json:"description" validate:"max=1000" label:"Description"`
	Color       string `json:"color" validate:"omitempty,hexcolor" label:"Color"`
}

// HandleUpdate changes the workspace's display fields. Owner only.
//
// PUT /workspaces/{workspaceID}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	var in updateWorkspaceInput
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

	ws, ok := h.workspaceFromPath(ctx, w, r)
	if !ok {
		return
	}
	if !authz.CanManageWorkspace(*ws, userID) {
		apierrors.Forbidden(w, "only the workspace owner can update it")
		return
	}

	store := workspacestore.New(h.DB)
	err := store.UpdateFields(ctx, ws.ID, workspacestore.Update{
		Name:        htmlsanitize.PlainText(in.Name),
		Description: htmlsanitize.Sanitize(in.Description),
		Color:       in.Color,
	})
	if err != nil {
		if err == workspacestore.ErrNotFound {
			apierrors.NotFound(w, "workspace not found")
			return
		}
		h.ErrLog.Internal(w, r, "update workspace", err)
		return
	}

	h.Activity.Record(userID, models.ActionUpdatedWorkspace, models.ResourceWorkspace,
		ws.ID, "updated workspace "+in.Name)

	h.Log.Info("workspace updated",
		zap.String("workspace_id", ws.ID.Hex()),
		zap.String("updated_by", userID.Hex()))

	updated, err := store.GetByID(ctx, ws.ID)
	if err != nil {
		h.ErrLog.Internal(w, r, "reload workspace", err)
		return
	}
	httpjson.Respond(w, http.StatusOK, updated)
}
