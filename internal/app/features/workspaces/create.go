// internal/app/features/workspaces/create.go
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

type createWorkspaceInput struct {
	Name        string `json:"name" validate:"required,max=100" label:"Name"`
	Description string `json:"description" validate:"max=1000" label:"Description"`
	Color       string `json:"color" validate:"omitempty,hexcolor" label:"Color"`
}

// HandleCreate creates a workspace. The caller becomes its owner and the
// sole entry on the member list.
//
// POST /workspaces
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	var in createWorkspaceInput
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

	store := workspacestore.New(h.DB)
	created, err := store.Create(ctx, models.Workspace{
		Name:        htmlsanitize.PlainText(in.Name),
		Description: htmlsanitize.Sanitize(in.Description),
		Color:       in.Color,
	}, userID)
	if err != nil {
		h.ErrLog.Internal(w, r, "create workspace", err)
		return
	}

	h.Activity.Record(userID, models.ActionCreatedWorkspace, models.ResourceWorkspace,
		created.ID, "created workspace "+created.Name)

	h.Log.Info("workspace created",
		zap.String("workspace_id", created.ID.Hex()),
		zap.String("owner", userID.Hex()))

	httpjson.Respond(w, http.StatusCreated, created)
}
