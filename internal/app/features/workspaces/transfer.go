// internal/app/features/workspaces/transfer.go
package workspaces

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	workspacestore "github.com/taskhubhq/taskhub/internal/app/store/workspaces"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/inputval"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

type transferOwnershipInput struct {
	NewOwnerID string `json:"newOwnerId" validate:"required" label:"New owner"`
}

// HandleTransferOwnership hands the workspace to another member. The owner
// field, the new owner's promotion, and the former owner's demotion to
// admin land in one conditional write keyed on the caller still being
// owner, so the outcome is all-or-nothing even under concurrent transfers.
//
// POST /workspaces/{workspaceID}/transfer-ownership
func (h *Handler) HandleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	var in transferOwnershipInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		apierrors.BadRequest(w, result.First())
		return
	}
	newOwnerID, err := primitive.ObjectIDFromHex(in.NewOwnerID)
	if err != nil {
		apierrors.BadRequest(w, "invalid new owner id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ws, ok := h.workspaceFromPath(ctx, w, r)
	if !ok {
		return
	}
	if !authz.IsWorkspaceOwner(*ws, userID) {
		apierrors.Forbidden(w, "only the workspace owner can transfer ownership")
		return
	}
	if newOwnerID == userID {
		apierrors.Conflict(w, "you already own this workspace")
		return
	}
	if !ws.IsMember(newOwnerID) {
		apierrors.Conflict(w, "new owner must be a member of the workspace")
		return
	}

	err = workspacestore.New(h.DB).TransferOwnership(ctx, ws.ID, userID, newOwnerID)
	if err != nil {
		if err == workspacestore.ErrTransferConflict {
			apierrors.Conflict(w, "workspace ownership changed, reload and try again")
			return
		}
		h.ErrLog.Internal(w, r, "transfer ownership", err)
		return
	}

	h.Activity.Record(userID, models.ActionTransferredOwnership, models.ResourceWorkspace,
		ws.ID, "transferred ownership of "+ws.Name)

	h.Log.Info("workspace ownership transferred",
		zap.String("workspace_id", ws.ID.Hex()),
		zap.String("from", userID.Hex()),
		zap.String("to", newOwnerID.Hex()))

	httpjson.Message(w, http.StatusOK, "ownership transferred")
}
