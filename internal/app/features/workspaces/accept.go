// internal/app/features/workspaces/accept.go
package workspaces

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	invitationstore "github.com/taskhubhq/taskhub/internal/app/store/invitations"
	workspacestore "github.com/taskhubhq/taskhub/internal/app/store/workspaces"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/inputval"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/app/system/token"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

type acceptInviteTokenInput struct {
	Token string `json:"token" validate:"required" label:"Token"`
}

// HandleAcceptInviteToken redeems an emailed invitation. The invitation is
// personal: the token's subject must be the caller. An existing member is
// turned away with a conflict before the pending record is touched; the
// record itself is claimed atomically, and the membership write checks and
// inserts in one step, so a double accept cannot add the user twice.
//
// POST /workspaces/accept-invite-token
func (h *Handler) HandleAcceptInviteToken(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	var in acceptInviteTokenInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		apierrors.BadRequest(w, result.First())
		return
	}

	claims, err := h.Tokens.Verify(in.Token, token.PurposeWorkspaceInvite)
	if err != nil {
		if err == token.ErrExpired {
			apierrors.Gone(w, "invitation has expired")
			return
		}
		apierrors.BadRequest(w, "invalid invitation token")
		return
	}
	subject, err := claims.Subject()
	if err != nil {
		apierrors.BadRequest(w, "invalid invitation token")
		return
	}
	if subject != userID {
		apierrors.Forbidden(w, "this invitation was issued to a different account")
		return
	}
	workspaceID, err := claims.Workspace()
	if err != nil {
		apierrors.BadRequest(w, "invalid invitation token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	wsStore := workspacestore.New(h.DB)
	ws, err := wsStore.GetByID(ctx, workspaceID)
	if err != nil {
		if err == workspacestore.ErrNotFound {
			apierrors.NotFound(w, "workspace not found")
			return
		}
		h.ErrLog.Internal(w, r, "load workspace for accept", err)
		return
	}
	if ws.IsMember(userID) {
		apierrors.Conflict(w, "you are already a member of this workspace")
		return
	}

	inv, err := invitationstore.New(h.DB).ConsumeByPair(ctx, userID, ws.ID)
	if err != nil {
		if err == invitationstore.ErrNotFound {
			apierrors.Gone(w, "invitation is no longer valid")
			return
		}
		h.ErrLog.Internal(w, r, "consume invitation", err)
		return
	}

	if err := wsStore.AddMemberIfAbsent(ctx, ws.ID, userID, inv.Role); err != nil {
		if err == workspacestore.ErrAlreadyMember {
			apierrors.Conflict(w, "you are already a member of this workspace")
			return
		}
		h.ErrLog.Internal(w, r, "add member", err)
		return
	}

	h.Activity.Record(userID, models.ActionJoinedWorkspace, models.ResourceWorkspace,
		ws.ID, "joined workspace "+ws.Name)

	h.Log.Info("invitation accepted",
		zap.String("workspace_id", ws.ID.Hex()),
		zap.String("user_id", userID.Hex()),
		zap.String("role", inv.Role))

	httpjson.Message(w, http.StatusOK, "invitation accepted")
}

// HandleAcceptGeneratedInvite joins the caller to the workspace through its
// shared invite link. Link joiners always enter with the member role.
//
// POST /workspaces/{workspaceID}/accept-generate-invite
func (h *Handler) HandleAcceptGeneratedInvite(w http.ResponseWriter, r *http.Request) {
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

	err := workspacestore.New(h.DB).AddMemberIfAbsent(ctx, ws.ID, userID, models.WorkspaceRoleMember)
	if err != nil {
		if err == workspacestore.ErrAlreadyMember {
			apierrors.Conflict(w, "you are already a member of this workspace")
			return
		}
		h.ErrLog.Internal(w, r, "add member", err)
		return
	}

	h.Activity.Record(userID, models.ActionJoinedWorkspace, models.ResourceWorkspace,
		ws.ID, "joined workspace "+ws.Name)

	h.Log.Info("joined workspace via invite link",
		zap.String("workspace_id", ws.ID.Hex()),
		zap.String("user_id", userID.Hex()))

	httpjson.Message(w, http.StatusOK, "joined workspace")
}
