// internal/app/features/workspaces/invite.go
package workspaces

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	invitationstore "github.com/taskhubhq/taskhub/internal/app/store/invitations"
	userstore "github.com/taskhubhq/taskhub/internal/app/store/users"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/inputval"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/app/system/token"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

type inviteMemberInput struct {
	Email string `json:"email" validate:"required,email" label:"Email"`
	Role  string `json:"role" validate:"required,oneof=admin member viewer" label:"Role"`
}

// HandleInviteMember invites a registered user into the workspace by email.
// Admins and the owner may invite; the owner role itself can never be
// granted this way. At most one live invitation exists per invitee.
//
// POST /workspaces/{workspaceID}/invite-member
func (h *Handler) HandleInviteMember(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	var in inviteMemberInput
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
	if !authz.CanInviteMembers(*ws, userID) {
		apierrors.Forbidden(w, "you are not authorized to invite members to this workspace")
		return
	}

	invitee, err := userstore.New(h.DB).GetByEmail(ctx, in.Email)
	if err != nil {
		if err == userstore.ErrNotFound {
			apierrors.NotFound(w, "no account exists for that email")
			return
		}
		h.ErrLog.Internal(w, r, "look up invitee", err)
		return
	}

	if ws.IsMember(invitee.ID) {
		apierrors.Conflict(w, "user is already a member of this workspace")
		return
	}

	raw, err := h.Tokens.SignInvite(invitee.ID, ws.ID, in.Role, token.WorkspaceInviteExpiry)
	if err != nil {
		h.ErrLog.Internal(w, r, "sign invite token", err)
		return
	}

	_, err = invitationstore.New(h.DB).Create(ctx, models.Invitation{
		User:        invitee.ID,
		WorkspaceID: ws.ID,
		Token:       raw,
		Role:        in.Role,
		ExpiresAt:   time.Now().UTC().Add(token.WorkspaceInviteExpiry),
	})
	if err != nil {
		if err == invitationstore.ErrPendingInvite {
			apierrors.Conflict(w, "user already has a pending invitation to this workspace")
			return
		}
		h.ErrLog.Internal(w, r, "create invitation", err)
		return
	}

	h.Mail.SendWorkspaceInvite(invitee.Email, invitee.FullName, ws.Name, in.Role,
		h.FrontendURL+"/workspace-invite/"+ws.ID.Hex()+"?tk="+raw)

	h.Log.Info("workspace invitation sent",
		zap.String("workspace_id", ws.ID.Hex()),
		zap.String("invitee", invitee.ID.Hex()),
		zap.String("role", in.Role),
		zap.String("invited_by", userID.Hex()))

	httpjson.Message(w, http.StatusOK, "invitation sent")
}
