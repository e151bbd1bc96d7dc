// internal/app/features/workspaces/details.go
package workspaces

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	userstore "github.com/taskhubhq/taskhub/internal/app/store/users"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

// memberDetail is one member with their account fields resolved.
type memberDetail struct {
	User     models.PublicUser `json:"user"`
	Role     string            `json:"role"`
	JoinedAt time.Time         `json:"joinedAt"`
}

type detailsResponse struct {
	Workspace models.Workspace `json:"workspace"`
	Members   []memberDetail   `json:"members"`
}

// ServeDetails returns one workspace with its member accounts resolved.
// Visible to members only; non-members get the same 403 whether or not the
// workspace exists behind it.
//
// GET /workspaces/{workspaceID}
func (h *Handler) ServeDetails(w http.ResponseWriter, r *http.Request) {
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

	ids := make([]primitive.ObjectID, 0, len(ws.Members))
	for _, m := range ws.Members {
		ids = append(ids, m.User)
	}

	accounts, err := userstore.New(h.DB).GetManyByID(ctx, ids)
	if err != nil {
		h.ErrLog.Internal(w, r, "load member accounts", err)
		return
	}
	byID := make(map[primitive.ObjectID]models.User, len(accounts))
	for _, u := range accounts {
		byID[u.ID] = u
	}

	members := make([]memberDetail, 0, len(ws.Members))
	for _, m := range ws.Members {
		u, found := byID[m.User]
		if !found {
			// Deleted account still on the member list; skip it.
			continue
		}
		members = append(members, memberDetail{
			User:     u.Public(),
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}

	httpjson.Respond(w, http.StatusOK, detailsResponse{
		Workspace: *ws,
		Members:   members,
	})
}
