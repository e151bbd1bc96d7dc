// internal/app/features/workspaces/list.go
package workspaces

import (
	"context"
	"net/http"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	workspacestore "github.com/taskhubhq/taskhub/internal/app/store/workspaces"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

// ServeList returns the workspaces the caller is a member of, newest first.
//
// GET /workspaces
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := workspacestore.New(h.DB)
	list, err := store.FindByMember(ctx, userID)
	if err != nil {
		h.ErrLog.Internal(w, r, "list workspaces", err)
		return
	}
	if list == nil {
		list = []models.Workspace{}
	}

	httpjson.Respond(w, http.StatusOK, list)
}
