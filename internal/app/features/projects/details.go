// internal/app/features/projects/details.go
package projects

import (
	"context"
	"net/http"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
)

// ServeDetails returns one project. Project members only; workspace
// membership alone is not enough, project ACLs are their own scope.
//
// GET /projects/{projectID}
func (h *Handler) ServeDetails(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, ok := h.projectFromPath(ctx, w, r)
	if !ok {
		return
	}
	if !authz.IsProjectMember(*p, userID) {
		apierrors.Forbidden(w, "you are not a member of this project")
		return
	}

	httpjson.Respond(w, http.StatusOK, p)
}
