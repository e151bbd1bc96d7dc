// internal/app/features/workspaces/helpers.go
package workspaces

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	workspacestore "github.com/taskhubhq/taskhub/internal/app/store/workspaces"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

// workspaceFromPath parses {workspaceID} and loads the workspace. On
// failure it writes the error response and returns ok=false.
func (h *Handler) workspaceFromPath(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.Workspace, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "workspaceID"))
	if err != nil {
		apierrors.BadRequest(w, "invalid workspace id")
		return nil, false
	}

	store := workspacestore.New(h.DB)
	ws, err := store.GetByID(ctx, id)
	if err != nil {
		if err == workspacestore.ErrNotFound {
			apierrors.NotFound(w, "workspace not found")
			return nil, false
		}
		h.ErrLog.Internal(w, r, "load workspace", err)
		return nil, false
	}
	return ws, true
}
