// internal/app/features/projects/helpers.go
package projects

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	projectstore "github.com/taskhubhq/taskhub/internal/app/store/projects"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

// projectFromPath parses {projectID} and loads the project. On failure it
// writes the error response and returns ok=false.
func (h *Handler) projectFromPath(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
	if err != nil {
		apierrors.BadRequest(w, "invalid project id")
		return nil, false
	}

	p, err := projectstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if err == projectstore.ErrNotFound {
			apierrors.NotFound(w, "project not found")
			return nil, false
		}
		h.ErrLog.Internal(w, r, "load project", err)
		return nil, false
	}
	return p, true
}
