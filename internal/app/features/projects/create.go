// internal/app/features/projects/create.go
package projects

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	projectstore "github.com/taskhubhq/taskhub/internal/app/store/projects"
	workspacestore "github.com/taskhubhq/taskhub/internal/app/store/workspaces"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/htmlsanitize"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/inputval"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

type projectMemberInput struct {
	User string `json:"user" validate:"required" label:"Member"`
	Role string `json:"role" validate:"required,oneof=manager contributor viewer" label:"Member role"`
}

type createProjectInput struct {
	Title       string               `json:"title" validate:"required,max=200" label:"Title"`
	Description string               `json:"description" validate:"max=2000" label:"Description"`
	Status      string               `json:"status" label:"Status"`
	StartDate   *time.Time           `json:"startDate" label:"Start date"`
	DueDate     *time.Time           `json:"dueDate" label:"Due date"`
	Tags        []string             `json:"tags" validate:"max=20,dive,max=40" label:"Tags"`
	Members     []projectMemberInput `json:"members" validate:"dive" label:"Members"`
}

// HandleCreate creates a project inside a workspace. Any workspace member
// may create one. Every project member must be a workspace member, and the
// creator always ends up on the project member list as a manager.
//
// POST /projects/{workspaceID}/create-project
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	workspaceID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "workspaceID"))
	if err != nil {
		apierrors.BadRequest(w, "invalid workspace id")
		return
	}

	var in createProjectInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		apierrors.BadRequest(w, result.First())
		return
	}
	if in.Status != "" && !models.ValidProjectStatus(in.Status) {
		apierrors.BadRequest(w, "invalid project status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ws, err := workspacestore.New(h.DB).GetByID(ctx, workspaceID)
	if err != nil {
		if err == workspacestore.ErrNotFound {
			apierrors.NotFound(w, "workspace not found")
			return
		}
		h.ErrLog.Internal(w, r, "load workspace", err)
		return
	}
	if !authz.IsWorkspaceMember(*ws, userID) {
		apierrors.Forbidden(w, "you are not a member of this workspace")
		return
	}

	members := make([]models.ProjectMember, 0, len(in.Members)+1)
	creatorListed := false
	for _, m := range in.Members {
		mid, err := primitive.ObjectIDFromHex(m.User)
		if err != nil {
			apierrors.BadRequest(w, "invalid member id")
			return
		}
		if !ws.IsMember(mid) {
			apierrors.BadRequest(w, "all project members must belong to the workspace")
			return
		}
		if mid == userID {
			creatorListed = true
		}
		members = append(members, models.ProjectMember{User: mid, Role: m.Role})
	}
	if !creatorListed {
		members = append(members, models.ProjectMember{User: userID, Role: models.ProjectRoleManager})
	}

	created, err := projectstore.New(h.DB).Create(ctx, models.Project{
		Title:       htmlsanitize.PlainText(in.Title),
		Description: htmlsanitize.Sanitize(in.Description),
		Workspace:   ws.ID,
		Status:      in.Status,
		StartDate:   in.StartDate,
		DueDate:     in.DueDate,
		Tags:        in.Tags,
		Members:     members,
		CreatedBy:   userID,
	})
	if err != nil {
		h.ErrLog.Internal(w, r, "create project", err)
		return
	}

	if err := workspacestore.New(h.DB).PushProject(ctx, ws.ID, created.ID); err != nil {
		h.ErrLog.Internal(w, r, "attach project to workspace", err)
		return
	}

	h.Activity.Record(userID, models.ActionCreatedProject, models.ResourceProject,
		created.ID, "created project "+created.Title)

	h.Log.Info("project created",
		zap.String("project_id", created.ID.Hex()),
		zap.String("workspace_id", ws.ID.Hex()),
		zap.String("created_by", userID.Hex()))

	httpjson.Respond(w, http.StatusCreated, created)
}
