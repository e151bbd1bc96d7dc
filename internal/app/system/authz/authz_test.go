package authz_test

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskhubhq/taskhub/internal/app/system/auth"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

func workspaceWith(owner primitive.ObjectID, members ...models.WorkspaceMember) models.Workspace {
	all := append([]models.WorkspaceMember{{User: owner, Role: models.WorkspaceRoleOwner}}, members...)
	return models.Workspace{ID: primitive.NewObjectID(), Owner: owner, Members: all}
}

func TestUserCtx(t *testing.T) {
	// No user in context.
	req := httptest.NewRequest("GET", "/", nil)
	if _, _, ok := authz.UserCtx(req); ok {
		t.Error("expected ok=false without a session user")
	}

	// Malformed id fails closed.
	req = auth.WithUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: "not-an-objectid"})
	if _, _, ok := authz.UserCtx(req); ok {
		t.Error("expected ok=false for malformed user id")
	}

	// Valid user.
	id := primitive.NewObjectID()
	req = auth.WithUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: id.Hex(), Name: "Ada"})
	name, userID, ok := authz.UserCtx(req)
	if !ok || name != "Ada" || userID != id {
		t.Errorf("UserCtx: got (%q, %s, %v)", name, userID.Hex(), ok)
	}
}

func TestWorkspaceRoles(t *testing.T) {
	owner := primitive.NewObjectID()
	admin := primitive.NewObjectID()
	member := primitive.NewObjectID()
	viewer := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	ws := workspaceWith(owner,
		models.WorkspaceMember{User: admin, Role: models.WorkspaceRoleAdmin},
		models.WorkspaceMember{User: member, Role: models.WorkspaceRoleMember},
		models.WorkspaceMember{User: viewer, Role: models.WorkspaceRoleViewer},
	)

	if !authz.IsWorkspaceMember(ws, viewer) || authz.IsWorkspaceMember(ws, stranger) {
		t.Error("membership check wrong")
	}

	if !authz.CanManageWorkspace(ws, owner) {
		t.Error("owner should manage the workspace")
	}
	for _, id := range []primitive.ObjectID{admin, member, viewer, stranger} {
		if authz.CanManageWorkspace(ws, id) {
			t.Errorf("non-owner %s should not manage the workspace", id.Hex())
		}
	}

	if !authz.CanInviteMembers(ws, owner) || !authz.CanInviteMembers(ws, admin) {
		t.Error("owner and admin should be able to invite")
	}
	for _, id := range []primitive.ObjectID{member, viewer, stranger} {
		if authz.CanInviteMembers(ws, id) {
			t.Errorf("%s should not be able to invite", id.Hex())
		}
	}

	if !authz.IsWorkspaceOwner(ws, owner) || authz.IsWorkspaceOwner(ws, admin) {
		t.Error("owner check wrong")
	}
}

func TestProjectRoles(t *testing.T) {
	manager := primitive.NewObjectID()
	contributor := primitive.NewObjectID()
	viewer := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	p := models.Project{
		ID: primitive.NewObjectID(),
		Members: []models.ProjectMember{
			{User: manager, Role: models.ProjectRoleManager},
			{User: contributor, Role: models.ProjectRoleContributor},
			{User: viewer, Role: models.ProjectRoleViewer},
		},
	}

	if !authz.IsProjectMember(p, viewer) || authz.IsProjectMember(p, stranger) {
		t.Error("project membership check wrong")
	}

	if !authz.CanEditProject(p, manager) || !authz.CanEditProject(p, contributor) {
		t.Error("manager and contributor should edit")
	}
	if authz.CanEditProject(p, viewer) {
		t.Error("viewer must not edit")
	}
	if authz.CanEditProject(p, stranger) {
		t.Error("non-member must not edit")
	}

	role, ok := authz.ProjectRole(p, contributor)
	if !ok || role != models.ProjectRoleContributor {
		t.Errorf("ProjectRole: got (%q, %v)", role, ok)
	}
}
