// internal/app/system/authz/authz.go
//
// Package authz is the single source of truth for membership-based access
// decisions. Handlers resolve the owning workspace or project first, then
// ask this package whether the caller may proceed, before touching any
// other resource fields.
//
// Decisions are made against an explicit principal (the caller's ObjectID)
// and an explicit resource document, never against ambient request state,
// so every rule is testable in isolation.
package authz

import (
	"net/http"

	"github.com/taskhubhq/taskhub/internal/app/system/auth"
	"github.com/taskhubhq/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the caller's name, Mongo ObjectID, and a found flag.
// If no user is present in context or the user ID is malformed, it returns
// ("", NilObjectID, false). This ensures callers can trust that ok=true
// means a valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "", primitive.NilObjectID, false
	}
	return user.Name, userID, true
}

// IsWorkspaceMember reports whether userID appears in ws's member list.
func IsWorkspaceMember(ws models.Workspace, userID primitive.ObjectID) bool {
	return ws.IsMember(userID)
}

// WorkspaceRole returns userID's role in ws, or ("", false) for non-members.
func WorkspaceRole(ws models.Workspace, userID primitive.ObjectID) (string, bool) {
	return ws.MemberRole(userID)
}

// IsProjectMember reports whether userID appears in p's member list.
// Task mutations derive their authorization from this check; tasks carry
// no member list of their own.
func IsProjectMember(p models.Project, userID primitive.ObjectID) bool {
	return p.IsMember(userID)
}

// ProjectRole returns userID's role in p, or ("", false) for non-members.
func ProjectRole(p models.Project, userID primitive.ObjectID) (string, bool) {
	return p.MemberRole(userID)
}

// CanEditProject reports whether userID may mutate p's contents, including
// its tasks. Managers and contributors may; viewers are read-only.
func CanEditProject(p models.Project, userID primitive.ObjectID) bool {
	role, ok := p.MemberRole(userID)
	return ok && role != models.ProjectRoleViewer
}

// CanManageWorkspace reports whether userID may update or delete ws.
// Restricted to the owner role.
func CanManageWorkspace(ws models.Workspace, userID primitive.ObjectID) bool {
	role, ok := ws.MemberRole(userID)
	return ok && role == models.WorkspaceRoleOwner
}

// CanInviteMembers reports whether userID may invite members to ws.
// Restricted to admin and owner roles.
func CanInviteMembers(ws models.Workspace, userID primitive.ObjectID) bool {
	role, ok := ws.MemberRole(userID)
	return ok && (role == models.WorkspaceRoleAdmin || role == models.WorkspaceRoleOwner)
}

// IsWorkspaceOwner reports whether userID holds the owner role in ws.
func IsWorkspaceOwner(ws models.Workspace, userID primitive.ObjectID) bool {
	role, ok := ws.MemberRole(userID)
	return ok && role == models.WorkspaceRoleOwner
}
