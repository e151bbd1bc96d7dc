// internal/domain/models/workspace.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workspace roles, from most to least privileged.
const (
	WorkspaceRoleOwner  = "owner"
	WorkspaceRoleAdmin  = "admin"
	WorkspaceRoleMember = "member"
	WorkspaceRoleViewer = "viewer"
)

// ValidWorkspaceRole reports whether role is one of the workspace roles.
func ValidWorkspaceRole(role string) bool {
	switch role {
	case WorkspaceRoleOwner, WorkspaceRoleAdmin, WorkspaceRoleMember, WorkspaceRoleViewer:
		return true
	}
	return false
}

// WorkspaceMember is a (user, role) pair embedded on the workspace document.
type WorkspaceMember struct {
	User     primitive.ObjectID `bson:"user" json:"user"`
	Role     string             `bson:"role" json:"role"`
	JoinedAt time.Time          `bson:"joined_at" json:"joinedAt"`
}

// Workspace is the top-level tenant container. It owns a project list and an
// embedded member list.
//
// Invariant: exactly one member has role "owner" at all times, and Owner
// equals that member's user id. Ownership transfer updates both in a single
// document write so they cannot desynchronize.
type Workspace struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"` // case-insensitive for search
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Color       string             `bson:"color,omitempty" json:"color,omitempty"`

	Owner    primitive.ObjectID   `bson:"owner" json:"owner"`
	Members  []WorkspaceMember    `bson:"members" json:"members"`
	Projects []primitive.ObjectID `bson:"projects" json:"projects"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// MemberRole returns the role of userID in the workspace member list, or
// ("", false) when userID is not a member. Comparison is on the ObjectID
// value itself, never a stringified form.
func (w Workspace) MemberRole(userID primitive.ObjectID) (string, bool) {
	for _, m := range w.Members {
		if m.User == userID {
			return m.Role, true
		}
	}
	return "", false
}

// IsMember reports whether userID appears in the workspace member list.
func (w Workspace) IsMember(userID primitive.ObjectID) bool {
	_, ok := w.MemberRole(userID)
	return ok
}
