// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project roles. These scope permissions within a single project and are
// independent of the owning workspace's member roles.
const (
	ProjectRoleManager     = "manager"
	ProjectRoleContributor = "contributor"
	ProjectRoleViewer      = "viewer"
)

// ValidProjectRole reports whether role is one of the project roles.
func ValidProjectRole(role string) bool {
	switch role {
	case ProjectRoleManager, ProjectRoleContributor, ProjectRoleViewer:
		return true
	}
	return false
}

// Project status values.
const (
	ProjectStatusPlanning   = "Planning"
	ProjectStatusInProgress = "In Progress"
	ProjectStatusOnHold     = "On Hold"
	ProjectStatusCompleted  = "Completed"
	ProjectStatusCancelled  = "Cancelled"
)

// ProjectStatuses lists every valid project status.
var ProjectStatuses = []string{
	ProjectStatusPlanning,
	ProjectStatusInProgress,
	ProjectStatusOnHold,
	ProjectStatusCompleted,
	ProjectStatusCancelled,
}

// ValidProjectStatus reports whether status is a known project status.
func ValidProjectStatus(status string) bool {
	for _, s := range ProjectStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ProjectMember is a (user, role) pair embedded on the project document.
// Project membership is a separate scope from workspace membership.
type ProjectMember struct {
	User primitive.ObjectID `bson:"user" json:"user"`
	Role string             `bson:"role" json:"role"`
}

// Project is a unit of work within a workspace with its own member list
// and task list.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Workspace   primitive.ObjectID `bson:"workspace" json:"workspace"`
	Status      string             `bson:"status" json:"status"`

	StartDate *time.Time `bson:"start_date,omitempty" json:"startDate,omitempty"`
	DueDate   *time.Time `bson:"due_date,omitempty" json:"dueDate,omitempty"`
	Progress  int        `bson:"progress" json:"progress"` // 0..100

	Tasks   []primitive.ObjectID `bson:"tasks" json:"tasks"`
	Members []ProjectMember      `bson:"members" json:"members"`
	Tags    []string             `bson:"tags,omitempty" json:"tags,omitempty"`

	CreatedBy  primitive.ObjectID `bson:"created_by" json:"createdBy"`
	IsArchived bool               `bson:"is_archived" json:"isArchived"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// MemberRole returns the role of userID in the project member list, or
// ("", false) when userID is not a project member.
func (p Project) MemberRole(userID primitive.ObjectID) (string, bool) {
	for _, m := range p.Members {
		if m.User == userID {
			return m.Role, true
		}
	}
	return "", false
}

// IsMember reports whether userID appears in the project member list.
func (p Project) IsMember(userID primitive.ObjectID) bool {
	_, ok := p.MemberRole(userID)
	return ok
}
