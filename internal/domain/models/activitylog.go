// internal/domain/models/activitylog.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity action tags. New tags may be added; existing entries are never
// rewritten.
const (
	ActionCreatedWorkspace     = "created_workspace"
	ActionUpdatedWorkspace     = "updated_workspace"
	ActionJoinedWorkspace      = "joined_workspace"
	ActionTransferredOwnership = "transferred_workspace_ownership"
	ActionCreatedProject       = "created_project"
	ActionUpdatedProject       = "updated_project"
	ActionCreatedTask          = "created_task"
	ActionUpdatedTask          = "updated_task"
	ActionCreatedSubTask       = "created_subtask"
	ActionUpdatedSubTask       = "updated_subtask"
	ActionAddedComment         = "added_comment"
)

// Resource types referenced by activity entries.
const (
	ResourceWorkspace = "Workspace"
	ResourceProject   = "Project"
	ResourceTask      = "Task"
	ResourceComment   = "Comment"
)

// ActivityDetails is the free-form detail payload of a log entry.
type ActivityDetails struct {
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// ActivityLog is one append-only audit entry for a state-changing action.
// Entries are never mutated or deleted by normal operation and are queried
// by resource id, newest first.
type ActivityLog struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User         primitive.ObjectID `bson:"user" json:"user"`
	Action       string             `bson:"action" json:"action"`
	ResourceType string             `bson:"resource_type" json:"resourceType"`
	ResourceID   primitive.ObjectID `bson:"resource_id" json:"resourceId"`
	Details      ActivityDetails    `bson:"details,omitempty" json:"details,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
