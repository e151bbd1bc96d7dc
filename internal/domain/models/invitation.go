// internal/domain/models/invitation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Invitation is a pending, time-bound workspace invite for a registered
// user. At most one live (non-expired) invitation exists per
// (user, workspace) pair; the record is deleted exactly once on acceptance.
type Invitation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User        primitive.ObjectID `bson:"user_id" json:"user"`
	WorkspaceID primitive.ObjectID `bson:"workspace_id" json:"workspaceId"`
	Token       string             `bson:"token" json:"-"`
	Role        string             `bson:"role" json:"role"`

	ExpiresAt time.Time `bson:"expires_at" json:"expiresAt"` // TTL index field
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Expired reports whether the invitation's validity window has passed.
func (i Invitation) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}
