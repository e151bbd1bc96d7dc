// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered TaskHub account.
//
// NOTE:
//   - Workspace and project membership are not embedded on User.
//     Membership lives on the workspace/project documents themselves.
//   - Password is the bcrypt hash; it is stripped from every API response.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName        string             `bson:"full_name" json:"fullName"`
	FullNameCI      string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password" json:"-"`
	Avatar          string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	IsEmailVerified bool               `bson:"is_email_verified" json:"isEmailVerified"`
	LastLogin       *time.Time         `bson:"last_login,omitempty" json:"lastLogin,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// PublicUser is the member-facing projection of a User (no credentials).
type PublicUser struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	FullName string             `bson:"full_name" json:"fullName"`
	Email    string             `bson:"email" json:"email"`
	Avatar   string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

// Public returns the projection of u safe to embed in API responses.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, FullName: u.FullName, Email: u.Email, Avatar: u.Avatar}
}
