// internal/domain/models/comment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a task comment. Text is sanitized before storage.
type Comment struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Task   primitive.ObjectID `bson:"task" json:"task"`
	Author primitive.ObjectID `bson:"author" json:"author"`
	Text   string             `bson:"text" json:"text"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
