// internal/app/store/invitations/invitationstore.go
package invitationstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskhubhq/taskhub/internal/domain/models"
)

var (
	// ErrNotFound is returned when no live invitation matches the lookup.
	ErrNotFound = errors.New("invitation not found")
	// ErrPendingInvite is returned when the user already has a live
	// invitation to the workspace.
	ErrPendingInvite = errors.New("user already has a pending invitation to this workspace")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("workspace_invitations")}
}

// EnsureIndexes creates the TTL index that reaps expired invitations and the
// unique pair index that enforces one live invitation per (user, workspace).
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_invitations_expires_ttl").SetExpireAfterSeconds(0),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "workspace_id", Value: 1}},
			Options: options.Index().SetName("idx_invitations_pair_unique").SetUnique(true),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts an invitation for (userID, workspaceID). An expired record
// for the pair is cleared first; the TTL sweep may not have reached it yet.
// A live record for the pair makes the insert fail with ErrPendingInvite.
func (s *Store) Create(ctx context.Context, inv models.Invitation) (models.Invitation, error) {
	now := time.Now().UTC()

	_, err := s.c.DeleteMany(ctx, bson.M{
		"user_id":      inv.User,
		"workspace_id": inv.WorkspaceID,
		"expires_at":   bson.M{"$lte": now},
	})
	if err != nil {
		return models.Invitation{}, err
	}

	inv.ID = primitive.NewObjectID()
	inv.CreatedAt = now

	if _, err := s.c.InsertOne(ctx, inv); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Invitation{}, ErrPendingInvite
		}
		return models.Invitation{}, err
	}
	return inv, nil
}

// GetLiveByPair loads the non-expired invitation for (userID, workspaceID).
func (s *Store) GetLiveByPair(ctx context.Context, userID, workspaceID primitive.ObjectID) (*models.Invitation, error) {
	var inv models.Invitation
	err := s.c.FindOne(ctx, bson.M{
		"user_id":      userID,
		"workspace_id": workspaceID,
		"expires_at":   bson.M{"$gt": time.Now().UTC()},
	}).Decode(&inv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// ConsumeByPair atomically claims and deletes the live invitation for
// (userID, workspaceID). Exactly one of two concurrent accepts gets the
// record; the other sees ErrNotFound.
func (s *Store) ConsumeByPair(ctx context.Context, userID, workspaceID primitive.ObjectID) (*models.Invitation, error) {
	var inv models.Invitation
	err := s.c.FindOneAndDelete(ctx, bson.M{
		"user_id":      userID,
		"workspace_id": workspaceID,
		"expires_at":   bson.M{"$gt": time.Now().UTC()},
	}).Decode(&inv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// DeleteByWorkspace removes every invitation to the workspace. Part of the
// workspace delete cascade.
func (s *Store) DeleteByWorkspace(ctx context.Context, workspaceID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"workspace_id": workspaceID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
