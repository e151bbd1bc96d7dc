// internal/app/store/workspaces/workspacestore.go
package workspacestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskhubhq/taskhub/internal/domain/models"
)

var (
	// ErrNotFound is returned when no workspace matches the lookup.
	ErrNotFound = errors.New("workspace not found")
	// ErrAlreadyMember is returned when the user is already on the member list.
	ErrAlreadyMember = errors.New("user is already a member of this workspace")
	// ErrTransferConflict is returned when an ownership transfer's
	// preconditions no longer hold: the expected owner changed underneath the
	// request, or the proposed owner is not a member.
	ErrTransferConflict = errors.New("ownership transfer preconditions failed")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("workspaces")}
}

// EnsureIndexes creates the membership and owner indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "members.user", Value: 1}},
			Options: options.Index().SetName("idx_workspaces_member"),
		},
		{
			Keys:    bson.D{{Key: "owner", Value: 1}},
			Options: options.Index().SetName("idx_workspaces_owner"),
		},
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_workspaces_name_ci"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts a workspace owned by ownerID. The owner is seeded into the
// member list with the owner role so the one-owner invariant holds from the
// first write.
func (s *Store) Create(ctx context.Context, ws models.Workspace, ownerID primitive.ObjectID) (models.Workspace, error) {
	now := time.Now().UTC()

	ws.ID = primitive.NewObjectID()
	ws.NameCI = text.Fold(ws.Name)
	ws.Owner = ownerID
	ws.Members = []models.WorkspaceMember{{
		User:     ownerID,
		Role:     models.WorkspaceRoleOwner,
		JoinedAt: now,
	}}
	ws.Projects = []primitive.ObjectID{}
	ws.CreatedAt = now
	ws.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, ws); err != nil {
		return models.Workspace{}, err
	}
	return ws, nil
}

// GetByID loads a workspace by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Workspace, error) {
	var ws models.Workspace
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ws); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ws, nil
}

// FindByMember lists the workspaces userID belongs to, newest first.
func (s *Store) FindByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Workspace, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"members.user": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Workspace
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update holds the workspace fields an owner may change.
type Update struct {
	Name        string
	Description string
	Color       string
}

// UpdateFields updates the workspace's display fields.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{
		"name":        upd.Name,
		"name_ci":     text.Fold(upd.Name),
		"description": upd.Description,
		"color":       upd.Color,
		"updated_at":  time.Now().UTC(),
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddMemberIfAbsent appends (userID, role) to the member list only if userID
// is not already on it. The membership check and the push happen in one
// conditional write, so two concurrent accepts for the same user cannot both
// succeed.
//
// Callers must have verified the workspace exists: a zero match here is
// reported as ErrAlreadyMember.
func (s *Store) AddMemberIfAbsent(ctx context.Context, id, userID primitive.ObjectID, role string) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "members.user": bson.M{"$ne": userID}},
		bson.M{
			"$push": bson.M{"members": models.WorkspaceMember{
				User:     userID,
				Role:     role,
				JoinedAt: now,
			}},
			"$set": bson.M{"updated_at": now},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAlreadyMember
	}
	return nil
}

// TransferOwnership atomically moves ownership from expectedOwner to
// newOwner: the owner field, the new owner's member role, and the former
// owner's demotion to admin all land in one document write. The filter pins
// the current owner and requires newOwner to already be a member, so a
// concurrent transfer or member removal fails the whole operation instead of
// leaving the owner field and member roles disagreeing.
func (s *Store) TransferOwnership(ctx context.Context, id, expectedOwner, newOwner primitive.ObjectID) error {
	filter := bson.M{
		"_id":          id,
		"owner":        expectedOwner,
		"members.user": newOwner,
	}
	update := bson.M{
		"$set": bson.M{
			"owner":                 newOwner,
			"members.$[newm].role":  models.WorkspaceRoleOwner,
			"members.$[prevm].role": models.WorkspaceRoleAdmin,
			"updated_at":            time.Now().UTC(),
		},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"newm.user": newOwner},
			bson.M{"prevm.user": expectedOwner},
		},
	})
	res, err := s.c.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrTransferConflict
	}
	return nil
}

// PushProject appends projectID to the workspace's project list.
func (s *Store) PushProject(ctx context.Context, id, projectID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$addToSet": bson.M{"projects": projectID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the workspace document. Cascading cleanup of projects and
// tasks is orchestrated by the caller.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
