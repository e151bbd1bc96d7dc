// internal/app/store/projects/projectstore.go
package projectstore

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

// ErrNotFound is returned when no project matches the lookup.
var ErrNotFound = errors.New("project not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

// EnsureIndexes creates the workspace and membership indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workspace", Value: 1}, {Key: "is_archived", Value: 1}},
			Options: options.Index().SetName("idx_projects_workspace"),
		},
		{
			Keys:    bson.D{{Key: "members.user", Value: 1}},
			Options: options.Index().SetName("idx_projects_member"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts a project. The member list must already include the
// creator; callers assemble it from the request before the insert.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	now := time.Now().UTC()

	p.ID = primitive.NewObjectID()
	p.TitleCI = text.Fold(p.Title)
	if p.Status == "" {
		p.Status = models.ProjectStatusPlanning
	}
	if p.Tasks == nil {
		p.Tasks = []primitive.ObjectID{}
	}
	p.IsArchived = false
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// GetByID loads a project by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByWorkspace lists a workspace's projects, optionally restricted to
// archived or live ones, newest first.
func (s *Store) FindByWorkspace(ctx context.Context, workspaceID primitive.ObjectID, archived bool) ([]models.Project, error) {
	filter := bson.M{"workspace": workspaceID, "is_archived": archived}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Project
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindAllByWorkspace lists every project in a workspace regardless of
// archive state. Used by workspace stats and cascade deletes.
func (s *Store) FindAllByWorkspace(ctx context.Context, workspaceID primitive.ObjectID) ([]models.Project, error) {
	cur, err := s.c.Find(ctx, bson.M{"workspace": workspaceID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Project
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleArchived flips the project's archive flag in a single pipeline
// update and returns the project as it was after the flip. Concurrent
// toggles serialize on the document; neither read-modify-write races.
func (s *Store) ToggleArchived(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	pipeline := bson.A{bson.M{"$set": bson.M{
		"is_archived": bson.M{"$not": "$is_archived"},
		"updated_at":  time.Now().UTC(),
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Project
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, pipeline, opts).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// UpdateProgress sets the project's completion percentage.
func (s *Store) UpdateProgress(ctx context.Context, id primitive.ObjectID, progress int) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"progress":   progress,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PushTask appends taskID to the project's task list.
func (s *Store) PushTask(ctx context.Context, id, taskID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$addToSet": bson.M{"tasks": taskID},
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

// DeleteByWorkspace removes every project in the workspace and returns the
// count removed. Part of the workspace delete cascade.
func (s *Store) DeleteByWorkspace(ctx context.Context, workspaceID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"workspace": workspaceID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
