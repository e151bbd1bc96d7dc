// internal/app/store/tasks/taskstore.go
package taskstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskhubhq/taskhub/internal/domain/models"
)

var (
	// ErrNotFound is returned when no task matches the lookup.
	ErrNotFound = errors.New("task not found")
	// ErrSubTaskNotFound is returned when the sub-task id does not exist on
	// the task.
	ErrSubTaskNotFound = errors.New("sub-task not found")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tasks")}
}

// EnsureIndexes creates the project and assignee indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "project", Value: 1}, {Key: "is_archived", Value: 1}},
			Options: options.Index().SetName("idx_tasks_project"),
		},
		{
			Keys:    bson.D{{Key: "assignees", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_tasks_assignee"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts a task. The creator is seeded as the first watcher so they
// are notified about their own task from the start.
func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	now := time.Now().UTC()

	t.ID = primitive.NewObjectID()
	if t.Status == "" {
		t.Status = models.TaskStatusToDo
	}
	if t.Priority == "" {
		t.Priority = models.TaskPriorityMedium
	}
	if t.Assignees == nil {
		t.Assignees = []primitive.ObjectID{}
	}
	t.Watchers = []primitive.ObjectID{t.CreatedBy}
	t.SubTasks = []models.SubTask{}
	t.Comments = []primitive.ObjectID{}
	t.IsArchived = false
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// GetByID loads a task by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var t models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByProject lists a project's live tasks, newest first.
func (s *Store) FindByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	filter := bson.M{"project": projectID, "is_archived": false}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Task
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindAllByProjects lists every task in the given projects, archived or not.
// Used by workspace stats.
func (s *Store) FindAllByProjects(ctx context.Context, projectIDs []primitive.ObjectID) ([]models.Task, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"project": bson.M{"$in": projectIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Task
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByAssignee lists the live tasks assigned to userID, newest first.
func (s *Store) FindByAssignee(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	filter := bson.M{"assignees": userID, "is_archived": false}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Task
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) setFields(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateTitle replaces the task title.
func (s *Store) UpdateTitle(ctx context.Context, id primitive.ObjectID, title string) error {
	return s.setFields(ctx, id, bson.M{"title": title})
}

// UpdateDescription replaces the task description.
func (s *Store) UpdateDescription(ctx context.Context, id primitive.ObjectID, description string) error {
	return s.setFields(ctx, id, bson.M{"description": description})
}

// UpdateStatus sets the task status. Validity is the caller's concern.
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	return s.setFields(ctx, id, bson.M{"status": status})
}

// UpdatePriority sets the task priority.
func (s *Store) UpdatePriority(ctx context.Context, id primitive.ObjectID, priority string) error {
	return s.setFields(ctx, id, bson.M{"priority": priority})
}

// UpdateAssignees replaces the assignee list wholesale.
func (s *Store) UpdateAssignees(ctx context.Context, id primitive.ObjectID, assignees []primitive.ObjectID) error {
	if assignees == nil {
		assignees = []primitive.ObjectID{}
	}
	return s.setFields(ctx, id, bson.M{"assignees": assignees})
}

// AddSubTask appends a new checklist entry and returns it.
func (s *Store) AddSubTask(ctx context.Context, id primitive.ObjectID, title string) (models.SubTask, error) {
	st := models.SubTask{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Completed: false,
		CreatedAt: time.Now().UTC(),
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"sub_tasks": st},
		"$set":  bson.M{"updated_at": st.CreatedAt},
	})
	if err != nil {
		return models.SubTask{}, err
	}
	if res.MatchedCount == 0 {
		return models.SubTask{}, ErrNotFound
	}
	return st, nil
}

// UpdateSubTask updates one checklist entry in place by its id.
func (s *Store) UpdateSubTask(ctx context.Context, id, subTaskID primitive.ObjectID, title string, completed bool) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "sub_tasks._id": subTaskID},
		bson.M{"$set": bson.M{
			"sub_tasks.$.title":     title,
			"sub_tasks.$.completed": completed,
			"updated_at":            time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSubTaskNotFound
	}
	return nil
}

// PushComment appends commentID to the task's comment list.
func (s *Store) PushComment(ctx context.Context, id, commentID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"comments": commentID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleWatch adds userID to the watcher list if absent, removes it if
// present, and reports whether the user is watching afterwards. Each branch
// is a conditional write, so concurrent toggles cannot double-add.
func (s *Store) ToggleWatch(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "watchers": bson.M{"$ne": userID}},
		bson.M{
			"$addToSet": bson.M{"watchers": userID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount > 0 {
		return true, nil
	}

	// Already watching, or the task does not exist.
	res, err = s.c.UpdateOne(ctx,
		bson.M{"_id": id, "watchers": userID},
		bson.M{
			"$pull": bson.M{"watchers": userID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return false, nil
}

// ToggleArchived flips the task's archive flag in a single pipeline update
// and returns the task as it was after the flip.
func (s *Store) ToggleArchived(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	pipeline := bson.A{bson.M{"$set": bson.M{
		"is_archived": bson.M{"$not": "$is_archived"},
		"updated_at":  time.Now().UTC(),
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var t models.Task
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, pipeline, opts).Decode(&t)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// DeleteByProjects removes every task belonging to the given projects and
// returns the count removed. Part of the workspace delete cascade.
func (s *Store) DeleteByProjects(ctx context.Context, projectIDs []primitive.ObjectID) (int64, error) {
	if len(projectIDs) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"project": bson.M{"$in": projectIDs}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
