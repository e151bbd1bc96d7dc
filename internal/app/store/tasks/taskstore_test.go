package taskstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	taskstore "github.com/taskhubhq/taskhub/internal/app/store/tasks"
	"github.com/taskhubhq/taskhub/internal/domain/models"
	"github.com/taskhubhq/taskhub/internal/testutil"
)

func TestCreate_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := taskstore.New(db)
	creator := primitive.NewObjectID()

	task, err := store.Create(ctx, models.Task{
		Title:     "Write docs",
		Project:   primitive.NewObjectID(),
		CreatedBy: creator,
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if task.Status != models.TaskStatusToDo {
		t.Errorf("status: got %q, want %q", task.Status, models.TaskStatusToDo)
	}
	if task.Priority != models.TaskPriorityMedium {
		t.Errorf("priority: got %q, want %q", task.Priority, models.TaskPriorityMedium)
	}
	if !task.IsWatcher(creator) {
		t.Error("creator should start as a watcher")
	}
}

func TestToggleWatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := taskstore.New(db)
	creator := primitive.NewObjectID()
	task, err := store.Create(ctx, models.Task{Title: "T", Project: primitive.NewObjectID(), CreatedBy: creator})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	other := primitive.NewObjectID()

	watching, err := store.ToggleWatch(ctx, task.ID, other)
	if err != nil {
		t.Fatalf("ToggleWatch() error: %v", err)
	}
	if !watching {
		t.Error("first toggle should start watching")
	}

	watching, err = store.ToggleWatch(ctx, task.ID, other)
	if err != nil {
		t.Fatalf("second ToggleWatch() error: %v", err)
	}
	if watching {
		t.Error("second toggle should stop watching")
	}

	got, err := store.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.IsWatcher(other) {
		t.Error("user should no longer be a watcher")
	}
	if !got.IsWatcher(creator) {
		t.Error("creator's watch must be untouched")
	}
}

func TestToggleArchived(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := taskstore.New(db)
	task, err := store.Create(ctx, models.Task{Title: "T", Project: primitive.NewObjectID(), CreatedBy: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	updated, err := store.ToggleArchived(ctx, task.ID)
	if err != nil {
		t.Fatalf("ToggleArchived() error: %v", err)
	}
	if !updated.IsArchived {
		t.Error("first toggle should archive")
	}

	updated, err = store.ToggleArchived(ctx, task.ID)
	if err != nil {
		t.Fatalf("second ToggleArchived() error: %v", err)
	}
	if updated.IsArchived {
		t.Error("second toggle should unarchive")
	}

	if _, err := store.ToggleArchived(ctx, primitive.NewObjectID()); err != taskstore.ErrNotFound {
		t.Errorf("unknown id: got %v, want ErrNotFound", err)
	}
}

func TestSubTasks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := taskstore.New(db)
	task, err := store.Create(ctx, models.Task{Title: "T", Project: primitive.NewObjectID(), CreatedBy: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	st, err := store.AddSubTask(ctx, task.ID, "step one")
	if err != nil {
		t.Fatalf("AddSubTask() error: %v", err)
	}
	if st.Title != "step one" || st.Completed {
		t.Errorf("sub-task: got (%q, %v), want (step one, false)", st.Title, st.Completed)
	}

	if err := store.UpdateSubTask(ctx, task.ID, st.ID, "step one", true); err != nil {
		t.Fatalf("UpdateSubTask() error: %v", err)
	}

	got, err := store.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if len(got.SubTasks) != 1 || !got.SubTasks[0].Completed {
		t.Errorf("sub-tasks after update: %+v", got.SubTasks)
	}

	// Completing the only sub-task must not touch the parent status.
	if got.Status != models.TaskStatusToDo {
		t.Errorf("parent status: got %q, want %q", got.Status, models.TaskStatusToDo)
	}

	err = store.UpdateSubTask(ctx, task.ID, primitive.NewObjectID(), "x", false)
	if err != taskstore.ErrSubTaskNotFound {
		t.Errorf("unknown sub-task: got %v, want ErrSubTaskNotFound", err)
	}
}

func TestFindByProject_SkipsArchived(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := taskstore.New(db)
	projectID := primitive.NewObjectID()
	creator := primitive.NewObjectID()

	live, err := store.Create(ctx, models.Task{Title: "Live", Project: projectID, CreatedBy: creator})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	archived, err := store.Create(ctx, models.Task{Title: "Archived", Project: projectID, CreatedBy: creator})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := store.ToggleArchived(ctx, archived.ID); err != nil {
		t.Fatalf("ToggleArchived() error: %v", err)
	}

	list, err := store.FindByProject(ctx, projectID)
	if err != nil {
		t.Fatalf("FindByProject() error: %v", err)
	}
	if len(list) != 1 || list[0].ID != live.ID {
		t.Errorf("live tasks: got %d, want only %s", len(list), live.ID.Hex())
	}
}

func TestFindByAssignee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := taskstore.New(db)
	userID := primitive.NewObjectID()

	mine, err := store.Create(ctx, models.Task{
		Title:     "Mine",
		Project:   primitive.NewObjectID(),
		CreatedBy: primitive.NewObjectID(),
		Assignees: []primitive.ObjectID{userID},
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := store.Create(ctx, models.Task{
		Title:     "Someone else's",
		Project:   primitive.NewObjectID(),
		CreatedBy: primitive.NewObjectID(),
		Assignees: []primitive.ObjectID{primitive.NewObjectID()},
	}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	list, err := store.FindByAssignee(ctx, userID)
	if err != nil {
		t.Fatalf("FindByAssignee() error: %v", err)
	}
	if len(list) != 1 || list[0].ID != mine.ID {
		t.Errorf("assigned tasks: got %d, want only %s", len(list), mine.ID.Hex())
	}
}
