package projectstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	projectstore "github.com/taskhubhq/taskhub/internal/app/store/projects"
	"github.com/taskhubhq/taskhub/internal/domain/models"
	"github.com/taskhubhq/taskhub/internal/testutil"
)

func TestCreate_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := projectstore.New(db)

	p, err := store.Create(ctx, models.Project{
		Title:     "Launch",
		Workspace: primitive.NewObjectID(),
		CreatedBy: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if p.Status != models.ProjectStatusPlanning {
		t.Errorf("status: got %q, want %q", p.Status, models.ProjectStatusPlanning)
	}
	if p.Tasks == nil || len(p.Tasks) != 0 {
		t.Errorf("tasks: got %v, want empty slice", p.Tasks)
	}
	if p.IsArchived {
		t.Error("new project should not be archived")
	}
}

func TestFindByWorkspace_SplitsOnArchived(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := projectstore.New(db)
	wsID := primitive.NewObjectID()
	creator := primitive.NewObjectID()

	live, err := store.Create(ctx, models.Project{Title: "Live", Workspace: wsID, CreatedBy: creator})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	archived, err := store.Create(ctx, models.Project{Title: "Old", Workspace: wsID, CreatedBy: creator})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := store.ToggleArchived(ctx, archived.ID); err != nil {
		t.Fatalf("ToggleArchived() error: %v", err)
	}

	liveList, err := store.FindByWorkspace(ctx, wsID, false)
	if err != nil {
		t.Fatalf("FindByWorkspace(live) error: %v", err)
	}
	if len(liveList) != 1 || liveList[0].ID != live.ID {
		t.Errorf("live list: got %d entries", len(liveList))
	}

	archList, err := store.FindByWorkspace(ctx, wsID, true)
	if err != nil {
		t.Fatalf("FindByWorkspace(archived) error: %v", err)
	}
	if len(archList) != 1 || archList[0].ID != archived.ID {
		t.Errorf("archived list: got %d entries", len(archList))
	}

	all, err := store.FindAllByWorkspace(ctx, wsID)
	if err != nil {
		t.Fatalf("FindAllByWorkspace() error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all projects: got %d, want 2", len(all))
	}
}

func TestToggleArchived_RoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := projectstore.New(db)
	p, err := store.Create(ctx, models.Project{Title: "P", Workspace: primitive.NewObjectID(), CreatedBy: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	updated, err := store.ToggleArchived(ctx, p.ID)
	if err != nil {
		t.Fatalf("ToggleArchived() error: %v", err)
	}
	if !updated.IsArchived {
		t.Error("first toggle should archive")
	}

	updated, err = store.ToggleArchived(ctx, p.ID)
	if err != nil {
		t.Fatalf("second ToggleArchived() error: %v", err)
	}
	if updated.IsArchived {
		t.Error("second toggle should unarchive")
	}

	if _, err := store.ToggleArchived(ctx, primitive.NewObjectID()); err != projectstore.ErrNotFound {
		t.Errorf("unknown id: got %v, want ErrNotFound", err)
	}
}

func TestPushTaskAndProgress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := projectstore.New(db)
	p, err := store.Create(ctx, models.Project{Title: "P", Workspace: primitive.NewObjectID(), CreatedBy: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	taskID := primitive.NewObjectID()
	if err := store.PushTask(ctx, p.ID, taskID); err != nil {
		t.Fatalf("PushTask() error: %v", err)
	}
	if err := store.UpdateProgress(ctx, p.ID, 40); err != nil {
		t.Fatalf("UpdateProgress() error: %v", err)
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if len(got.Tasks) != 1 || got.Tasks[0] != taskID {
		t.Errorf("tasks: got %v", got.Tasks)
	}
	if got.Progress != 40 {
		t.Errorf("progress: got %d, want 40", got.Progress)
	}
}
