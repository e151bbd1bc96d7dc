package activitylog_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	activitystore "github.com/taskhubhq/taskhub/internal/app/store/activity"
	"github.com/taskhubhq/taskhub/internal/app/system/activitylog"
	"github.com/taskhubhq/taskhub/internal/domain/models"
	"github.com/taskhubhq/taskhub/internal/testutil"
)

func TestRecordAndFlush(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := activitystore.New(db)
	logger := activitylog.New(store, zap.NewNop())

	userID := primitive.NewObjectID()
	resourceID := primitive.NewObjectID()

	logger.Record(userID, models.ActionCreatedTask, models.ResourceTask, resourceID, "created task Write docs")
	logger.Record(userID, models.ActionUpdatedTask, models.ResourceTask, resourceID, "updated task status")

	// Close drains the queue, so entries are durable afterwards.
	logger.Close()

	entries, err := store.GetByResource(ctx, resourceID, 0)
	if err != nil {
		t.Fatalf("GetByResource() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries: got %d, want 2", len(entries))
	}

	// Newest first.
	if entries[0].Action != models.ActionUpdatedTask {
		t.Errorf("first entry: got %q, want %q", entries[0].Action, models.ActionUpdatedTask)
	}
	if entries[1].Details.Description != "created task Write docs" {
		t.Errorf("description: got %q", entries[1].Details.Description)
	}
	for _, e := range entries {
		if e.User != userID {
			t.Errorf("entry user: got %s, want %s", e.User.Hex(), userID.Hex())
		}
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)

	logger := activitylog.New(activitystore.New(db), zap.NewNop())
	logger.Close()
	logger.Close()
}
