package invitationstore_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	invitationstore "github.com/taskhubhq/taskhub/internal/app/store/invitations"
	"github.com/taskhubhq/taskhub/internal/domain/models"
	"github.com/taskhubhq/taskhub/internal/testutil"
)

func TestCreate_RejectsLiveDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := invitationstore.New(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes() error: %v", err)
	}

	userID := primitive.NewObjectID()
	wsID := primitive.NewObjectID()

	_, err := store.Create(ctx, models.Invitation{
		User:        userID,
		WorkspaceID: wsID,
		Role:        models.WorkspaceRoleMember,
		ExpiresAt:   time.Now().UTC().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	_, err = store.Create(ctx, models.Invitation{
		User:        userID,
		WorkspaceID: wsID,
		Role:        models.WorkspaceRoleAdmin,
		ExpiresAt:   time.Now().UTC().Add(time.Hour),
	})
	if err != invitationstore.ErrPendingInvite {
		t.Errorf("duplicate live invite: got %v, want ErrPendingInvite", err)
	}
}

func TestCreate_ReplacesExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := invitationstore.New(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes() error: %v", err)
	}

	userID := primitive.NewObjectID()
	wsID := primitive.NewObjectID()

	// Insert an already-expired record directly; the TTL sweep has not
	// reaped it yet.
	_, err := db.Collection("workspace_invitations").InsertOne(ctx, models.Invitation{
		ID:          primitive.NewObjectID(),
		User:        userID,
		WorkspaceID: wsID,
		Role:        models.WorkspaceRoleMember,
		ExpiresAt:   time.Now().UTC().Add(-time.Minute),
		CreatedAt:   time.Now().UTC().Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("insert expired invitation: %v", err)
	}

	inv, err := store.Create(ctx, models.Invitation{
		User:        userID,
		WorkspaceID: wsID,
		Role:        models.WorkspaceRoleAdmin,
		ExpiresAt:   time.Now().UTC().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Create() over expired record: %v", err)
	}
	if inv.Role != models.WorkspaceRoleAdmin {
		t.Errorf("role: got %q, want admin", inv.Role)
	}

	n, err := db.Collection("workspace_invitations").CountDocuments(ctx, bson.M{
		"user_id": userID, "workspace_id": wsID,
	})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("records for pair: got %d, want 1", n)
	}
}

func TestConsumeByPair_ClaimsOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := invitationstore.New(db)
	userID := primitive.NewObjectID()
	wsID := primitive.NewObjectID()

	created, err := store.Create(ctx, models.Invitation{
		User:        userID,
		WorkspaceID: wsID,
		Role:        models.WorkspaceRoleViewer,
		ExpiresAt:   time.Now().UTC().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	inv, err := store.ConsumeByPair(ctx, userID, wsID)
	if err != nil {
		t.Fatalf("ConsumeByPair() error: %v", err)
	}
	if inv.ID != created.ID || inv.Role != models.WorkspaceRoleViewer {
		t.Errorf("consumed: got (%s, %q), want (%s, viewer)", inv.ID.Hex(), inv.Role, created.ID.Hex())
	}

	// The record is gone; a second accept loses.
	if _, err := store.ConsumeByPair(ctx, userID, wsID); err != invitationstore.ErrNotFound {
		t.Errorf("second consume: got %v, want ErrNotFound", err)
	}
}

func TestConsumeByPair_IgnoresExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := invitationstore.New(db)
	userID := primitive.NewObjectID()
	wsID := primitive.NewObjectID()

	_, err := db.Collection("workspace_invitations").InsertOne(ctx, models.Invitation{
		ID:          primitive.NewObjectID(),
		User:        userID,
		WorkspaceID: wsID,
		Role:        models.WorkspaceRoleMember,
		ExpiresAt:   time.Now().UTC().Add(-time.Minute),
		CreatedAt:   time.Now().UTC().Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("insert expired invitation: %v", err)
	}

	if _, err := store.ConsumeByPair(ctx, userID, wsID); err != invitationstore.ErrNotFound {
		t.Errorf("expired consume: got %v, want ErrNotFound", err)
	}
}

func TestDeleteByWorkspace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := invitationstore.New(db)
	wsID := primitive.NewObjectID()

	for i := 0; i < 3; i++ {
		_, err := store.Create(ctx, models.Invitation{
			User:        primitive.NewObjectID(),
			WorkspaceID: wsID,
			Role:        models.WorkspaceRoleMember,
			ExpiresAt:   time.Now().UTC().Add(time.Hour),
		})
		if err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	n, err := store.DeleteByWorkspace(ctx, wsID)
	if err != nil {
		t.Fatalf("DeleteByWorkspace() error: %v", err)
	}
	if n != 3 {
		t.Errorf("deleted: got %d, want 3", n)
	}
}
