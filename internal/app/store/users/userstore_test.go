package userstore_test

import (
	"testing"
	"time"

	userstore "github.com/taskhubhq/taskhub/internal/app/store/users"
	"github.com/taskhubhq/taskhub/internal/domain/models"
	"github.com/taskhubhq/taskhub/internal/testutil"
)

func TestCreate_NormalizesIdentity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)

	u, err := store.Create(ctx, models.User{
		FullName: "  Ada   Lovelace ",
		Email:    " Ada@Example.COM ",
		Password: "hash",
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if u.FullName != "Ada Lovelace" {
		t.Errorf("full name: got %q, want %q", u.FullName, "Ada Lovelace")
	}
	if u.Email != "ada@example.com" {
		t.Errorf("email: got %q, want %q", u.Email, "ada@example.com")
	}

	// Lookup by a differently-cased email finds the same account.
	got, err := store.GetByEmail(ctx, "ADA@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("GetByEmail: got %s, want %s", got.ID.Hex(), u.ID.Hex())
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes() error: %v", err)
	}

	if _, err := store.Create(ctx, models.User{FullName: "First", Email: "dup@example.com", Password: "h"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// Same email in different case still collides.
	_, err := store.Create(ctx, models.User{FullName: "Second", Email: "DUP@example.com", Password: "h"})
	if err != userstore.ErrDuplicateEmail {
		t.Errorf("duplicate create: got %v, want ErrDuplicateEmail", err)
	}
}

func TestMarkEmailVerified_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)
	u, err := store.Create(ctx, models.User{FullName: "V", Email: "v@example.com", Password: "h"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if err := store.MarkEmailVerified(ctx, u.ID); err != nil {
		t.Fatalf("MarkEmailVerified() error: %v", err)
	}
	if err := store.MarkEmailVerified(ctx, u.ID); err != nil {
		t.Fatalf("second MarkEmailVerified() error: %v", err)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if !got.IsEmailVerified {
		t.Error("user should be verified")
	}
}

func TestUpdateProfileAndPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)
	u, err := store.Create(ctx, models.User{FullName: "Old Name", Email: "p@example.com", Password: "oldhash"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	err = store.UpdateProfile(ctx, u.ID, userstore.ProfileUpdate{
		FullName: "New Name",
		Avatar:   "https://cdn.example.com/a.png",
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}
	if err := store.UpdatePassword(ctx, u.ID, "newhash"); err != nil {
		t.Fatalf("UpdatePassword() error: %v", err)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.FullName != "New Name" {
		t.Errorf("full name: got %q, want %q", got.FullName, "New Name")
	}
	if got.Avatar != "https://cdn.example.com/a.png" {
		t.Errorf("avatar: got %q", got.Avatar)
	}
	if got.Password != "newhash" {
		t.Errorf("password hash: got %q, want %q", got.Password, "newhash")
	}
}

func TestRecordLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)
	u, err := store.Create(ctx, models.User{FullName: "L", Email: "l@example.com", Password: "h"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	at := time.Now().UTC().Truncate(time.Millisecond)
	if err := store.RecordLogin(ctx, u.ID, at); err != nil {
		t.Fatalf("RecordLogin() error: %v", err)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.LastLogin == nil || !got.LastLogin.Equal(at) {
		t.Errorf("last login: got %v, want %v", got.LastLogin, at)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)
	f := testutil.NewFixtures(t, db)
	other := f.CreateUser(ctx, "Someone", "someone@example.com")

	got, err := store.GetByID(ctx, other.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Email != "someone@example.com" {
		t.Errorf("email: got %q", got.Email)
	}

	if _, err := store.GetByEmail(ctx, "missing@example.com"); err != userstore.ErrNotFound {
		t.Errorf("missing email: got %v, want ErrNotFound", err)
	}
}
