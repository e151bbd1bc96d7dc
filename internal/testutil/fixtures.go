// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhubhq/taskhub/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a verified user with the given name and email.
// The account's password is "password123!".
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUserWithPassword(ctx, fullName, email, "password123!")
}

// CreateUserWithPassword creates a verified user with a specific password.
func (f *Fixtures) CreateUserWithPassword(ctx context.Context, fullName, email, password string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:              primitive.NewObjectID(),
		FullName:        fullName,
		FullNameCI:      text.Fold(fullName),
		Email:           email,
		Password:        string(hash),
		IsEmailVerified: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateUnverifiedUser creates a user whose email is not yet verified.
// The account's password is "password123!".
func (f *Fixtures) CreateUnverifiedUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()

	u := f.CreateUserWithPassword(ctx, fullName, email, "password123!")
	_, err := f.db.Collection("users").UpdateByID(ctx, u.ID,
		bson.M{"$set": bson.M{"is_email_verified": false}})
	if err != nil {
		f.t.Fatalf("failed to mark test user unverified: %v", err)
	}
	u.IsEmailVerified = false
	return u
}

// CreateWorkspace creates a workspace owned by ownerID. Extra members join
// with the "member" role.
func (f *Fixtures) CreateWorkspace(ctx context.Context, name string, ownerID primitive.ObjectID, memberIDs ...primitive.ObjectID) models.Workspace {
	f.t.Helper()

	now := time.Now().UTC()
	members := []models.WorkspaceMember{
		{User: ownerID, Role: models.WorkspaceRoleOwner, JoinedAt: now},
	}
	for _, id := range memberIDs {
		members = append(members, models.WorkspaceMember{
			User: id, Role: models.WorkspaceRoleMember, JoinedAt: now,
		})
	}

	ws := models.Workspace{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Owner:     ownerID,
		Members:   members,
		Projects:  []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("workspaces").InsertOne(ctx, ws); err != nil {
		f.t.Fatalf("failed to create test workspace: %v", err)
	}
	return ws
}

// CreateProject creates a project in the given workspace. createdBy joins
// as manager; extra members join as contributors.
func (f *Fixtures) CreateProject(ctx context.Context, wsID primitive.ObjectID, title string, createdBy primitive.ObjectID, memberIDs ...primitive.ObjectID) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	members := []models.ProjectMember{
		{User: createdBy, Role: models.ProjectRoleManager},
	}
	for _, id := range memberIDs {
		members = append(members, models.ProjectMember{
			User: id, Role: models.ProjectRoleContributor,
		})
	}

	p := models.Project{
		ID:        primitive.NewObjectID(),
		Title:     title,
		TitleCI:   text.Fold(title),
		Workspace: wsID,
		Status:    models.ProjectStatusPlanning,
		Tasks:     []primitive.ObjectID{},
		Members:   members,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("projects").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return p
}

// CreateTask creates a task in the given project. The creator starts as
// the only watcher, matching normal task creation.
func (f *Fixtures) CreateTask(ctx context.Context, projectID primitive.ObjectID, title string, createdBy primitive.ObjectID) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Project:   projectID,
		Status:    models.TaskStatusToDo,
		Priority:  models.TaskPriorityMedium,
		Assignees: []primitive.ObjectID{},
		Watchers:  []primitive.ObjectID{createdBy},
		SubTasks:  []models.SubTask{},
		Comments:  []primitive.ObjectID{},
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateInvitation creates a live invitation for (userID, wsID) with the
// given role, expiring in 7 days.
func (f *Fixtures) CreateInvitation(ctx context.Context, userID, wsID primitive.ObjectID, role string) models.Invitation {
	f.t.Helper()

	now := time.Now().UTC()
	inv := models.Invitation{
		ID:          primitive.NewObjectID(),
		User:        userID,
		WorkspaceID: wsID,
		Role:        role,
		ExpiresAt:   now.Add(7 * 24 * time.Hour),
		CreatedAt:   now,
	}

	if _, err := f.db.Collection("workspace_invitations").InsertOne(ctx, inv); err != nil {
		f.t.Fatalf("failed to create test invitation: %v", err)
	}
	return inv
}
