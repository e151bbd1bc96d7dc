package projects_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	projectsfeature "github.com/taskhubhq/taskhub/internal/app/features/projects"
	activitystore "github.com/taskhubhq/taskhub/internal/app/store/activity"
	workspacestore "github.com/taskhubhq/taskhub/internal/app/store/workspaces"
	"github.com/taskhubhq/taskhub/internal/app/system/activitylog"
	"github.com/taskhubhq/taskhub/internal/domain/models"
	"github.com/taskhubhq/taskhub/internal/testutil"
)

func newTestHandler(t *testing.T) (*projectsfeature.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	activity := activitylog.New(activitystore.New(db), logger)
	t.Cleanup(activity.Close)

	errLog := apierrors.NewErrorLogger(logger)
	return projectsfeature.NewHandler(db, errLog, activity, logger), db
}

func TestHandleCreate(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	owner := f.CreateUser(ctx, "Owner", "owner@example.com")
	teammate := f.CreateUser(ctx, "Teammate", "teammate@example.com")
	ws := f.CreateWorkspace(ctx, "Acme", owner.ID, teammate.ID)

	req := testutil.NewJSONRequest(t, "POST", "/projects/"+ws.ID.Hex()+"/create-project", map[string]any{
		"title": "Launch",
		"members": []map[string]string{
			{"user": teammate.ID.Hex(), "role": "contributor"},
		},
	})
	req = testutil.AsUser(testutil.WithChiURLParam(req, "workspaceID", ws.ID.Hex()), owner)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var p models.Project
	testutil.DecodeJSON(t, rec, &p)
	if role, _ := p.MemberRole(owner.ID); role != models.ProjectRoleManager {
		t.Errorf("creator role: got %q, want manager", role)
	}
	if role, _ := p.MemberRole(teammate.ID); role != models.ProjectRoleContributor {
		t.Errorf("teammate role: got %q, want contributor", role)
	}
	if p.Status != models.ProjectStatusPlanning {
		t.Errorf("status: got %q, want Planning", p.Status)
	}

	// The project id lands on the workspace's project list.
	got, err := workspacestore.New(db).GetByID(ctx, ws.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	found := false
	for _, id := range got.Projects {
		if id == p.ID {
			found = true
		}
	}
	if !found {
		t.Error("workspace project list should contain the new project")
	}
}

func TestHandleCreate_MemberMustBelongToWorkspace(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	owner := f.CreateUser(ctx, "Owner", "owner@example.com")
	ws := f.CreateWorkspace(ctx, "Acme", owner.ID)

	req := testutil.NewJSONRequest(t, "POST", "/projects/"+ws.ID.Hex()+"/create-project", map[string]any{
		"title": "Launch",
		"members": []map[string]string{
			{"user": primitive.NewObjectID().Hex(), "role": "contributor"},
		},
	})
	req = testutil.AsUser(testutil.WithChiURLParam(req, "workspaceID", ws.ID.Hex()), owner)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleCreate_NonMemberForbidden(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	owner := f.CreateUser(ctx, "Owner", "owner@example.com")
	stranger := f.CreateUser(ctx, "Stranger", "stranger@example.com")
	ws := f.CreateWorkspace(ctx, "Acme", owner.ID)

	req := testutil.NewJSONRequest(t, "POST", "/projects/"+ws.ID.Hex()+"/create-project", map[string]any{
		"title": "Launch",
	})
	req = testutil.AsUser(testutil.WithChiURLParam(req, "workspaceID", ws.ID.Hex()), stranger)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestHandleArchive_AnyProjectMember(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	manager := f.CreateUser(ctx, "Manager", "manager@example.com")
	contributor := f.CreateUser(ctx, "Contributor", "contributor@example.com")
	outsider := f.CreateUser(ctx, "Outsider", "outsider@example.com")
	ws := f.CreateWorkspace(ctx, "Acme", manager.ID, contributor.ID, outsider.ID)
	p := f.CreateProject(ctx, ws.ID, "Launch", manager.ID, contributor.ID)

	// Workspace membership without project membership is not enough.
	req := testutil.NewJSONRequest(t, "POST", "/projects/"+p.ID.Hex()+"/archive", nil)
	req = testutil.AsUser(testutil.WithChiURLParam(req, "projectID", p.ID.Hex()), outsider)
	rec := httptest.NewRecorder()
	h.HandleArchive(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("outsider archive: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	// Any project member may archive, not just the manager.
	req = testutil.NewJSONRequest(t, "POST", "/projects/"+p.ID.Hex()+"/archive", nil)
	req = testutil.AsUser(testutil.WithChiURLParam(req, "projectID", p.ID.Hex()), contributor)
	rec = httptest.NewRecorder()
	h.HandleArchive(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("contributor archive: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var archived models.Project
	testutil.DecodeJSON(t, rec, &archived)
	if !archived.IsArchived {
		t.Error("project should be archived")
	}

	// A second toggle reverses it.
	req = testutil.NewJSONRequest(t, "POST", "/projects/"+p.ID.Hex()+"/archive", nil)
	req = testutil.AsUser(testutil.WithChiURLParam(req, "projectID", p.ID.Hex()), manager)
	rec = httptest.NewRecorder()
	h.HandleArchive(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unarchive: got %d, want %d", rec.Code, http.StatusOK)
	}
	testutil.DecodeJSON(t, rec, &archived)
	if archived.IsArchived {
		t.Error("second toggle should unarchive")
	}
}

func TestServeDetails_ProjectMembersOnly(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	manager := f.CreateUser(ctx, "Manager", "manager@example.com")
	wsMember := f.CreateUser(ctx, "Bystander", "bystander@example.com")
	ws := f.CreateWorkspace(ctx, "Acme", manager.ID, wsMember.ID)
	p := f.CreateProject(ctx, ws.ID, "Launch", manager.ID)

	// Workspace membership alone does not open the project.
	req := testutil.NewJSONRequest(t, "GET", "/projects/"+p.ID.Hex(), nil)
	req = testutil.AsUser(testutil.WithChiURLParam(req, "projectID", p.ID.Hex()), wsMember)
	rec := httptest.NewRecorder()
	h.ServeDetails(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("workspace member: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	req = testutil.NewJSONRequest(t, "GET", "/projects/"+p.ID.Hex(), nil)
	req = testutil.AsUser(testutil.WithChiURLParam(req, "projectID", p.ID.Hex()), manager)
	rec = httptest.NewRecorder()
	h.ServeDetails(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("project member: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
}
