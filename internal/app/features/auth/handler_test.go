package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	authfeature "github.com/taskhubhq/taskhub/internal/app/features/auth"
	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	userstore "github.com/taskhubhq/taskhub/internal/app/store/users"
	sessionauth "github.com/taskhubhq/taskhub/internal/app/system/auth"
	"github.com/taskhubhq/taskhub/internal/app/system/mailer"
	"github.com/taskhubhq/taskhub/internal/app/system/token"
	"github.com/taskhubhq/taskhub/internal/testutil"
)

func newTestHandler(t *testing.T) (*authfeature.Handler, *mongo.Database, *token.Signer) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	if err := sessionauth.InitSessionStore("test-session-key-0123456789abcdef", "taskhub-session", "", false, logger); err != nil {
		t.Fatalf("init session store: %v", err)
	}

	tokens := token.NewSigner("test-secret")
	mail := mailer.New(mailer.Config{Enabled: false, From: "test@taskhub.app"}, logger)
	errLog := apierrors.NewErrorLogger(logger)
	h := authfeature.NewHandler(db, errLog, tokens, mail, "http://localhost:5173", logger)
	return h, db, tokens
}

func TestHandleRegister(t *testing.T) {
	h, db, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.NewJSONRequest(t, "POST", "/auth/register", map[string]string{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "supersecret1",
	})
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	user, err := userstore.New(db).GetByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("registered user not found: %v", err)
	}
	if user.IsEmailVerified {
		t.Error("new account must start unverified")
	}
	if user.Password == "supersecret1" {
		t.Error("password must be stored hashed")
	}
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	h, db, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := userstore.New(db).EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes() error: %v", err)
	}
	testutil.NewFixtures(t, db).CreateUser(ctx, "Existing", "taken@example.com")

	req := testutil.NewJSONRequest(t, "POST", "/auth/register", map[string]string{
		"name":     "Someone Else",
		"email":    "taken@example.com",
		"password": "supersecret1",
	})
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestHandleRegister_ShortPassword(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/auth/register", map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "short",
	})
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleLogin(t *testing.T) {
	h, db, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	f.CreateUserWithPassword(ctx, "Ada", "ada@example.com", "correct-horse1")

	req := testutil.NewJSONRequest(t, "POST", "/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "correct-horse1",
	})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie")
	}

	var resp struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.User.Email != "ada@example.com" {
		t.Errorf("response user email: got %q", resp.User.Email)
	}
}

func TestHandleLogin_BadCredentials(t *testing.T) {
	h, db, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	testutil.NewFixtures(t, db).CreateUserWithPassword(ctx, "Ada", "ada@example.com", "correct-horse1")

	// Wrong password and unknown email must be indistinguishable.
	cases := []map[string]string{
		{"email": "ada@example.com", "password": "wrong-password"},
		{"email": "nobody@example.com", "password": "correct-horse1"},
	}
	var bodies []string
	for _, c := range cases {
		req := testutil.NewJSONRequest(t, "POST", "/auth/login", c)
		rec := httptest.NewRecorder()
		h.HandleLogin(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status for %v: got %d, want %d", c, rec.Code, http.StatusUnauthorized)
		}
		bodies = append(bodies, rec.Body.String())
	}
	if bodies[0] != bodies[1] {
		t.Errorf("responses differ: %q vs %q", bodies[0], bodies[1])
	}
}

func TestHandleLogin_UnverifiedEmail(t *testing.T) {
	h, db, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	testutil.NewFixtures(t, db).CreateUnverifiedUser(ctx, "Ada", "ada@example.com")

	req := testutil.NewJSONRequest(t, "POST", "/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "password123!",
	})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestHandleVerifyEmail(t *testing.T) {
	h, db, tokens := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := testutil.NewFixtures(t, db).CreateUnverifiedUser(ctx, "Ada", "ada@example.com")
	raw, err := tokens.Sign(u.ID, token.PurposeVerifyEmail, token.VerifyEmailExpiry)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := testutil.NewJSONRequest(t, "POST", "/auth/verify-email", map[string]string{"token": raw})
	rec := httptest.NewRecorder()
	h.HandleVerifyEmail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	got, err := userstore.New(db).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if !got.IsEmailVerified {
		t.Error("account should be verified")
	}
}

func TestHandleVerifyEmail_ExpiredToken(t *testing.T) {
	h, db, tokens := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := testutil.NewFixtures(t, db).CreateUnverifiedUser(ctx, "Ada", "ada@example.com")
	raw, err := tokens.Sign(u.ID, token.PurposeVerifyEmail, -time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := testutil.NewJSONRequest(t, "POST", "/auth/verify-email", map[string]string{"token": raw})
	rec := httptest.NewRecorder()
	h.HandleVerifyEmail(rec, req)

	if rec.Code != http.StatusGone {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusGone)
	}
}

func TestHandleResetPassword(t *testing.T) {
	h, db, tokens := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	u := f.CreateUserWithPassword(ctx, "Ada", "ada@example.com", "old-password1")
	raw, err := tokens.Sign(u.ID, token.PurposeResetPassword, token.ResetPasswordExpiry)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := testutil.NewJSONRequest(t, "POST", "/auth/reset-password", map[string]string{
		"token":           raw,
		"newPassword":     "new-password-1",
		"confirmPassword": "new-password-1",
	})
	rec := httptest.NewRecorder()
	h.HandleResetPassword(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	// The new password now works.
	login := testutil.NewJSONRequest(t, "POST", "/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "new-password-1",
	})
	loginRec := httptest.NewRecorder()
	h.HandleLogin(loginRec, login)
	if loginRec.Code != http.StatusOK {
		t.Errorf("login after reset: got %d, want %d", loginRec.Code, http.StatusOK)
	}
}

func TestHandleRequestResetPassword_NoAccountLeak(t *testing.T) {
	h, db, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	testutil.NewFixtures(t, db).CreateUser(ctx, "Ada", "ada@example.com")

	var bodies []string
	for _, email := range []string{"ada@example.com", "nobody@example.com"} {
		req := testutil.NewJSONRequest(t, "POST", "/auth/request-reset-password", map[string]string{"email": email})
		rec := httptest.NewRecorder()
		h.HandleRequestPasswordReset(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status for %s: got %d, want %d", email, rec.Code, http.StatusOK)
		}
		bodies = append(bodies, rec.Body.String())
	}
	if bodies[0] != bodies[1] {
		t.Errorf("existence leak: %q vs %q", bodies[0], bodies[1])
	}
}
