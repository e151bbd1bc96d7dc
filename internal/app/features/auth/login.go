// internal/app/features/auth/login.go
package auth

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	userstore "github.com/taskhubhq/taskhub/internal/app/store/users"
	sessionauth "github.com/taskhubhq/taskhub/internal/app/system/auth"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/inputval"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

type loginInput struct {
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required" label:"Password"`
}

type loginResponse struct {
	Message string            `json:"message"`
	User    models.PublicUser `json:"user"`
}

// HandleLogin verifies credentials and opens a session. Wrong email and
// wrong password produce the same response, and unverified accounts are
// refused without revealing whether the password was right.
//
// POST /auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		apierrors.BadRequest(w, result.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := userstore.New(h.DB)
	user, err := store.GetByEmail(ctx, in.Email)
	if err != nil {
		if err == userstore.ErrNotFound {
			httpjson.Message(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.ErrLog.Internal(w, r, "look up user by email", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		httpjson.Message(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if !user.IsEmailVerified {
		httpjson.Message(w, http.StatusUnauthorized, "please verify your email address before signing in")
		return
	}

	if err := sessionauth.SignIn(w, r, sessionauth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.FullName,
		Email: user.Email,
	}); err != nil {
		h.ErrLog.Internal(w, r, "write session", err)
		return
	}

	now := time.Now().UTC()
	if err := store.RecordLogin(ctx, user.ID, now); err != nil {
		// The login still succeeded; the stamp is best effort.
		h.Log.Warn("record last login", zap.String("user_id", user.ID.Hex()), zap.Error(err))
	}

	h.Log.Info("user logged in", zap.String("user_id", user.ID.Hex()))

	user.LastLogin = &now
	httpjson.Respond(w, http.StatusOK, loginResponse{
		Message: "login successful",
		User:    user.Public(),
	})
}
