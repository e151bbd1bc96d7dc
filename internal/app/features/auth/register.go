// internal/app/features/auth/register.go
package auth

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	userstore "github.com/taskhubhq/taskhub/internal/app/store/users"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/inputval"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/app/system/token"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

type registerInput struct {
	Name     string `json:"name" validate:"required,max=100" label:"Name"`
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required,min=8,max=72" label:"Password"`
}

// HandleRegister creates an account and emails a verification link. The new
// account cannot sign in until the link is used.
//
// POST /auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		apierrors.BadRequest(w, result.First())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.Internal(w, r, "hash password", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := userstore.New(h.DB)
	created, err := store.Create(ctx, models.User{
		FullName: in.Name,
		Email:    in.Email,
		Password: string(hash),
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			apierrors.Conflict(w, "email address already in use")
			return
		}
		h.ErrLog.Internal(w, r, "create user", err)
		return
	}

	raw, err := h.Tokens.Sign(created.ID, token.PurposeVerifyEmail, token.VerifyEmailExpiry)
	if err != nil {
		h.ErrLog.Internal(w, r, "sign verification token", err)
		return
	}
	h.Mail.SendEmailVerification(created.Email, created.FullName,
		h.FrontendURL+"/verify-email?token="+raw)

	h.Log.Info("user registered",
		zap.String("user_id", created.ID.Hex()),
		zap.String("email", created.Email))

	httpjson.Message(w, http.StatusCreated,
		"verification email sent, please check and verify your account")
}
