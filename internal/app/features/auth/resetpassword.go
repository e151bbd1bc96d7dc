// internal/app/features/auth/resetpassword.go
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
)

type requestResetInput struct {
	Email string `json:"email" validate:"required,email" label:"Email"`
}

// HandleRequestPasswordReset emails a reset link when the address matches a
// verified account. The response is identical either way so the endpoint
// cannot be used to probe which emails are registered.
//
// POST /auth/request-reset-password
func (h *Handler) HandleRequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var in requestResetInput
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
	if err == nil && user.IsEmailVerified {
		raw, signErr := h.Tokens.Sign(user.ID, token.PurposeResetPassword, token.ResetPasswordExpiry)
		if signErr != nil {
			h.ErrLog.Internal(w, r, "sign reset token", signErr)
			return
		}
		h.Mail.SendPasswordReset(user.Email, user.FullName,
			h.FrontendURL+"/reset-password?token="+raw)
	} else if err != nil && err != userstore.ErrNotFound {
		h.ErrLog.Internal(w, r, "look up user for reset", err)
		return
	}

	httpjson.Message(w, http.StatusOK,
		"if that email is registered, a reset link has been sent")
}

type resetPasswordInput struct {
	Token           string `json:"token" validate:"required" label:"Token"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72" label:"New password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required" label:"Confirm password"`
}

// HandleResetPassword redeems a reset token and replaces the password.
//
// POST /auth/reset-password
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var in resetPasswordInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		apierrors.BadRequest(w, result.First())
		return
	}
	if in.NewPassword != in.ConfirmPassword {
		apierrors.BadRequest(w, "passwords do not match")
		return
	}

	claims, err := h.Tokens.Verify(in.Token, token.PurposeResetPassword)
	if err != nil {
		if err == token.ErrExpired {
			apierrors.Gone(w, "reset link has expired")
			return
		}
		apierrors.BadRequest(w, "invalid reset token")
		return
	}
	userID, err := claims.Subject()
	if err != nil {
		apierrors.BadRequest(w, "invalid reset token")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.Internal(w, r, "hash password", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := userstore.New(h.DB)
	if err := store.UpdatePassword(ctx, userID, string(hash)); err != nil {
		if err == userstore.ErrNotFound {
			apierrors.NotFound(w, "user not found")
			return
		}
		h.ErrLog.Internal(w, r, "update password", err)
		return
	}

	h.Log.Info("password reset", zap.String("user_id", userID.Hex()))
	httpjson.Message(w, http.StatusOK, "password has been reset")
}
