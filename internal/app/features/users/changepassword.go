// internal/app/features/users/changepassword.go
package users

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	userstore "github.com/taskhubhq/taskhub/internal/app/store/users"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/inputval"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
)

type changePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required" label:"Current password"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72" label:"New password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required" label:"Confirm password"`
}

// HandleChangePassword replaces the caller's password after verifying the
// current one.
//
// PUT /users/change-password
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	var in changePasswordInput
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := userstore.New(h.DB)
	user, err := store.GetByID(ctx, userID)
	if err != nil {
		if err == userstore.ErrNotFound {
			apierrors.NotFound(w, "user not found")
			return
		}
		h.ErrLog.Internal(w, r, "load user for password change", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
		apierrors.Forbidden(w, "current password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.Internal(w, r, "hash password", err)
		return
	}

	if err := store.UpdatePassword(ctx, userID, string(hash)); err != nil {
		h.ErrLog.Internal(w, r, "update password", err)
		return
	}

	h.Log.Info("password changed", zap.String("user_id", userID.Hex()))
	httpjson.Message(w, http.StatusOK, "password changed")
}
