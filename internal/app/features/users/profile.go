// internal/app/features/users/profile.go
package users

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	userstore "github.com/taskhubhq/taskhub/internal/app/store/users"
	"github.com/taskhubhq/taskhub/internal/app/system/authz"
	"github.com/taskhubhq/taskhub/internal/app/system/htmlsanitize"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/inputval"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
)

// ServeProfile returns the caller's own account.
//
// GET /users/profile
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
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
		h.ErrLog.Internal(w, r, "load profile", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, user.Public())
}

type updateProfileInput struct {
	Name   string `json:"name" validate:"required,max=100" label:"Name"`
	Avatar string `json:"profilePicture" validate:"omitempty,url,max=500" label:"Profile picture"`
}

// HandleUpdateProfile updates the caller's display name and avatar.
//
// PUT /users/profile
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return
	}

	var in updateProfileInput
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
	err := store.UpdateProfile(ctx, userID, userstore.ProfileUpdate{
		FullName: htmlsanitize.PlainText(in.Name),
		Avatar:   in.Avatar,
	})
	if err != nil {
		if err == userstore.ErrNotFound {
			apierrors.NotFound(w, "user not found")
			return
		}
		h.ErrLog.Internal(w, r, "update profile", err)
		return
	}

	h.Log.Info("profile updated", zap.String("user_id", userID.Hex()))

	user, err := store.GetByID(ctx, userID)
	if err != nil {
		h.ErrLog.Internal(w, r, "reload profile", err)
		return
	}
	httpjson.Respond(w, http.StatusOK, user.Public())
}
