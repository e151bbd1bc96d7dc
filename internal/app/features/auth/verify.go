// internal/app/features/auth/verify.go
package auth

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	userstore "github.com/taskhubhq/taskhub/internal/app/store/users"
	"github.com/taskhubhq/taskhub/internal/app/system/httpjson"
	"github.com/taskhubhq/taskhub/internal/app/system/inputval"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
	"github.com/taskhubhq/taskhub/internal/app/system/token"
)

type verifyEmailInput struct {
	Token string `json:"token" validate:"required" label:"Token"`
}

// HandleVerifyEmail redeems an email-verification token. Verifying an
// already-verified account is a no-op success; re-clicking the link should
// not error.
//
// POST /auth/verify-email
func (h *Handler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var in verifyEmailInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		apierrors.BadRequest(w, result.First())
		return
	}

	claims, err := h.Tokens.Verify(in.Token, token.PurposeVerifyEmail)
	if err != nil {
		if err == token.ErrExpired {
			apierrors.Gone(w, "verification link has expired")
			return
		}
		apierrors.BadRequest(w, "invalid verification token")
		return
	}
	userID, err := claims.Subject()
	if err != nil {
		apierrors.BadRequest(w, "invalid verification token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := userstore.New(h.DB)
	if err := store.MarkEmailVerified(ctx, userID); err != nil {
		if err == userstore.ErrNotFound {
			apierrors.NotFound(w, "user not found")
			return
		}
		h.ErrLog.Internal(w, r, "mark email verified", err)
		return
	}

	h.Log.Info("email verified", zap.String("user_id", userID.Hex()))
	httpjson.Message(w, http.StatusOK, "email verified")
}
