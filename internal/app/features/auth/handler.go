// internal/app/features/auth/handler.go
package auth

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	"github.com/taskhubhq/taskhub/internal/app/system/mailer"
	"github.com/taskhubhq/taskhub/internal/app/system/token"
)

// Handler provides the account endpoints: registration, login, logout,
// email verification, and password reset.
type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	ErrLog      *apierrors.ErrorLogger
	Tokens      *token.Signer
	Mail        *mailer.Mailer
	FrontendURL string
}

// NewHandler creates an auth Handler.
func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, tokens *token.Signer, mail *mailer.Mailer, frontendURL string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		ErrLog:      errLog,
		Tokens:      tokens,
		Mail:        mail,
		FrontendURL: frontendURL,
	}
}
