// internal/app/features/workspaces/handler.go
package workspaces

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	"github.com/taskhubhq/taskhub/internal/app/system/activitylog"
	"github.com/taskhubhq/taskhub/internal/app/system/mailer"
	"github.com/taskhubhq/taskhub/internal/app/system/token"
)

// Handler provides the workspace endpoints: create, list, details, update,
// delete, invitations, membership, and ownership transfer.
type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	ErrLog      *apierrors.ErrorLogger
	Activity    *activitylog.Logger
	Tokens      *token.Signer
	Mail        *mailer.Mailer
	FrontendURL string
}

// NewHandler creates a workspaces Handler.
func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, activity *activitylog.Logger, tokens *token.Signer, mail *mailer.Mailer, frontendURL string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		ErrLog:      errLog,
		Activity:    activity,
		Tokens:      tokens,
		Mail:        mail,
		FrontendURL: frontendURL,
	}
}
