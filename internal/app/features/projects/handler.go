// internal/app/features/projects/handler.go
package projects

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apierrors "github.com/taskhubhq/taskhub/internal/app/features/errors"
	"github.com/taskhubhq/taskhub/internal/app/system/activitylog"
)

// Handler provides the project endpoints.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *apierrors.ErrorLogger
	Activity *activitylog.Logger
}

// NewHandler creates a projects Handler.
func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, activity *activitylog.Logger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, ErrLog: errLog, Activity: activity}
}
