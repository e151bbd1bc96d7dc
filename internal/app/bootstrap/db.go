// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	activitystore "github.com/taskhubhq/taskhub/internal/app/store/activity"
	commentstore "github.com/taskhubhq/taskhub/internal/app/store/comments"
	invitationstore "github.com/taskhubhq/taskhub/internal/app/store/invitations"
	projectstore "github.com/taskhubhq/taskhub/internal/app/store/projects"
	taskstore "github.com/taskhubhq/taskhub/internal/app/store/tasks"
	userstore "github.com/taskhubhq/taskhub/internal/app/store/users"
	workspacestore "github.com/taskhubhq/taskhub/internal/app/store/workspaces"
	"github.com/taskhubhq/taskhub/internal/app/system/timeouts"
)

// ConnectDB establishes the MongoDB connection and verifies it with a ping.
// The returned DBDeps are handed to every later lifecycle hook.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool_size", appCfg.MongoMaxPoolSize))

	return DBDeps{
		TaskHubMongoClient:   client,
		TaskHubMongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the indexes every store depends on. Index creation is
// idempotent, so running it on every startup is safe.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.TaskHubMongoDatabase

	steps := []struct {
		name   string
		ensure func(context.Context) error
	}{
		{"users", userstore.New(db).EnsureIndexes},
		{"workspaces", workspacestore.New(db).EnsureIndexes},
		{"projects", projectstore.New(db).EnsureIndexes},
		{"tasks", taskstore.New(db).EnsureIndexes},
		{"comments", commentstore.New(db).EnsureIndexes},
		{"invitations", invitationstore.New(db).EnsureIndexes},
		{"activity", activitystore.New(db).EnsureIndexes},
	}

	for _, s := range steps {
		if err := s.ensure(ctx); err != nil {
			logger.Error("index creation failed", zap.String("store", s.name), zap.Error(err))
			return fmt.Errorf("ensure %s indexes: %w", s.name, err)
		}
	}

	logger.Info("database indexes ensured", zap.Int("stores", len(steps)))
	return nil
}
