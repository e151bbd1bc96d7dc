// internal/app/system/activitylog/logger.go
//
// Package activitylog records audit entries for state-changing actions.
// Recording is fire-and-forget: entries are queued to a background worker,
// and a failed or dropped write never fails the request that triggered it.
package activitylog

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	activitystore "github.com/taskhubhq/taskhub/internal/app/store/activity"
	"github.com/taskhubhq/taskhub/internal/domain/models"
)

const (
	queueSize    = 256
	writeTimeout = 5 * time.Second
	closeTimeout = 10 * time.Second
)

// Logger queues activity entries and writes them from a single background
// worker.
type Logger struct {
	store  *activitystore.Store
	logger *zap.Logger

	queue chan models.ActivityLog
	done  chan struct{}
	once  sync.Once
}

// New creates a Logger and starts its worker goroutine. Call Close during
// shutdown to flush queued entries.
func New(store *activitystore.Store, logger *zap.Logger) *Logger {
	l := &Logger{
		store:  store,
		logger: logger,
		queue:  make(chan models.ActivityLog, queueSize),
		done:   make(chan struct{}),
	}
	go l.run()
	return l
}

// Record queues one activity entry. It never blocks: when the queue is full
// the entry is dropped and logged, and the caller proceeds regardless.
func (l *Logger) Record(userID primitive.ObjectID, action, resourceType string, resourceID primitive.ObjectID, description string) {
	entry := models.ActivityLog{
		User:         userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      models.ActivityDetails{Description: description},
		CreatedAt:    time.Now().UTC(),
	}
	select {
	case l.queue <- entry:
	default:
		l.logger.Warn("activity log queue full, dropping entry",
			zap.String("action", action),
			zap.String("resource_type", resourceType),
			zap.String("resource_id", resourceID.Hex()))
	}
}

func (l *Logger) run() {
	defer close(l.done)
	for entry := range l.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := l.store.Append(ctx, entry)
		cancel()
		if err != nil {
			l.logger.Error("write activity log entry",
				zap.String("action", entry.Action),
				zap.String("resource_type", entry.ResourceType),
				zap.String("resource_id", entry.ResourceID.Hex()),
				zap.Error(err))
		}
	}
}

// Close stops accepting entries and waits for the worker to drain the
// queue, up to a bounded shutdown window.
func (l *Logger) Close() {
	l.once.Do(func() {
		close(l.queue)
	})
	select {
	case <-l.done:
	case <-time.After(closeTimeout):
		l.logger.Warn("activity log flush timed out")
	}
}
