// Package task implements the persistent store backing asynchronous
// scheduling jobs: creation, atomic batch claiming for the dispatcher's
// worker pool, completion, and a liveness sweep for abandoned claims.
package task

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"shuttlesched/models"
)

// Store is the task persistence capability.
type Store interface {
	// CreateTask inserts a new PENDING task wrapping requestBody and
	// returns its generated task id.
	CreateTask(ctx context.Context, requestBody string) (string, error)

	// GetTask fetches a task by its externally-visible id.
	GetTask(ctx context.Context, taskID string) (*models.Task, error)

	// ClaimBatch atomically transitions up to n PENDING tasks to
	// PROCESSING and returns the claimed set. Concurrent dispatchers
	// calling ClaimBatch never receive overlapping tasks.
	ClaimBatch(ctx context.Context, n int) ([]models.Task, error)

	// CompleteTask marks a claimed task COMPLETED with its response body.
	CompleteTask(ctx context.Context, taskID string, responseBody string) error

	// FailTask marks a claimed task FAILED with an error message.
	FailTask(ctx context.Context, taskID string, errMessage string) error

	// ReclaimAbandoned resets any task that has sat in PROCESSING longer
	// than olderThan back to PENDING, returning the number reset.
	ReclaimAbandoned(ctx context.Context, olderThan time.Duration) (int, error)
}

type mongoStore struct {
	coll *mongo.Collection
	ttl  time.Duration
}

// NewMongoStore constructs a Store backed by coll. Call EnsureIndexes once
// at startup before serving traffic.
func NewMongoStore(coll *mongo.Collection, ttl time.Duration) Store {
	return &mongoStore{coll: coll, ttl: ttl}
}
