// Package httpapi implements the four HTTP-facing operations: liveness,
// synchronous scheduling, asynchronous enqueue, and task status lookup.
package httpapi

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"shuttlesched/database/repository/task"
	"shuttlesched/services/scheduler"
)

// Bundle holds every dependency a handler needs. It is constructed once at
// startup and shared read-only across requests.
type Bundle struct {
	Scheduler *scheduler.Scheduler
	TaskStore task.Store
	Validate  *validator.Validate
	Logger    *zap.Logger
}

// NewBundle constructs a Bundle with its own validator instance.
func NewBundle(sched *scheduler.Scheduler, store task.Store, logger *zap.Logger) *Bundle {
	return &Bundle{
		Scheduler: sched,
		TaskStore: store,
		Validate:  validator.New(),
		Logger:    logger,
	}
}
