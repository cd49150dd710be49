// Package dispatcher runs the fixed-interval polling loop that claims
// pending tasks in bounded batches and fans them out to a worker pool that
// executes the scheduler and persists the outcome.
package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"shuttlesched/database/repository/task"
	"shuttlesched/models"
	"shuttlesched/services/scheduler"
)

// Dispatcher owns the polling ticker and the bounded worker pool.
type Dispatcher struct {
	store        task.Store
	scheduler    *scheduler.Scheduler
	interval     time.Duration
	batchSize    int
	poolSize     int
	reclaimAfter time.Duration
	logger       *zap.Logger

	stop chan struct{}
	done chan struct{}
}

// New builds a Dispatcher. Call Start to begin polling and Stop for a
// graceful shutdown that waits for in-flight workers to finish.
func New(store task.Store, sched *scheduler.Scheduler, interval time.Duration, batchSize, poolSize int, reclaimAfter time.Duration, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		store:        store,
		scheduler:    sched,
		interval:     interval,
		batchSize:    batchSize,
		poolSize:     poolSize,
		reclaimAfter: reclaimAfter,
		logger:       logger,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start runs the polling loop until Stop is called or ctx is cancelled.
// Ticks are non-overlapping: a slow batch delays the next tick rather than
// running concurrently with it.
func (d *Dispatcher) Start(ctx context.Context) {
	go func() {
		defer close(d.done)

		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-d.stop:
				return
			case <-ticker.C:
				d.tick(ctx)
			}
		}
	}()
}

// Stop signals the loop to exit and blocks until the current tick, if any,
// finishes.
func (d *Dispatcher) Stop() {
	close(d.stop)
	<-d.done
}

func (d *Dispatcher) tick(ctx context.Context) {
	if d.reclaimAfter > 0 {
		if n, err := d.store.ReclaimAbandoned(ctx, d.reclaimAfter); err != nil {
			d.logger.Warn("reclaim sweep failed", zap.Error(err))
		} else if n > 0 {
			d.logger.Info("reclaimed abandoned tasks", zap.Int("count", n))
		}
	}

	tasks, err := d.store.ClaimBatch(ctx, d.batchSize)
	if err != nil {
		d.logger.Error("claim batch failed", zap.Error(err))
		return
	}
	if len(tasks) == 0 {
		return
	}

	sem := make(chan struct{}, d.poolSize)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var tickErr error

	for i := range tasks {
		t := tasks[i]
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if err := d.runOne(ctx, t); err != nil {
				mu.Lock()
				tickErr = multierr.Append(tickErr, err)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if tickErr != nil {
		d.logger.Warn("dispatcher tick completed with errors", zap.Error(tickErr))
	}
}

func (d *Dispatcher) runOne(ctx context.Context, t models.Task) error {
	var req models.ScheduleRequest
	if err := json.Unmarshal([]byte(t.RequestBody), &req); err != nil {
		failErr := fmt.Errorf("deserialize task %s: %w", t.TaskID, err)
		if e := d.store.FailTask(ctx, t.TaskID, failErr.Error()); e != nil {
			return multierr.Append(failErr, e)
		}
		return failErr
	}

	resp, err := d.scheduler.Schedule(ctx, &req)
	if err != nil {
		d.logger.Warn("task failed", zap.String("taskId", t.TaskID), zap.Error(err))
		if e := d.store.FailTask(ctx, t.TaskID, err.Error()); e != nil {
			return multierr.Append(err, e)
		}
		return err
	}

	body, err := json.Marshal(resp)
	if err != nil {
		marshalErr := fmt.Errorf("serialize result for task %s: %w", t.TaskID, err)
		if e := d.store.FailTask(ctx, t.TaskID, marshalErr.Error()); e != nil {
			return multierr.Append(marshalErr, e)
		}
		return marshalErr
	}

	if err := d.store.CompleteTask(ctx, t.TaskID, string(body)); err != nil {
		return fmt.Errorf("complete task %s: %w", t.TaskID, err)
	}
	d.logger.Info("task completed", zap.String("taskId", t.TaskID))
	return nil
}
