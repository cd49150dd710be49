package utils

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents the current status of external services.
type HealthStatus struct {
	TaskStore  bool      `json:"taskStore"`
	CacheStore *bool     `json:"cacheStore,omitempty"`
	CheckedAt  time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory
// state. cacheClient is nil when caching is disabled or the memory backend
// is in use, in which case CacheStore is omitted from the snapshot.
func StartHealthMonitor(taskClient, cacheClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()
		check(ctx, taskClient, cacheClient)
		for range ticker.C {
			check(ctx, taskClient, cacheClient)
		}
	}()
}

func check(ctx context.Context, taskClient, cacheClient *mongo.Client) {
	taskHealthy := taskClient.Ping(ctx, nil) == nil

	var cacheHealthy *bool
	if cacheClient != nil {
		ok := cacheClient.Ping(ctx, nil) == nil
		cacheHealthy = &ok
	}

	mu.Lock()
	currentHealth = HealthStatus{
		TaskStore:  taskHealthy,
		CacheStore: cacheHealthy,
		CheckedAt:  time.Now(),
	}
	mu.Unlock()
}
