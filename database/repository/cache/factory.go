package cache

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"shuttlesched/config"
	"shuttlesched/database"
)

// New selects and constructs a cache backend from cfg. A nil Cache return
// means caching is disabled; callers must treat that as always-miss,
// no-op-write rather than substituting a default backend. The returned
// client is non-nil only for the mongodb backend, for use in health checks.
func New(ctx context.Context, cfg config.Config) (Cache, *mongo.Client, error) {
	if !cfg.EnableCache {
		return nil, nil, nil
	}

	switch cfg.CacheType {
	case "mongodb":
		client, err := database.Connect(ctx, cfg.CacheMongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect cache mongodb: %w", err)
		}
		coll := client.Database(cfg.CacheMongoDB).Collection(cfg.CacheMongoColl)
		mc := NewMongoCache(coll, cfg.CacheTTL())
		if err := mc.EnsureIndexes(ctx); err != nil {
			return nil, nil, fmt.Errorf("ensure cache indexes: %w", err)
		}
		return mc, client, nil
	default:
		return NewMemoryLRU(cfg.CacheMemCapacity, cfg.CacheTTL()), nil, nil
	}
}
