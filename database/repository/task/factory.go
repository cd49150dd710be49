package task

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"shuttlesched/config"
	"shuttlesched/database"
)

// New connects to the task store's MongoDB and ensures its indexes exist.
// The underlying client is also returned so callers can fold it into a
// health check without opening a second connection.
func New(ctx context.Context, cfg config.Config) (Store, *mongo.Client, error) {
	client, err := database.Connect(ctx, cfg.TaskMongoURI)
	if err != nil {
		return nil, nil, fmt.Errorf("connect task mongodb: %w", err)
	}
	coll := client.Database(cfg.TaskMongoDB).Collection(cfg.TaskMongoColl)
	store := NewMongoStore(coll, cfg.TaskTTL()).(*mongoStore)
	if err := store.EnsureIndexes(ctx); err != nil {
		return nil, nil, fmt.Errorf("ensure task indexes: %w", err)
	}
	return store, client, nil
}
