package cache

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type doc struct {
	Key             string    `bson:"key"`
	DistanceMeters  int       `bson:"distanceMeters"`
	DurationSeconds int       `bson:"durationSeconds"`
	CreatedAt       time.Time `bson:"createdAt"`
}

// MongoCache is the persistent cache backend: a collection with a unique
// index on key and, when ttl is positive, a TTL index on createdAt so
// MongoDB's background reaper does the eviction.
type MongoCache struct {
	coll *mongo.Collection
	ttl  time.Duration
}

// NewMongoCache wraps coll. Call EnsureIndexes once at startup before
// serving traffic.
func NewMongoCache(coll *mongo.Collection, ttl time.Duration) *MongoCache {
	return &MongoCache{coll: coll, ttl: ttl}
}

// EnsureIndexes creates the unique key index and, if ttl > 0, the TTL index
// on createdAt. It is safe to call on every startup.
func (m *MongoCache) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if m.ttl > 0 {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(m.ttl.Seconds())),
		})
	}
	_, err := m.coll.Indexes().CreateMany(ctx, models)
	return err
}

func (m *MongoCache) Get(ctx context.Context, key string) (Value, bool, error) {
	var d doc
	err := m.coll.FindOne(ctx, bson.M{"key": key}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return Value{}, false, nil
	}
	if err != nil {
		return Value{}, false, err
	}
	return Value{DistanceMeters: d.DistanceMeters, DurationSeconds: d.DurationSeconds}, true, nil
}

func (m *MongoCache) Put(ctx context.Context, key string, value Value) error {
	filter := bson.M{"key": key}
	update := bson.M{"$set": doc{
		Key:             key,
		DistanceMeters:  value.DistanceMeters,
		DurationSeconds: value.DurationSeconds,
		CreatedAt:       time.Now(),
	}}
	_, err := m.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
