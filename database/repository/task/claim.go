package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shuttlesched/models"
)

// ClaimBatch uses a two-phase claim-token scheme rather than a single
// atomic find-and-modify, because claiming a *batch* of documents has no
// single-operation equivalent to findOneAndUpdate: it snapshots candidate
// ids, stamps the still-PENDING ones among them with a fresh token in one
// updateMany, then re-reads only the documents bearing that token. Any
// candidate a concurrent dispatcher claimed first fails the status match
// in the updateMany and is silently dropped from the result.
func (r *mongoStore) ClaimBatch(ctx context.Context, n int) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if n <= 0 {
		return nil, nil
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetLimit(int64(n)).
		SetProjection(bson.M{"taskId": 1})

	cur, err := r.coll.Find(ctx, bson.M{"status": models.TaskPending}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("find claim candidates: %w", err)
	}
	var candidates []models.Task
	if err := cur.All(ctx, &candidates); err != nil {
		return nil, fmt.Errorf("decode claim candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.TaskID
	}

	token := uuid.New().String()
	_, err = r.coll.UpdateMany(ctx,
		bson.M{"taskId": bson.M{"$in": ids}, "status": models.TaskPending},
		bson.M{"$set": bson.M{
			"status":     models.TaskProcessing,
			"claimToken": token,
			"updatedAt":  time.Now(),
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("claim tasks: %w", err)
	}

	claimedCur, err := r.coll.Find(ctx, bson.M{"claimToken": token})
	if err != nil {
		return nil, fmt.Errorf("find claimed tasks: %w", err)
	}
	var claimed []models.Task
	if err := claimedCur.All(ctx, &claimed); err != nil {
		return nil, fmt.Errorf("decode claimed tasks: %w", err)
	}
	return claimed, nil
}

// ReclaimAbandoned resets tasks stuck in PROCESSING past olderThan back to
// PENDING, so a dispatcher instance that crashed mid-task doesn't strand
// its claims forever.
func (r *mongoStore) ReclaimAbandoned(ctx context.Context, olderThan time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-olderThan)
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"status": models.TaskProcessing, "updatedAt": bson.M{"$lt": cutoff}},
		bson.M{"$set": bson.M{"status": models.TaskPending, "updatedAt": time.Now()},
			"$unset": bson.M{"claimToken": ""}},
	)
	if err != nil {
		return 0, fmt.Errorf("reclaim abandoned tasks: %w", err)
	}
	return int(res.ModifiedCount), nil
}
