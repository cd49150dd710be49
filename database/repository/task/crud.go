package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"shuttlesched/errs"
	"shuttlesched/models"
)

func (r *mongoStore) CreateTask(ctx context.Context, requestBody string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	t := models.Task{
		TaskID:      uuid.New().String(),
		RequestBody: requestBody,
		Status:      models.TaskPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", errs.ErrDuplicate
		}
		return "", fmt.Errorf("insert task: %w", err)
	}
	return t.TaskID, nil
}

func (r *mongoStore) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var t models.Task
	err := r.coll.FindOne(ctx, bson.M{"taskId": taskID}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, errs.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &t, nil
}

func (r *mongoStore) CompleteTask(ctx context.Context, taskID string, responseBody string) error {
	return r.finish(ctx, taskID, models.TaskCompleted, responseBody, "")
}

func (r *mongoStore) FailTask(ctx context.Context, taskID string, errMessage string) error {
	return r.finish(ctx, taskID, models.TaskFailed, "", errMessage)
}

func (r *mongoStore) finish(ctx context.Context, taskID string, status models.TaskStatus, responseBody, errMessage string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":       status,
		"updatedAt":    time.Now(),
		"responseBody": responseBody,
		"errorMessage": errMessage,
	}, "$unset": bson.M{"claimToken": ""}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"taskId": taskID}, update)
	if err != nil {
		return fmt.Errorf("update task %s: %w", taskID, err)
	}
	if res.MatchedCount == 0 {
		return errs.ErrTaskNotFound
	}
	return nil
}
