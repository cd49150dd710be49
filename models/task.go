package models

import "time"

// TaskStatus is the lifecycle state of a persisted task: PENDING on insert,
// PROCESSING on claim, COMPLETED or FAILED on worker exit. The one other
// transition is the dispatcher's reclaim sweep, which resets a task that has
// sat in PROCESSING past the reclaim threshold back to PENDING.
type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskProcessing TaskStatus = "PROCESSING"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskFailed     TaskStatus = "FAILED"
)

// Task is a persisted asynchronous scheduling job. DocID is the store's
// internal identifier; TaskID is the externally-visible UUID returned to the
// caller on enqueue, and is also the key ClaimBatch, CompleteTask and
// FailTask use to address a task.
type Task struct {
	DocID        any        `bson:"_id,omitempty" json:"-"`
	TaskID       string     `bson:"taskId" json:"taskId"`
	RequestBody  string     `bson:"requestBody" json:"-"`
	Status       TaskStatus `bson:"status" json:"status"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt"`
	ErrorMessage string     `bson:"errorMessage,omitempty" json:"-"`
	ResponseBody string     `bson:"responseBody,omitempty" json:"-"`
	ClaimToken   string     `bson:"claimToken,omitempty" json:"-"`
}
