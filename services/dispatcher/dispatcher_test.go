package dispatcher

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shuttlesched/database/repository/task"
	"shuttlesched/models"
	"shuttlesched/services/directions"
	"shuttlesched/services/scheduler"
)

// memStore is an in-memory task.Store stand-in used only to exercise the
// dispatcher's claim/complete/fail flow without a real MongoDB.
type memStore struct {
	mu    sync.Mutex
	tasks map[string]*models.Task
}

func newMemStore() *memStore {
	return &memStore{tasks: make(map[string]*models.Task)}
}

func (s *memStore) CreateTask(_ context.Context, requestBody string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New().String()
	now := time.Now()
	s.tasks[id] = &models.Task{TaskID: id, RequestBody: requestBody, Status: models.TaskPending, CreatedAt: now, UpdatedAt: now}
	return id, nil
}

func (s *memStore) GetTask(_ context.Context, taskID string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (s *memStore) ClaimBatch(_ context.Context, n int) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var claimed []models.Task
	for _, t := range s.tasks {
		if len(claimed) >= n {
			break
		}
		if t.Status == models.TaskPending {
			t.Status = models.TaskProcessing
			t.UpdatedAt = time.Now()
			claimed = append(claimed, *t)
		}
	}
	return claimed, nil
}

func (s *memStore) CompleteTask(_ context.Context, taskID string, responseBody string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tasks[taskID]
	t.Status = models.TaskCompleted
	t.ResponseBody = responseBody
	return nil
}

func (s *memStore) FailTask(_ context.Context, taskID string, errMessage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tasks[taskID]
	t.Status = models.TaskFailed
	t.ErrorMessage = errMessage
	return nil
}

func (s *memStore) ReclaimAbandoned(_ context.Context, _ time.Duration) (int, error) {
	return 0, nil
}

type fakeDirections struct{}

func (fakeDirections) Route(_ context.Context, _, _ string, _ time.Time) (int, int, bool, error) {
	return 1000, 60, true, nil
}

func TestDispatcherClaimsAndCompletesTask(t *testing.T) {
	store := newMemStore()
	sched := scheduler.New(fakeDirections{}, scheduler.Config{
		BeforePickup: 5 * time.Minute, AfterPickup: 30 * time.Minute, DropoffUnloading: 2 * time.Minute,
	}, zap.NewNop())

	req := models.ScheduleRequest{
		Date: "January 15, 2025",
		Bookings: []models.Booking{{
			BookingID: "b1", FirstName: "a", LastName: "b",
			PickupAddress: "A", DropoffAddress: "B", PickupTime: "09:00",
			ProgramTimezone: "America/New_York",
		}},
	}
	body, _ := json.Marshal(req)
	taskID, err := store.CreateTask(context.Background(), string(body))
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	d := New(store, sched, 10*time.Millisecond, 5, 2, 0, zap.NewNop())
	d.tick(context.Background())

	got, err := store.GetTask(context.Background(), taskID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Status != models.TaskCompleted {
		t.Fatalf("expected task to be completed, got %s (error=%s)", got.Status, got.ErrorMessage)
	}
	if got.ResponseBody == "" {
		t.Fatal("expected a non-empty response body")
	}
}

func TestDispatcherFailsTaskOnBadPayload(t *testing.T) {
	store := newMemStore()
	sched := scheduler.New(fakeDirections{}, scheduler.Config{}, zap.NewNop())
	taskID, _ := store.CreateTask(context.Background(), "not json")

	d := New(store, sched, 10*time.Millisecond, 5, 2, 0, zap.NewNop())
	d.tick(context.Background())

	got, _ := store.GetTask(context.Background(), taskID)
	if got.Status != models.TaskFailed {
		t.Fatalf("expected task to be failed, got %s", got.Status)
	}
}

var _ directions.Client = fakeDirections{}
var _ task.Store = (*memStore)(nil)
