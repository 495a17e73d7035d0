package service

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskdock/taskdock-go/internal/model"
	"github.com/taskdock/taskdock-go/internal/repository"
)

// memTaskStore is an in-memory TaskStore with the same owner scoping as
// the Mongo implementation: a task owned by someone else is not found.
type memTaskStore struct {
	tasks map[primitive.ObjectID]model.Task
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{tasks: make(map[primitive.ObjectID]model.Task)}
}

func (m *memTaskStore) Insert(ctx context.Context, task *model.Task) error {
	task.ID = primitive.NewObjectID()
	m.tasks[task.ID] = *task
	return nil
}

func (m *memTaskStore) ListByOwner(ctx context.Context, userID string) ([]model.Task, error) {
	return m.ListByOwnerAndStatus(ctx, userID, model.FilterAll)
}

func (m *memTaskStore) ListByOwnerAndStatus(ctx context.Context, userID string, filter model.StatusFilter) ([]model.Task, error) {
	var out []model.Task
	for _, t := range m.tasks {
		if t.UserID != userID {
			continue
		}
		switch filter {
		case model.FilterCompleted:
			if !t.Completed {
				continue
			}
		case model.FilterPending:
			if t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *memTaskStore) GetByID(ctx context.Context, userID string, taskID primitive.ObjectID) (*model.Task, error) {
	t, ok := m.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, repository.ErrTaskNotFound
	}
	return &t, nil
}

func (m *memTaskStore) Update(ctx context.Context, userID string, taskID primitive.ObjectID, name, description string) error {
	t, ok := m.tasks[taskID]
	if !ok || t.UserID != userID {
		return repository.ErrTaskNotFound
	}
	t.Name = name
	t.Description = description
	m.tasks[taskID] = t
	return nil
}

func (m *memTaskStore) SetCompleted(ctx context.Context, userID string, taskID primitive.ObjectID, completed bool) error {
	t, ok := m.tasks[taskID]
	if !ok || t.UserID != userID {
		return repository.ErrTaskNotFound
	}
	t.Completed = completed
	m.tasks[taskID] = t
	return nil
}

func (m *memTaskStore) Delete(ctx context.Context, userID string, taskID primitive.ObjectID) error {
	t, ok := m.tasks[taskID]
	if !ok || t.UserID != userID {
		return repository.ErrTaskNotFound
	}
	delete(m.tasks, taskID)
	return nil
}

func newTestTaskService() *TaskService {
	return NewTaskService(newMemTaskStore())
}

func mustCreate(t *testing.T, svc *TaskService, userID, name string) *model.Task {
	t.Helper()
	task, err := svc.Create(context.Background(), userID, model.TaskRequest{Name: name, Description: "d"})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	return task
}

func TestCreateDefaultsIncomplete(t *testing.T) {
	svc := newTestTaskService()

	task := mustCreate(t, svc, "alice", "buy milk")
	if task.Completed {
		t.Error("new task must start with completed=false")
	}
	if task.UserID != "alice" {
		t.Errorf("owner = %q, want %q", task.UserID, "alice")
	}
	if task.ID.IsZero() {
		t.Error("expected a store-assigned ID")
	}
}

func TestCreateEmptyName(t *testing.T) {
	svc := newTestTaskService()

	_, err := svc.Create(context.Background(), "alice", model.TaskRequest{Description: "d"})
	if err != ErrNameRequired {
		t.Errorf("Create() error = %v, want ErrNameRequired", err)
	}
}

func TestListScopedToOwner(t *testing.T) {
	svc := newTestTaskService()

	a1 := mustCreate(t, svc, "alice", "a1")
	a2 := mustCreate(t, svc, "alice", "a2")
	mustCreate(t, svc, "bob", "b1")

	tasks, err := svc.List(context.Background(), "alice")
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}

	got := map[primitive.ObjectID]bool{}
	for _, task := range tasks {
		if task.UserID != "alice" {
			t.Errorf("List() leaked a task owned by %q", task.UserID)
		}
		got[task.ID] = true
	}
	if !got[a1.ID] || !got[a2.ID] {
		t.Error("List() missing one of alice's tasks")
	}
}

func TestGetNotOwnedReadsAsNotFound(t *testing.T) {
	svc := newTestTaskService()

	task := mustCreate(t, svc, "alice", "private")

	_, err := svc.Get(context.Background(), "bob", task.ID.Hex())
	if err != ErrTaskNotFound {
		t.Errorf("Get() by non-owner error = %v, want ErrTaskNotFound", err)
	}
}

func TestGetBadID(t *testing.T) {
	svc := newTestTaskService()

	_, err := svc.Get(context.Background(), "alice", "not-an-object-id")
	if err != ErrBadTaskID {
		t.Errorf("Get() error = %v, want ErrBadTaskID", err)
	}
}

func TestUpdateNotOwned(t *testing.T) {
	svc := newTestTaskService()

	task := mustCreate(t, svc, "alice", "original")

	err := svc.Update(context.Background(), "bob", task.ID.Hex(), model.TaskRequest{Name: "hijacked"})
	if err != ErrTaskNotFound {
		t.Errorf("Update() by non-owner error = %v, want ErrTaskNotFound", err)
	}

	got, err := svc.Get(context.Background(), "alice", task.ID.Hex())
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.Name != "original" {
		t.Errorf("task name = %q, non-owner update must not apply", got.Name)
	}
}

func TestDeleteMissing(t *testing.T) {
	svc := newTestTaskService()

	err := svc.Delete(context.Background(), "alice", primitive.NewObjectID().Hex())
	if err != ErrTaskNotFound {
		t.Errorf("Delete() error = %v, want ErrTaskNotFound", err)
	}
}

func TestDeleteThenGet(t *testing.T) {
	svc := newTestTaskService()

	task := mustCreate(t, svc, "alice", "ephemeral")

	if err := svc.Delete(context.Background(), "alice", task.ID.Hex()); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}

	if _, err := svc.Get(context.Background(), "alice", task.ID.Hex()); err != ErrTaskNotFound {
		t.Errorf("Get() after delete error = %v, want ErrTaskNotFound", err)
	}
}

func TestSetCompletionDrivesStatusFilter(t *testing.T) {
	svc := newTestTaskService()
	ctx := context.Background()

	task := mustCreate(t, svc, "alice", "toggle-me")

	if err := svc.SetCompletion(ctx, "alice", task.ID.Hex(), true); err != nil {
		t.Fatalf("SetCompletion() unexpected error: %v", err)
	}

	completed, err := svc.ListByStatus(ctx, "alice", model.FilterCompleted)
	if err != nil {
		t.Fatalf("ListByStatus() unexpected error: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != task.ID {
		t.Fatalf("completed filter should contain exactly the toggled task, got %d", len(completed))
	}

	if err := svc.SetCompletion(ctx, "alice", task.ID.Hex(), false); err != nil {
		t.Fatalf("SetCompletion() unexpected error: %v", err)
	}

	completed, err = svc.ListByStatus(ctx, "alice", model.FilterCompleted)
	if err != nil {
		t.Fatalf("ListByStatus() unexpected error: %v", err)
	}
	if len(completed) != 0 {
		t.Errorf("completed filter should be empty after unmarking, got %d", len(completed))
	}

	pending, err := svc.ListByStatus(ctx, "alice", model.FilterPending)
	if err != nil {
		t.Fatalf("ListByStatus() unexpected error: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("pending filter should contain the task, got %d", len(pending))
	}
}

func TestListByStatusAll(t *testing.T) {
	svc := newTestTaskService()
	ctx := context.Background()

	t1 := mustCreate(t, svc, "alice", "one")
	mustCreate(t, svc, "alice", "two")
	if err := svc.SetCompletion(ctx, "alice", t1.ID.Hex(), true); err != nil {
		t.Fatalf("SetCompletion() unexpected error: %v", err)
	}

	all, err := svc.ListByStatus(ctx, "alice", model.FilterAll)
	if err != nil {
		t.Fatalf("ListByStatus() unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("unrestricted filter should return both tasks, got %d", len(all))
	}
}
