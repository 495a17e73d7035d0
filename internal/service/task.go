package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskdock/taskdock-go/internal/model"
	"github.com/taskdock/taskdock-go/internal/repository"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrNameRequired = errors.New("task name is required")
	ErrBadTaskID    = errors.New("invalid task id")
)

// TaskStore is the persistence surface the task service depends on.
// Implementations scope every lookup and mutation to the owning user.
type TaskStore interface {
	Insert(ctx context.Context, task *model.Task) error
	ListByOwner(ctx context.Context, userID string) ([]model.Task, error)
	ListByOwnerAndStatus(ctx context.Context, userID string, filter model.StatusFilter) ([]model.Task, error)
	GetByID(ctx context.Context, userID string, taskID primitive.ObjectID) (*model.Task, error)
	Update(ctx context.Context, userID string, taskID primitive.ObjectID, name, description string) error
	SetCompleted(ctx context.Context, userID string, taskID primitive.ObjectID, completed bool) error
	Delete(ctx context.Context, userID string, taskID primitive.ObjectID) error
}

// TaskService enforces ownership-scoped access to tasks. Every operation
// takes the authenticated caller's user ID; a task that exists but is
// owned by someone else reads as not found.
type TaskService struct {
	store TaskStore
}

// NewTaskService creates a new TaskService.
func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

// Create stores a new task owned by userID with the completion flag off.
func (s *TaskService) Create(ctx context.Context, userID string, req model.TaskRequest) (*model.Task, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}

	task := &model.Task{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Completed:   false,
	}

	if err := s.store.Insert(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// List returns all tasks owned by userID.
func (s *TaskService) List(ctx context.Context, userID string) ([]model.Task, error) {
	tasks, err := s.store.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// ListByStatus returns the caller's tasks filtered by completion state.
func (s *TaskService) ListByStatus(ctx context.Context, userID string, filter model.StatusFilter) ([]model.Task, error) {
	tasks, err := s.store.ListByOwnerAndStatus(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// Get fetches a single task the caller owns.
func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*model.Task, error) {
	id, err := parseTaskID(taskID)
	if err != nil {
		return nil, err
	}

	task, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

// Update replaces the name and description of a task the caller owns.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, req model.TaskRequest) error {
	id, err := parseTaskID(taskID)
	if err != nil {
		return err
	}

	return s.mapNotFound(s.store.Update(ctx, userID, id, req.Name, req.Description))
}

// SetCompletion sets the completion flag on a task the caller owns.
func (s *TaskService) SetCompletion(ctx context.Context, userID, taskID string, completed bool) error {
	id, err := parseTaskID(taskID)
	if err != nil {
		return err
	}

	return s.mapNotFound(s.store.SetCompleted(ctx, userID, id, completed))
}

// Delete removes a task the caller owns.
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	id, err := parseTaskID(taskID)
	if err != nil {
		return err
	}

	return s.mapNotFound(s.store.Delete(ctx, userID, id))
}

func (s *TaskService) mapNotFound(err error) error {
	if errors.Is(err, repository.ErrTaskNotFound) {
		return ErrTaskNotFound
	}
	return err
}

func parseTaskID(taskID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return primitive.NilObjectID, ErrBadTaskID
	}
	return id, nil
}
