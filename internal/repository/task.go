package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskdock/taskdock-go/internal/model"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskRepository handles task persistence against the task collection.
// Every read and mutation filters on the owning user identifier, so a
// task owned by someone else is indistinguishable from a missing one.
type TaskRepository struct {
	coll *mongo.Collection
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(taskCollection)}
}

// Insert stores a new task and sets the store-assigned ID on the struct.
func (r *TaskRepository) Insert(ctx context.Context, task *model.Task) error {
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, task)
	if err != nil {
		return err
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		task.ID = id
	}
	return nil
}

// ListByOwner returns all tasks owned by userID, oldest first.
func (r *TaskRepository) ListByOwner(ctx context.Context, userID string) ([]model.Task, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

// ListByOwnerAndStatus returns the owner's tasks matching the completion
// filter; FilterAll places no restriction on the flag.
func (r *TaskRepository) ListByOwnerAndStatus(ctx context.Context, userID string, filter model.StatusFilter) ([]model.Task, error) {
	query := bson.M{"user_id": userID}
	switch filter {
	case model.FilterCompleted:
		query["completed"] = true
	case model.FilterPending:
		query["completed"] = false
	}
	return r.find(ctx, query)
}

// GetByID fetches a single task by store ID, scoped to the owner.
func (r *TaskRepository) GetByID(ctx context.Context, userID string, taskID primitive.ObjectID) (*model.Task, error) {
	task := &model.Task{}
	err := r.coll.FindOne(ctx, bson.M{"_id": taskID, "user_id": userID}).Decode(task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

// Update replaces the name and description of the owner's task.
func (r *TaskRepository) Update(ctx context.Context, userID string, taskID primitive.ObjectID, name, description string) error {
	return r.setFields(ctx, userID, taskID, bson.M{
		"task_name":        name,
		"task_description": description,
	})
}

// SetCompleted flips the completion flag on the owner's task.
func (r *TaskRepository) SetCompleted(ctx context.Context, userID string, taskID primitive.ObjectID, completed bool) error {
	return r.setFields(ctx, userID, taskID, bson.M{"completed": completed})
}

// Delete removes the owner's task. Zero matched documents means ErrTaskNotFound.
func (r *TaskRepository) Delete(ctx context.Context, userID string, taskID primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": taskID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) find(ctx context.Context, query bson.M) ([]model.Task, error) {
	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []model.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *TaskRepository) setFields(ctx context.Context, userID string, taskID primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now().UTC()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": taskID, "user_id": userID},
		bson.M{"$set": fields},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}
