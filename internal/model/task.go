package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task represents a task document in the task collection.
// UserID is the owning user's identifier, set once at creation.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	UserID      string             `bson:"user_id" json:"UserId"`
	Name        string             `bson:"task_name" json:"TaskName"`
	Description string             `bson:"task_description" json:"TaskDescription"`
	Completed   bool               `bson:"completed" json:"Completed"`
	CreatedAt   time.Time          `bson:"created_at" json:"CreatedAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"UpdatedAt"`
}

// TaskRequest represents the body of task create and update requests.
type TaskRequest struct {
	Name        string `json:"TaskName"`
	Description string `json:"TaskDescription"`
}

// StatusFilter selects tasks by completion state.
type StatusFilter int

const (
	// FilterAll places no restriction on the completion flag.
	FilterAll StatusFilter = iota
	// FilterCompleted selects tasks with completed=true.
	FilterCompleted
	// FilterPending selects tasks with completed=false.
	FilterPending
)

// ParseStatusFilter maps a path segment to a StatusFilter.
// Unknown values mean no restriction.
func ParseStatusFilter(s string) StatusFilter {
	switch s {
	case "completed":
		return FilterCompleted
	case "pending":
		return FilterPending
	default:
		return FilterAll
	}
}
