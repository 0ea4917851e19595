package domain

import (
	"context"
	"time"
)

// Task is created through the "Create Task" quick action.
type Task struct {
	ID          string
	Title       string
	Description string
	CreatedBy   string
	CreatedAt   time.Time
}

// TaskRepository captures persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task Task) error
	// List returns at most limit tasks, newest first.
	List(ctx context.Context, limit int) ([]Task, error)
}
