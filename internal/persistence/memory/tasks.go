// Package memory stores tasks in process memory for local development.
package memory

import (
	"context"
	"sync"

	"example.com/dashboard/internal/domain"
)

// TaskRepository keeps tasks in insertion order.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks []domain.Task
}

// NewTaskRepository constructs an empty repository.
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

// Create implements domain.TaskRepository.
func (r *TaskRepository) Create(_ context.Context, task domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, task)
	return nil
}

// List implements domain.TaskRepository.
func (r *TaskRepository) List(_ context.Context, limit int) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.tasks) {
		limit = len(r.tasks)
	}
	out := make([]domain.Task, 0, limit)
	for i := len(r.tasks) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.tasks[i])
	}
	return out, nil
}
