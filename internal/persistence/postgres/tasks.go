// Package postgres provides Postgres-backed task persistence.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/dashboard/internal/domain"
)

// Schema creates the tables used by TaskRepository.
const Schema = `CREATE TABLE IF NOT EXISTS dashboard_tasks (
    task_id     UUID PRIMARY KEY,
    title       TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_by  TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_dashboard_tasks_created ON dashboard_tasks (created_at DESC, task_id DESC);`

// TaskRepository stores tasks in Postgres.
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository constructs a TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// Migrate applies Schema.
func (r *TaskRepository) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, Schema)
	return err
}

// Create implements domain.TaskRepository.
func (r *TaskRepository) Create(ctx context.Context, task domain.Task) error {
	const stmt = `INSERT INTO dashboard_tasks (task_id, title, description, created_by, created_at)
        VALUES ($1,$2,$3,$4,$5)`

	_, err := r.pool.Exec(ctx, stmt, task.ID, task.Title, task.Description, task.CreatedBy, task.CreatedAt)
	return err
}

// List implements domain.TaskRepository.
func (r *TaskRepository) List(ctx context.Context, limit int) ([]domain.Task, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `SELECT task_id::text, title, description, created_by, created_at
        FROM dashboard_tasks ORDER BY created_at DESC, task_id DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.Task, 0, limit)
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.CreatedBy, &task.CreatedAt); err != nil {
			return nil, err
		}
		task.CreatedAt = task.CreatedAt.UTC()
		results = append(results, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
