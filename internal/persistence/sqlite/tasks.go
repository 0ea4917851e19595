// Package sqlite provides a single-file task store for running without Postgres.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"example.com/dashboard/internal/domain"
)

// TaskRepository stores tasks in SQLite.
type TaskRepository struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*TaskRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	r := &TaskRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *TaskRepository) migrate() error {
	_, err := r.db.Exec(`
	CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		seq         INTEGER NOT NULL,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_by  TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_seq ON tasks(seq DESC);`)
	return err
}

// Close releases the database handle.
func (r *TaskRepository) Close() error {
	return r.db.Close()
}

// Create implements domain.TaskRepository.
func (r *TaskRepository) Create(ctx context.Context, task domain.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, seq, title, description, created_by, created_at)
		 VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM tasks), ?, ?, ?, ?)`,
		task.ID, task.Title, task.Description, task.CreatedBy, task.CreatedAt.UTC().Format(time.RFC3339Nano))
	return err
}

// List implements domain.TaskRepository.
func (r *TaskRepository) List(ctx context.Context, limit int) ([]domain.Task, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, created_by, created_at FROM tasks ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Task
	for rows.Next() {
		var (
			task    domain.Task
			created string
		)
		if err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.CreatedBy, &created); err != nil {
			return nil, err
		}
		task.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, task)
	}
	return out, rows.Err()
}
