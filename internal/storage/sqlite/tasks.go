// ABOUTME: Task storage operations for SQLite
// ABOUTME: One row per detected request, queried by calendar date
package sqlite

import (
	"fmt"

	"github.com/harper/daily-coach/internal/models"
	"github.com/harper/daily-coach/internal/storage"
)

// TaskStore handles task persistence
type TaskStore struct {
	db *DB
}

// NewTaskStore creates a new TaskStore
func NewTaskStore(db *DB) *TaskStore {
	return &TaskStore{db: db}
}

// Add inserts a task
func (s *TaskStore) Add(t *models.Task) error {
	_, err := s.db.Exec(`
		INSERT INTO tasks (id, name, time, date, is_done, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.Name, t.Time, t.Date, t.IsDone, t.CreatedAt)
	return err
}

// ForDate retrieves the tasks of one date ordered by time of day
func (s *TaskStore) ForDate(date string) ([]models.Task, error) {
	return s.list(`
		SELECT id, name, time, date, is_done, created_at
		FROM tasks
		WHERE date = ?
		ORDER BY time ASC, rowid ASC
	`, date)
}

// List retrieves tasks newest first
func (s *TaskStore) List(limit int) ([]models.Task, error) {
	query := `
		SELECT id, name, time, date, is_done, created_at
		FROM tasks
		ORDER BY date DESC, time DESC, rowid DESC
	`
	if limit > 0 {
		return s.list(query+" LIMIT ?", limit)
	}
	return s.list(query)
}

func (s *TaskStore) list(query string, args ...interface{}) ([]models.Task, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Time, &t.Date, &t.IsDone, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// Complete marks a task done
func (s *TaskStore) Complete(id string) error {
	result, err := s.db.Exec("UPDATE tasks SET is_done = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("task %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
