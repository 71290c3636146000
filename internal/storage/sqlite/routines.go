// ABOUTME: Routine storage operations for SQLite
// ABOUTME: Upserts by (name, time) and carries the deactivate/clean/purge maintenance operations
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/harper/daily-coach/internal/models"
	"github.com/harper/daily-coach/internal/storage"
)

// RoutineStore handles routine persistence
type RoutineStore struct {
	db *DB
}

// NewRoutineStore creates a new RoutineStore
func NewRoutineStore(db *DB) *RoutineStore {
	return &RoutineStore{db: db}
}

// Upsert inserts r, or updates the message of the active routine with the
// same name and time. It reports whether a new row was created and leaves
// r.ID pointing at the stored row.
func (s *RoutineStore) Upsert(r *models.Routine) (bool, error) {
	var id string
	err := s.db.QueryRow(`
		INSERT INTO routines (id, name, time, message, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name, time) WHERE active = 1 DO UPDATE SET
			message = excluded.message
		RETURNING id
	`, r.ID, r.Name, r.Time, r.Message, r.Active, r.CreatedAt).Scan(&id)
	if err != nil {
		return false, fmt.Errorf("failed to upsert routine %s: %w", r.Key(), err)
	}

	created := id == r.ID
	r.ID = id
	return created, nil
}

// ListActive retrieves active routines ordered by time of day
func (s *RoutineStore) ListActive() ([]models.Routine, error) {
	return s.list(`
		SELECT id, name, time, message, active, created_at
		FROM routines
		WHERE active = 1
		ORDER BY time ASC, name ASC
	`)
}

// ListAll retrieves every routine, active or not
func (s *RoutineStore) ListAll() ([]models.Routine, error) {
	return s.list(`
		SELECT id, name, time, message, active, created_at
		FROM routines
		ORDER BY time ASC, name ASC, created_at DESC
	`)
}

func (s *RoutineStore) list(query string, args ...interface{}) ([]models.Routine, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var routines []models.Routine
	for rows.Next() {
		var (
			r       models.Routine
			message sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Time, &message, &r.Active, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Message = message.String
		routines = append(routines, r)
	}

	return routines, rows.Err()
}

// Deactivate clears the active flag of one routine
func (s *RoutineStore) Deactivate(id string) error {
	result, err := s.db.Exec("UPDATE routines SET active = 0 WHERE id = ? AND active = 1", id)
	if err != nil {
		return fmt.Errorf("failed to deactivate routine: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("active routine %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// CleanDuplicates keeps one row per (name, time), preferring the active
// row and then the newest, and deletes the rest
func (s *RoutineStore) CleanDuplicates() (int64, error) {
	result, err := s.db.Exec(`
		DELETE FROM routines
		WHERE rowid NOT IN (
			SELECT rowid FROM (
				SELECT rowid, ROW_NUMBER() OVER (
					PARTITION BY name, time
					ORDER BY active DESC, created_at DESC, rowid DESC
				) AS rn
				FROM routines
			)
			WHERE rn = 1
		)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to clean duplicate routines: %w", err)
	}
	return result.RowsAffected()
}

// PurgeInactive deletes every deactivated routine
func (s *RoutineStore) PurgeInactive() (int64, error) {
	result, err := s.db.Exec("DELETE FROM routines WHERE active = 0")
	if err != nil {
		return 0, fmt.Errorf("failed to purge inactive routines: %w", err)
	}
	return result.RowsAffected()
}
