// ABOUTME: Activity storage operations for SQLite
// ABOUTME: Append-only log queried by date window
package sqlite

import (
	"github.com/harper/daily-coach/internal/models"
)

// ActivityStore handles activity persistence
type ActivityStore struct {
	db *DB
}

// NewActivityStore creates a new ActivityStore
func NewActivityStore(db *DB) *ActivityStore {
	return &ActivityStore{db: db}
}

// Add appends an activity
func (s *ActivityStore) Add(a *models.Activity) error {
	_, err := s.db.Exec(`
		INSERT INTO activities (id, date, category, description, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, a.ID, a.Date, string(a.Category), a.Description, a.Timestamp)
	return err
}

// Recent retrieves activities dated on or after sinceDate, newest first
func (s *ActivityStore) Recent(sinceDate string, limit int) ([]models.Activity, error) {
	query := `
		SELECT id, date, category, description, timestamp
		FROM activities
		WHERE date >= ?
		ORDER BY timestamp DESC, rowid DESC
	`
	args := []interface{}{sinceDate}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var activities []models.Activity
	for rows.Next() {
		var (
			a        models.Activity
			category string
		)
		if err := rows.Scan(&a.ID, &a.Date, &category, &a.Description, &a.Timestamp); err != nil {
			return nil, err
		}
		a.Category = models.ActivityCategory(category)
		activities = append(activities, a)
	}

	return activities, rows.Err()
}
