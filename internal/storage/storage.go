// ABOUTME: Storage capability interfaces for the daily coach
// ABOUTME: Every coach component depends on these, never on a concrete backend
package storage

import (
	"errors"

	"github.com/harper/daily-coach/internal/models"
)

// ErrNotFound is returned when a record addressed by id does not exist
var ErrNotFound = errors.New("not found")

// RoutineStore persists routines. At most one active routine exists per
// (name, time); UpsertRoutine updates the message of that row instead of
// adding a second one.
type RoutineStore interface {
	// UpsertRoutine saves r and reports whether a new row was created.
	// On update r.ID is replaced by the id of the existing row.
	UpsertRoutine(r *models.Routine) (created bool, err error)
	ListActiveRoutines() ([]models.Routine, error)
	ListRoutines() ([]models.Routine, error)
	DeactivateRoutine(id string) error
	CleanDuplicateRoutines() (int64, error)
	PurgeInactiveRoutines() (int64, error)
}

// ActivityStore persists the append-only activity log
type ActivityStore interface {
	AddActivity(a *models.Activity) error
	// RecentActivities returns activities dated on or after sinceDate
	// (YYYY-MM-DD, empty for no bound), newest first. limit <= 0 means all.
	RecentActivities(sinceDate string, limit int) ([]models.Activity, error)
}

// TaskStore persists one-off dated tasks
type TaskStore interface {
	AddTask(t *models.Task) error
	// TasksForDate returns the tasks for date ordered by time
	TasksForDate(date string) ([]models.Task, error)
	// ListTasks returns tasks newest first. limit <= 0 means all.
	ListTasks(limit int) ([]models.Task, error)
	CompleteTask(id string) error
}

// ConversationStore persists the append-only conversation log
type ConversationStore interface {
	AddConversation(turn *models.ConversationTurn) error
	// RecentConversations returns turns newest first. limit <= 0 means all.
	RecentConversations(limit int) ([]models.ConversationTurn, error)
}

// Store is the full persistence surface used by the coach
type Store interface {
	RoutineStore
	ActivityStore
	TaskStore
	ConversationStore
	Close() error
}
