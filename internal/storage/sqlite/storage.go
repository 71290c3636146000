// ABOUTME: Unified Storage layer that wraps all SQLite stores
// ABOUTME: Implements storage.Store for the coach pipeline and its maintenance surfaces
package sqlite

import (
	"fmt"

	"github.com/harper/daily-coach/internal/models"
	"github.com/harper/daily-coach/internal/storage"
)

// Storage manages all persistent coach data using SQLite
type Storage struct {
	db            *DB
	routines      *RoutineStore
	activities    *ActivityStore
	tasks         *TaskStore
	conversations *ConversationStore
}

var _ storage.Store = (*Storage)(nil)

// Stats holds row counts per record kind
type Stats struct {
	Routines       int `json:"routines" yaml:"routines"`
	ActiveRoutines int `json:"active_routines" yaml:"active_routines"`
	Activities     int `json:"activities" yaml:"activities"`
	Tasks          int `json:"tasks" yaml:"tasks"`
	OpenTasks      int `json:"open_tasks" yaml:"open_tasks"`
	Conversations  int `json:"conversations" yaml:"conversations"`
}

// NewStorage initializes storage at the default XDG path
func NewStorage() (*Storage, error) {
	return NewStorageWithPath(DefaultDBPath())
}

// NewStorageWithPath initializes storage with a custom database path
func NewStorageWithPath(dbPath string) (*Storage, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newStorage(db), nil
}

// NewStorageInMemory creates an in-memory storage (for testing)
func NewStorageInMemory() (*Storage, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return newStorage(db), nil
}

func newStorage(db *DB) *Storage {
	return &Storage{
		db:            db,
		routines:      NewRoutineStore(db),
		activities:    NewActivityStore(db),
		tasks:         NewTaskStore(db),
		conversations: NewConversationStore(db),
	}
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Storage) Path() string {
	return s.db.Path()
}

// UpsertRoutine saves a routine, updating the active one with the same name and time
func (s *Storage) UpsertRoutine(r *models.Routine) (bool, error) {
	return s.routines.Upsert(r)
}

// ListActiveRoutines retrieves active routines ordered by time
func (s *Storage) ListActiveRoutines() ([]models.Routine, error) {
	return s.routines.ListActive()
}

// ListRoutines retrieves all routines including deactivated ones
func (s *Storage) ListRoutines() ([]models.Routine, error) {
	return s.routines.ListAll()
}

// DeactivateRoutine clears the active flag of one routine
func (s *Storage) DeactivateRoutine(id string) error {
	return s.routines.Deactivate(id)
}

// CleanDuplicateRoutines removes all but one row per (name, time)
func (s *Storage) CleanDuplicateRoutines() (int64, error) {
	return s.routines.CleanDuplicates()
}

// PurgeInactiveRoutines deletes deactivated routines
func (s *Storage) PurgeInactiveRoutines() (int64, error) {
	return s.routines.PurgeInactive()
}

// AddActivity appends an activity
func (s *Storage) AddActivity(a *models.Activity) error {
	if err := s.activities.Add(a); err != nil {
		return fmt.Errorf("failed to save activity: %w", err)
	}
	return nil
}

// RecentActivities retrieves activities since a date, newest first
func (s *Storage) RecentActivities(sinceDate string, limit int) ([]models.Activity, error) {
	return s.activities.Recent(sinceDate, limit)
}

// AddTask inserts a task
func (s *Storage) AddTask(t *models.Task) error {
	if err := s.tasks.Add(t); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// TasksForDate retrieves the tasks of one date
func (s *Storage) TasksForDate(date string) ([]models.Task, error) {
	return s.tasks.ForDate(date)
}

// ListTasks retrieves tasks newest first
func (s *Storage) ListTasks(limit int) ([]models.Task, error) {
	return s.tasks.List(limit)
}

// CompleteTask marks a task done
func (s *Storage) CompleteTask(id string) error {
	return s.tasks.Complete(id)
}

// AddConversation appends a conversation turn
func (s *Storage) AddConversation(turn *models.ConversationTurn) error {
	if err := s.conversations.Add(turn); err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}

// RecentConversations retrieves the latest turns, newest first
func (s *Storage) RecentConversations(limit int) ([]models.ConversationTurn, error) {
	return s.conversations.Recent(limit)
}

// Stats counts the stored records
func (s *Storage) Stats() (*Stats, error) {
	stats := &Stats{}
	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM routines", &stats.Routines},
		{"SELECT COUNT(*) FROM routines WHERE active = 1", &stats.ActiveRoutines},
		{"SELECT COUNT(*) FROM activities", &stats.Activities},
		{"SELECT COUNT(*) FROM tasks", &stats.Tasks},
		{"SELECT COUNT(*) FROM tasks WHERE is_done = 0", &stats.OpenTasks},
		{"SELECT COUNT(*) FROM conversations", &stats.Conversations},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to count records: %w", err)
		}
	}
	return stats, nil
}
