// ABOUTME: Shared fixtures for core tests
// ABOUTME: In-memory storage, a fixed clock and a store whose every call fails
package core

import (
	"errors"
	"testing"
	"time"

	"github.com/harper/daily-coach/internal/models"
	"github.com/harper/daily-coach/internal/storage"
	"github.com/harper/daily-coach/internal/storage/sqlite"
)

// testNow is a fixed Saturday morning
var testNow = time.Date(2026, 3, 14, 9, 15, 0, 0, time.Local)

func fixedNow() time.Time { return testNow }

func newTestStore(t *testing.T) *sqlite.Storage {
	t.Helper()
	store, err := sqlite.NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

var errBroken = errors.New("disk on fire")

// brokenStore fails every read and write
type brokenStore struct{}

var _ storage.Store = brokenStore{}

func (brokenStore) UpsertRoutine(*models.Routine) (bool, error)   { return false, errBroken }
func (brokenStore) ListActiveRoutines() ([]models.Routine, error) { return nil, errBroken }
func (brokenStore) ListRoutines() ([]models.Routine, error)       { return nil, errBroken }
func (brokenStore) DeactivateRoutine(string) error                { return errBroken }
func (brokenStore) CleanDuplicateRoutines() (int64, error)        { return 0, errBroken }
func (brokenStore) PurgeInactiveRoutines() (int64, error)         { return 0, errBroken }
func (brokenStore) AddActivity(*models.Activity) error            { return errBroken }
func (brokenStore) RecentActivities(string, int) ([]models.Activity, error) {
	return nil, errBroken
}
func (brokenStore) AddTask(*models.Task) error                     { return errBroken }
func (brokenStore) TasksForDate(string) ([]models.Task, error)     { return nil, errBroken }
func (brokenStore) ListTasks(int) ([]models.Task, error)           { return nil, errBroken }
func (brokenStore) CompleteTask(string) error                      { return errBroken }
func (brokenStore) AddConversation(*models.ConversationTurn) error { return errBroken }
func (brokenStore) RecentConversations(int) ([]models.ConversationTurn, error) {
	return nil, errBroken
}
func (brokenStore) Close() error { return nil }
