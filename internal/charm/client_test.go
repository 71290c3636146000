// ABOUTME: Tests for the charm backup client
// ABOUTME: Uses an in-memory KV so no charm account or network is needed
package charm

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/harper/daily-coach/internal/models"
	"github.com/harper/daily-coach/internal/storage/sqlite"
)

// memKV is an in-memory KV
type memKV struct {
	data   map[string][]byte
	syncs  int
	closed bool
}

func newMemKV() *memKV { return &memKV{data: make(map[string][]byte)} }

func (m *memKV) Set(key, value []byte) error { m.data[string(key)] = value; return nil }
func (m *memKV) Get(key []byte) ([]byte, error) {
	return m.data[string(key)], nil
}
func (m *memKV) Delete(key []byte) error { delete(m.data, string(key)); return nil }
func (m *memKV) Keys() ([][]byte, error) {
	keys := make([][]byte, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, []byte(k))
	}
	return keys, nil
}
func (m *memKV) Sync() error  { m.syncs++; return nil }
func (m *memKV) Reset() error { m.data = make(map[string][]byte); return nil }
func (m *memKV) Close() error { m.closed = true; return nil }

func TestKeys(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{RoutineKey("r1"), "routine:r1"},
		{ActivityKey("a1"), "activity:a1"},
		{TaskKey("t1"), "task:t1"},
		{ConversationKey("c1"), "conversation:c1"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("key = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestClient_SetGetDelete(t *testing.T) {
	store := newMemKV()
	c := NewClientWithKV(store, &Config{AutoSync: true})

	if err := c.Set("task:1", []byte(`{"name":"Call Sam"}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if store.syncs != 1 {
		t.Errorf("syncs = %d, want 1 after a write", store.syncs)
	}

	var task models.Task
	if err := c.GetJSON("task:1", &task); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if task.Name != "Call Sam" {
		t.Errorf("Name = %q, want Call Sam", task.Name)
	}

	if err := c.Delete("task:1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := c.GetJSON("task:1", &task); err == nil {
		t.Error("GetJSON() after Delete should fail")
	}
}

func TestClient_PushSnapshot(t *testing.T) {
	src, err := sqlite.NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	defer func() { _ = src.Close() }()

	now := time.Now()
	routine, _ := models.NewRoutine("Wake Up", "07:00", "Good morning!")
	if _, err := src.UpsertRoutine(routine); err != nil {
		t.Fatalf("UpsertRoutine() error = %v", err)
	}
	for _, desc := range []string{"oatmeal", "salad"} {
		a, _ := models.NewActivity(models.CategoryMeal, desc, now)
		if err := src.AddActivity(a); err != nil {
			t.Fatalf("AddActivity() error = %v", err)
		}
	}
	task, _ := models.NewTask("Meeting with Dana", "14:00", now)
	if err := src.AddTask(task); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	turn, _ := models.NewConversationTurn("hi", "Hello!")
	if err := src.AddConversation(turn); err != nil {
		t.Fatalf("AddConversation() error = %v", err)
	}

	store := newMemKV()
	c := NewClientWithKV(store, &Config{AutoSync: true})

	result, err := c.PushSnapshot(src)
	if err != nil {
		t.Fatalf("PushSnapshot() error = %v", err)
	}
	want := PushResult{Routines: 1, Activities: 2, Tasks: 1, Conversations: 1}
	if result != want {
		t.Errorf("PushSnapshot() = %+v, want %+v", result, want)
	}
	if result.Total() != 5 {
		t.Errorf("Total() = %d, want 5", result.Total())
	}
	if store.syncs != 1 {
		t.Errorf("syncs = %d, want exactly one per push", store.syncs)
	}

	// Pushing again overwrites by id
	if _, err := c.PushSnapshot(src); err != nil {
		t.Fatalf("second PushSnapshot() error = %v", err)
	}
	counts, err := c.CountKeys()
	if err != nil {
		t.Fatalf("CountKeys() error = %v", err)
	}
	if counts != want {
		t.Errorf("CountKeys() = %+v, want %+v", counts, want)
	}

	var stored models.Routine
	if err := c.GetJSON(RoutineKey(routine.ID), &stored); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if stored.Key() != "Wake Up@07:00" {
		t.Errorf("stored routine = %s", stored.Key())
	}

	keys, _ := c.ListKeys(ActivityPrefix)
	sort.Strings(keys)
	if len(keys) != 2 {
		t.Errorf("activity keys = %v", keys)
	}
}

// failingSource fails its first read
type failingSource struct{}

func (failingSource) ListRoutines() ([]models.Routine, error) { return nil, errors.New("locked") }
func (failingSource) ListTasks(int) ([]models.Task, error)    { return nil, nil }
func (failingSource) RecentActivities(string, int) ([]models.Activity, error) {
	return nil, nil
}
func (failingSource) RecentConversations(int) ([]models.ConversationTurn, error) {
	return nil, nil
}

func TestClient_PushSnapshotReadFailure(t *testing.T) {
	store := newMemKV()
	c := NewClientWithKV(store, &Config{AutoSync: true})

	if _, err := c.PushSnapshot(failingSource{}); err == nil {
		t.Fatal("PushSnapshot() should fail when the source fails")
	}
	if len(store.data) != 0 || store.syncs != 0 {
		t.Errorf("nothing should be written or synced, got %d keys %d syncs", len(store.data), store.syncs)
	}
}

func TestClient_NoAutoSync(t *testing.T) {
	store := newMemKV()
	c := NewClientWithKV(store, &Config{AutoSync: false})

	if err := c.Set("routine:1", []byte("{}")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if store.syncs != 0 {
		t.Errorf("syncs = %d, want 0 with AutoSync off", store.syncs)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !store.closed {
		t.Error("Close() should close the KV store")
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
