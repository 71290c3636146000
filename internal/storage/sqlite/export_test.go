// ABOUTME: Tests for export functionality
// ABOUTME: Verifies YAML, Markdown, and JSON export formats
package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harper/daily-coach/internal/models"
	"gopkg.in/yaml.v3"
)

func seedExportStore(t *testing.T) *Storage {
	t.Helper()
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	now := time.Now()
	routine, _ := models.NewRoutine("Wake Up", "07:00", "Good morning!")
	_, _ = store.UpsertRoutine(routine)
	task, _ := models.NewTask("Meeting with Dana", "14:00", now)
	_ = store.AddTask(task)
	activity, _ := models.NewActivity(models.CategoryMeal, "oatmeal", now)
	_ = store.AddActivity(activity)
	turn, _ := models.NewConversationTurn("Hello!", "Hi there!")
	_ = store.AddConversation(turn)

	return store
}

func TestExport(t *testing.T) {
	store := seedExportStore(t)

	data, err := store.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if data.Version != "1.0" {
		t.Errorf("Version = %v, want 1.0", data.Version)
	}
	if data.Tool != "coach" {
		t.Errorf("Tool = %v, want coach", data.Tool)
	}
	if len(data.Routines) != 1 || len(data.Tasks) != 1 || len(data.Activities) != 1 || len(data.Conversations) != 1 {
		t.Errorf("Export() counts = %d/%d/%d/%d, want 1/1/1/1",
			len(data.Routines), len(data.Tasks), len(data.Activities), len(data.Conversations))
	}
}

func TestExportToYAML(t *testing.T) {
	store := seedExportStore(t)

	outputPath := filepath.Join(t.TempDir(), "export.yaml")
	if err := store.ExportToYAML(outputPath); err != nil {
		t.Fatalf("ExportToYAML() error = %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	var data ExportData
	if err := yaml.Unmarshal(content, &data); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}
	if len(data.Routines) != 1 || data.Routines[0].Name != "Wake Up" {
		t.Errorf("Routines = %+v, want Wake Up", data.Routines)
	}
}

func TestExportToJSON(t *testing.T) {
	store := seedExportStore(t)

	outputPath := filepath.Join(t.TempDir(), "nested", "export.json")
	if err := store.ExportToJSON(outputPath); err != nil {
		t.Fatalf("ExportToJSON() error = %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(content, &data); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if len(data.Tasks) != 1 || data.Tasks[0].Time != "14:00" {
		t.Errorf("Tasks = %+v, want one 14:00 task", data.Tasks)
	}
}

func TestExportToMarkdown(t *testing.T) {
	store := seedExportStore(t)

	outputPath := filepath.Join(t.TempDir(), "export.md")
	if err := store.ExportToMarkdown(outputPath); err != nil {
		t.Fatalf("ExportToMarkdown() error = %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	contentStr := string(content)

	for _, want := range []string{
		"# Coach Export",
		"## Routines",
		"| 07:00 | Wake Up | Good morning! | true |",
		"## Tasks",
		"- [ ]",
		"Meeting with Dana",
		"## Activities",
		"**meal** oatmeal",
		"## Conversations",
		"**Coach:** Hi there!",
	} {
		if !strings.Contains(contentStr, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestExportEmptyDatabase(t *testing.T) {
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	data, err := store.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(data.Routines)+len(data.Tasks)+len(data.Activities)+len(data.Conversations) != 0 {
		t.Errorf("Export() of empty database returned records: %+v", data)
	}
}
