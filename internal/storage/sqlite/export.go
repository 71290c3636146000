// ABOUTME: Export functionality for coach data
// ABOUTME: Supports YAML, Markdown and JSON export formats
package sqlite

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/harper/daily-coach/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the complete exportable data structure
type ExportData struct {
	Version       string                    `yaml:"version" json:"version"`
	ExportedAt    string                    `yaml:"exported_at" json:"exported_at"`
	Tool          string                    `yaml:"tool" json:"tool"`
	Routines      []models.Routine          `yaml:"routines" json:"routines"`
	Tasks         []models.Task             `yaml:"tasks" json:"tasks"`
	Activities    []models.Activity         `yaml:"activities" json:"activities"`
	Conversations []models.ConversationTurn `yaml:"conversations" json:"conversations"`
}

// Export collects every stored record
func (s *Storage) Export() (*ExportData, error) {
	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().Format(time.RFC3339),
		Tool:       "coach",
	}

	var err error
	if data.Routines, err = s.ListRoutines(); err != nil {
		return nil, fmt.Errorf("failed to list routines: %w", err)
	}
	if data.Tasks, err = s.ListTasks(0); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if data.Activities, err = s.RecentActivities("", 0); err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	if data.Conversations, err = s.RecentConversations(0); err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	return data, nil
}

// ExportToYAML exports data to a YAML file
func (s *Storage) ExportToYAML(outputPath string) error {
	return s.exportToFile(outputPath, func(w io.Writer, data *ExportData) error {
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	})
}

// ExportToJSON exports data to a JSON file
func (s *Storage) ExportToJSON(outputPath string) error {
	return s.exportToFile(outputPath, func(w io.Writer, data *ExportData) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	})
}

// ExportToMarkdown exports data to a Markdown file
func (s *Storage) ExportToMarkdown(outputPath string) error {
	return s.exportToFile(outputPath, writeMarkdown)
}

func (s *Storage) exportToFile(outputPath string, write func(io.Writer, *ExportData) error) error {
	data, err := s.Export()
	if err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return write(file, data)
}

func writeMarkdown(w io.Writer, data *ExportData) error {
	_, _ = fmt.Fprintf(w, "# Coach Export - %s\n\n", time.Now().Format("2006-01-02"))
	_, _ = fmt.Fprintf(w, "Generated: %s\n\n", data.ExportedAt)

	if len(data.Routines) > 0 {
		_, _ = fmt.Fprintln(w, "## Routines")
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "| Time | Name | Message | Active |")
		_, _ = fmt.Fprintln(w, "|------|------|---------|--------|")
		for _, r := range data.Routines {
			_, _ = fmt.Fprintf(w, "| %s | %s | %s | %t |\n", r.Time, r.Name, r.Message, r.Active)
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(data.Tasks) > 0 {
		_, _ = fmt.Fprintln(w, "## Tasks")
		_, _ = fmt.Fprintln(w)
		for _, t := range data.Tasks {
			box := " "
			if t.IsDone {
				box = "x"
			}
			_, _ = fmt.Fprintf(w, "- [%s] %s %s %s\n", box, t.Date, t.Time, t.Name)
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(data.Activities) > 0 {
		_, _ = fmt.Fprintln(w, "## Activities")
		_, _ = fmt.Fprintln(w)
		for _, a := range data.Activities {
			_, _ = fmt.Fprintf(w, "- %s **%s** %s\n", a.Date, a.Category, a.Description)
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(data.Conversations) > 0 {
		_, _ = fmt.Fprintln(w, "## Conversations")
		_, _ = fmt.Fprintln(w)
		for _, turn := range data.Conversations {
			_, _ = fmt.Fprintf(w, "**User:** %s\n\n", turn.UserMessage)
			if turn.AIResponse != "" {
				_, _ = fmt.Fprintf(w, "**Coach:** %s\n\n", turn.AIResponse)
			}
		}
	}

	return nil
}
