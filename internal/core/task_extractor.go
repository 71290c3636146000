// ABOUTME: TaskExtractor turns any time-bearing request into a one-off task for today
// ABOUTME: Names the task from the message minus its time phrase and request filler
package core

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/daily-coach/internal/models"
	"github.com/harper/daily-coach/internal/storage"
)

// DefaultTaskName names a task whose message held nothing but a time
const DefaultTaskName = "Task"

// taskFillers are request phrases dropped from the front of a task name.
// Longer phrases come first so "remind me to" wins over "remind me".
var taskFillers = []string{
	"don't forget to", "remind me to", "remind me about", "remind me",
	"i've got a", "i've got", "i have a", "i have an", "i have",
	"schedule a", "schedule", "add a", "add", "please", "i need to", "we have a", "we have",
}

var taskTrailingFiller = wordSet("today", "tonight", "please")

// TaskExtractor turns time-bearing messages into Task records
type TaskExtractor struct {
	store  storage.TaskStore
	logger *log.Logger
	now    func() time.Time
}

// NewTaskExtractor creates an extractor writing to store
func NewTaskExtractor(store storage.TaskStore, logger *log.Logger) *TaskExtractor {
	return &TaskExtractor{store: store, logger: orDiscard(logger), now: time.Now}
}

// Detect builds a task from message, or reports false when it has no time
func (e *TaskExtractor) Detect(message string) (*models.Task, bool) {
	match, ok := FindTime(message)
	if !ok {
		return nil, false
	}

	task, err := models.NewTask(TaskName(message, match), match.Clock(), e.now())
	if err != nil {
		e.logger.Warn("skipping task", "err", err)
		return nil, false
	}
	return task, true
}

// ExtractAndSave detects and stores a task. It reports false when nothing
// was detected or the write failed; write failures are logged.
func (e *TaskExtractor) ExtractAndSave(message string) (*models.Task, bool) {
	task, ok := e.Detect(message)
	if !ok {
		return nil, false
	}
	if err := e.store.AddTask(task); err != nil {
		e.logger.Error("failed to save task", "task", task.Name, "err", err)
		return nil, false
	}
	e.logger.Debug("task saved", "task", task.Name, "time", task.Time, "date", task.Date)
	return task, true
}

// TaskName derives a task name from message with the time phrase removed
func TaskName(message string, match TimeMatch) string {
	name := stripSpan(message, match.Start, match.End)

	for changed := true; changed; {
		changed = false
		lower := strings.ToLower(name)
		for _, filler := range taskFillers {
			if lower == filler || strings.HasPrefix(lower, filler+" ") {
				name = strings.TrimSpace(name[len(filler):])
				changed = true
				break
			}
		}
	}

	words := trimFiller(strings.Fields(name), nil, taskTrailingFiller)
	name = strings.Trim(strings.Join(words, " "), ".!?,;: ")
	if name == "" {
		return DefaultTaskName
	}
	return capitalize(name)
}
