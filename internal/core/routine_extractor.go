// ABOUTME: RoutineExtractor detects recurring daily routines from trigger words plus a time
// ABOUTME: Saves them idempotently through the store's (name, time) upsert
package core

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harper/daily-coach/internal/models"
	"github.com/harper/daily-coach/internal/storage"
)

// RoutineTrigger names a routine, its template message and the words that start it
type RoutineTrigger struct {
	Name    string
	Message string
	Words   map[string]bool
}

// RoutineTriggers is the fixed set of routines the coach recognizes
var RoutineTriggers = []RoutineTrigger{
	{
		Name:    "Wake Up",
		Message: "Good morning! Time to start your amazing day! ☀️",
		Words:   wordSet("wake", "waking", "woke", "alarm"),
	},
	{
		Name:    "Morning Walk",
		Message: "Time for your energizing walk! 🚶‍♂️",
		Words:   wordSet("walk", "walks", "walking"),
	},
	{
		Name:    "Breakfast",
		Message: "Time for a healthy breakfast! 🍳",
		Words:   wordSet("breakfast"),
	},
}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}']+`)

// SavedRoutine is a routine after upsert, with whether a new row was made
type SavedRoutine struct {
	Routine models.Routine
	Created bool
}

// RoutineExtractor turns routine requests into Routine records
type RoutineExtractor struct {
	store  storage.RoutineStore
	logger *log.Logger
}

// NewRoutineExtractor creates an extractor writing to store
func NewRoutineExtractor(store storage.RoutineStore, logger *log.Logger) *RoutineExtractor {
	return &RoutineExtractor{store: store, logger: orDiscard(logger)}
}

// Detect finds routines in message. Each trigger uses the first time
// expression after its trigger word, falling back to the first time in the
// message; a trigger with no time at all yields nothing.
func (e *RoutineExtractor) Detect(message string) []models.Routine {
	times := FindAllTimes(message)
	if len(times) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var routines []models.Routine
	for _, trigger := range RoutineTriggers {
		end, ok := triggerEnd(message, trigger.Words)
		if !ok {
			continue
		}

		match := times[0]
		for _, m := range times {
			if m.Start >= end {
				match = m
				break
			}
		}

		routine, err := models.NewRoutine(trigger.Name, match.Clock(), trigger.Message)
		if err != nil {
			e.logger.Warn("skipping routine", "name", trigger.Name, "err", err)
			continue
		}
		if seen[routine.Key()] {
			continue
		}
		seen[routine.Key()] = true
		routines = append(routines, *routine)
	}
	return routines
}

// ExtractAndSave detects routines and upserts them
func (e *RoutineExtractor) ExtractAndSave(message string) []SavedRoutine {
	return e.Save(e.Detect(message))
}

// Save upserts routines. Write failures are logged and the routine is left
// out of the result.
func (e *RoutineExtractor) Save(routines []models.Routine) []SavedRoutine {
	var saved []SavedRoutine
	for _, routine := range routines {
		created, err := e.store.UpsertRoutine(&routine)
		if err != nil {
			e.logger.Error("failed to save routine", "routine", routine.Key(), "err", err)
			continue
		}
		e.logger.Debug("routine saved", "routine", routine.Key(), "created", created)
		saved = append(saved, SavedRoutine{Routine: routine, Created: created})
	}
	return saved
}

// triggerEnd returns the byte offset just past the first trigger word in text
func triggerEnd(text string, words map[string]bool) (int, bool) {
	for _, loc := range wordPattern.FindAllStringIndex(text, -1) {
		if words[strings.ToLower(text[loc[0]:loc[1]])] {
			return loc[1], true
		}
	}
	return 0, false
}
