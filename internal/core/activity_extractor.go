// ABOUTME: ActivityExtractor detects logged activities by category vocabulary
// ABOUTME: One activity per detected category per turn, described from the user's own words
package core

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/daily-coach/internal/models"
	"github.com/harper/daily-coach/internal/storage"
)

// activityVocab holds the trigger words per category
var activityVocab = map[models.ActivityCategory]map[string]bool{
	models.CategoryMeal: wordSet(
		"had", "ate", "eaten", "breakfast", "brunch", "lunch", "dinner", "meal", "meals", "snack",
	),
	models.CategoryExercise: wordSet(
		"walk", "walks", "walked", "walking",
		"run", "runs", "ran", "running",
		"gym", "exercise", "exercised", "exercising",
		"workout", "workouts",
	),
	models.CategoryMood:   wordSet("feel", "feeling", "felt", "mood", "stressed", "anxious"),
	models.CategorySleep:  wordSet("slept", "sleep", "sleeping", "nap", "napped"),
	models.CategoryWork:   wordSet("worked", "working", "shift", "overtime"),
	models.CategoryHealth: wordSet("medication", "meds", "pills", "doctor", "headache", "sick"),
}

// activityPlaceholders describe an activity when nothing but trigger words remain
var activityPlaceholders = map[models.ActivityCategory]string{
	models.CategoryMeal:     "meal mentioned",
	models.CategoryExercise: "exercise activity mentioned",
	models.CategoryMood:     "mood check-in",
	models.CategorySleep:    "sleep mentioned",
	models.CategoryWork:     "work mentioned",
	models.CategoryHealth:   "health note",
}

var (
	activityLeadingFiller  = wordSet("i", "i've", "ive", "we", "just", "so", "then", "and", "also")
	activityTrailingFiller = wordSet("for", "at", "with", "and", "to", "a", "an", "the", "my", "some", "of", "in", "on")
)

// ActivityExtractor turns activity mentions into Activity records
type ActivityExtractor struct {
	store  storage.ActivityStore
	logger *log.Logger
	now    func() time.Time
}

// NewActivityExtractor creates an extractor writing to store
func NewActivityExtractor(store storage.ActivityStore, logger *log.Logger) *ActivityExtractor {
	return &ActivityExtractor{store: store, logger: orDiscard(logger), now: time.Now}
}

// replyCategories are the categories a coach reply can add on its own
var replyCategories = []models.ActivityCategory{models.CategoryMeal, models.CategoryExercise}

// DetectActivityCategories lists the categories mentioned in userMessage plus
// the replyScope categories mentioned in reply, in models.ActivityCategories
// order. An empty replyScope means meal and exercise. Only meal and exercise
// are ever taken from the reply.
func DetectActivityCategories(userMessage, reply string, replyScope ...models.ActivityCategory) []models.ActivityCategory {
	userWords := wordSet(tokens(userMessage)...)
	replyWords := wordSet(tokens(reply)...)
	fromReply := replyScopeSet(replyScope)

	var found []models.ActivityCategory
	for _, category := range models.ActivityCategories {
		if mentions(userWords, category) || (fromReply[category] && mentions(replyWords, category)) {
			found = append(found, category)
		}
	}
	return found
}

// Extract detects activities without saving them. A category found only in
// the reply is described with its placeholder.
func (e *ActivityExtractor) Extract(userMessage, reply string, replyScope ...models.ActivityCategory) []models.Activity {
	at := e.now()
	userWords := wordSet(tokens(userMessage)...)

	var activities []models.Activity
	for _, category := range DetectActivityCategories(userMessage, reply, replyScope...) {
		description := activityPlaceholders[category]
		if mentions(userWords, category) {
			description = describeActivity(userMessage, category)
		}
		activity, err := models.NewActivity(category, description, at)
		if err != nil {
			e.logger.Warn("skipping activity", "category", category, "err", err)
			continue
		}
		activities = append(activities, *activity)
	}
	return activities
}

// ExtractAndSave detects activities and appends them to the log. Write
// failures are logged and the activity is left out of the result.
func (e *ActivityExtractor) ExtractAndSave(userMessage, reply string, replyScope ...models.ActivityCategory) []models.Activity {
	var saved []models.Activity
	for _, activity := range e.Extract(userMessage, reply, replyScope...) {
		if err := e.store.AddActivity(&activity); err != nil {
			e.logger.Error("failed to save activity", "category", activity.Category, "err", err)
			continue
		}
		saved = append(saved, activity)
	}
	if len(saved) > 0 {
		e.logger.Debug("activities logged", "count", len(saved))
	}
	return saved
}

func replyScopeSet(scope []models.ActivityCategory) map[models.ActivityCategory]bool {
	if len(scope) == 0 {
		scope = replyCategories
	}
	set := make(map[models.ActivityCategory]bool, len(scope))
	for _, category := range scope {
		if category == models.CategoryMeal || category == models.CategoryExercise {
			set[category] = true
		}
	}
	return set
}

func mentions(words map[string]bool, category models.ActivityCategory) bool {
	for w := range words {
		if activityVocab[category][w] {
			return true
		}
	}
	return false
}

// describeActivity strips the time phrase, the category's trigger words and
// dangling filler from message
func describeActivity(message string, category models.ActivityCategory) string {
	if m, ok := FindTime(message); ok {
		message = stripSpan(message, m.Start, m.End)
	}

	var kept []string
	for _, word := range strings.Fields(message) {
		if activityVocab[category][bareWord(word)] {
			continue
		}
		kept = append(kept, word)
	}
	kept = trimFiller(kept, activityLeadingFiller, activityTrailingFiller)

	description := strings.TrimRight(strings.Join(kept, " "), ".!?,;: ")
	if description == "" {
		return activityPlaceholders[category]
	}
	return description
}

// orDiscard returns logger, or a logger that drops everything when nil
func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
