// ABOUTME: ContextAggregator renders a bounded digest of the user's stored state
// ABOUTME: Routines, today's tasks, recent activities and the last few turns; never fails
package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/daily-coach/internal/models"
)

const (
	// ActivityWindowDays bounds how far back activities are considered
	ActivityWindowDays = 7
	// MaxContextActivities caps the activities shown in a digest
	MaxContextActivities = 10
	// MaxContextTurns caps the prior conversation turns shown in a digest
	MaxContextTurns = 3
	// TurnPreviewChars is the per-message budget for prior turns
	TurnPreviewChars = 50
	// NoContextLine stands in for an empty store
	NoContextLine = "No prior context yet."
)

// CurrentTimeLayout renders the digest's first line
const CurrentTimeLayout = "Monday, January 02, 2006 at 03:04 PM"

// ContextSource is the read side of the store used for digests
type ContextSource interface {
	ListActiveRoutines() ([]models.Routine, error)
	TasksForDate(date string) ([]models.Task, error)
	RecentActivities(sinceDate string, limit int) ([]models.Activity, error)
	RecentConversations(limit int) ([]models.ConversationTurn, error)
}

// ContextAggregator assembles context digests for replies
type ContextAggregator struct {
	source ContextSource
	logger *log.Logger
	now    func() time.Time
}

// NewContextAggregator creates an aggregator reading from source
func NewContextAggregator(source ContextSource, logger *log.Logger) *ContextAggregator {
	return &ContextAggregator{source: source, logger: orDiscard(logger), now: time.Now}
}

// Digest renders the current state. A section whose read fails is replaced
// by a stand-in line; an empty store yields the time and NoContextLine.
func (a *ContextAggregator) Digest() string {
	now := a.now()
	header := "Current time: " + now.Format(CurrentTimeLayout)

	var sections []string
	for _, section := range []func(time.Time) string{
		a.routinesSection,
		a.tasksSection,
		a.activitiesSection,
		a.conversationSection,
	} {
		if s := section(now); s != "" {
			sections = append(sections, s)
		}
	}

	if len(sections) == 0 {
		return header + "\n\n" + NoContextLine
	}
	return header + "\n\n" + strings.Join(sections, "\n\n")
}

func (a *ContextAggregator) routinesSection(time.Time) string {
	routines, err := a.source.ListActiveRoutines()
	if err != nil {
		a.logger.Warn("context: routines unavailable", "err", err)
		return "CURRENT ROUTINES:\n(routines unavailable right now)"
	}
	if len(routines) == 0 {
		return ""
	}

	lines := []string{"CURRENT ROUTINES:"}
	for _, r := range routines {
		lines = append(lines, fmt.Sprintf("• %s - %s: %s", r.Time, r.Name, r.Message))
	}
	return strings.Join(lines, "\n")
}

func (a *ContextAggregator) tasksSection(now time.Time) string {
	tasks, err := a.source.TasksForDate(models.DateOf(now))
	if err != nil {
		a.logger.Warn("context: tasks unavailable", "err", err)
		return "TODAY'S TASKS:\n(tasks unavailable right now)"
	}

	lines := []string{"TODAY'S TASKS:"}
	for _, t := range tasks {
		if t.IsDone {
			continue
		}
		lines = append(lines, fmt.Sprintf("• %s - %s", t.Time, t.Name))
	}
	if len(lines) == 1 {
		return ""
	}
	return strings.Join(lines, "\n")
}

func (a *ContextAggregator) activitiesSection(now time.Time) string {
	since := models.DateOf(now.AddDate(0, 0, -ActivityWindowDays))
	activities, err := a.source.RecentActivities(since, MaxContextActivities)
	if err != nil {
		a.logger.Warn("context: activities unavailable", "err", err)
		return "RECENT ACTIVITIES:\n(activities unavailable right now)"
	}
	if len(activities) == 0 {
		return ""
	}

	lines := []string{"RECENT ACTIVITIES:"}
	for _, act := range activities {
		lines = append(lines, fmt.Sprintf("• %s - %s (%s)", act.Date, act.Description, act.Category))
	}
	return strings.Join(lines, "\n")
}

func (a *ContextAggregator) conversationSection(time.Time) string {
	turns, err := a.source.RecentConversations(MaxContextTurns)
	if err != nil {
		a.logger.Warn("context: conversations unavailable", "err", err)
		return "RECENT CONVERSATION CONTEXT:\n(conversation history unavailable right now)"
	}
	if len(turns) == 0 {
		return ""
	}

	lines := []string{"RECENT CONVERSATION CONTEXT:"}
	// Oldest of the recent turns first so the exchange reads in order
	for i := len(turns) - 1; i >= 0; i-- {
		lines = append(lines,
			"User: "+truncate(turns[i].UserMessage, TurnPreviewChars),
			"Coach: "+truncate(turns[i].AIResponse, TurnPreviewChars),
		)
	}
	return strings.Join(lines, "\n")
}
