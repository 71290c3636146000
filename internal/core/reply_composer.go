// ABOUTME: ReplyComposer builds the final reply text for every intent
// ABOUTME: Deterministic replies come from stored data; open-ended ones go to the completer with a fixed fallback
package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/daily-coach/internal/llm"
	"github.com/harper/daily-coach/internal/models"
)

const (
	// GreetingReply answers short hellos without calling the completer
	GreetingReply = "Hi! I'm your daily coach. How can I help you today? Want to plan your day or set up some routines?"
	// FallbackReply is returned whenever the completion service fails
	FallbackReply = "Quick response mode: I'm here to help! What do you need?"
	// RoleDescription opens every completion prompt
	RoleDescription = "You are a personal daily coach. Be brief and encouraging."

	// DefaultLLMTimeout bounds a completion when none is configured
	DefaultLLMTimeout = 15 * time.Second
	// DefaultPromptContextChars bounds the digest placed in a prompt
	DefaultPromptContextChars = 600
)

// ReplyComposer renders replies
type ReplyComposer struct {
	completer    llm.Completer
	timeout      time.Duration
	contextChars int
	logger       *log.Logger
}

// NewReplyComposer creates a composer. A nil completer makes every
// open-ended reply the fallback.
func NewReplyComposer(completer llm.Completer, timeout time.Duration, contextChars int, logger *log.Logger) *ReplyComposer {
	if timeout <= 0 {
		timeout = DefaultLLMTimeout
	}
	if contextChars <= 0 {
		contextChars = DefaultPromptContextChars
	}
	return &ReplyComposer{
		completer:    completer,
		timeout:      timeout,
		contextChars: contextChars,
		logger:       orDiscard(logger),
	}
}

// Greeting returns the fixed greeting
func (r *ReplyComposer) Greeting() string {
	return GreetingReply
}

// Prompt assembles the completion prompt for message
func (r *ReplyComposer) Prompt(digest, message string) string {
	return fmt.Sprintf("%s\n\nContext:\n%s\n\nUser: %q\n\nRespond briefly and helpfully (under 80 words):",
		RoleDescription, truncate(digest, r.contextChars), message)
}

// Compose asks the completer for a reply grounded on digest. Every failure,
// including an empty answer or the timeout, yields FallbackReply.
func (r *ReplyComposer) Compose(ctx context.Context, digest, message string) string {
	if r.completer == nil {
		return FallbackReply
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	text, err := r.completer.Complete(ctx, r.Prompt(digest, message))
	if err != nil {
		r.logger.Warn("completion failed, using fallback", "provider", r.completer.Name(), "elapsed", time.Since(start), "err", err)
		return FallbackReply
	}
	text = strings.TrimSpace(text)
	if text == "" {
		r.logger.Warn("empty completion, using fallback", "provider", r.completer.Name())
		return FallbackReply
	}
	r.logger.Debug("completion received", "provider", r.completer.Name(), "elapsed", time.Since(start))
	return text
}

// RoutineConfirmation acknowledges saved routines
func (r *ReplyComposer) RoutineConfirmation(saved []SavedRoutine) string {
	parts := []string{"Got it!"}
	for _, s := range saved {
		if s.Created {
			parts = append(parts, fmt.Sprintf("%s is set for %s.", s.Routine.Name, s.Routine.Time))
		} else {
			parts = append(parts, fmt.Sprintf("%s at %s is already on your schedule.", s.Routine.Name, s.Routine.Time))
		}
	}
	if len(saved) > 0 {
		parts = append(parts, saved[0].Routine.Message)
	}
	return strings.Join(parts, " ")
}

// AskForTime asks for the missing time of a routine
func (r *ReplyComposer) AskForTime(routineName string) string {
	return fmt.Sprintf("What time should I set for %s? Try something like \"wake me up at 7am\".", routineName)
}

// TaskConfirmation acknowledges a saved task
func (r *ReplyComposer) TaskConfirmation(task *models.Task) string {
	return fmt.Sprintf("Got it! I've added %q at %s today.", task.Name, task.Time)
}

// Unavailable explains that stored data could not be read
func (r *ReplyComposer) Unavailable(what string) string {
	return fmt.Sprintf("I couldn't load your %s right now. Please try again in a moment.", what)
}

// RoutineList lists active routines by time
func (r *ReplyComposer) RoutineList(routines []models.Routine) string {
	if len(routines) == 0 {
		return "You don't have any routines yet. Try \"wake me up at 7am\" or \"breakfast at 8am\"."
	}

	lines := []string{"Your active routines:"}
	for _, rt := range routines {
		lines = append(lines, fmt.Sprintf("• %s - %s: %s", rt.Time, rt.Name, rt.Message))
	}
	return strings.Join(lines, "\n")
}

// DayPlan merges routines and the day's tasks into one schedule
func (r *ReplyComposer) DayPlan(routines []models.Routine, tasks []models.Task, day time.Time) string {
	if len(routines) == 0 && len(tasks) == 0 {
		return "Your day is wide open! Tell me things like \"wake me up at 7am\" or \"meeting with Dana at 2pm\" and I'll build your plan."
	}

	type entry struct {
		clock string
		line  string
	}
	var entries []entry
	for _, rt := range routines {
		entries = append(entries, entry{rt.Time, fmt.Sprintf("• %s - %s (routine)", rt.Time, rt.Name)})
	}
	for _, t := range tasks {
		status := ""
		if t.IsDone {
			status = " ✓"
		}
		entries = append(entries, entry{t.Time, fmt.Sprintf("• %s - %s%s", t.Time, t.Name, status)})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].clock < entries[j].clock })

	lines := []string{fmt.Sprintf("Here's your plan for %s:", day.Format("Monday, January 2"))}
	for _, e := range entries {
		lines = append(lines, e.line)
	}
	return strings.Join(lines, "\n")
}

// WeeklySummary counts the week's activities per category
func (r *ReplyComposer) WeeklySummary(activities []models.Activity) string {
	if len(activities) == 0 {
		return "No activities logged in the last 7 days yet. Tell me about your meals or workouts and I'll keep track!"
	}

	counts := make(map[models.ActivityCategory]int)
	for _, a := range activities {
		counts[a.Category]++
	}

	var parts []string
	for _, category := range models.ActivityCategories {
		if n := counts[category]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", category, n))
		}
	}

	noun := "activities"
	if len(activities) == 1 {
		noun = "activity"
	}
	latest := activities[0]
	return fmt.Sprintf("Here's your week: %d %s logged (%s). Most recent: %s (%s) on %s. Keep it up!",
		len(activities), noun, strings.Join(parts, ", "), latest.Description, latest.Category, latest.Date)
}
