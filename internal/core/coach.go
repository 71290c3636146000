// ABOUTME: Coach is the chat pipeline: classify, extract, compose, record
// ABOUTME: Handle always returns a well-formed reply; storage and completion errors are absorbed here
package core

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/daily-coach/internal/llm"
	"github.com/harper/daily-coach/internal/models"
	"github.com/harper/daily-coach/internal/storage"
)

// Reply is the outcome of one chat turn
type Reply struct {
	Response  string        `json:"response"`
	Intent    models.Intent `json:"intent"`
	Timestamp time.Time     `json:"timestamp"`
}

// CoachOptions tunes a Coach. Zero values use the package defaults.
type CoachOptions struct {
	LLMTimeout         time.Duration
	PromptContextChars int
	Classifier         Classifier
	Now                func() time.Time
}

type handler func(ctx context.Context, message string) string

// Coach wires the router, extractors, aggregator, composer and log together
type Coach struct {
	store      storage.Store
	classifier Classifier
	routines   *RoutineExtractor
	activities *ActivityExtractor
	tasks      *TaskExtractor
	aggregator *ContextAggregator
	composer   *ReplyComposer
	history    *ConversationLog
	logger     *log.Logger
	now        func() time.Time
	handlers   map[models.Intent]handler
}

// NewCoach creates a Coach over store. completer may be nil, in which case
// every open-ended reply is FallbackReply.
func NewCoach(store storage.Store, completer llm.Completer, opts CoachOptions, logger *log.Logger) *Coach {
	logger = orDiscard(logger)

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	classifier := opts.Classifier
	if classifier == nil {
		classifier = NewIntentRouter()
	}

	c := &Coach{
		store:      store,
		classifier: classifier,
		routines:   NewRoutineExtractor(store, logger),
		activities: NewActivityExtractor(store, logger),
		tasks:      NewTaskExtractor(store, logger),
		aggregator: NewContextAggregator(store, logger),
		composer:   NewReplyComposer(completer, opts.LLMTimeout, opts.PromptContextChars, logger),
		history:    NewConversationLog(store, logger),
		logger:     logger,
		now:        now,
	}
	c.activities.now = now
	c.tasks.now = now
	c.aggregator.now = now

	c.handlers = map[models.Intent]handler{
		models.IntentGreeting:      c.handleGreeting,
		models.IntentWake:          c.handleWake,
		models.IntentDayPlan:       c.handleDayPlan,
		models.IntentMeal:          c.handleMealReport,
		models.IntentExercise:      c.handleExerciseReport,
		models.IntentWeeklySummary: c.handleWeeklySummary,
		models.IntentRoutineList:   c.handleRoutineList,
		models.IntentTimeTask:      c.handleTimeTask,
		models.IntentFallback:      c.handleFallback,
	}
	return c
}

// Handle runs one chat turn. A blank message gets FallbackReply and is not
// recorded.
func (c *Coach) Handle(ctx context.Context, message string) Reply {
	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{Response: FallbackReply, Intent: models.IntentFallback, Timestamp: c.now()}
	}

	intent := c.classifier.Classify(message)
	h, ok := c.handlers[intent]
	if !ok {
		c.logger.Warn("no handler for intent, using fallback", "intent", intent)
		intent = models.IntentFallback
		h = c.handleFallback
	}

	start := time.Now()
	response := h(ctx, message)
	if strings.TrimSpace(response) == "" {
		response = FallbackReply
	}
	c.history.Record(message, response)

	c.logger.Info("chat handled", "intent", intent, "elapsed", time.Since(start))
	return Reply{Response: response, Intent: intent, Timestamp: c.now()}
}

// Digest returns the current context digest
func (c *Coach) Digest() string {
	return c.aggregator.Digest()
}

// Classify exposes the coach's classifier
func (c *Coach) Classify(message string) models.Intent {
	return c.classifier.Classify(message)
}

func (c *Coach) handleGreeting(context.Context, string) string {
	return c.composer.Greeting()
}

func (c *Coach) handleWake(ctx context.Context, message string) string {
	detected := c.routines.Detect(message)
	if len(detected) == 0 {
		return c.composer.AskForTime(RoutineTriggers[0].Name)
	}
	if saved := c.routines.Save(detected); len(saved) > 0 {
		return c.composer.RoutineConfirmation(saved)
	}
	return c.compose(ctx, message)
}

func (c *Coach) handleMealReport(ctx context.Context, message string) string {
	return c.handleActivityReport(ctx, message, models.CategoryMeal)
}

func (c *Coach) handleExerciseReport(ctx context.Context, message string) string {
	return c.handleActivityReport(ctx, message, models.CategoryExercise)
}

// handleActivityReport serves meal and exercise messages. A message that
// schedules a routine ("breakfast at 8am") is confirmed; anything else is a
// report that gets a composed reply and an activity log entry. The reply is
// only scanned for the reported category, so a suggestion like "maybe a walk
// later" is not logged.
func (c *Coach) handleActivityReport(ctx context.Context, message string, category models.ActivityCategory) string {
	if detected := c.routines.Detect(message); len(detected) > 0 {
		if saved := c.routines.Save(detected); len(saved) > 0 {
			return c.composer.RoutineConfirmation(saved)
		}
	}

	reply := c.compose(ctx, message)
	c.activities.ExtractAndSave(message, reply, category)
	return reply
}

func (c *Coach) handleDayPlan(context.Context, string) string {
	now := c.now()
	routines, err := c.store.ListActiveRoutines()
	if err != nil {
		c.logger.Error("day plan: failed to read routines", "err", err)
		return c.composer.Unavailable("plan")
	}
	tasks, err := c.store.TasksForDate(models.DateOf(now))
	if err != nil {
		c.logger.Error("day plan: failed to read tasks", "err", err)
		return c.composer.Unavailable("plan")
	}
	return c.composer.DayPlan(routines, tasks, now)
}

func (c *Coach) handleWeeklySummary(context.Context, string) string {
	since := models.DateOf(c.now().AddDate(0, 0, -ActivityWindowDays))
	activities, err := c.store.RecentActivities(since, 0)
	if err != nil {
		c.logger.Error("weekly summary: failed to read activities", "err", err)
		return c.composer.Unavailable("weekly summary")
	}
	return c.composer.WeeklySummary(activities)
}

func (c *Coach) handleRoutineList(context.Context, string) string {
	routines, err := c.store.ListActiveRoutines()
	if err != nil {
		c.logger.Error("routine list: failed to read routines", "err", err)
		return c.composer.Unavailable("routines")
	}
	return c.composer.RoutineList(routines)
}

func (c *Coach) handleTimeTask(ctx context.Context, message string) string {
	if task, ok := c.tasks.ExtractAndSave(message); ok {
		return c.composer.TaskConfirmation(task)
	}
	return c.compose(ctx, message)
}

// handleFallback composes a reply and still logs any activity categories
// the user's message mentions. The composed reply is not scanned here.
func (c *Coach) handleFallback(ctx context.Context, message string) string {
	reply := c.compose(ctx, message)
	c.activities.ExtractAndSave(message, "")
	return reply
}

func (c *Coach) compose(ctx context.Context, message string) string {
	return c.composer.Compose(ctx, c.aggregator.Digest(), message)
}
