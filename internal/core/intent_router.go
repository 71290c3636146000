// ABOUTME: IntentRouter classifies a message with an ordered first-match-wins route table
// ABOUTME: Specific intents precede the generic time-task route, which precedes fallback
package core

import (
	"github.com/harper/daily-coach/internal/models"
)

// Classifier assigns exactly one intent to a message
type Classifier interface {
	Classify(text string) models.Intent
}

// Route pairs an intent with the predicate that selects it
type Route struct {
	Intent models.Intent
	Match  func(text string) bool
}

var (
	greetingWords = wordSet("hi", "hello", "hey", "hiya", "howdy", "yo")
	wakeWords     = wordSet("wake", "waking", "woke", "alarm")
	mealWords     = wordSet("ate", "eaten", "breakfast", "brunch", "lunch", "dinner", "meal", "meals", "snack")
	exerciseWords = activityVocab[models.CategoryExercise]
	routineWords  = wordSet("routine", "routines", "reminders")

	greetingPhrases = []string{"good morning", "good afternoon", "good evening"}
	dayPlanPhrases  = []string{"plan my day", "my day", "today's plan", "plan for today", "schedule for today", "agenda"}
	weeklyPhrases   = []string{"weekly", "this week", "my week", "last week", "summary", "progress"}
	routinePhrases  = []string{"my schedule"}
)

// DefaultRoutes returns the route table in precedence order
func DefaultRoutes() []Route {
	return []Route{
		{Intent: models.IntentGreeting, Match: isGreeting},
		{Intent: models.IntentWake, Match: func(text string) bool { return hasAnyToken(text, wakeWords) }},
		{Intent: models.IntentDayPlan, Match: func(text string) bool { return anyPhrase(text, dayPlanPhrases) }},
		{Intent: models.IntentMeal, Match: func(text string) bool { return hasAnyToken(text, mealWords) }},
		{Intent: models.IntentExercise, Match: func(text string) bool { return hasAnyToken(text, exerciseWords) }},
		{Intent: models.IntentWeeklySummary, Match: func(text string) bool { return anyPhrase(text, weeklyPhrases) }},
		{Intent: models.IntentRoutineList, Match: func(text string) bool {
			return hasAnyToken(text, routineWords) || anyPhrase(text, routinePhrases)
		}},
		{Intent: models.IntentTimeTask, Match: func(text string) bool {
			_, ok := FindTime(text)
			return ok
		}},
	}
}

// IntentRouter is the keyword Classifier
type IntentRouter struct {
	routes []Route
}

var _ Classifier = (*IntentRouter)(nil)

// NewIntentRouter creates a router over DefaultRoutes
func NewIntentRouter() *IntentRouter {
	return &IntentRouter{routes: DefaultRoutes()}
}

// NewIntentRouterWithRoutes creates a router over a custom route table
func NewIntentRouterWithRoutes(routes []Route) *IntentRouter {
	return &IntentRouter{routes: append([]Route(nil), routes...)}
}

// Classify returns the intent of the first matching route, or fallback
func (r *IntentRouter) Classify(text string) models.Intent {
	for _, route := range r.routes {
		if route.Match(text) {
			return route.Intent
		}
	}
	return models.IntentFallback
}

// Routes returns a copy of the route table
func (r *IntentRouter) Routes() []Route {
	return append([]Route(nil), r.routes...)
}

// isGreeting accepts short hellos: up to three words starting with a
// greeting word, or a bare "good morning" style salutation
func isGreeting(text string) bool {
	words := tokens(text)
	if len(words) == 0 {
		return false
	}
	if len(words) <= 3 && greetingWords[words[0]] {
		return true
	}
	if len(words) <= 3 {
		for _, phrase := range greetingPhrases {
			if containsPhrase(text, phrase) && words[0] == "good" {
				return true
			}
		}
	}
	return false
}

func anyPhrase(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if containsPhrase(text, phrase) {
			return true
		}
	}
	return false
}
