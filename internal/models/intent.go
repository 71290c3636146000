// ABOUTME: Intent categories produced by the intent router
// ABOUTME: The declaration order below is the router's precedence order
package models

// Intent is the handling category assigned to an inbound message
type Intent string

const (
	// IntentGreeting - short hello; fixed reply, no writes
	IntentGreeting Intent = "greeting"

	// IntentWake - wake-up or alarm request → Wake Up routine
	IntentWake Intent = "wake"

	// IntentDayPlan - "plan my day" → routines and today's tasks
	IntentDayPlan Intent = "day_plan"

	// IntentMeal - meal report or breakfast routine
	IntentMeal Intent = "meal_log"

	// IntentExercise - exercise report or walk routine
	IntentExercise Intent = "exercise_log"

	// IntentWeeklySummary - summary of the last seven days
	IntentWeeklySummary Intent = "weekly_summary"

	// IntentRoutineList - list the active routines
	IntentRoutineList Intent = "routine_list"

	// IntentTimeTask - any other message carrying a time → one-off task
	IntentTimeTask Intent = "time_task"

	// IntentFallback - open-ended; delegated to the completion service
	IntentFallback Intent = "fallback"
)

// Intents lists every intent in precedence order
var Intents = []Intent{
	IntentGreeting,
	IntentWake,
	IntentDayPlan,
	IntentMeal,
	IntentExercise,
	IntentWeeklySummary,
	IntentRoutineList,
	IntentTimeTask,
	IntentFallback,
}

// IsValid reports whether i is a known intent
func (i Intent) IsValid() bool {
	for _, known := range Intents {
		if i == known {
			return true
		}
	}
	return false
}
