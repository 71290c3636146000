// ABOUTME: Labelled chat scenarios for the extraction benchmark
// ABOUTME: Each scenario lists turns with their expected intent and the records they should leave behind

package extraction

import "github.com/harper/daily-coach/internal/models"

// Scenario is one scripted conversation with its ground truth
type Scenario struct {
	ID          string
	Name        string
	Description string
	Turns       []Turn
	GroundTruth GroundTruth
}

// Turn is a single user message and the intent it should route to
type Turn struct {
	Message    string
	WantIntent models.Intent
}

// GroundTruth defines the expected state after the last turn
type GroundTruth struct {
	// Routine keys ("Name@HH:MM") that must be active, and nothing else
	Routines []string

	// Tasks that must exist for today, and nothing else
	Tasks []ExpectedTask

	// Activity counts per category, and nothing else
	Activities map[models.ActivityCategory]int

	// Strings that must / must not appear in the final reply
	ExpectedInResponse  []string
	ForbiddenInResponse []string

	// Strings the context digest must contain after the last turn
	ExpectedContextItems []string
}

// ExpectedTask matches a stored task by name fragment and time
type ExpectedTask struct {
	NameContains string
	Time         string
}

// GetWakeUpScenario checks routine scheduling and idempotence
func GetWakeUpScenario() Scenario {
	return Scenario{
		ID:          "wake",
		Name:        "Wake-up routine",
		Description: "Greets, schedules a wake-up time twice and lists routines; only one routine may exist",
		Turns: []Turn{
			{Message: "hello", WantIntent: models.IntentGreeting},
			{Message: "I wake up at 7am", WantIntent: models.IntentWake},
			{Message: "I wake up at 7am", WantIntent: models.IntentWake},
			{Message: "what are my routines", WantIntent: models.IntentRoutineList},
		},
		GroundTruth: GroundTruth{
			Routines:             []string{"Wake Up@07:00"},
			ExpectedInResponse:   []string{"Wake Up", "07:00"},
			ForbiddenInResponse:  []string{"19:00"},
			ExpectedContextItems: []string{"CURRENT ROUTINES", "Wake Up"},
		},
	}
}

// GetTaskScenario checks task capture and the day plan
func GetTaskScenario() Scenario {
	return Scenario{
		ID:          "task",
		Name:        "Meeting with Dana",
		Description: "Adds a timed task and asks for the day plan",
		Turns: []Turn{
			{Message: "Meeting with Dana at 2pm", WantIntent: models.IntentTimeTask},
			{Message: "plan my day", WantIntent: models.IntentDayPlan},
		},
		GroundTruth: GroundTruth{
			Tasks:                []ExpectedTask{{NameContains: "Dana", Time: "14:00"}},
			ExpectedInResponse:   []string{"14:00", "Dana"},
			ForbiddenInResponse:  []string{"02:00"},
			ExpectedContextItems: []string{"TODAY'S TASKS", "Dana"},
		},
	}
}

// GetActivityScenario checks activity logging and the weekly summary
func GetActivityScenario() Scenario {
	return Scenario{
		ID:          "activity",
		Name:        "Meals and exercise",
		Description: "Reports a meal and a run, then asks for the weekly summary",
		Turns: []Turn{
			{Message: "I ate oatmeal for breakfast", WantIntent: models.IntentMeal},
			{Message: "went for a run this morning", WantIntent: models.IntentExercise},
			{Message: "how was my week", WantIntent: models.IntentWeeklySummary},
		},
		GroundTruth: GroundTruth{
			Activities: map[models.ActivityCategory]int{
				models.CategoryMeal:     1,
				models.CategoryExercise: 1,
			},
			ExpectedInResponse:   []string{"2 activities", "meal: 1", "exercise: 1"},
			ExpectedContextItems: []string{"oatmeal"},
		},
	}
}

// GetMixedScenario checks that routines, tasks and activities stay apart
func GetMixedScenario() Scenario {
	return Scenario{
		ID:          "mixed",
		Name:        "Mixed day",
		Description: "A breakfast routine, a task and a mood check-in in one conversation",
		Turns: []Turn{
			{Message: "breakfast at 8am", WantIntent: models.IntentMeal},
			{Message: "Call the dentist at 3:30pm", WantIntent: models.IntentTimeTask},
			{Message: "I feel stressed", WantIntent: models.IntentFallback},
			{Message: "plan my day", WantIntent: models.IntentDayPlan},
		},
		GroundTruth: GroundTruth{
			Routines: []string{"Breakfast@08:00"},
			Tasks:    []ExpectedTask{{NameContains: "dentist", Time: "15:30"}},
			Activities: map[models.ActivityCategory]int{
				models.CategoryMood: 1,
			},
			ExpectedInResponse:   []string{"08:00", "Breakfast", "15:30"},
			ExpectedContextItems: []string{"Breakfast", "dentist", "mood"},
		},
	}
}

// AllScenarios returns every scenario in run order
func AllScenarios() []Scenario {
	return []Scenario{
		GetWakeUpScenario(),
		GetTaskScenario(),
		GetActivityScenario(),
		GetMixedScenario(),
	}
}
