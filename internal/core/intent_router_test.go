// ABOUTME: Tests for the intent route table
// ABOUTME: Covers each intent and the precedence between overlapping routes
package core

import (
	"testing"

	"github.com/harper/daily-coach/internal/models"
)

func TestIntentRouter_Classify(t *testing.T) {
	router := NewIntentRouter()

	tests := []struct {
		text string
		want models.Intent
	}{
		{"hi", models.IntentGreeting},
		{"Hello there!", models.IntentGreeting},
		{"hey coach", models.IntentGreeting},
		{"Good morning", models.IntentGreeting},
		{"good evening coach", models.IntentGreeting},
		{"wake me up at 7am", models.IntentWake},
		{"set an alarm for 6:30", models.IntentWake},
		{"Good morning, wake me at 6am tomorrow", models.IntentWake},
		{"help me plan my day", models.IntentDayPlan},
		{"what's on the agenda", models.IntentDayPlan},
		{"I had oatmeal for breakfast", models.IntentMeal},
		{"breakfast at 8am", models.IntentMeal},
		{"ate a salad for lunch", models.IntentMeal},
		{"went for a run", models.IntentExercise},
		{"walk at 7am every day", models.IntentExercise},
		{"gym session done", models.IntentExercise},
		{"how did this week go", models.IntentWeeklySummary},
		{"give me a summary", models.IntentWeeklySummary},
		{"show my routines", models.IntentRoutineList},
		{"what's my schedule", models.IntentRoutineList},
		{"Meeting with Dana at 2pm", models.IntentTimeTask},
		{"I had a meeting at 2pm", models.IntentTimeTask},
		{"dentist by 10:30", models.IntentTimeTask},
		{"I feel a bit stressed", models.IntentFallback},
		{"tell me a joke", models.IntentFallback},
		{"I ran 5 miles", models.IntentExercise},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := router.Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestIntentRouter_Precedence(t *testing.T) {
	router := NewIntentRouter()

	// Each message matches more than one route; the earlier route wins
	tests := []struct {
		text string
		want models.Intent
	}{
		{"wake me for breakfast at 7am", models.IntentWake},
		{"plan my day around lunch", models.IntentDayPlan},
		{"lunch then a walk", models.IntentMeal},
		{"weekly run summary", models.IntentExercise},
		{"summary of my routines", models.IntentWeeklySummary},
		{"my routine starts at 6am", models.IntentRoutineList},
	}

	for _, tt := range tests {
		if got := router.Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestIntentRouter_RouteOrder(t *testing.T) {
	routes := NewIntentRouter().Routes()

	// Fallback has no route; it is what Classify returns when nothing matches
	want := models.Intents[:len(models.Intents)-1]
	if len(routes) != len(want) {
		t.Fatalf("Routes() has %d entries, want %d", len(routes), len(want))
	}
	for i, route := range routes {
		if route.Intent != want[i] {
			t.Errorf("route %d = %q, want %q", i, route.Intent, want[i])
		}
	}

	routes[0] = Route{Intent: models.IntentFallback}
	if NewIntentRouter().Routes()[0].Intent != models.IntentGreeting {
		t.Error("Routes() should return a copy")
	}
}

func TestIntentRouter_CustomRoutes(t *testing.T) {
	router := NewIntentRouterWithRoutes([]Route{
		{Intent: models.IntentWeeklySummary, Match: func(text string) bool { return text == "recap" }},
	})

	if got := router.Classify("recap"); got != models.IntentWeeklySummary {
		t.Errorf("Classify(recap) = %q, want weekly_summary", got)
	}
	if got := router.Classify("hi"); got != models.IntentFallback {
		t.Errorf("Classify(hi) = %q, want fallback", got)
	}
}
