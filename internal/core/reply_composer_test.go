// ABOUTME: Tests for reply composition
// ABOUTME: Deterministic renderings and the fallback on every completion failure
package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harper/daily-coach/internal/llm"
	"github.com/harper/daily-coach/internal/models"
)

func TestReplyComposer_Compose(t *testing.T) {
	tests := []struct {
		name      string
		completer llm.Completer
		want      string
	}{
		{
			name: "success",
			completer: llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
				return "  Nice work today!  ", nil
			}),
			want: "Nice work today!",
		},
		{
			name: "error",
			completer: llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
				return "", errors.New("connection refused")
			}),
			want: FallbackReply,
		},
		{
			name: "empty",
			completer: llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
				return "   ", nil
			}),
			want: FallbackReply,
		},
		{
			name:      "no completer",
			completer: nil,
			want:      FallbackReply,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			composer := NewReplyComposer(tt.completer, time.Second, 0, nil)
			if got := composer.Compose(context.Background(), "digest", "hello"); got != tt.want {
				t.Errorf("Compose() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReplyComposer_ComposeTimeout(t *testing.T) {
	slow := llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(5 * time.Second):
			return "too late", nil
		}
	})
	composer := NewReplyComposer(slow, 20*time.Millisecond, 0, nil)

	start := time.Now()
	got := composer.Compose(context.Background(), "digest", "tell me something")
	if got != FallbackReply {
		t.Errorf("Compose() = %q, want fallback", got)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Compose() took %v, should stop at the timeout", elapsed)
	}
}

func TestReplyComposer_Prompt(t *testing.T) {
	composer := NewReplyComposer(nil, time.Second, 10, nil)

	prompt := composer.Prompt("0123456789abcdef", "How am I doing?")

	if !strings.HasPrefix(prompt, RoleDescription) {
		t.Errorf("prompt should open with the role description:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Context:\n0123456789...\n") {
		t.Errorf("prompt should carry the truncated digest:\n%s", prompt)
	}
	if !strings.Contains(prompt, `User: "How am I doing?"`) {
		t.Errorf("prompt should carry the raw message:\n%s", prompt)
	}
	if strings.Contains(prompt, "abcdef") {
		t.Errorf("digest beyond the budget leaked into the prompt:\n%s", prompt)
	}
}

func TestReplyComposer_RoutineConfirmation(t *testing.T) {
	composer := NewReplyComposer(nil, 0, 0, nil)
	wake := models.Routine{Name: "Wake Up", Time: "07:00", Message: "Rise and shine!"}

	created := composer.RoutineConfirmation([]SavedRoutine{{Routine: wake, Created: true}})
	if created != "Got it! Wake Up is set for 07:00. Rise and shine!" {
		t.Errorf("created confirmation = %q", created)
	}

	existing := composer.RoutineConfirmation([]SavedRoutine{{Routine: wake}})
	if !strings.Contains(existing, "Wake Up at 07:00 is already on your schedule.") {
		t.Errorf("existing confirmation = %q", existing)
	}
}

func TestReplyComposer_TaskConfirmation(t *testing.T) {
	composer := NewReplyComposer(nil, 0, 0, nil)
	task := &models.Task{Name: "Meeting with Dana", Time: "14:00"}

	want := `Got it! I've added "Meeting with Dana" at 14:00 today.`
	if got := composer.TaskConfirmation(task); got != want {
		t.Errorf("TaskConfirmation() = %q, want %q", got, want)
	}
}

func TestReplyComposer_DayPlan(t *testing.T) {
	composer := NewReplyComposer(nil, 0, 0, nil)

	empty := composer.DayPlan(nil, nil, testNow)
	if !strings.Contains(empty, "wide open") {
		t.Errorf("empty DayPlan() = %q", empty)
	}

	plan := composer.DayPlan(
		[]models.Routine{{Name: "Wake Up", Time: "07:00"}, {Name: "Breakfast", Time: "08:00"}},
		[]models.Task{{Name: "Meeting with Dana", Time: "14:00"}, {Name: "Standup", Time: "07:30", IsDone: true}},
		testNow,
	)
	want := "Here's your plan for Saturday, March 14:\n" +
		"• 07:00 - Wake Up (routine)\n" +
		"• 07:30 - Standup ✓\n" +
		"• 08:00 - Breakfast (routine)\n" +
		"• 14:00 - Meeting with Dana"
	if plan != want {
		t.Errorf("DayPlan() = %q, want %q", plan, want)
	}
}

func TestReplyComposer_WeeklySummary(t *testing.T) {
	composer := NewReplyComposer(nil, 0, 0, nil)

	if got := composer.WeeklySummary(nil); !strings.Contains(got, "No activities") {
		t.Errorf("empty WeeklySummary() = %q", got)
	}

	got := composer.WeeklySummary([]models.Activity{
		{Category: models.CategoryExercise, Description: "5k run", Date: "2026-03-14"},
		{Category: models.CategoryMeal, Description: "oatmeal", Date: "2026-03-13"},
		{Category: models.CategoryMeal, Description: "salad", Date: "2026-03-12"},
	})
	for _, want := range []string{"3 activities", "meal: 2, exercise: 1", "5k run (exercise) on 2026-03-14"} {
		if !strings.Contains(got, want) {
			t.Errorf("WeeklySummary() = %q, missing %q", got, want)
		}
	}
}

func TestReplyComposer_RoutineList(t *testing.T) {
	composer := NewReplyComposer(nil, 0, 0, nil)

	if got := composer.RoutineList(nil); !strings.Contains(got, "don't have any routines") {
		t.Errorf("empty RoutineList() = %q", got)
	}

	got := composer.RoutineList([]models.Routine{{Name: "Wake Up", Time: "07:00", Message: "Good morning!"}})
	if got != "Your active routines:\n• 07:00 - Wake Up: Good morning!" {
		t.Errorf("RoutineList() = %q", got)
	}
}
