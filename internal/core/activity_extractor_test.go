// ABOUTME: Tests for activity detection and logging
// ABOUTME: One activity per category per turn, descriptions from the user's words
package core

import (
	"reflect"
	"testing"

	"github.com/harper/daily-coach/internal/models"
)

func TestActivityExtractor_OatmealBreakfast(t *testing.T) {
	store := newTestStore(t)
	extractor := NewActivityExtractor(store, nil)
	extractor.now = fixedNow

	saved := extractor.ExtractAndSave("I had oatmeal for breakfast", "")
	if len(saved) != 1 {
		t.Fatalf("ExtractAndSave() saved %d activities, want 1", len(saved))
	}
	if saved[0].Category != models.CategoryMeal {
		t.Errorf("Category = %q, want meal", saved[0].Category)
	}
	if saved[0].Description != "oatmeal" {
		t.Errorf("Description = %q, want oatmeal", saved[0].Description)
	}
	if saved[0].Date != "2026-03-14" {
		t.Errorf("Date = %q, want 2026-03-14", saved[0].Date)
	}

	stored, err := store.RecentActivities("", 0)
	if err != nil {
		t.Fatalf("RecentActivities() error = %v", err)
	}
	if len(stored) != 1 {
		t.Errorf("store holds %d activities, want 1", len(stored))
	}
}

func TestDetectActivityCategories(t *testing.T) {
	tests := []struct {
		name  string
		user  string
		reply string
		want  []models.ActivityCategory
	}{
		{"meal", "ate a sandwich", "", []models.ActivityCategory{models.CategoryMeal}},
		{"exercise", "went to the gym", "", []models.ActivityCategory{models.CategoryExercise}},
		{"both in category order", "ran then had lunch", "", []models.ActivityCategory{models.CategoryMeal, models.CategoryExercise}},
		{"repeated triggers count once", "lunch, lunch and more lunch", "", []models.ActivityCategory{models.CategoryMeal}},
		{"reply scanned", "thanks", "Nice walk today!", []models.ActivityCategory{models.CategoryExercise}},
		{"mood and sleep", "slept badly and feeling low", "", []models.ActivityCategory{models.CategoryMood, models.CategorySleep}},
		{"reply mood ignored", "thanks", "How are you feeling? Get some sleep.", nil},
		{"nothing", "nice weather", "sure is", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectActivityCategories(tt.user, tt.reply)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DetectActivityCategories() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectActivityCategories_ReplyScope(t *testing.T) {
	reply := "Great choice! How are you feeling? Maybe a short walk later."

	got := DetectActivityCategories("I had oatmeal for breakfast", reply, models.CategoryMeal)
	if want := []models.ActivityCategory{models.CategoryMeal}; !reflect.DeepEqual(got, want) {
		t.Errorf("meal scope = %v, want %v", got, want)
	}

	got = DetectActivityCategories("thanks", reply, models.CategoryMood)
	if got != nil {
		t.Errorf("mood scope = %v, want nothing", got)
	}
}

func TestActivityExtractor_ReplyOnlyUsesPlaceholder(t *testing.T) {
	extractor := NewActivityExtractor(nil, nil)

	activities := extractor.Extract("I had oatmeal", "Nice, maybe a walk after?")
	if len(activities) != 2 {
		t.Fatalf("Extract() returned %d activities, want 2", len(activities))
	}
	if activities[0].Category != models.CategoryMeal || activities[0].Description != "oatmeal" {
		t.Errorf("first activity = %+v, want meal oatmeal", activities[0])
	}
	if activities[1].Category != models.CategoryExercise || activities[1].Description != "exercise activity mentioned" {
		t.Errorf("second activity = %+v, want exercise placeholder", activities[1])
	}
}

func TestActivityExtractor_Descriptions(t *testing.T) {
	tests := []struct {
		message  string
		category models.ActivityCategory
		want     string
	}{
		{"I had oatmeal for breakfast", models.CategoryMeal, "oatmeal"},
		{"I ate a sandwich at 1pm", models.CategoryMeal, "a sandwich"},
		{"Workout!", models.CategoryExercise, "exercise activity mentioned"},
		{"lunch", models.CategoryMeal, "meal mentioned"},
		{"just walked 3 miles with Sam.", models.CategoryExercise, "3 miles with Sam"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := describeActivity(tt.message, tt.category); got != tt.want {
				t.Errorf("describeActivity(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestActivityExtractor_OnePerCategory(t *testing.T) {
	extractor := NewActivityExtractor(nil, nil)

	activities := extractor.Extract("had a run, then a walk, then breakfast", "great run!")
	if len(activities) != 2 {
		t.Fatalf("Extract() returned %d activities, want 2", len(activities))
	}
	for _, a := range activities {
		if a.Description == "" {
			t.Errorf("%s activity has empty description", a.Category)
		}
	}
}

func TestActivityExtractor_WriteFailure(t *testing.T) {
	extractor := NewActivityExtractor(brokenStore{}, nil)

	if saved := extractor.ExtractAndSave("I had oatmeal", ""); len(saved) != 0 {
		t.Errorf("ExtractAndSave() = %v, want nothing saved", saved)
	}
}

func TestActivityExtractor_NothingDetected(t *testing.T) {
	store := newTestStore(t)
	extractor := NewActivityExtractor(store, nil)

	if saved := extractor.ExtractAndSave("what a lovely day", "It is!"); len(saved) != 0 {
		t.Errorf("ExtractAndSave() = %v, want nothing", saved)
	}
	stored, _ := store.RecentActivities("", 0)
	if len(stored) != 0 {
		t.Errorf("store holds %d activities, want 0", len(stored))
	}
}
