// ABOUTME: Tests for activity storage operations
// ABOUTME: Verifies date-window filtering and newest-first ordering
package sqlite

import (
	"testing"
	"time"

	"github.com/harper/daily-coach/internal/models"
)

func TestActivityStore_AddAndRecent(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewActivityStore(db)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	entries := []struct {
		category models.ActivityCategory
		desc     string
		at       time.Time
	}{
		{models.CategoryMeal, "oatmeal", now.AddDate(0, 0, -10)},
		{models.CategoryExercise, "run", now.AddDate(0, 0, -3)},
		{models.CategoryMeal, "salad", now.Add(-time.Hour)},
	}
	for _, e := range entries {
		a, err := models.NewActivity(e.category, e.desc, e.at)
		if err != nil {
			t.Fatalf("NewActivity() error = %v", err)
		}
		if err := store.Add(a); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	since := models.DateOf(now.AddDate(0, 0, -7))
	recent, err := store.Recent(since, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Recent() returned %d activities, want 2", len(recent))
	}
	if recent[0].Description != "salad" {
		t.Errorf("recent[0] = %q, want salad (newest first)", recent[0].Description)
	}
	if recent[1].Category != models.CategoryExercise {
		t.Errorf("recent[1].Category = %q, want exercise", recent[1].Category)
	}

	all, err := store.Recent("", 0)
	if err != nil {
		t.Fatalf("Recent(all) error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Recent(all) returned %d, want 3", len(all))
	}

	limited, _ := store.Recent("", 1)
	if len(limited) != 1 {
		t.Errorf("Recent(limit 1) returned %d, want 1", len(limited))
	}
}
