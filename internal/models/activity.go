// ABOUTME: Activity is an append-only log entry of something the user did
// ABOUTME: Defines the closed set of activity categories
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ActivityCategory classifies a logged activity
type ActivityCategory string

const (
	CategoryMeal     ActivityCategory = "meal"
	CategoryExercise ActivityCategory = "exercise"
	CategoryMood     ActivityCategory = "mood"
	CategorySleep    ActivityCategory = "sleep"
	CategoryWork     ActivityCategory = "work"
	CategoryHealth   ActivityCategory = "health"
)

// ActivityCategories lists every category in detection order
var ActivityCategories = []ActivityCategory{
	CategoryMeal,
	CategoryExercise,
	CategoryMood,
	CategorySleep,
	CategoryWork,
	CategoryHealth,
}

// IsValid reports whether c is one of the known categories
func (c ActivityCategory) IsValid() bool {
	for _, known := range ActivityCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Activity is a single logged activity
type Activity struct {
	ID          string           `json:"id" yaml:"id"`
	Date        string           `json:"date" yaml:"date"` // YYYY-MM-DD
	Category    ActivityCategory `json:"category" yaml:"category"`
	Description string           `json:"description" yaml:"description"`
	Timestamp   time.Time        `json:"timestamp" yaml:"timestamp"`
}

// NewActivity creates an Activity stamped at the given time
func NewActivity(category ActivityCategory, description string, at time.Time) (*Activity, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid activity category %q", category)
	}
	if strings.TrimSpace(description) == "" {
		return nil, errors.New("activity description cannot be empty")
	}
	return &Activity{
		ID:          newID("activity"),
		Date:        DateOf(at),
		Category:    category,
		Description: description,
		Timestamp:   at,
	}, nil
}
