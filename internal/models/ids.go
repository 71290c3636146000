// ABOUTME: Identifier generation shared by all coach records
// ABOUTME: Produces prefixed, time-ordered ids like routine_20260101_070000_1a2b3c4d
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// newID generates a unique identifier with the given record prefix
func newID(prefix string) string {
	return fmt.Sprintf("%s_%s_%s", prefix, time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}

// DateLayout is the calendar-date format used for activities and tasks
const DateLayout = "2006-01-02"

// DateOf returns the calendar date of t in DateLayout
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}
