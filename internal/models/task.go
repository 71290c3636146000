// ABOUTME: Task is a one-off, dated, time-anchored item
// ABOUTME: Unlike routines, tasks are never deduplicated
package models

import (
	"errors"
	"strings"
	"time"
)

// Task is a single scheduled item for a calendar date
type Task struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Time      string    `json:"time" yaml:"time"` // "HH:MM", 24h
	Date      string    `json:"date" yaml:"date"` // YYYY-MM-DD
	IsDone    bool      `json:"is_done" yaml:"is_done"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewTask creates an open Task for the calendar date of at
func NewTask(name, clock string, at time.Time) (*Task, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("task name cannot be empty")
	}
	if strings.TrimSpace(clock) == "" {
		return nil, errors.New("task time cannot be empty")
	}
	return &Task{
		ID:        newID("task"),
		Name:      name,
		Time:      clock,
		Date:      DateOf(at),
		CreatedAt: at,
	}, nil
}
