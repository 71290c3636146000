// ABOUTME: Routine represents a recurring, time-anchored daily reminder
// ABOUTME: At most one active routine may exist per (name, time) pair
package models

import (
	"errors"
	"strings"
	"time"
)

// Routine is a named daily reminder with an encouragement message
type Routine struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Time      string    `json:"time" yaml:"time"` // "HH:MM", 24h
	Message   string    `json:"message" yaml:"message"`
	Active    bool      `json:"active" yaml:"active"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewRoutine creates an active Routine with validation
func NewRoutine(name, clock, message string) (*Routine, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("routine name cannot be empty")
	}
	if strings.TrimSpace(clock) == "" {
		return nil, errors.New("routine time cannot be empty")
	}
	return &Routine{
		ID:        newID("routine"),
		Name:      name,
		Time:      clock,
		Message:   message,
		Active:    true,
		CreatedAt: time.Now(),
	}, nil
}

// Key returns the (name, time) identity used for upserts
func (r *Routine) Key() string {
	return r.Name + "@" + r.Time
}
