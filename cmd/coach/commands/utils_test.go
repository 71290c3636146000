// ABOUTME: Tests for shared CLI utility functions
// ABOUTME: Covers truncation, relative time formatting and int validation

package commands

import (
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a long string", 10, "this is..."},
		{"abcdef", 3, "abc"},
		{"héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"seconds", now.Add(-30 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-2 * 24 * time.Hour), "2d ago"},
		{"older", now.Add(-10 * 24 * time.Hour), "2026-03-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatTime(tt.t, now); got != tt.want {
				t.Errorf("formatTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidatePositiveInt(t *testing.T) {
	if err := validatePositiveInt(1, "--days"); err != nil {
		t.Errorf("validatePositiveInt(1) error = %v", err)
	}
	for _, n := range []int{0, -3} {
		if err := validatePositiveInt(n, "--days"); err == nil {
			t.Errorf("validatePositiveInt(%d) should fail", n)
		}
	}
}
