// ABOUTME: TimeExpressionParser finds a time of day in free text
// ABOUTME: Normalizes "7am", "at 7:30pm", "around 14:00" to 24-hour "HH:MM"
package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// timePattern matches [at|by|around] <hour>[:<minute>][am|pm]. A match only
// counts as a time when it carries at least one anchor: the prefix word,
// a minute part, or a meridiem marker. "5 miles" is not a time.
var timePattern = regexp.MustCompile(`(?i)\b(?:(at|by|around)\s+)?(\d{1,2})(?::(\d{2}))?(?:\s*(am|pm))?\b`)

// TimeMatch is one time expression found in a message
type TimeMatch struct {
	Hour   int
	Minute int
	// Start and End are byte offsets of the whole phrase, prefix included
	Start int
	End   int
	Text  string
}

// Clock renders the match as "HH:MM". Hours above 23 are kept as written.
func (m TimeMatch) Clock() string {
	return fmt.Sprintf("%02d:%02d", m.Hour, m.Minute)
}

// FindAllTimes returns every time expression in text, in order
func FindAllTimes(text string) []TimeMatch {
	var matches []TimeMatch
	for _, idx := range timePattern.FindAllStringSubmatchIndex(text, -1) {
		if m, ok := toTimeMatch(text, idx); ok {
			matches = append(matches, m)
		}
	}
	return matches
}

// FindTime returns the first time expression in text
func FindTime(text string) (TimeMatch, bool) {
	for _, idx := range timePattern.FindAllStringSubmatchIndex(text, -1) {
		if m, ok := toTimeMatch(text, idx); ok {
			return m, true
		}
	}
	return TimeMatch{}, false
}

// ParseTime returns the first time in text as "HH:MM"
func ParseTime(text string) (string, bool) {
	m, ok := FindTime(text)
	if !ok {
		return "", false
	}
	return m.Clock(), true
}

func toTimeMatch(text string, idx []int) (TimeMatch, bool) {
	group := func(n int) string {
		if idx[2*n] < 0 {
			return ""
		}
		return text[idx[2*n]:idx[2*n+1]]
	}

	prefix, hourText, minuteText, meridiem := group(1), group(2), group(3), strings.ToLower(group(4))
	if prefix == "" && minuteText == "" && meridiem == "" {
		return TimeMatch{}, false
	}

	hour, err := strconv.Atoi(hourText)
	if err != nil {
		return TimeMatch{}, false
	}
	minute := 0
	if minuteText != "" {
		if minute, err = strconv.Atoi(minuteText); err != nil {
			return TimeMatch{}, false
		}
	}

	switch {
	case meridiem == "pm" && hour != 12:
		hour += 12
	case meridiem == "am" && hour == 12:
		hour = 0
	}

	return TimeMatch{
		Hour:   hour,
		Minute: minute,
		Start:  idx[0],
		End:    idx[1],
		Text:   text[idx[0]:idx[1]],
	}, true
}
