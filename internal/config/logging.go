// ABOUTME: Logger construction for every coach binary
// ABOUTME: Parses level names and builds charmbracelet/log loggers in text or json form
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// ParseLogLevel converts a level name to a log.Level. The empty string
// maps to info.
func ParseLogLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return log.InfoLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("unknown log level %q (valid: debug, info, warn, error)", s)
	}
}

// NewLogger builds a logger writing to w at the configured level and format
func NewLogger(w io.Writer, level, format string) *log.Logger {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	formatter := log.TextFormatter
	if strings.EqualFold(format, "json") {
		formatter = log.JSONFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "coach",
		Formatter:       formatter,
	})
}

// Logger builds the logger described by c
func (c *Config) Logger(w io.Writer) *log.Logger {
	return NewLogger(w, c.LogLevel, c.LogFormat)
}
