// ABOUTME: Shared wiring for CLI commands: config, logger, storage and coach
// ABOUTME: Honors the global --db, --verbose and --quiet flags
package commands

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/harper/daily-coach/internal/config"
	"github.com/harper/daily-coach/internal/core"
	"github.com/harper/daily-coach/internal/llm"
	"github.com/harper/daily-coach/internal/storage/sqlite"
	"github.com/joho/godotenv"
)

// loadConfig reads .env (if present) and the environment
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	return config.Load()
}

// newLogger builds the CLI logger, adjusted by --verbose and --quiet
func newLogger(cfg *config.Config, w io.Writer) *log.Logger {
	logger := cfg.Logger(w)
	switch {
	case verbose:
		logger.SetLevel(log.DebugLevel)
	case quiet:
		logger.SetLevel(log.ErrorLevel)
	}
	return logger
}

// openStore opens the database named by --db, then COACH_DB_PATH, then the
// XDG default
func openStore(cfg *config.Config) (*sqlite.Storage, error) {
	path := dbPath
	if path == "" && cfg != nil {
		path = cfg.DBPath
	}
	if path == "" {
		return sqlite.NewStorage()
	}
	return sqlite.NewStorageWithPath(path)
}

// newCompleter builds the configured completion client. A client that
// cannot be built is logged and left nil so the coach falls back to its
// canned reply.
func newCompleter(cfg *config.Config, logger *log.Logger) llm.Completer {
	completer, err := llm.New(llm.OptionsFromConfig(cfg))
	if err != nil {
		logger.Warn("completion service unavailable", "provider", cfg.LLMProvider, "err", err)
		return nil
	}
	return completer
}

// newCoach wires a coach over store using cfg
func newCoach(cfg *config.Config, store *sqlite.Storage, completer llm.Completer, logger *log.Logger) *core.Coach {
	return core.NewCoach(store, completer, core.CoachOptions{
		LLMTimeout:         cfg.LLMTimeout,
		PromptContextChars: cfg.PromptContextChars,
	}, logger)
}

// useJSON reports whether output should be JSON
func useJSON() bool {
	return outputFormat == "json"
}
