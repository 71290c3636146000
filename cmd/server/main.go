// ABOUTME: Main entry point for the standalone coach HTTP server
// ABOUTME: Loads config, opens storage, wires the coach and serves the chat API
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/harper/daily-coach/internal/api"
	"github.com/harper/daily-coach/internal/config"
	"github.com/harper/daily-coach/internal/core"
	"github.com/harper/daily-coach/internal/llm"
	"github.com/harper/daily-coach/internal/storage/sqlite"
	"github.com/joho/godotenv"
)

var version = "dev"

func main() {
	// Load .env file if it exists
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	logger := cfg.Logger(os.Stderr)
	if envErr != nil {
		logger.Debug("no .env file found", "err", envErr)
	}

	var store *sqlite.Storage
	if cfg.DBPath != "" {
		store, err = sqlite.NewStorageWithPath(cfg.DBPath)
	} else {
		store, err = sqlite.NewStorage()
	}
	if err != nil {
		logger.Fatal("failed to initialize storage", "err", err)
	}
	defer func() { _ = store.Close() }()
	logger.Info("storage ready", "path", store.Path())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var completer llm.Completer
	if c, err := llm.New(llm.OptionsFromConfig(cfg)); err != nil {
		logger.Warn("completion service unavailable", "provider", cfg.LLMProvider, "err", err)
	} else {
		completer = c
		pingCtx, cancel := context.WithTimeout(ctx, api.HealthTimeout)
		if err := completer.Ping(pingCtx); err != nil {
			logger.Warn("completion service unreachable, using fallback replies", "provider", completer.Name(), "err", err)
		} else {
			logger.Info("completion service ready", "provider", completer.Name(), "model", cfg.LLMModel)
		}
		cancel()
	}

	coach := core.NewCoach(store, completer, core.CoachOptions{
		LLMTimeout:         cfg.LLMTimeout,
		PromptContextChars: cfg.PromptContextChars,
	}, logger)

	server := api.NewServer(coach, store, completer, api.Options{
		Addr:       cfg.ListenAddr,
		Version:    version,
		LLMTimeout: cfg.LLMTimeout,
	}, logger)

	if err := server.Start(ctx); err != nil {
		logger.Error("server error", "err", err)
		stop()
		_ = store.Close()
		os.Exit(1)
	}
}
