// ABOUTME: Serve command runs the HTTP chat API
// ABOUTME: Checks the completion service at startup and shuts down on SIGINT/SIGTERM
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/harper/daily-coach/internal/api"
	"github.com/harper/daily-coach/internal/llm"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP chat API",
		Long: `Run the HTTP API: POST /chat plus health, debug and maintenance
endpoints. Listens on COACH_LISTEN_ADDR (default 127.0.0.1:8000).`,
		Example: `  coach serve
  coach serve --addr 0.0.0.0:8000
  curl -s localhost:8000/chat -d '{"message":"I wake up at 7am"}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}
			logger := newLogger(cfg, cmd.ErrOrStderr())

			store, err := openStore(cfg)
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			completer := newCompleter(cfg, logger)
			checkCompleter(ctx, completer, cfg.LLMModel, logger)

			server := api.NewServer(newCoach(cfg, store, completer, logger), store, completer,
				api.Options{Addr: cfg.ListenAddr, Version: versionInfo.Version, LLMTimeout: cfg.LLMTimeout}, logger)
			return server.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides COACH_LISTEN_ADDR)")

	return cmd
}

// checkCompleter logs whether the completion service answers. The server
// starts either way; replies fall back while it is down.
func checkCompleter(ctx context.Context, completer llm.Completer, model string, logger *log.Logger) {
	if completer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, api.HealthTimeout)
	defer cancel()

	if err := completer.Ping(ctx); err != nil {
		logger.Warn("completion service unreachable, using fallback replies", "provider", completer.Name(), "err", err)
		return
	}
	logger.Info("completion service ready", "provider", completer.Name(), "model", model)
}
