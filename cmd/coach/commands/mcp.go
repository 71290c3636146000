// ABOUTME: MCP command starts the Model Context Protocol server
// ABOUTME: Lets LLM agents chat with the coach and manage its records over stdio
package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/daily-coach/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the coach as an MCP (Model Context Protocol) server, so LLM agents
like Claude can chat with it and manage routines, tasks and activities
via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  coach mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "coach": {
  #       "command": "coach",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server. Logs go to stderr since stdout carries
// the protocol.
func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, os.Stderr)

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	coach := newCoach(cfg, store, newCompleter(cfg, logger), logger)

	server := mcpserver.NewMCPServer(
		"Daily Coach",
		versionInfo.Version,
	)
	mcp.RegisterTools(server, coach, store, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("MCP server starting on stdio", "db", store.Path())

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := store.Close(); err != nil {
			logger.Warn("error closing storage", "err", err)
		}
		logger.Info("shutdown complete")

	case err := <-serverErr:
		_ = store.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
