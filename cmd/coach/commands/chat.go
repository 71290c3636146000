// ABOUTME: CLI command to chat with the coach from the terminal
// ABOUTME: Sends one message, or runs a line-by-line session when none is given
package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/harper/daily-coach/internal/core"
	"github.com/spf13/cobra"
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat [message]",
		Short: "Chat with the coach",
		Long: `Send a message to the coach and print its reply.

With no message, reads one message per line from stdin until EOF or
"exit", printing each reply.

Examples:
  coach chat "I wake up at 7am"
  coach chat "Meeting with Dana at 2pm"
  coach chat`,
		Args: cobra.ArbitraryArgs,
		RunE: runChat,
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	coach := newCoach(cfg, store, newCompleter(cfg, logger), logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(args) > 0 {
		message := strings.TrimSpace(strings.Join(args, " "))
		if message == "" {
			return fmt.Errorf("no message provided")
		}
		return printReply(cmd.OutOrStdout(), coach.Handle(ctx, message))
	}

	return chatSession(ctx, coach, cmd.InOrStdin(), cmd.OutOrStdout())
}

// chatSession answers one message per input line
func chatSession(ctx context.Context, coach *core.Coach, in io.Reader, out io.Writer) error {
	interactive := !quiet && !useJSON()
	if interactive {
		fmt.Fprintln(out, "Talk to your coach. Type 'exit' to quit.")
	}

	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if err := printReply(out, coach.Handle(ctx, line)); err != nil {
			return err
		}
		if ctx.Err() != nil {
			break
		}
	}
	return scanner.Err()
}

func printReply(w io.Writer, reply core.Reply) error {
	if useJSON() {
		return printJSON(w, reply)
	}
	if verbose {
		fmt.Fprintf(w, "[%s] ", reply.Intent)
	}
	_, err := fmt.Fprintln(w, reply.Response)
	return err
}
