// ABOUTME: CLI command to print the context digest
// ABOUTME: Shows exactly what the coach would put in front of the model
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewContextCmd creates the context command
func NewContextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "context",
		Short: "Print the current context digest",
		Long: `Print the context digest the coach builds before every open-ended
reply: current time, active routines, today's tasks, recent activities and
the last few conversation turns.`,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			digest := newCoach(cfg, store, nil, logger).Digest()
			if useJSON() {
				return printJSON(cmd.OutOrStdout(), map[string]string{"context": digest})
			}
			fmt.Fprint(cmd.OutOrStdout(), digest)
			return nil
		},
	}
}
