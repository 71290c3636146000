// ABOUTME: Root command and global flags for the coach CLI
// ABOUTME: Registers every subcommand and validates --verbose/--quiet/--format
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Global flags shared by every subcommand
var (
	verbose      bool
	quiet        bool
	outputFormat string
	dbPath       string
)

const banner = `
 ██████╗ ██████╗  █████╗  ██████╗██╗  ██╗
██╔════╝██╔═══██╗██╔══██╗██╔════╝██║  ██║
██║     ██║   ██║███████║██║     ███████║
██║     ██║   ██║██╔══██║██║     ██╔══██║
╚██████╗╚██████╔╝██║  ██║╚██████╗██║  ██║
 ╚═════╝ ╚═════╝ ╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coach",
		Short: "A personal daily coach you can chat with",
		Long: banner + `

A personal daily coach. Tell it about your day in plain language and it
keeps track of your routines, meals, workouts and tasks, then answers
with a short reply grounded in what it knows about you.

Data lives in a local SQLite database and can be backed up to Charm.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch outputFormat {
			case "auto", "json", "table":
			default:
				return fmt.Errorf("invalid --format %q (valid: auto, json, table)", outputFormat)
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Only print results and errors")
	flags.StringVar(&outputFormat, "format", "auto", "Output format: auto, json, table")
	flags.StringVar(&dbPath, "db", "", "Path to the SQLite database (default: $COACH_DB_PATH or XDG data dir)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewRoutinesCmd())
	cmd.AddCommand(NewTasksCmd())
	cmd.AddCommand(NewActivitiesCmd())
	cmd.AddCommand(NewContextCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
