// ABOUTME: CLI commands to inspect and maintain routines
// ABOUTME: list, deactivate, clean duplicates and purge inactive rows
package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/harper/daily-coach/internal/models"
	"github.com/harper/daily-coach/internal/storage"
	"github.com/spf13/cobra"
)

// NewRoutinesCmd creates the routines command group
func NewRoutinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routines",
		Short: "Manage recurring routines",
		Long: `List and maintain the recurring routines the coach has scheduled.

Routines are created from chat ("I wake up at 7am") and keyed by name and
time, so repeating yourself never adds a second copy.`,
	}

	cmd.AddCommand(newRoutinesListCmd())
	cmd.AddCommand(newRoutinesDeactivateCmd())
	cmd.AddCommand(newRoutinesCleanCmd())
	cmd.AddCommand(newRoutinesPurgeCmd())

	return cmd
}

func newRoutinesListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List routines",
		Long: `List active routines ordered by time.

Examples:
  coach routines list
  coach routines list --all
  coach routines list --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			var routines []models.Routine
			if all {
				routines, err = store.ListRoutines()
			} else {
				routines, err = store.ListActiveRoutines()
			}
			if err != nil {
				return fmt.Errorf("listing routines: %w", err)
			}

			if useJSON() {
				if routines == nil {
					routines = []models.Routine{}
				}
				return printJSON(cmd.OutOrStdout(), routines)
			}

			if len(routines) == 0 {
				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), "No routines found")
				}
				return nil
			}

			now := time.Now()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "TIME\tNAME\tACTIVE\tCREATED\tMESSAGE\tID\n")
			fmt.Fprintf(w, "----\t----\t------\t-------\t-------\t--\n")
			for _, r := range routines {
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\t%s\n",
					r.Time, truncate(r.Name, 24), r.Active,
					formatTime(r.CreatedAt, now), truncate(r.Message, 40), r.ID)
			}
			_ = w.Flush()

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d routine(s)\n", len(routines))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include deactivated routines")

	return cmd
}

func newRoutinesDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Deactivate a routine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.DeactivateRoutine(args[0]); err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return fmt.Errorf("no active routine with id %s", args[0])
				}
				return fmt.Errorf("deactivating routine: %w", err)
			}

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Deactivated routine %s\n", args[0])
			}
			return nil
		},
	}
}

func newRoutinesCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove duplicate routines, keeping the newest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaintenance(cmd, "Cleaned up %d duplicate routines",
				func(s storage.RoutineStore) (int64, error) { return s.CleanDuplicateRoutines() })
		},
	}
}

func newRoutinesPurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete deactivated routines",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaintenance(cmd, "Purged %d inactive routines",
				func(s storage.RoutineStore) (int64, error) { return s.PurgeInactiveRoutines() })
		},
	}
}

// runMaintenance opens the store, runs op and reports the affected count
func runMaintenance(cmd *cobra.Command, format string, op func(storage.RoutineStore) (int64, error)) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	n, err := op(store)
	if err != nil {
		return fmt.Errorf("routine maintenance: %w", err)
	}

	msg := fmt.Sprintf(format, n)
	if useJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{"message": msg, "removed": n})
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
