// ABOUTME: CLI commands for dated tasks
// ABOUTME: Lists a day's tasks and marks tasks done
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

// NewTasksCmd creates the tasks command group
func NewTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage one-off tasks",
		Long: `List and complete the one-off tasks the coach picked up from chat
("Meeting with Dana at 2pm").`,
	}

	cmd.AddCommand(newTasksListCmd())
	cmd.AddCommand(newTasksDoneCmd())

	return cmd
}

func newTasksListCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks for a day",
		Long: `List tasks for a day ordered by time (default today).

Examples:
  coach tasks list
  coach tasks list --date 2026-03-14`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = models.DateOf(time.Now())
			} else if _, err := time.Parse("2006-01-02", date); err != nil {
				return fmt.Errorf("invalid --date %q (want YYYY-MM-DD)", date)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			tasks, err := store.TasksForDate(date)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}

			if useJSON() {
				if tasks == nil {
					tasks = []models.Task{}
				}
				return printJSON(cmd.OutOrStdout(), tasks)
			}

			if len(tasks) == 0 {
				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "No tasks for %s\n", date)
				}
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "TIME\tTASK\tDONE\tID\n")
			fmt.Fprintf(w, "----\t----\t----\t--\n")
			for _, t := range tasks {
				done := ""
				if t.IsDone {
					done = "✓"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Time, truncate(t.Name, 40), done, t.ID)
			}
			_ = w.Flush()

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d task(s) on %s\n", len(tasks), date)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to list (YYYY-MM-DD, default today)")

	return cmd
}

func newTasksDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task done",
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

			if err := store.CompleteTask(args[0]); err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return fmt.Errorf("no task with id %s", args[0])
				}
				return fmt.Errorf("completing task: %w", err)
			}

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Marked task %s done\n", args[0])
			}
			return nil
		},
	}
}
