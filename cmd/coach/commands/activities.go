// ABOUTME: CLI command to list logged activities
// ABOUTME: Shows meals, workouts and other check-ins from recent days
package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/harper/daily-coach/internal/models"
	"github.com/spf13/cobra"
)

// NewActivitiesCmd creates the activities command
func NewActivitiesCmd() *cobra.Command {
	var (
		days  int
		limit int
	)

	cmd := &cobra.Command{
		Use:   "activities",
		Short: "List recently logged activities",
		Long: `List activities logged from chat, newest first.

Examples:
  coach activities
  coach activities --days 30 --limit 100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validatePositiveInt(days, "--days"); err != nil {
				return err
			}
			if err := validatePositiveInt(limit, "--limit"); err != nil {
				return err
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

			now := time.Now()
			since := models.DateOf(now.AddDate(0, 0, -days))
			activities, err := store.RecentActivities(since, limit)
			if err != nil {
				return fmt.Errorf("listing activities: %w", err)
			}

			if useJSON() {
				if activities == nil {
					activities = []models.Activity{}
				}
				return printJSON(cmd.OutOrStdout(), activities)
			}

			if len(activities) == 0 {
				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "No activities since %s\n", since)
				}
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "DATE\tCATEGORY\tDESCRIPTION\tLOGGED\n")
			fmt.Fprintf(w, "----\t--------\t-----------\t------\n")
			for _, a := range activities {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					a.Date, a.Category, truncate(a.Description, 50), formatTime(a.Timestamp, now))
			}
			_ = w.Flush()

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d activities since %s\n", len(activities), since)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "How many days back to look")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum activities to show")

	return cmd
}
