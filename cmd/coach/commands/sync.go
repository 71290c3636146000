// ABOUTME: Sync commands for Charm cloud backup
// ABOUTME: Provides status, push, now, wipe, and keys management
package commands

import (
	"fmt"

	"github.com/harper/daily-coach/internal/charm"
	"github.com/harper/daily-coach/internal/config"
	"github.com/spf13/cobra"
)

// NewSyncCmd creates the sync command group
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Manage Charm cloud backup",
		Long: `Manage backup of coach data to Charm cloud.

The coach keeps everything in a local SQLite database. "sync push" copies
a snapshot of every record to your Charm KV store, authenticated with your
SSH keys, so it follows you across devices linked to the same account.`,
	}

	cmd.AddCommand(newSyncStatusCmd())
	cmd.AddCommand(newSyncPushCmd())
	cmd.AddCommand(newSyncNowCmd())
	cmd.AddCommand(newSyncWipeCmd())
	cmd.AddCommand(newSyncKeysCmd())

	return cmd
}

// openCharm connects to the KV store named in the configuration
func openCharm() (*charm.Client, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	client, err := charm.NewClient(&charm.Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: cfg.AutoSync,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Charm: %w", err)
	}
	return client, cfg, nil
}

func newSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync status and connection info",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := openCharm()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			out := cmd.OutOrStdout()
			id, err := client.ID()
			if err != nil {
				fmt.Fprintln(out, "Status: Not connected")
				fmt.Fprintln(out, "Run 'coach sync keys' to check your SSH keys")
				return nil
			}

			counts, err := client.CountKeys()
			if err != nil {
				return err
			}

			if useJSON() {
				return printJSON(out, map[string]interface{}{
					"status":  "connected",
					"user_id": id,
					"host":    client.Host(),
					"records": counts,
				})
			}

			fmt.Fprintln(out, "Status: Connected")
			fmt.Fprintf(out, "User ID: %s\n", id)
			fmt.Fprintf(out, "Host: %s\n", client.Host())
			fmt.Fprintf(out, "Backed up: %d routines, %d activities, %d tasks, %d conversations\n",
				counts.Routines, counts.Activities, counts.Tasks, counts.Conversations)
			return nil
		},
	}
}

func newSyncPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Back up every local record to Charm",
		Long: `Write a snapshot of all routines, activities, tasks and conversations
to Charm. Records keep their ids, so pushing again updates rather than
duplicates.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := openCharm()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			store, err := openStore(cfg)
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			result, err := client.PushSnapshot(store)
			if err != nil {
				return fmt.Errorf("push failed: %w", err)
			}

			if useJSON() {
				return printJSON(cmd.OutOrStdout(), result)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Pushed %d records (%d routines, %d activities, %d tasks, %d conversations)\n",
					result.Total(), result.Routines, result.Activities, result.Tasks, result.Conversations)
			}
			return nil
		},
	}
}

func newSyncNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Force immediate sync with Charm cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := openCharm()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "Syncing...")
			}
			if err := client.Sync(); err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "Sync complete")
			}
			return nil
		},
	}
}

func newSyncWipeCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Wipe the local Charm cache (nuclear option)",
		Long: `Completely wipe the locally cached Charm data.

WARNING: This deletes the local copy of your backup. The SQLite database
is untouched and your cloud data remains intact.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				fmt.Fprintln(cmd.OutOrStdout(), "This will wipe ALL locally cached Charm data!")
				fmt.Fprintln(cmd.OutOrStdout(), "Run with --confirm to proceed")
				return nil
			}

			client, _, err := openCharm()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if err := client.Reset(); err != nil {
				return fmt.Errorf("failed to wipe data: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Local data wiped successfully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm the wipe operation")

	return cmd
}

func newSyncKeysCmd() *cobra.Command {
	var unlink string

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List authorized SSH keys, or unlink one",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := openCharm()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if unlink != "" {
				if err := client.UnlinkKey(unlink); err != nil {
					return fmt.Errorf("failed to unlink key: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Key unlinked")
				return nil
			}

			keys, err := client.GetAuthorizedKeys()
			if err != nil {
				return fmt.Errorf("failed to get authorized keys: %w", err)
			}

			if keys == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No authorized keys found")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Authorized SSH keys:")
			fmt.Fprintln(cmd.OutOrStdout(), keys)
			return nil
		},
	}

	cmd.Flags().StringVar(&unlink, "unlink", "", "remove this authorized key from the account")
	return cmd
}
