// ABOUTME: Export command writes every coach record to a file
// ABOUTME: Supports YAML, Markdown and JSON output
package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	var (
		as     string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data to a file",
		Long: `Export routines, tasks, activities and conversations from the local
SQLite database to YAML, Markdown or JSON.

Examples:
  coach export
  coach export --as markdown -o week.md
  coach export --as json -o backup.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			as = strings.ToLower(as)
			ext := map[string]string{"yaml": "yaml", "markdown": "md", "md": "md", "json": "json"}[as]
			if ext == "" {
				return fmt.Errorf("invalid --as %q (valid: yaml, markdown, json)", as)
			}
			if output == "" {
				output = fmt.Sprintf("coach-export-%s.%s", time.Now().Format("2006-01-02"), ext)
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

			switch ext {
			case "yaml":
				err = store.ExportToYAML(output)
			case "md":
				err = store.ExportToMarkdown(output)
			case "json":
				err = store.ExportToJSON(output)
			}
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&as, "as", "yaml", "File format: yaml, markdown, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default coach-export-<date>.<ext>)")

	return cmd
}
