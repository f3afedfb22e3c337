package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/harrison/combiner/internal/history"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs recorded in history_db",
		Long: `Show recent combiner runs from the SQLite database named by history_db
in the configuration. Runs are listed most recent first.

Examples:
  combiner history
  combiner history --limit 50
  combiner history --skipped`,
		Args: cobra.NoArgs,
		RunE: historyCommand,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .combiner/config.yaml)")
	cmd.Flags().Int("limit", 10, "Maximum number of runs to show (0 = all)")
	cmd.Flags().Bool("skipped", false, "List the skipped files of each run")

	return cmd
}

func historyCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.HistoryDB == "" {
		return fmt.Errorf("history_db is not set in the configuration")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	showSkipped, _ := cmd.Flags().GetBool("skipped")

	store, err := history.NewStore(cfg.HistoryDB)
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, formatHistoryTable(runs))

	if showSkipped {
		for _, run := range runs {
			if run.Skipped == 0 {
				continue
			}
			files, err := store.SkippedFiles(cmd.Context(), run.RunID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Skipped in %s:\n", run.RunID)
			for _, f := range files {
				fmt.Fprintf(out, "  - %s (%s: %s)\n", f.Path, f.Reason, f.Error)
			}
		}
	}

	return nil
}

// formatHistoryTable formats recorded runs as a readable table
func formatHistoryTable(runs []*history.Run) string {
	var sb strings.Builder

	sb.WriteString("\n=== Run History ===\n\n")

	if len(runs) == 0 {
		sb.WriteString("No runs recorded\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("%-36s %-19s %-9s %-9s %-9s %-10s %-8s %s\n",
		"Run ID", "Started", "Included", "Excluded", "Skipped", "Bytes", "Status", "Output"))
	sb.WriteString(strings.Repeat("-", 120) + "\n")

	for _, run := range runs {
		status := "ok"
		if !run.Succeeded() {
			status = "failed"
		}
		sb.WriteString(fmt.Sprintf("%-36s %-19s %-9d %-9d %-9d %-10d %-8s %s\n",
			run.RunID,
			run.StartedAt.Local().Format(time.DateTime),
			run.Included,
			run.Excluded,
			run.Skipped,
			run.TotalBytes,
			status,
			run.OutputPath))
	}

	sb.WriteString("\n")
	return sb.String()
}
