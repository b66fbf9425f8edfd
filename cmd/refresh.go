package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/tasklens/internal/diff"
	"github.com/jpl-au/tasklens/internal/log"
	"github.com/jpl-au/tasklens/internal/progress"
)

var refreshShowChanges bool

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Regenerate stale summaries and embeddings",
	Long:  `Summarises each task whose content changed since its last summary, embeds the summary, and stores both. Tasks whose content hash is unchanged are skipped. Requires a running model server.`,
	Args:  cobra.NoArgs,
	RunE:  runRefresh,
}

func init() {
	refreshCmd.Flags().BoolVar(&refreshShowChanges, "show-changes", false, "show a diff of each regenerated summary")
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	l := log.Event("cli:refresh", "refresh")

	tasks, err := Svc().Tasks(ctx)
	if err != nil {
		l.Write(err)
		return err
	}

	var reporter *progress.Reporter
	if !JSON() {
		reporter = progress.New("refreshing")
	}

	result, err := Svc().RefreshSummaries(ctx, tasks, func(done, total int) {
		if reporter != nil {
			reporter.Update(done, total)
		}
	})
	if reporter != nil {
		reporter.Done()
	}
	if err != nil {
		l.Write(err)
		return fmt.Errorf("refresh: %w", err)
	}

	l.Detail("stored", result.Stored).
		Detail("skipped", result.Skipped).
		Detail("failed", result.Failed).
		Write(nil)

	if JSON() {
		return PrintJSON(result)
	}

	for _, item := range result.Items {
		switch {
		case item.Err != nil:
			fmt.Fprintf(Out(), "failed  %s: %v\n", item.TaskID, item.Err)
		case item.Skipped:
			// Skips are routine; only surface them with --show-changes.
			if refreshShowChanges {
				fmt.Fprintf(Out(), "skipped %s\n", item.TaskID)
			}
		default:
			fmt.Fprintf(Out(), "updated %s\n", item.TaskID)
			if item.Warning != "" {
				fmt.Fprintf(Out(), "  warning: %s\n", item.Warning)
			}
			if refreshShowChanges && item.OldSummary != item.Summary {
				d := diff.Compute(item.OldSummary, item.Summary, "previous", "current")
				fmt.Fprintln(Out(), d.Format(true))
			}
		}
	}
	fmt.Fprintf(Out(), "Refreshed: %d updated, %d skipped, %d failed\n",
		result.Stored, result.Skipped, result.Failed)
	return nil
}
