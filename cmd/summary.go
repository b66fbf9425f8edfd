package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpl-au/tasklens/internal/log"
	"github.com/jpl-au/tasklens/internal/store"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <task-id>",
	Short: "Show the stored summary for a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id := args[0]

	l := log.Event("cli:summary", "summary").Target(id)

	rec, err := Svc().Summary(ctx, id)
	if err != nil {
		l.Write(err)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no summary for %q (run 'tasklens refresh')", id)
		}
		return err
	}
	l.Write(nil)

	if JSON() {
		return PrintJSON(map[string]any{
			"task_id":      rec.TaskID,
			"content_hash": rec.ContentHash,
			"summary":      rec.Summary,
			"embedded":     len(rec.Embedding) > 0,
			"updated_at":   time.Unix(rec.UpdatedAt, 0).UTC().Format(time.RFC3339),
		})
	}

	fmt.Fprintln(Out(), rec.Summary)
	fmt.Fprintf(Out(), "\nhash: %s  updated: %s  embedded: %v\n",
		rec.ContentHash, time.Unix(rec.UpdatedAt, 0).UTC().Format(time.RFC3339), len(rec.Embedding) > 0)
	return nil
}
