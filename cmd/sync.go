package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/tasklens/internal/format"
	"github.com/jpl-au/tasklens/internal/log"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile declarative tags from config",
	Long:  `Applies the tags declared in config to the store: tasks matching a tag's patterns are added, previously materialised tasks that no longer match are removed. The quick tag is never touched.`,
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	l := log.Event("cli:sync", "sync")

	tasks, err := Svc().Tasks(ctx)
	if err != nil {
		l.Write(err)
		return err
	}

	results, err := Svc().SyncTags(ctx, tasks, Svc().Config().TagPatterns())
	if err != nil {
		l.Write(err)
		return fmt.Errorf("sync: %w", err)
	}

	added, removed := 0, 0
	for _, r := range results {
		added += r.Added
		removed += r.Removed
	}
	l.Detail("added", added).Detail("removed", removed).Write(nil)

	if JSON() {
		return PrintJSON(results)
	}
	return format.SyncResults(Out(), results)
}
