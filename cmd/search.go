package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/tasklens/internal/format"
	"github.com/jpl-au/tasklens/internal/log"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Semantically search task summaries",
	Long:  `Embeds the query and ranks stored task summaries by cosine similarity. There is no lexical fallback: an unreachable model server is an error, not a degraded search.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(c *cobra.Command, args []string) error {
	ctx := c.Context()
	query := args[0]

	l := log.Event("cli:search", "search").Target(query)

	matches, err := Svc().Search(ctx, query)
	if err != nil {
		l.Write(err)
		return fmt.Errorf("search: %w", err)
	}
	l.Detail("count", len(matches)).Write(nil)

	if JSON() {
		return PrintJSON(matches)
	}
	return format.SearchResults(Out(), matches)
}
