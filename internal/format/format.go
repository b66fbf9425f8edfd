// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// business logic while this package handles presentation concerns like
// column alignment and result rendering.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/tasklens/internal/semantic"
	"github.com/jpl-au/tasklens/internal/store"
	"github.com/jpl-au/tasklens/internal/tagging"
	"github.com/jpl-au/tasklens/internal/task"
)

// Tasks prints tasks in long format with ID, type, and tags.
func Tasks(w io.Writer, tasks []task.Task, tagsOf map[string][]string) error {
	if len(tasks) == 0 {
		return nil
	}

	// Find max ID length for alignment
	maxID := 2 // minimum "ID"
	for _, t := range tasks {
		if len(t.ID) > maxID {
			maxID = len(t.ID)
		}
	}

	fmt.Fprintf(w, "%-*s  %-8s  %s\n", maxID, "ID", "TYPE", "TAGS")
	for _, t := range tasks {
		tags := strings.Join(tagsOf[t.ID], ",")
		if tags == "" {
			tags = "-"
		}
		fmt.Fprintf(w, "%-*s  %-8s  %s\n", maxID, t.ID, t.Type, tags)
	}
	return nil
}

// Members prints a tag's members in order.
func Members(w io.Writer, members []store.Member) error {
	if len(members) == 0 {
		return nil
	}

	fmt.Fprintf(w, "%5s  %s\n", "ORDER", "PATTERN")
	for _, m := range members {
		fmt.Fprintf(w, "%5d  %s\n", m.DisplayOrder, m.Pattern)
	}
	return nil
}

// SearchResults prints ranked matches with their similarity scores.
func SearchResults(w io.Writer, matches []semantic.Match) error {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches")
		return nil
	}
	for _, m := range matches {
		fmt.Fprintf(w, "%.3f  %s\n", m.Score, m.ID)
	}
	return nil
}

// SyncResults prints per-tag reconciliation changes followed by a total line.
func SyncResults(w io.Writer, results []tagging.ReconcileResult) error {
	added, removed := 0, 0
	for _, r := range results {
		added += r.Added
		removed += r.Removed
		if r.Added == 0 && r.Removed == 0 {
			continue
		}
		fmt.Fprintf(w, "%s: +%d -%d\n", r.Tag, r.Added, r.Removed)
	}
	fmt.Fprintf(w, "Synced %d tag(s): %d added, %d removed\n", len(results), added, removed)
	return nil
}
