package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jpl-au/tasklens/internal/format"
	"github.com/jpl-au/tasklens/internal/log"
	"github.com/jpl-au/tasklens/internal/pattern"
	"github.com/jpl-au/tasklens/internal/task"
)

var lsTag string

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List discovered tasks",
	Long:  `Lists the tasks from the workspace manifest with their tags. Use --tag to restrict the listing to one tag, preserving that tag's member order.`,
	Args:  cobra.NoArgs,
	RunE:  runLs,
}

func init() {
	lsCmd.Flags().StringVar(&lsTag, "tag", "", "only show tasks carrying this tag, in tag order")
	rootCmd.AddCommand(lsCmd)
}

// taskRow is the JSON shape for a listed task.
type taskRow struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Command  string   `json:"command,omitempty"`
	FilePath string   `json:"file_path,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

func runLs(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	l := log.Event("cli:ls", "list").Tag(lsTag)

	tasks, err := Svc().Tasks(ctx)
	if err != nil {
		l.Write(err)
		return err
	}

	tagsOf, err := Svc().TagsOf(ctx, tasks)
	if err != nil {
		l.Write(err)
		return err
	}

	rows := make([]taskRow, 0, len(tasks))
	if lsTag != "" {
		rows = rowsForTag(ctx, tasks, tagsOf, &err)
		if err != nil {
			l.Write(err)
			return err
		}
	} else {
		for _, t := range tasks {
			rows = append(rows, taskRow{
				ID: t.ID, Label: t.Label, Type: t.Type,
				Command: t.Command, FilePath: t.FilePath,
				Tags: tagsOf[t.ID],
			})
		}
	}

	l.Detail("count", len(rows)).Write(nil)

	if JSON() {
		return PrintJSON(rows)
	}

	ordered := make([]task.Task, 0, len(rows))
	for _, r := range rows {
		ordered = append(ordered, task.Task{ID: r.ID, Label: r.Label, Type: r.Type})
	}
	return format.Tasks(Out(), ordered, tagsOf)
}

// rowsForTag lists tasks carrying lsTag in the tag's member order: tasks
// matched by earlier patterns come first, tie-broken by manifest order.
func rowsForTag(ctx context.Context, tasks []task.Task, tagsOf map[string][]string, errOut *error) []taskRow {
	members, err := Svc().TagMembers(ctx, lsTag)
	if err != nil {
		*errOut = err
		return nil
	}

	byID := task.ByID(tasks)
	seen := make(map[string]bool)
	var rows []taskRow

	add := func(t task.Task) {
		if seen[t.ID] {
			return
		}
		seen[t.ID] = true
		rows = append(rows, taskRow{
			ID: t.ID, Label: t.Label, Type: t.Type,
			Command: t.Command, FilePath: t.FilePath,
			Tags: tagsOf[t.ID],
		})
	}

	for _, m := range members {
		if t, ok := byID[m.Pattern]; ok {
			add(t)
			continue
		}
		p := pattern.Parse(m.Pattern)
		for _, t := range tasks {
			if pattern.Matches(t, p) {
				add(t)
			}
		}
	}

	// Declarative config patterns can tag tasks without a stored member row.
	for _, t := range tasks {
		if seen[t.ID] {
			continue
		}
		for _, tag := range tagsOf[t.ID] {
			if tag == lsTag {
				add(t)
				break
			}
		}
	}
	return rows
}

