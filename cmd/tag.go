package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/tasklens/internal/format"
	"github.com/jpl-au/tasklens/internal/log"
	"github.com/jpl-au/tasklens/internal/store"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tag membership",
	Long:  `Add, remove, list and reorder tag members. Members are patterns: task IDs, type:label pairs, globs, or field matchers. Order within a tag is preserved and significant.`,
}

var tagAddCmd = &cobra.Command{
	Use:   "add <tag> <pattern>...",
	Short: "Add one or more patterns to a tag",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTagAdd,
}

var tagRmCmd = &cobra.Command{
	Use:   "rm <tag> <pattern>...",
	Short: "Remove patterns from a tag",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTagRm,
}

var tagLsCmd = &cobra.Command{
	Use:   "ls [tag]",
	Short: "List tags, or the members of one tag in order",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTagLs,
}

var tagMoveCmd = &cobra.Command{
	Use:   "move <tag> <pattern>...",
	Short: "Reorder a tag's members",
	Long:  `Replaces the member order of a tag. The arguments must be exactly the current members, each appearing once, in the desired new order.`,
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTagMove,
}

func init() {
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRmCmd)
	tagCmd.AddCommand(tagLsCmd)
	tagCmd.AddCommand(tagMoveCmd)
	rootCmd.AddCommand(tagCmd)
}

func runTagAdd(c *cobra.Command, args []string) error {
	ctx := c.Context()
	tag := args[0]

	for _, pat := range args[1:] {
		l := log.Event("cli:tag_add", "tag").Tag(tag).Target(pat)
		if err := Svc().AddTag(ctx, tag, pat); err != nil {
			l.Write(err)
			return fmt.Errorf("tag add %q %q: %w", tag, pat, err)
		}
		l.Write(nil)
	}

	if JSON() {
		return PrintJSON(map[string]any{"tag": tag, "added": args[1:]})
	}
	fmt.Fprintf(Out(), "Added %d member(s) to %q\n", len(args)-1, tag)
	return nil
}

func runTagRm(c *cobra.Command, args []string) error {
	ctx := c.Context()
	tag := args[0]

	for _, pat := range args[1:] {
		l := log.Event("cli:tag_rm", "untag").Tag(tag).Target(pat)
		if err := Svc().RemoveTag(ctx, tag, pat); err != nil {
			l.Write(err)
			return fmt.Errorf("tag rm %q %q: %w", tag, pat, err)
		}
		l.Write(nil)
	}

	if JSON() {
		return PrintJSON(map[string]any{"tag": tag, "removed": args[1:]})
	}
	fmt.Fprintf(Out(), "Removed %d member(s) from %q\n", len(args)-1, tag)
	return nil
}

func runTagLs(c *cobra.Command, args []string) error {
	ctx := c.Context()

	if len(args) == 0 {
		l := log.Event("cli:tag_ls", "list_tags")
		names, err := Svc().TagNames(ctx)
		if err != nil {
			l.Write(err)
			return err
		}
		l.Detail("count", len(names)).Write(nil)

		if JSON() {
			return PrintJSON(names)
		}
		for _, n := range names {
			fmt.Fprintln(Out(), n)
		}
		return nil
	}

	tag := args[0]
	l := log.Event("cli:tag_ls", "list_members").Tag(tag)

	members, err := Svc().TagMembers(ctx, tag)
	if err != nil {
		l.Write(err)
		return err
	}
	l.Detail("count", len(members)).Write(nil)

	if JSON() {
		return PrintJSON(store.MembersJSON(members))
	}
	return format.Members(Out(), members)
}

func runTagMove(c *cobra.Command, args []string) error {
	ctx := c.Context()
	tag := args[0]
	order := args[1:]

	l := log.Event("cli:tag_move", "reorder").Tag(tag).Detail("count", len(order))

	if err := Svc().ReorderTag(ctx, tag, order); err != nil {
		l.Write(err)
		return fmt.Errorf("tag move %q: %w", tag, err)
	}
	l.Write(nil)

	if JSON() {
		return PrintJSON(map[string]any{"tag": tag, "order": order})
	}
	fmt.Fprintf(Out(), "Reordered %q\n", tag)
	return nil
}
