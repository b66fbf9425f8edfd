package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/tasklens/internal/format"
	"github.com/jpl-au/tasklens/internal/log"
	"github.com/jpl-au/tasklens/internal/store"
)

// The quick tag is a reserved manual tag: declarative config cannot claim it,
// and reconciliation never touches it. These commands are sugar over it.

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Manage the quick-launch pin list",
	Long:  `Pins tasks to the reserved "quick" tag. The pin list keeps the order you give it; use 'quick move' to rearrange.`,
	RunE:  runQuickLs,
}

var quickAddCmd = &cobra.Command{
	Use:   "add <pattern>...",
	Short: "Pin tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuickAdd,
}

var quickRmCmd = &cobra.Command{
	Use:   "rm <pattern>...",
	Short: "Unpin tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuickRm,
}

var quickMoveCmd = &cobra.Command{
	Use:   "move <pattern>...",
	Short: "Reorder the pin list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuickMove,
}

func init() {
	quickCmd.AddCommand(quickAddCmd)
	quickCmd.AddCommand(quickRmCmd)
	quickCmd.AddCommand(quickMoveCmd)
	rootCmd.AddCommand(quickCmd)
}

func runQuickAdd(c *cobra.Command, args []string) error {
	ctx := c.Context()
	for _, pat := range args {
		l := log.Event("cli:quick_add", "tag").Tag(store.QuickTag).Target(pat)
		if err := Svc().AddTag(ctx, store.QuickTag, pat); err != nil {
			l.Write(err)
			return fmt.Errorf("quick add %q: %w", pat, err)
		}
		l.Write(nil)
	}

	if JSON() {
		return PrintJSON(map[string]any{"pinned": args})
	}
	fmt.Fprintf(Out(), "Pinned %d task(s)\n", len(args))
	return nil
}

func runQuickRm(c *cobra.Command, args []string) error {
	ctx := c.Context()
	for _, pat := range args {
		l := log.Event("cli:quick_rm", "untag").Tag(store.QuickTag).Target(pat)
		if err := Svc().RemoveTag(ctx, store.QuickTag, pat); err != nil {
			l.Write(err)
			return fmt.Errorf("quick rm %q: %w", pat, err)
		}
		l.Write(nil)
	}

	if JSON() {
		return PrintJSON(map[string]any{"unpinned": args})
	}
	fmt.Fprintf(Out(), "Unpinned %d task(s)\n", len(args))
	return nil
}

func runQuickMove(c *cobra.Command, args []string) error {
	ctx := c.Context()
	l := log.Event("cli:quick_move", "reorder").Tag(store.QuickTag).Detail("count", len(args))

	if err := Svc().ReorderTag(ctx, store.QuickTag, args); err != nil {
		l.Write(err)
		return fmt.Errorf("quick move: %w", err)
	}
	l.Write(nil)

	if JSON() {
		return PrintJSON(map[string]any{"order": args})
	}
	fmt.Fprintln(Out(), "Reordered quick list")
	return nil
}

func runQuickLs(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	l := log.Event("cli:quick_ls", "list_members").Tag(store.QuickTag)

	members, err := Svc().TagMembers(ctx, store.QuickTag)
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
