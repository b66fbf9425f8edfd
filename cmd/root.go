/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Design: PersistentPreRunE handles store initialisation lazily - only
// commands that need the store trigger workspace open. This enables
// bootstrap commands (init, guide, config) to work without a store
// existing. The noStoreCommands map controls which commands skip
// initialisation.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jpl-au/tasklens/internal/log"
	"github.com/jpl-au/tasklens/internal/repo"
	"github.com/jpl-au/tasklens/internal/workspace"
)

// noStoreCommands work without an initialised repository.
var noStoreCommands = map[string]bool{
	"init":       true,
	"guide":      true,
	"config":     true,
	"serve":      true, // the MCP server opens its own service
	"help":       true,
	"completion": true,
	"version":    true,
}

var rootCmd = &cobra.Command{
	Use:   "tasklens",
	Short: "Tag, pin, and semantically search workspace commands",
	Long:  `tasklens organises the build scripts, npm scripts and make targets discovered in a workspace: ordered tags and quick-launch pinning, declarative tags from glob patterns, and semantic search over model-generated summaries.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		if !noStoreCommands[topLevelCmdName(cmd)] {
			if err := initService(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
					cmd.SilenceUsage = true
				}
				return err
			}
		}
		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of
// root). For "tasklens tag add build ci", returns "tag".
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// svc is the shared workspace service, opened lazily by PersistentPreRunE.
var svc *workspace.Workspace

// initService opens the workspace service for commands that need it.
func initService() error {
	if svc != nil {
		return nil
	}

	w, err := openWorkspace()
	if err != nil {
		return err
	}
	svc = w

	if dir, derr := repo.DiscoverDir(); derr == nil {
		log.SetWorkspace(dir)
	}
	return nil
}

// openWorkspace resolves the database location. An explicit --dir skips
// discovery.
func openWorkspace() (*workspace.Workspace, error) {
	if d := Dir(); d != "" {
		return workspace.Open(filepath.Join(d, repo.DBFile))
	}
	return workspace.New()
}

// Svc returns the shared service. Panics when called before initService;
// that is a wiring bug, not a runtime condition.
func Svc() *workspace.Workspace {
	if svc == nil {
		panic("service not initialised")
	}
	return svc
}

// Execute runs the root command and handles process lifecycle. Opens audit
// logging, executes the command, and ensures the workspace service is closed
// before exit. Exit code 1 indicates error.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	err := rootCmd.Execute()

	if svc != nil {
		if closeErr := svc.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing service: %v\n", closeErr)
		}
	}

	if err != nil {
		os.Exit(1)
	}
}
