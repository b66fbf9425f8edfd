package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jpl-au/tasklens/internal/log"
	"github.com/jpl-au/tasklens/internal/repo"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialise a tasklens repository in the current directory",
	Long:  `Creates a .tasklens directory with a SQLite store for tags and summaries. Safe to re-run; use --force to recreate an existing store.`,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "recreate the store if one already exists")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	l := log.Event("cli:init", "init").Target(cwd)

	if err := repo.Init(initForce, cwd); err != nil {
		l.Write(err)
		return fmt.Errorf("init: %w", err)
	}

	dbPath := filepath.Join(cwd, repo.Dir, repo.DBFile)
	l.Write(nil)

	if JSON() {
		return PrintJSON(map[string]string{"initialised": dbPath})
	}
	fmt.Fprintf(Out(), "Initialised tasklens store at %s\n", dbPath)
	return nil
}
