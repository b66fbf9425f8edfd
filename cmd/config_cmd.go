// config_cmd.go implements the "tasklens config" command.
//
// Design: Config follows a cascade model similar to git: local config
// (.tasklens/config.yaml) takes precedence over global (~/.tasklens/config.yaml).
// The --local flag forces use of local config even if it doesn't exist yet,
// enabling config setup during init workflows.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/tasklens/internal/config"
	"github.com/jpl-au/tasklens/internal/log"
)

var configLocal bool

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "View or set config values",
	Long: `View or set config values.

  tasklens config                          # show config
  tasklens config search.top_k             # show search.top_k value
  tasklens config search.top_k 25          # set search.top_k

Configuration locations:
  Global: ~/.tasklens/config.yaml
  Local:  .tasklens/config.yaml

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.

Declarative tags are not addressable by key; edit the tags section of the
YAML file directly and run 'tasklens sync'.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configLocal, "local", false, "use local config (.tasklens/config.yaml)")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error
	if configLocal {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	scopeName := "global"
	if cfg.Scope() == config.ScopeLocal {
		scopeName = "local"
	}

	switch len(args) {
	case 0:
		all := cfg.All()
		log.Event("cli:config", "list").Write(nil)
		if JSON() {
			return PrintJSON(all)
		}
		for _, k := range config.Keys() {
			fmt.Fprintf(Out(), "%s: %s\n", k, all[k])
		}

	case 1:
		v, err := cfg.Get(args[0])
		log.Event("cli:config", "get").Detail("key", args[0]).Write(err)
		if err != nil {
			return fmt.Errorf("config get %q: %w", args[0], err)
		}
		if JSON() {
			return PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(Out(), v)

	case 2:
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("cli:config", "set").Detail("key", args[0]).Write(err)
			return fmt.Errorf("config set %q: %w", args[0], err)
		}

		saveErr := cfg.Save()
		log.Event("cli:config", "set").Detail("key", args[0]).Detail("scope", scopeName).Write(saveErr)
		if saveErr != nil {
			return fmt.Errorf("config save: %w", saveErr)
		}
		if JSON() {
			return PrintJSON(map[string]string{args[0]: args[1], "scope": scopeName})
		}
		fmt.Fprintf(Out(), "%s = %s (%s)\n", args[0], args[1], scopeName)
	}
	return nil
}
