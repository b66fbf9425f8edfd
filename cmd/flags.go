/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines persistent flags shared across commands and the JSON
// output helpers used by every command that supports -o json.

package cmd

import (
	"encoding/json"
	"io"
	"os"
)

var (
	// output holds the value of the persistent --output flag.
	output string

	// dirFlag overrides repository discovery with an explicit .tasklens dir.
	dirFlag string

	validOutputFormats = []string{"", "json"}

	// out is the writer commands print to. Overridable for tests.
	out io.Writer = os.Stdout
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output format (json)")
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "path to the .tasklens directory (skips discovery)")
}

// JSON reports whether JSON output was requested.
func JSON() bool {
	return output == "json"
}

// Dir returns the --dir override, empty when unset.
func Dir() string {
	return dirFlag
}

// Out returns the writer command output goes to.
func Out() io.Writer {
	return out
}

// SetOut replaces the output writer. Tests use this to capture output.
func SetOut(w io.Writer) {
	out = w
}

// PrintJSON encodes v as indented JSON to the command output writer.
func PrintJSON(v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintJSONError emits {"error": msg} for commands that report failures in
// JSON mode rather than via cobra's error path.
func PrintJSONError(msg string) {
	_ = PrintJSON(map[string]string{"error": msg})
}
