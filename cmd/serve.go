// serve.go implements the "tasklens serve" command for MCP server operation.
//
// Unlike other commands that run and exit, serve blocks indefinitely handling
// MCP requests over stdio. It is a noStoreCommand: the MCP server manages its
// own service lifecycle so it can start in uninitialised mode and report a
// clear per-tool error instead of failing to connect.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/tasklens/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP server",
	Long:  `Start an MCP (Model Context Protocol) server over stdio for LLM integration.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	return mcp.Serve()
}
