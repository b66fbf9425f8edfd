// Package mcp implements the Model Context Protocol server, exposing
// tasklens operations to LLMs. This lets AI assistants tag, pin, and
// semantically search workspace tasks through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/tasklens/internal/repo"
	"github.com/jpl-au/tasklens/internal/workspace"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools when the store has not been
// initialised. The client should run 'tasklens init' in the workspace first.
const ErrNotInitialised = "tasklens not initialised - run 'tasklens init' in the workspace first"

// Serve starts the MCP server over stdio, enabling LLM integration.
// Uses stdio transport for compatibility with Claude Desktop and other MCP
// clients.
//
// Design: The server starts successfully even if no store exists, so a
// client can surface a clear ErrNotInitialised message per tool call rather
// than failing to connect.
func Serve() error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{}

	svc, err := workspace.New()
	if err != nil && !errors.Is(err, repo.ErrNotInitialised) {
		slog.Error("failed to open store", "error", err)
		return err
	}
	if err == nil {
		h.svc = svc
		defer svc.Close()
	} else {
		slog.Info("tasklens not initialised, starting in uninitialised mode")
	}

	s := server.NewMCPServer(
		"tasklens",
		Version,
		server.WithToolCapabilities(true),
	)

	registerTools(s, h)

	slog.Info("tasklens MCP server ready", "version", Version, "transport", "stdio")

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers with access to the workspace
// service. The svc field may be nil if the store has not been initialised.
type handlers struct {
	svc *workspace.Workspace
}

// requireInit returns an error result if the store is not initialised.
// Tools that require a store should call this first.
func (h *handlers) requireInit() *mcp.CallToolResult {
	if h.svc == nil {
		return mcp.NewToolResultError(ErrNotInitialised)
	}
	return nil
}

// registerTools exposes tasklens operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("tasklens_list",
			mcp.WithDescription("List workspace tasks with their tags"),
			mcp.WithString("tag", mcp.Description("Only show tasks carrying this tag")),
		),
		h.listTasks,
	)

	s.AddTool(
		mcp.NewTool("tasklens_tag",
			mcp.WithDescription("Add a pattern to a tag. Patterns: task IDs, type:label, globs. Idempotent."),
			mcp.WithString("tag", mcp.Required(), mcp.Description("Tag name")),
			mcp.WithString("pattern", mcp.Required(), mcp.Description("Member pattern")),
		),
		h.tagAdd,
	)

	s.AddTool(
		mcp.NewTool("tasklens_untag",
			mcp.WithDescription("Remove a pattern from a tag. Removing an absent member succeeds silently."),
			mcp.WithString("tag", mcp.Required(), mcp.Description("Tag name")),
			mcp.WithString("pattern", mcp.Required(), mcp.Description("Member pattern")),
		),
		h.tagRemove,
	)

	s.AddTool(
		mcp.NewTool("tasklens_tags",
			mcp.WithDescription("List tag names, or one tag's members in order"),
			mcp.WithString("tag", mcp.Description("Tag to list members of")),
		),
		h.listTags,
	)

	s.AddTool(
		mcp.NewTool("tasklens_search",
			mcp.WithDescription("Semantically search task summaries. Requires a running model server; fails loudly when it is unreachable."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Natural-language query")),
		),
		h.search,
	)

	s.AddTool(
		mcp.NewTool("tasklens_refresh",
			mcp.WithDescription("Regenerate summaries and embeddings for tasks whose content changed. May take a while."),
		),
		h.refresh,
	)
}
