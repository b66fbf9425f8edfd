// tools.go implements the MCP tool handlers.
//
// Design: Tag operations mirror the CLI's semantics - adding an existing
// member or removing an absent one succeeds silently. This simplifies LLM
// workflows that may not track current tag state.

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/tasklens/internal/log"
	"github.com/jpl-au/tasklens/internal/store"
)

// getString extracts a string parameter, returning the default if the
// parameter is missing. Optional parameters should never cause tool
// failures; the LLM frequently omits them.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// jsonResult wraps a value as a JSON text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// listTasks handles tasklens_list tool calls.
func (h *handlers) listTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	tagFilter := getString(req, "tag", "")

	tasks, err := h.svc.Tasks(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tagsOf, err := h.svc.TagsOf(ctx, tasks)

	log.Event("mcp:list", "list").Tag(tagFilter).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	type row struct {
		ID      string   `json:"id"`
		Label   string   `json:"label"`
		Type    string   `json:"type"`
		Command string   `json:"command,omitempty"`
		Tags    []string `json:"tags,omitempty"`
	}
	var rows []row
	for _, t := range tasks {
		tags := tagsOf[t.ID]
		if tagFilter != "" && !contains(tags, tagFilter) {
			continue
		}
		rows = append(rows, row{ID: t.ID, Label: t.Label, Type: t.Type, Command: t.Command, Tags: tags})
	}
	return jsonResult(rows)
}

// tagAdd handles tasklens_tag tool calls.
func (h *handlers) tagAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	tag, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError("tag is required"), nil //nolint:nilerr
	}
	pat, err := req.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError("pattern is required"), nil //nolint:nilerr
	}

	err = h.svc.AddTag(ctx, tag, pat)

	log.Event("mcp:tag", "tag").Tag(tag).Target(pat).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("added %q to tag %q", pat, tag)), nil
}

// tagRemove handles tasklens_untag tool calls.
func (h *handlers) tagRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	tag, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError("tag is required"), nil //nolint:nilerr
	}
	pat, err := req.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError("pattern is required"), nil //nolint:nilerr
	}

	err = h.svc.RemoveTag(ctx, tag, pat)

	log.Event("mcp:untag", "untag").Tag(tag).Target(pat).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("removed %q from tag %q", pat, tag)), nil
}

// listTags handles tasklens_tags tool calls.
func (h *handlers) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	tag := getString(req, "tag", "")

	if tag == "" {
		names, err := h.svc.TagNames(ctx)
		log.Event("mcp:tags", "list_tags").Write(err)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(names)
	}

	members, err := h.svc.TagMembers(ctx, tag)
	log.Event("mcp:tags", "list_members").Tag(tag).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(store.MembersJSON(members))
}

// search handles tasklens_search tool calls.
func (h *handlers) search(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}

	matches, err := h.svc.Search(ctx, query)

	log.Event("mcp:search", "search").Target(query).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(matches)
}

// refresh handles tasklens_refresh tool calls.
func (h *handlers) refresh(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	tasks, err := h.svc.Tasks(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := h.svc.RefreshSummaries(ctx, tasks, nil)

	log.Event("mcp:refresh", "refresh").
		Detail("stored", result.Stored).
		Detail("failed", result.Failed).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"refreshed: %d updated, %d skipped, %d failed",
		result.Stored, result.Skipped, result.Failed)), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
