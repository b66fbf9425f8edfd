// Package service defines the shared interface for tasklens operations.
// Commands and the MCP server depend on this interface rather than concrete
// implementations, enabling testing with fakes and future backend changes.
package service

import (
	"context"

	"github.com/jpl-au/tasklens/internal/pattern"
	"github.com/jpl-au/tasklens/internal/semantic"
	"github.com/jpl-au/tasklens/internal/store"
	"github.com/jpl-au/tasklens/internal/tagging"
	"github.com/jpl-au/tasklens/internal/task"
)

// Service defines all tag and search operations.
//
// Obtain an implementation with workspace.New(). Always call Close() when
// done (use defer). Implementations serialize mutating operations, so one
// Service can be shared by the CLI and the MCP server.
type Service interface {
	// Close releases the store and model handles. Always defer this after New().
	Close() error

	// Tasks returns the current discovered task set, in discovery order.
	Tasks(ctx context.Context) ([]task.Task, error)

	// AddTag appends a task ID or pattern to a tag's member list.
	// Adding an existing member is a silent no-op.
	AddTag(ctx context.Context, tag, pat string) error

	// RemoveTag deletes a member from a tag. Removing an absent member is
	// a silent no-op.
	RemoveTag(ctx context.Context, tag, pat string) error

	// TagMembers returns a tag's members sorted by display order.
	TagMembers(ctx context.Context, tag string) ([]store.Member, error)

	// ReorderTag replaces a tag's order with newOrder, which must be a
	// permutation of current members. Fails with store.ErrValidation
	// otherwise; no partial reorder.
	ReorderTag(ctx context.Context, tag string, newOrder []string) error

	// TagNames returns all tag names with at least one member.
	TagNames(ctx context.Context) ([]string, error)

	// TagsOf computes, per task ID, the tags it belongs to: declarative
	// tags from config patterns plus materialised explicit membership.
	TagsOf(ctx context.Context, tasks []task.Task) (map[string][]string, error)

	// SyncTags reconciles every declarative tag against the given task
	// set: removals before additions, quick launch untouched.
	SyncTags(ctx context.Context, tasks []task.Task, patternsByTag map[string][]pattern.Pattern) ([]tagging.ReconcileResult, error)

	// RefreshSummaries brings summaries and embeddings up to date.
	// Partial failure is success; the error is non-nil only when every
	// pending task failed. onProgress may be nil.
	RefreshSummaries(ctx context.Context, tasks []task.Task, onProgress semantic.ProgressFunc) (semantic.RefreshResult, error)

	// Search returns the top-K task IDs for a query by cosine similarity.
	// Fails loudly when the embedder is unavailable; never falls back to
	// substring matching.
	Search(ctx context.Context, query string) ([]semantic.Match, error)

	// Summary returns a task's stored summary record, or store.ErrNotFound.
	Summary(ctx context.Context, taskID string) (*store.SummaryRecord, error)

	// ImportLegacy imports the pre-database flat-file summary cache,
	// returning the number of records imported.
	ImportLegacy(ctx context.Context) (int, error)
}
