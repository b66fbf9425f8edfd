// interfaces.go defines the Store interface implemented by SQLiteStore.
//
// Consumers depend on this interface rather than the concrete type, which
// keeps the semantic pipeline and the service layer testable against small
// fakes and leaves room for alternative backends.

package store

import (
	"context"
	"database/sql"
)

// Store is the persistence contract for tag membership and task summaries.
// Every mutating call persists before returning; callers may assume
// durability on a nil error.
type Store interface {
	// Init creates tables if needed. Safe to call repeatedly.
	Init() error
	// Close releases the database connection.
	Close() error
	// Path returns the backing database file path.
	Path() string

	// AddMember appends a pattern to a tag (idempotent).
	AddMember(ctx context.Context, tag, pattern string) error
	// RemoveMember deletes a pattern from a tag (no-op when absent).
	RemoveMember(ctx context.Context, tag, pattern string) error
	// ListMembers returns members ordered by display order.
	ListMembers(ctx context.Context, tag string) ([]Member, error)
	// Reorder replaces a tag's order with a permutation of its members.
	Reorder(ctx context.Context, tag string, newOrder []string) error
	// ListTagNames returns all tag names with members.
	ListTagNames(ctx context.Context) ([]string, error)

	// GetSummary returns a task's summary record or ErrNotFound.
	GetSummary(ctx context.Context, taskID string) (*SummaryRecord, error)
	// UpsertSummary fully replaces a task's summary record.
	UpsertSummary(ctx context.Context, rec SummaryRecord) error
	// AllSummaries returns every summary record ordered by task ID.
	AllSummaries(ctx context.Context) ([]SummaryRecord, error)
	// DeleteSummary removes a task's summary record (no-op when absent).
	DeleteSummary(ctx context.Context, taskID string) error

	// Tx runs fn inside a transaction.
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error
}
