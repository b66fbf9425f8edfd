// schema.go defines the SQLite database schema and provides schema execution
// helpers.
//
// Schema files are embedded from the sql/ directory and executed in
// alphabetical order (hence the numeric prefixes like 001_, 002_). This keeps
// each table's schema self-contained and reviewable, produces cleaner git
// diffs when the schema changes, and guarantees deterministic execution
// order via the numbered prefixes.

package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed sql/*.sql
var schemas embed.FS

var (
	// ErrNotFound indicates the requested tag, member, or summary does not
	// exist. Callers should check for this to distinguish missing data from
	// other errors; remove-type operations treat it as a no-op instead.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates malformed caller input (bad tag name, reorder
	// list that is not a permutation of current members). Rejected before
	// any mutation.
	ErrValidation = errors.New("validation failed")
	// ErrIncompleteRecord rejects summary upserts missing the summary text.
	// The store never coerces an empty summary into a valid state.
	ErrIncompleteRecord = errors.New("summary record incomplete")
)

// ExecEmbedded executes all .sql files from an embedded filesystem in
// alphabetical order. Each .sql file should use IF NOT EXISTS clauses for
// idempotency.
func ExecEmbedded(db *sql.DB, fsys embed.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}

	// Sort entries to ensure deterministic order (should already be sorted,
	// but be explicit)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := dir + "/" + entry.Name()
		data, err := fsys.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// execSchema executes the embedded core schema files.
func execSchema(db *sql.DB) error {
	return ExecEmbedded(db, schemas, "sql")
}
