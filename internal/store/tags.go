// tags.go implements ordered tag membership operations.
//
// Both explicit tags and the reserved "quick" pinning tag live here; quick
// launch is just a tag whose membership is never rewritten by declarative
// resolution. Ordering is user-visible (drag/drop, append position), carried
// by display_order with insertion sequence breaking ties.
//
// Mutations are idempotent where the UI expects it: adding an existing
// member or removing an absent one is a silent no-op, so "star a command
// twice" can never fail or duplicate.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jpl-au/tasklens/internal/validate"
)

// AddMember appends a pattern to a tag's member list. The new row takes
// display_order = current max + 1 for that tag, computed inside the same
// transaction as the insert so concurrent appends cannot collide. Duplicate
// (tag, pattern) pairs are silent no-ops.
func (s *SQLiteStore) AddMember(ctx context.Context, tag, pat string) error {
	if err := validate.Tag(tag); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := validate.Pattern(pat); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		var next int
		err := tx.QueryRowContext(ctx, `
			SELECT COALESCE(MAX(display_order), -1) + 1 FROM tag_members WHERE tag = ?
		`, tag).Scan(&next)
		if err != nil {
			return fmt.Errorf("next display order for %s: %w", tag, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO tag_members (tag, pattern, display_order, created_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (tag, pattern) DO NOTHING
		`, tag, pat, next, time.Now().Unix())
		if err != nil {
			return fmt.Errorf("add member %s to %s: %w", pat, tag, err)
		}
		return nil
	})
}

// RemoveMember deletes a pattern from a tag. Removing a non-member is a
// silent no-op.
func (s *SQLiteStore) RemoveMember(ctx context.Context, tag, pat string) error {
	if err := validate.Tag(tag); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM tag_members WHERE tag = ? AND pattern = ?
	`, tag, pat)
	if err != nil {
		return fmt.Errorf("remove member %s from %s: %w", pat, tag, err)
	}
	return nil
}

// ListMembers returns a tag's members sorted by display_order ascending,
// insertion sequence breaking ties. An unknown tag returns an empty list.
func (s *SQLiteStore) ListMembers(ctx context.Context, tag string) ([]Member, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, tag, pattern, display_order, created_at
		FROM tag_members
		WHERE tag = ?
		ORDER BY display_order ASC, seq ASC
	`, tag)
	if err != nil {
		return nil, fmt.Errorf("list members of %s: %w", tag, err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.Seq, &m.Tag, &m.Pattern, &m.DisplayOrder, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// Reorder replaces a tag's ordering with newOrder, which must be a
// permutation of the current member patterns. Fresh sequential display
// orders are assigned matching the new positions. A mismatched input set
// fails with ErrValidation before any mutation; there is no partial reorder.
func (s *SQLiteStore) Reorder(ctx context.Context, tag string, newOrder []string) error {
	if err := validate.Tag(tag); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT pattern FROM tag_members WHERE tag = ?`, tag)
		if err != nil {
			return fmt.Errorf("load members of %s: %w", tag, err)
		}
		current := make(map[string]bool)
		for rows.Next() {
			var p string
			if err := rows.Scan(&p); err != nil {
				rows.Close()
				return fmt.Errorf("scan member: %w", err)
			}
			current[p] = true
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		if len(newOrder) != len(current) {
			return fmt.Errorf("%w: reorder list has %d entries, tag %s has %d members",
				ErrValidation, len(newOrder), tag, len(current))
		}
		seen := make(map[string]bool, len(newOrder))
		for _, p := range newOrder {
			if !current[p] {
				return fmt.Errorf("%w: %q is not a member of %s", ErrValidation, p, tag)
			}
			if seen[p] {
				return fmt.Errorf("%w: duplicate entry %q in reorder list", ErrValidation, p)
			}
			seen[p] = true
		}

		for i, p := range newOrder {
			if _, err := tx.ExecContext(ctx, `
				UPDATE tag_members SET display_order = ? WHERE tag = ? AND pattern = ?
			`, i, tag, p); err != nil {
				return fmt.Errorf("reorder %s: %w", tag, err)
			}
		}
		return nil
	})
}

// ListTagNames returns all tag names with at least one member, sorted.
func (s *SQLiteStore) ListTagNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT tag FROM tag_members ORDER BY tag`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
