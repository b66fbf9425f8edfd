// summaries.go implements the per-task summary and embedding rows.
//
// Upsert is a full replace: callers supply the complete record (hash,
// summary, and embedding when available) in one call, so a failed pipeline
// step can never leave a half-written row behind. The empty-summary check
// here is the last line of defence for that invariant; the orchestrator
// enforces it earlier with a clearer error.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetSummary returns the summary record for a task, or ErrNotFound.
func (s *SQLiteStore) GetSummary(ctx context.Context, taskID string) (*SummaryRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT task_id, content_hash, summary, embedding, updated_at
		FROM summaries WHERE task_id = ?
	`, taskID)

	rec, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get summary %s: %w", taskID, err)
	}
	return rec, nil
}

// UpsertSummary stores a record, replacing any existing row for the task.
// Records with an empty summary are rejected with ErrIncompleteRecord.
func (s *SQLiteStore) UpsertSummary(ctx context.Context, rec SummaryRecord) error {
	if rec.TaskID == "" {
		return fmt.Errorf("%w: missing task id", ErrValidation)
	}
	if rec.Summary == "" {
		return fmt.Errorf("%w: empty summary for %s", ErrIncompleteRecord, rec.TaskID)
	}
	if rec.UpdatedAt == 0 {
		rec.UpdatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO summaries (task_id, content_hash, summary, embedding, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (task_id) DO UPDATE SET
			content_hash = excluded.content_hash,
			summary      = excluded.summary,
			embedding    = excluded.embedding,
			updated_at   = excluded.updated_at
	`, rec.TaskID, rec.ContentHash, rec.Summary, encodeVector(rec.Embedding), rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert summary %s: %w", rec.TaskID, err)
	}
	return nil
}

// AllSummaries returns every summary record, ordered by task ID for
// deterministic iteration. Candidate order feeds similarity tie-breaks.
func (s *SQLiteStore) AllSummaries(ctx context.Context) ([]SummaryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT task_id, content_hash, summary, embedding, updated_at
		FROM summaries ORDER BY task_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	defer rows.Close()

	var recs []SummaryRecord
	for rows.Next() {
		rec, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

// DeleteSummary removes a task's summary row. Deleting an absent row is a
// silent no-op, mirroring tag removal semantics.
func (s *SQLiteStore) DeleteSummary(ctx context.Context, taskID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM summaries WHERE task_id = ?`, taskID)
	if err != nil {
		return fmt.Errorf("delete summary %s: %w", taskID, err)
	}
	return nil
}

// scanSummary extracts a SummaryRecord from a row, decoding the embedding
// blob and handling its NULL state.
func scanSummary(sc scanner) (*SummaryRecord, error) {
	var rec SummaryRecord
	var blob []byte
	if err := sc.Scan(&rec.TaskID, &rec.ContentHash, &rec.Summary, &blob, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	vec, err := decodeVector(blob)
	if err != nil {
		return nil, err
	}
	rec.Embedding = vec
	return &rec, nil
}
