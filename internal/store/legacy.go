// legacy.go migrates the pre-database flat-file summary cache.
//
// Early tasklens versions kept summaries in a single JSON file mapping task
// ID to {contentHash, summary, updatedAt}, with no embeddings. Imported rows
// therefore land incomplete and stay out of search until the next refresh
// re-embeds them. The legacy file is removed only after the import has been
// verified row-for-row, so a failed migration leaves it in place for retry.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// legacyEntry is one record of the old flat-file format.
type legacyEntry struct {
	ContentHash string `json:"contentHash"`
	Summary     string `json:"summary"`
	UpdatedAt   int64  `json:"updatedAt"`
}

// ImportLegacy imports the legacy summary cache at path into the summaries
// table and deletes the file after a verified successful import. Returns the
// number of records imported. A missing file imports zero records without
// error; a malformed file is an error and is left untouched.
func ImportLegacy(ctx context.Context, s *SQLiteStore, path string) (int, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read legacy cache %s: %w", path, err)
	}

	var entries map[string]legacyEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0, fmt.Errorf("malformed legacy cache %s: %w", path, err)
	}

	count := 0
	for id, e := range entries {
		if id == "" || e.Summary == "" {
			continue // skip rows that would violate the complete-summary rule
		}
		rec := SummaryRecord{
			TaskID:      id,
			ContentHash: e.ContentHash,
			Summary:     e.Summary,
			UpdatedAt:   e.UpdatedAt,
		}
		if err := s.UpsertSummary(ctx, rec); err != nil {
			return count, fmt.Errorf("import legacy record %s: %w", id, err)
		}
		count++
	}

	// Verify every imported row reads back before deleting the source.
	for id, e := range entries {
		if id == "" || e.Summary == "" {
			continue
		}
		rec, err := s.GetSummary(ctx, id)
		if err != nil {
			return count, fmt.Errorf("verify legacy import %s: %w", id, err)
		}
		if rec.Summary != e.Summary || rec.ContentHash != e.ContentHash {
			return count, fmt.Errorf("verify legacy import %s: stored record does not match source", id)
		}
	}

	if err := os.Remove(path); err != nil {
		return count, fmt.Errorf("remove legacy cache %s: %w", path, err)
	}
	return count, nil
}
