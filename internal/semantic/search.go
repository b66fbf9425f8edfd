// search.go implements query-time semantic search.
//
// Availability is a direct function of embedding completeness: incomplete
// records never enter ranking, and a query that cannot be embedded fails the
// whole search. Callers can therefore tell "no results" apart from "search
// pipeline unavailable".

package semantic

import (
	"context"
	"fmt"

	"github.com/jpl-au/tasklens/internal/store"
)

// Default search parameters, chosen for a tree-view result list.
const (
	DefaultTopK     = 10
	DefaultMinScore = 0.3
)

// Search embeds the query with the same embedder used for indexing and
// returns the top-K task IDs by cosine similarity. Failing to embed the
// query fails the search; there is no substring fallback.
func Search(ctx context.Context, st store.Store, embedder Embedder, query string, topK int, minScore float64) ([]Match, error) {
	queryVec, err := embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	recs, err := st.AllSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load summaries: %w", err)
	}

	candidates := make([]Candidate, 0, len(recs))
	for _, rec := range recs {
		if !rec.Complete() {
			continue // needs-work rows never serve results
		}
		candidates = append(candidates, Candidate{ID: rec.TaskID, Vector: rec.Embedding})
	}

	return Rank(queryVec, candidates, topK, minScore), nil
}
