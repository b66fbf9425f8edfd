// Package semantic implements the summary and embedding pipeline behind
// semantic task search.
//
// The pipeline is deliberately fail-loud: when the summarizer or embedder is
// unavailable, operations return errors instead of degrading to substring
// matching. A summary without an embedding would let broken search silently
// fall back to naive text matching, so the two are stored together or not at
// all.
package semantic

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotAvailable indicates the external model endpoint cannot be
	// reached at all. Surfaced to the caller; the next call retries
	// initialisation from scratch.
	ErrNotAvailable = errors.New("model not available")
	// ErrTransient indicates a model call failed in a way that may succeed
	// on retry (timeout, 5xx, truncated response).
	ErrTransient = errors.New("transient model error")
	// ErrEmptyResult indicates the model returned an empty summary or
	// embedding. Treated like a failure: nothing is stored.
	ErrEmptyResult = errors.New("model returned empty result")
)

// Summary is the summarizer's product for one task.
type Summary struct {
	Text            string
	SecurityWarning string // non-empty when the model flagged the script
}

// Summarizer produces a natural-language summary of a task definition.
// Implementations are external model boundaries: slow, sometimes down,
// never faked by the core.
type Summarizer interface {
	Summarize(ctx context.Context, label, typ, command, content string) (Summary, error)
}

// Embedder turns text into a fixed-length vector. Index and query embeddings
// must come from the same Embedder; mixing models makes scores meaningless.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// retry policy for summarizer availability: external model runtimes can be
// slow to start, so a few fixed-backoff attempts are worth the wait before
// failing loudly. Embedding calls are not retried here; the orchestrator
// surfaces their errors directly.
const (
	retryAttempts = 3
	retryBackoff  = 2 * time.Second
)

// withRetry runs fn up to retryAttempts times with fixed backoff, retrying
// only transient and availability errors. Context cancellation stops the
// loop between attempts.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff):
			}
		}
		err = fn()
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrTransient) && !errors.Is(err, ErrNotAvailable) {
			return err
		}
	}
	return err
}
