// refresh.go implements the incremental summarization pipeline.
//
// Per task, per run:
//
//	unchanged hash + embedding present        -> skipped
//	changed hash or embedding missing         -> summarize -> embed -> store
//
// Summary and embedding are written in a single upsert, so a failure at
// either model step leaves the task's previous record (if any) untouched.
// Items run sequentially: the external model API is the bottleneck and
// sequential progress reporting stays monotonic. Cancellation is cooperative
// and observed between items; an in-flight model call runs to its own
// timeout first.

package semantic

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jpl-au/tasklens/internal/fingerprint"
	"github.com/jpl-au/tasklens/internal/store"
	"github.com/jpl-au/tasklens/internal/task"
)

// ProgressFunc receives (done, total) after every processed item, success or
// failure. done increases by exactly one per call.
type ProgressFunc func(done, total int)

// ItemResult describes what happened to one task during a refresh.
type ItemResult struct {
	TaskID     string
	OldSummary string // previous summary text, empty if none
	Summary    string // new summary text, empty on skip/failure
	Warning    string // security note from the summarizer
	Err        error  // nil on success or skip
	Skipped    bool
}

// RefreshResult is the outcome of one refresh run.
type RefreshResult struct {
	Stored  int // tasks that reached a complete stored record
	Skipped int // tasks whose record was already current
	Failed  int // tasks whose model calls failed
	Items   []ItemResult
}

// Orchestrator wires fingerprinting, the external models, and the store.
type Orchestrator struct {
	store      store.Store
	summarizer Summarizer
	embedder   Embedder
}

// NewOrchestrator builds a pipeline over the given collaborators.
func NewOrchestrator(st store.Store, s Summarizer, e Embedder) *Orchestrator {
	return &Orchestrator{store: st, summarizer: s, embedder: e}
}

// Refresh brings summaries and embeddings up to date for the given tasks.
// Returns the per-item results; the error is non-nil only when every pending
// item failed (partial progress is success - failed items keep their old
// hash state and are reprocessed on the next run). onProgress may be nil.
func (o *Orchestrator) Refresh(ctx context.Context, tasks []task.Task, onProgress ProgressFunc) (RefreshResult, error) {
	var res RefreshResult

	type pendingItem struct {
		t       task.Task
		content string
		hash    string
		old     *store.SummaryRecord // nil when no prior record
	}

	var pending []pendingItem
	for _, t := range tasks {
		content := taskContent(t)
		hash := fingerprint.Task(t.Label, t.Type, t.Command, content)
		rec, err := o.store.GetSummary(ctx, t.ID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			rec = nil
		case err != nil:
			return res, fmt.Errorf("reading summary state: %w", err)
		}
		if rec != nil && rec.ContentHash == hash && rec.Complete() {
			res.Skipped++
			res.Items = append(res.Items, ItemResult{TaskID: t.ID, Skipped: true})
			continue
		}
		pending = append(pending, pendingItem{t: t, content: content, hash: hash, old: rec})
	}

	total := len(pending)
	for done, item := range pending {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		ir := o.refreshOne(ctx, item.t, item.content, item.hash)
		if item.old != nil {
			ir.OldSummary = item.old.Summary
		}
		if ir.Err != nil {
			res.Failed++
		} else {
			res.Stored++
		}
		res.Items = append(res.Items, ir)

		if onProgress != nil {
			onProgress(done+1, total)
		}
	}

	if total > 0 && res.Stored == 0 {
		return res, fmt.Errorf("refresh failed for all %d pending tasks: %w", total, firstError(res.Items))
	}
	return res, nil
}

// refreshOne runs summarize -> embed -> upsert for a single task. Any
// failure returns without writing; the previous record stays intact.
func (o *Orchestrator) refreshOne(ctx context.Context, t task.Task, content, hash string) ItemResult {
	ir := ItemResult{TaskID: t.ID}

	var summary Summary
	err := withRetry(ctx, func() error {
		var serr error
		summary, serr = o.summarizer.Summarize(ctx, t.Label, t.Type, t.Command, content)
		return serr
	})
	if err != nil {
		ir.Err = fmt.Errorf("summarize %s: %w", t.ID, err)
		return ir
	}
	if summary.Text == "" {
		ir.Err = fmt.Errorf("summarize %s: %w", t.ID, ErrEmptyResult)
		return ir
	}

	embedding, err := o.embedder.Embed(ctx, summary.Text)
	if err != nil {
		// Deliberately no store here: a summary without its embedding would
		// let search degrade silently.
		ir.Err = fmt.Errorf("embed %s: %w", t.ID, err)
		return ir
	}

	rec := store.SummaryRecord{
		TaskID:      t.ID,
		ContentHash: hash,
		Summary:     summary.Text,
		Embedding:   embedding,
		UpdatedAt:   time.Now().Unix(),
	}
	if err := o.store.UpsertSummary(ctx, rec); err != nil {
		ir.Err = fmt.Errorf("store summary %s: %w", t.ID, err)
		return ir
	}

	ir.Summary = summary.Text
	ir.Warning = summary.SecurityWarning
	return ir
}

// taskContent reads the task's backing file for fingerprinting and
// summarization. An unreadable file yields empty content, so the task still
// fingerprints on its invocation alone and settles to a stable state.
func taskContent(t task.Task) string {
	if t.FilePath == "" {
		return ""
	}
	data, err := os.ReadFile(t.FilePath)
	if err != nil {
		return ""
	}
	return string(data)
}

// firstError returns the first item failure, for wrapping into the
// all-failed error.
func firstError(items []ItemResult) error {
	for _, ir := range items {
		if ir.Err != nil {
			return ir.Err
		}
	}
	return errors.New("no failure recorded")
}
