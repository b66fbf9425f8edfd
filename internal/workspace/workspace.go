// Package workspace implements service.Service over the SQLite store, the
// config-driven pattern lists, and the external model client.
//
// Concurrency: every mutating operation takes the workspace mutex, giving
// the single-writer guarantee the store's invariants assume (display-order
// computation and reconciliation never interleave). Reads go straight to
// SQLite, which WAL mode keeps consistent under a concurrent writer.
//
// The store handle is re-validated before each operation: a backing file
// deleted externally (workspace cleanup, git clean) is detected and the
// handle transparently re-initialised rather than left dead.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jpl-au/tasklens/internal/config"
	"github.com/jpl-au/tasklens/internal/pattern"
	"github.com/jpl-au/tasklens/internal/repo"
	"github.com/jpl-au/tasklens/internal/semantic"
	"github.com/jpl-au/tasklens/internal/service"
	"github.com/jpl-au/tasklens/internal/store"
	"github.com/jpl-au/tasklens/internal/tagging"
	"github.com/jpl-au/tasklens/internal/task"
)

// Workspace is the concrete Service implementation.
type Workspace struct {
	mu  sync.Mutex
	st  *store.SQLiteStore
	cfg *config.Config

	// model is the lazily initialised external client. Created on first
	// use under the mutex, reused afterwards, released by Close. A later
	// call re-creates it, so the client never outlives Close as a stale
	// handle.
	model *semantic.Client
}

var _ service.Service = (*Workspace)(nil)

// New opens the workspace service. The database is discovered by walking up
// from the current directory; the legacy summary cache, when present, is
// imported on open.
func New() (*Workspace, error) {
	dbPath, err := repo.Discover()
	if err != nil {
		return nil, err
	}
	return Open(dbPath)
}

// Open opens the workspace service on an explicit database path.
func Open(dbPath string) (*Workspace, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if err := st.Init(); err != nil {
		st.Close()
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		// Malformed config degrades to "no declarative tags"; explicit
		// membership keeps working.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		cfg = &config.Config{}
	}

	w := &Workspace{st: st, cfg: cfg}

	if _, err := w.ImportLegacy(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: legacy summary import: %v\n", err)
	}
	return w, nil
}

// Close releases the store. The model client holds no connection state
// beyond its HTTP client, which the runtime reclaims.
func (w *Workspace) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.model = nil
	return w.st.Close()
}

// Config exposes the loaded configuration to the command layer.
func (w *Workspace) Config() *config.Config {
	return w.cfg
}

// ensureStore re-opens the store when its backing file was removed
// underneath the live handle. Must be called with the mutex held.
func (w *Workspace) ensureStore() error {
	path := w.st.Path()
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	// Backing file gone: drop the dead handle and rebuild.
	_ = w.st.Close()
	st, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("reopen store %s: %w", path, err)
	}
	if err := st.Init(); err != nil {
		st.Close()
		return fmt.Errorf("reinit store %s: %w", path, err)
	}
	w.st = st
	return nil
}

// client returns the model client, initialising it from config on first
// use. Must be called with the mutex held.
func (w *Workspace) client() *semantic.Client {
	if w.model == nil {
		m := w.cfg.Model
		w.model = semantic.NewClient(m.BaseURL, m.EmbedModel, m.SummarizeModel)
	}
	return w.model
}

// Tasks loads the discoverer-produced manifest next to the repository.
func (w *Workspace) Tasks(ctx context.Context) ([]task.Task, error) {
	_ = ctx
	return task.LoadManifest(repo.ManifestPath())
}

// AddTag appends a member to a tag.
func (w *Workspace) AddTag(ctx context.Context, tag, pat string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.ensureStore(); err != nil {
		return err
	}
	return w.st.AddMember(ctx, tag, pat)
}

// RemoveTag deletes a member from a tag.
func (w *Workspace) RemoveTag(ctx context.Context, tag, pat string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.ensureStore(); err != nil {
		return err
	}
	return w.st.RemoveMember(ctx, tag, pat)
}

// TagMembers returns a tag's ordered members.
func (w *Workspace) TagMembers(ctx context.Context, tag string) ([]store.Member, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.ensureStore(); err != nil {
		return nil, err
	}
	return w.st.ListMembers(ctx, tag)
}

// ReorderTag replaces a tag's member order.
func (w *Workspace) ReorderTag(ctx context.Context, tag string, newOrder []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.ensureStore(); err != nil {
		return err
	}
	return w.st.Reorder(ctx, tag, newOrder)
}

// TagNames returns all tags with members.
func (w *Workspace) TagNames(ctx context.Context) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.ensureStore(); err != nil {
		return nil, err
	}
	return w.st.ListTagNames(ctx)
}

// TagsOf merges declarative resolution with materialised membership.
func (w *Workspace) TagsOf(ctx context.Context, tasks []task.Task) (map[string][]string, error) {
	declared := tagging.Resolve(tasks, w.cfg.TagPatterns())

	names, err := w.TagNames(ctx)
	if err != nil {
		return nil, err
	}

	known := task.ByID(tasks)
	out := make(map[string][]string)
	seen := make(map[string]map[string]bool)

	add := func(id, tag string) {
		if seen[id] == nil {
			seen[id] = make(map[string]bool)
		}
		if !seen[id][tag] {
			seen[id][tag] = true
			out[id] = append(out[id], tag)
		}
	}

	for _, tag := range names {
		members, err := w.TagMembers(ctx, tag)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			if _, ok := known[m.Pattern]; ok {
				add(m.Pattern, tag)
				continue
			}
			// Stored pattern rows resolve against the live task set.
			p := pattern.Parse(m.Pattern)
			for _, t := range tasks {
				if pattern.Matches(t, p) {
					add(t.ID, tag)
				}
			}
		}
	}

	for id, tags := range declared {
		for tag := range tags {
			add(id, tag)
		}
	}
	return out, nil
}

// SyncTags reconciles declarative tags against the task set.
func (w *Workspace) SyncTags(ctx context.Context, tasks []task.Task, patternsByTag map[string][]pattern.Pattern) ([]tagging.ReconcileResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.ensureStore(); err != nil {
		return nil, err
	}
	return tagging.ReconcileAll(ctx, w.st, tasks, patternsByTag)
}

// RefreshSummaries runs the summarization pipeline over the task set.
func (w *Workspace) RefreshSummaries(ctx context.Context, tasks []task.Task, onProgress semantic.ProgressFunc) (semantic.RefreshResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.ensureStore(); err != nil {
		return semantic.RefreshResult{}, err
	}
	c := w.client()
	o := semantic.NewOrchestrator(w.st, c, c)
	return o.Refresh(ctx, tasks, onProgress)
}

// Search runs semantic search with configured top-K and score floor.
func (w *Workspace) Search(ctx context.Context, query string) ([]semantic.Match, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.ensureStore(); err != nil {
		return nil, err
	}
	return semantic.Search(ctx, w.st, w.client(), query, w.cfg.TopK(), w.cfg.MinScore())
}

// Summary returns a task's stored summary record.
func (w *Workspace) Summary(ctx context.Context, taskID string) (*store.SummaryRecord, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.ensureStore(); err != nil {
		return nil, err
	}
	return w.st.GetSummary(ctx, taskID)
}

// ImportLegacy migrates the flat-file summary cache sitting next to the
// database, when one exists.
func (w *Workspace) ImportLegacy(ctx context.Context) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.ensureStore(); err != nil {
		return 0, err
	}
	legacyPath := filepath.Join(filepath.Dir(w.st.Path()), repo.LegacyCacheFile)
	return store.ImportLegacy(ctx, w.st, legacyPath)
}
