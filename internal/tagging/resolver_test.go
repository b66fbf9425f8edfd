package tagging_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/tasklens/internal/pattern"
	"github.com/jpl-au/tasklens/internal/store"
	"github.com/jpl-au/tasklens/internal/tagging"
	"github.com/jpl-au/tasklens/internal/task"
)

func setupStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())
	t.Cleanup(func() { s.Close() })
	return s
}

func testTasks() []task.Task {
	tasks := []task.Task{
		{Label: "build", Type: "npm", Command: "npm run build", FilePath: "package.json"},
		{Label: "test", Type: "npm", Command: "npm run test", FilePath: "package.json"},
		{Label: "deploy", Type: "shell", Command: "./deploy.sh", FilePath: "deploy.sh"},
	}
	for i := range tasks {
		tasks[i].Normalize()
	}
	return tasks
}

func patterns(raw ...string) []pattern.Pattern {
	out := make([]pattern.Pattern, len(raw))
	for i, r := range raw {
		out[i] = pattern.Parse(r)
	}
	return out
}

func memberPatterns(t *testing.T, s store.Store, tag string) []string {
	t.Helper()
	members, err := s.ListMembers(context.Background(), tag)
	require.NoError(t, err)
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Pattern
	}
	return out
}

func TestResolve(t *testing.T) {
	tasks := testTasks()

	byTag := map[string][]pattern.Pattern{
		"ci":    patterns("npm:*"),
		"infra": patterns("shell:deploy"),
	}

	got := tagging.Resolve(tasks, byTag)

	assert.True(t, got["npm:package.json:build"]["ci"])
	assert.True(t, got["npm:package.json:test"]["ci"])
	assert.False(t, got["npm:package.json:build"]["infra"])
	assert.True(t, got["shell:deploy.sh:deploy"]["infra"])
}

func TestReconcileTag_Materialises(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	tasks := testTasks()

	res, err := tagging.ReconcileTag(ctx, s, "ci", tasks, patterns("npm:*"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, 0, res.Removed)

	assert.Equal(t,
		[]string{"npm:package.json:build", "npm:package.json:test"},
		memberPatterns(t, s, "ci"))
}

func TestReconcileTag_Idempotent(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	tasks := testTasks()

	_, err := tagging.ReconcileTag(ctx, s, "ci", tasks, patterns("npm:*"))
	require.NoError(t, err)

	res, err := tagging.ReconcileTag(ctx, s, "ci", tasks, patterns("npm:*"))
	require.NoError(t, err)
	assert.Zero(t, res.Added)
	assert.Zero(t, res.Removed)
}

func TestReconcileTag_PrunesDisappearedTask(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	tasks := testTasks()

	_, err := tagging.ReconcileTag(ctx, s, "ci", tasks, patterns("npm:*"))
	require.NoError(t, err)

	// The test script disappears from the next discovery run
	shrunk := []task.Task{tasks[0], tasks[2]}

	res, err := tagging.ReconcileTag(ctx, s, "ci", shrunk, patterns("npm:*"))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Added)
	assert.Equal(t, 1, res.Removed)

	assert.Equal(t, []string{"npm:package.json:build"}, memberPatterns(t, s, "ci"))
}

func TestReconcileTag_LeavesManualPatternsAlone(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	tasks := testTasks()

	// A user-added non-ID pattern rides the same tag
	require.NoError(t, s.AddMember(ctx, "ci", "make:*"))

	_, err := tagging.ReconcileTag(ctx, s, "ci", tasks, patterns("npm:build"))
	require.NoError(t, err)

	got := memberPatterns(t, s, "ci")
	assert.Contains(t, got, "make:*")
	assert.Contains(t, got, "npm:package.json:build")
}

func TestReconcileTag_LeavesMultiColonGlobAlone(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	tasks := testTasks()

	// Two colons like a task ID, but the glob marks it as a user pattern
	require.NoError(t, s.AddMember(ctx, "ci", "shell:scripts/*:dev*"))

	res, err := tagging.ReconcileTag(ctx, s, "ci", tasks, patterns("npm:build"))
	require.NoError(t, err)
	assert.Zero(t, res.Removed)

	assert.Contains(t, memberPatterns(t, s, "ci"), "shell:scripts/*:dev*")
}

func TestReconcileTag_RemovalsBeforeAdditions(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	tasks := testTasks()

	_, err := tagging.ReconcileTag(ctx, s, "ci", tasks, patterns("npm:build"))
	require.NoError(t, err)

	// Pattern change swaps the entire membership
	res, err := tagging.ReconcileTag(ctx, s, "ci", tasks, patterns("npm:test"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Removed)

	assert.Equal(t, []string{"npm:package.json:test"}, memberPatterns(t, s, "ci"))
}

func TestReconcileAll_SkipsQuick(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	tasks := testTasks()

	require.NoError(t, s.AddMember(ctx, store.QuickTag, "npm:package.json:build"))

	byTag := map[string][]pattern.Pattern{
		"ci":           patterns("npm:*"),
		store.QuickTag: patterns("shell:*"),
	}

	results, err := tagging.ReconcileAll(ctx, s, tasks, byTag)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ci", results[0].Tag)

	// Quick membership untouched
	assert.Equal(t, []string{"npm:package.json:build"}, memberPatterns(t, s, store.QuickTag))
}
