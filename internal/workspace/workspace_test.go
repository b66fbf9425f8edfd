package workspace_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/tasklens/internal/task"
	"github.com/jpl-au/tasklens/internal/workspace"
)

func openWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	w, err := workspace.Open(filepath.Join(t.TempDir(), "tasklens.db"))
	require.NoError(t, err)
	return w
}

func TestOperationsAfterClose(t *testing.T) {
	w := openWorkspace(t)
	require.NoError(t, w.Close())

	tasks := []task.Task{
		{Label: "build", Type: "npm", Command: "npm run build"},
	}
	for i := range tasks {
		tasks[i].Normalize()
	}

	// Errors, never panics: the model client is rebuilt on demand and the
	// closed store surfaces its own error.
	_, err := w.RefreshSummaries(context.Background(), tasks, nil)
	assert.Error(t, err)

	_, err = w.Summary(context.Background(), tasks[0].ID)
	assert.Error(t, err)
}
