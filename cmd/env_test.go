// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full stack:
// command parsing -> workspace layer -> store layer -> SQLite.
//
// Refresh and search are exercised at the unit level in internal/semantic
// with fake summarizers and embedders; running them here would require a
// live model server.

package cmd

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the tasklens binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "tasklens-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "tasklens"
		if os.PathSeparator == '\\' {
			binaryName = "tasklens.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// manifestTask mirrors one tasklens.json entry.
type manifestTask struct {
	Label    string `json:"label"`
	Type     string `json:"type"`
	Command  string `json:"command"`
	FilePath string `json:"filePath"`
	Category string `json:"category,omitempty"`
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	binary string
}

// newTestEnv creates a temporary directory with an initialised tasklens
// store and a manifest of three tasks backed by real files.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	binary := buildBinary(t)
	dir := t.TempDir()

	env := &testEnv{t: t, dir: dir, binary: binary}

	env.writeFile("package.json", `{"scripts": {"build": "tsc", "test": "jest"}}`)
	env.writeFile("deploy.sh", "#!/bin/sh\nkubectl apply -f k8s/\n")
	env.writeManifest([]manifestTask{
		{Label: "build", Type: "npm", Command: "npm run build", FilePath: "package.json"},
		{Label: "test", Type: "npm", Command: "npm run test", FilePath: "package.json"},
		{Label: "deploy", Type: "shell", Command: "./deploy.sh", FilePath: "deploy.sh"},
	})

	env.run("init")

	return env
}

// writeManifest writes tasklens.json in the workspace.
func (e *testEnv) writeManifest(tasks []manifestTask) {
	e.t.Helper()
	data, err := json.Marshal(tasks)
	require.NoError(e.t, err)
	require.NoError(e.t, os.WriteFile(filepath.Join(e.dir, "tasklens.json"), data, 0644))
}

// writeFile writes a file relative to the workspace.
func (e *testEnv) writeFile(name, content string) {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0644))
}

// removeFile deletes a file relative to the workspace.
func (e *testEnv) removeFile(name string) {
	e.t.Helper()
	require.NoError(e.t, os.Remove(filepath.Join(e.dir, name)))
}

// run executes tasklens with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("tasklens %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes tasklens and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// notContains checks that output does not contain the string.
func (e *testEnv) notContains(output, unexpected string) {
	e.t.Helper()
	assert.NotContains(e.t, output, unexpected)
}

// lineOrder asserts that the given substrings appear in output in order.
func (e *testEnv) lineOrder(output string, first, second string) {
	e.t.Helper()
	i := strings.Index(output, first)
	j := strings.Index(output, second)
	require.GreaterOrEqual(e.t, i, 0, "missing %q in output:\n%s", first, output)
	require.GreaterOrEqual(e.t, j, 0, "missing %q in output:\n%s", second, output)
	assert.Less(e.t, i, j, "%q should come before %q in output:\n%s", first, second, output)
}
