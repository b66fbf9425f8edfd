package cmd

import "testing"

func TestSummary_Missing(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("summary", "npm:package.json:build")
	if err == nil {
		t.Error("summary for unrefreshed task succeeded, want error")
	}
	env.contains(out, "tasklens refresh")
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("version")
	env.contains(out, "Build Tag")
	env.contains(out, "Go Version")
}
