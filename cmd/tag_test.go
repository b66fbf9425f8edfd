package cmd

import (
	"strings"
	"testing"
)

func TestTag(t *testing.T) {
	t.Run("add single", func(t *testing.T) {
		env := newTestEnv(t)

		env.run("tag", "add", "ci", "npm:build")

		out := env.run("tag", "ls", "ci")
		env.contains(out, "npm:build")
	})

	t.Run("add multiple in order", func(t *testing.T) {
		env := newTestEnv(t)

		env.run("tag", "add", "ci", "npm:test", "npm:build", "shell:deploy")

		out := env.run("tag", "ls", "ci")
		env.lineOrder(out, "npm:test", "npm:build")
		env.lineOrder(out, "npm:build", "shell:deploy")
	})

	t.Run("add duplicate is idempotent", func(t *testing.T) {
		env := newTestEnv(t)

		env.run("tag", "add", "ci", "npm:build")
		env.run("tag", "add", "ci", "npm:test")
		env.run("tag", "add", "ci", "npm:build")

		out := env.run("tag", "ls", "ci")
		if count := strings.Count(out, "npm:build"); count != 1 {
			t.Errorf("tag ls count(npm:build) = %d, want 1", count)
		}
		// Re-adding must not move the member to the end
		env.lineOrder(out, "npm:build", "npm:test")
	})

	t.Run("pattern persists verbatim", func(t *testing.T) {
		env := newTestEnv(t)

		env.run("tag", "add", "ci", "npm:buil*")

		out := env.run("tag", "ls", "ci")
		env.contains(out, "npm:buil*")
	})

	t.Run("empty tag rejected", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("tag", "add", "", "npm:build")
		if err == nil {
			t.Error("tag add with empty tag succeeded, want error")
		}
	})
}

func TestTag_Remove(t *testing.T) {
	t.Run("removes member", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("tag", "add", "ci", "npm:build", "npm:test")

		env.run("tag", "rm", "ci", "npm:build")

		out := env.run("tag", "ls", "ci")
		env.notContains(out, "npm:build")
		env.contains(out, "npm:test")
	})

	t.Run("remove absent is a no-op", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("tag", "add", "ci", "npm:build")

		env.run("tag", "rm", "ci", "shell:deploy")

		out := env.run("tag", "ls", "ci")
		env.contains(out, "npm:build")
	})

	t.Run("survivors keep relative order", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("tag", "add", "ci", "npm:test", "npm:build", "shell:deploy")

		env.run("tag", "rm", "ci", "npm:build")

		out := env.run("tag", "ls", "ci")
		env.lineOrder(out, "npm:test", "shell:deploy")
	})
}

func TestTag_List(t *testing.T) {
	env := newTestEnv(t)
	env.run("tag", "add", "ci", "npm:build")
	env.run("tag", "add", "infra", "shell:deploy")

	out := env.run("tag", "ls")
	env.contains(out, "ci")
	env.contains(out, "infra")
}

func TestTag_Move(t *testing.T) {
	t.Run("reorders members", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("tag", "add", "ci", "npm:build", "npm:test")

		env.run("tag", "move", "ci", "npm:test", "npm:build")

		out := env.run("tag", "ls", "ci")
		env.lineOrder(out, "npm:test", "npm:build")
	})

	t.Run("rejects missing member", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("tag", "add", "ci", "npm:build", "npm:test")

		_, err := env.runErr("tag", "move", "ci", "npm:build", "shell:deploy")
		if err == nil {
			t.Error("tag move with non-member succeeded, want error")
		}

		// Failed reorder must leave the original order intact
		out := env.run("tag", "ls", "ci")
		env.lineOrder(out, "npm:build", "npm:test")
	})

	t.Run("rejects incomplete permutation", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("tag", "add", "ci", "npm:build", "npm:test")

		_, err := env.runErr("tag", "move", "ci", "npm:test")
		if err == nil {
			t.Error("tag move missing a member succeeded, want error")
		}
	})
}
