package cmd

import (
	"testing"
)

func TestSync(t *testing.T) {
	t.Run("materialises declarative tags", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile(".tasklens/config.yaml", "tags:\n  build:\n    - \"npm:*\"\n")

		env.run("sync")

		out := env.run("ls", "--tag", "build")
		env.contains(out, "npm:package.json:build")
		env.contains(out, "npm:package.json:test")
		env.notContains(out, "shell:deploy.sh:deploy")
	})

	t.Run("removes tasks that stop matching", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile(".tasklens/config.yaml", "tags:\n  build:\n    - \"npm:*\"\n")
		env.run("sync")

		// Manifest shrinks: the test script disappears
		env.writeManifest([]manifestTask{
			{Label: "build", Type: "npm", Command: "npm run build", FilePath: "package.json"},
			{Label: "deploy", Type: "shell", Command: "./deploy.sh", FilePath: "deploy.sh"},
		})
		env.run("sync")

		out := env.run("tag", "ls", "build")
		env.contains(out, "npm:package.json:build")
		env.notContains(out, "npm:package.json:test")
	})

	t.Run("preserves manual members", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("tag", "add", "build", "shell:deploy")
		env.writeFile(".tasklens/config.yaml", "tags:\n  build:\n    - \"npm:build\"\n")

		env.run("sync")

		out := env.run("tag", "ls", "build")
		env.contains(out, "shell:deploy")
		env.contains(out, "npm:package.json:build")
	})

	t.Run("never touches quick", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("quick", "add", "npm:build")
		env.writeFile(".tasklens/config.yaml", "tags:\n  other:\n    - \"npm:*\"\n")

		env.run("sync")

		out := env.run("quick")
		env.contains(out, "npm:build")
	})

	t.Run("declarative quick is rejected at load", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile(".tasklens/config.yaml", "tags:\n  quick:\n    - \"npm:*\"\n")

		// Invalid config degrades to no declarative tags, with a warning
		out := env.run("sync")
		env.contains(out, "warning")

		quick := env.run("quick")
		env.notContains(quick, "npm:package.json:build")
	})

	t.Run("structured pattern", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile(".tasklens/config.yaml", "tags:\n  infra:\n    - type: shell\n")

		env.run("sync")

		out := env.run("tag", "ls", "infra")
		env.contains(out, "shell:deploy.sh:deploy")
		env.notContains(out, "npm:package.json:build")
	})
}
