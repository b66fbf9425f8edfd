package task

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseManifest_BareArray(t *testing.T) {
	data := []byte(`[
		{"label": "build", "type": "npm", "command": "npm run build", "filePath": "package.json"},
		{"label": "deploy", "type": "shell", "command": "./deploy.sh", "filePath": "deploy.sh"}
	]`)

	tasks, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != "npm:package.json:build" {
		t.Errorf("derived ID = %q, want npm:package.json:build", tasks[0].ID)
	}
}

func TestParseManifest_Wrapped(t *testing.T) {
	data := []byte(`{"tasks": [{"label": "build", "type": "npm", "command": "x", "filePath": "p"}]}`)

	tasks, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
}

func TestParseManifest_ExplicitIDPreserved(t *testing.T) {
	data := []byte(`[{"id": "custom-id", "label": "build", "type": "npm", "command": "x", "filePath": "p"}]`)

	tasks, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if tasks[0].ID != "custom-id" {
		t.Errorf("ID = %q, want discoverer-supplied custom-id", tasks[0].ID)
	}
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{not json`},
		{"missing label", `[{"type": "npm", "command": "x", "filePath": "p"}]`},
		{"missing type", `[{"label": "build", "command": "x", "filePath": "p"}]`},
		{"duplicate ids", `[
			{"label": "build", "type": "npm", "command": "x", "filePath": "p"},
			{"label": "build", "type": "npm", "command": "y", "filePath": "p"}
		]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseManifest([]byte(tt.data)); err == nil {
				t.Error("ParseManifest succeeded, want error")
			}
		})
	}
}

func TestLoadManifest_Missing(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "absent.json"))
	if err != ErrNoManifest {
		t.Errorf("LoadManifest error = %v, want ErrNoManifest", err)
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklens.json")
	content := `[{"label": "build", "type": "npm", "command": "x", "filePath": "p"}]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tasks, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
}

func TestStableID(t *testing.T) {
	if got := StableID("npm", "package.json", "build"); got != "npm:package.json:build" {
		t.Errorf("StableID = %q", got)
	}
}

func TestTypes(t *testing.T) {
	tasks := []Task{
		{Type: "shell"}, {Type: "npm"}, {Type: "npm"}, {Type: "make"},
	}
	got := Types(tasks)
	want := []string{"make", "npm", "shell"}
	if len(got) != len(want) {
		t.Fatalf("Types = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Types[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
