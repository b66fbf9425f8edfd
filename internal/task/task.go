// Package task defines the workspace command descriptor and the manifest
// boundary to external discoverers. Discovery itself (scanning package.json,
// Makefiles, shell scripts) happens outside tasklens; discoverers write a
// JSON manifest that this package loads and validates.
package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Task represents one discovered runnable unit (npm script, make target,
// shell script). Tasks are ephemeral - they are rebuilt from the manifest on
// every load and never persisted directly. Only the ID is stored, inside tag
// membership and summary rows, so it must be stable across discovery runs
// as long as the underlying definition is unchanged.
type Task struct {
	ID       string   `json:"id,omitempty"` // derived from type+path+label when absent
	Label    string   `json:"label"`
	Type     string   `json:"type"`    // discoverer kind: "npm", "make", "shell", ...
	Command  string   `json:"command"` // underlying invocation text
	FilePath string   `json:"filePath"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// ErrNoManifest is returned when the manifest file does not exist.
var ErrNoManifest = errors.New("no task manifest found (run a discoverer to generate tasklens.json)")

// ManifestFile is the default manifest filename discoverers write.
const ManifestFile = "tasklens.json"

// StableID derives the canonical task identifier from type, file path and
// label. Keeping derivation in one place guarantees tag membership and
// summary rows join correctly across discovery runs.
func StableID(typ, filePath, label string) string {
	return typ + ":" + filePath + ":" + label
}

// Normalize fills in a derived ID when the discoverer did not supply one.
func (t *Task) Normalize() {
	if t.ID == "" {
		t.ID = StableID(t.Type, t.FilePath, t.Label)
	}
}

// Validate reports whether the task carries the minimum fields tasklens
// needs to operate on it.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Label) == "" {
		return fmt.Errorf("task missing label")
	}
	if strings.TrimSpace(t.Type) == "" {
		return fmt.Errorf("task %q missing type", t.Label)
	}
	return nil
}

// LoadManifest reads a discoverer-produced manifest. Tasks are returned in
// manifest order; that order is the "discovery order" used for tie-breaks
// when declarative tags are materialised.
func LoadManifest(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoManifest
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes manifest JSON. The manifest is either a bare array
// of tasks or an object with a "tasks" key, matching what the discoverers
// emit in their two generations of output format.
func ParseManifest(data []byte) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		var wrapper struct {
			Tasks []Task `json:"tasks"`
		}
		if err2 := json.Unmarshal(data, &wrapper); err2 != nil {
			return nil, fmt.Errorf("malformed manifest: %w", err)
		}
		tasks = wrapper.Tasks
	}

	for i := range tasks {
		if err := tasks[i].Validate(); err != nil {
			return nil, fmt.Errorf("manifest entry %d: %w", i, err)
		}
		tasks[i].Normalize()
	}

	if err := checkUniqueIDs(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// checkUniqueIDs rejects manifests with colliding task IDs. Duplicate IDs
// would make tag membership and summaries ambiguous.
func checkUniqueIDs(tasks []Task) error {
	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("duplicate task id %q in manifest", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

// ByID builds a lookup map from task ID to task.
func ByID(tasks []Task) map[string]Task {
	m := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		m[t.ID] = t
	}
	return m
}

// Types returns the distinct discoverer types present, sorted.
func Types(tasks []Task) []string {
	set := make(map[string]struct{})
	for _, t := range tasks {
		set[t.Type] = struct{}{}
	}
	types := make([]string, 0, len(set))
	for k := range set {
		types = append(types, k)
	}
	sort.Strings(types)
	return types
}
