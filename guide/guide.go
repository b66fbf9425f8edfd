// Package guide serves the embedded documentation pages behind the guide
// command.
package guide

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.md
var files embed.FS

// DefaultPage is served when no page name is given.
const DefaultPage = "guide"

// Get returns the content of a guide page. An empty name resolves to
// [DefaultPage].
func Get(name string) (string, error) {
	if name == "" {
		name = DefaultPage
	}
	data, err := files.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("no guide page %q", name)
	}
	return string(data), nil
}

// List returns the extra page names (the default page is implied), sorted.
func List() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		if name != DefaultPage {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
