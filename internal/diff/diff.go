// Package diff renders the change between two generated summaries, shown
// when a refresh replaces a task's stored summary.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Line markers. Summaries are short prose, so every line is shown; there is
// no context collapsing.
const (
	markDelete = "- "
	markInsert = "+ "
	markEqual  = "  "
)

// Result holds a rendered diff between two summaries.
type Result struct {
	Old  string // old label
	New  string // new label
	Diff string // plain diff text
}

// Compute diffs oldContent against newContent. Semantic cleanup merges the
// character-level edits back into human-readable chunks before rendering.
func Compute(oldContent, newContent, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	edits := dmp.DiffCleanupSemantic(dmp.DiffMain(oldContent, newContent, false))

	var b strings.Builder
	for _, e := range edits {
		writeLines(&b, marker(e.Type), e.Text)
	}
	return Result{Old: oldLabel, New: newLabel, Diff: b.String()}
}

func marker(t diffmatchpatch.Operation) string {
	switch t {
	case diffmatchpatch.DiffDelete:
		return markDelete
	case diffmatchpatch.DiffInsert:
		return markInsert
	default:
		return markEqual
	}
}

// writeLines prefixes each line of text with mark. The trailing newline is
// trimmed first so Split does not yield a phantom empty line.
func writeLines(b *strings.Builder, mark, text string) {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return
	}
	for _, l := range strings.Split(text, "\n") {
		b.WriteString(mark)
		b.WriteString(l)
		b.WriteString("\n")
	}
}

// Colourise wraps deletions in red and insertions in green.
func Colourise(d string) string {
	const reset = "\033[0m"
	colours := map[string]string{
		markDelete: "\033[31m",
		markInsert: "\033[32m",
	}

	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		if c, ok := colours[lineMark(line)]; ok {
			b.WriteString(c + line + reset + "\n")
			continue
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func lineMark(line string) string {
	if len(line) < 2 {
		return ""
	}
	return line[:2]
}

// Format returns the diff with a ---/+++ label header.
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if colour {
		return header + Colourise(r.Diff)
	}
	return header + r.Diff
}
