package diff

import (
	"strings"
	"testing"
)

func TestCompute(t *testing.T) {
	old := "Builds the project.\nRuns tsc."
	updated := "Builds the project.\nRuns tsc with strict mode."

	r := Compute(old, updated, "previous", "current")

	if r.Old != "previous" || r.New != "current" {
		t.Errorf("labels = %q/%q, want previous/current", r.Old, r.New)
	}
	if !strings.Contains(r.Diff, "+") {
		t.Errorf("diff missing insertion marker:\n%s", r.Diff)
	}
	if !strings.Contains(r.Diff, "strict mode") {
		t.Errorf("diff missing new text:\n%s", r.Diff)
	}
}

func TestCompute_Identical(t *testing.T) {
	r := Compute("same text", "same text", "a", "b")

	if strings.Contains(r.Diff, "- ") || strings.Contains(r.Diff, "+ ") {
		t.Errorf("identical content produced change markers:\n%s", r.Diff)
	}
}

func TestColourise(t *testing.T) {
	d := "- removed line\n+ added line\n  context line\n"
	out := Colourise(d)

	if !strings.Contains(out, "\033[31m- removed line\033[0m") {
		t.Errorf("deletion not coloured red:\n%q", out)
	}
	if !strings.Contains(out, "\033[32m+ added line\033[0m") {
		t.Errorf("insertion not coloured green:\n%q", out)
	}
	if !strings.Contains(out, "context line") {
		t.Errorf("context line dropped:\n%q", out)
	}
}

func TestFormat_Header(t *testing.T) {
	r := Compute("a", "b", "old summary", "new summary")
	out := r.Format(false)

	if !strings.HasPrefix(out, "--- old summary\n+++ new summary\n") {
		t.Errorf("missing header:\n%s", out)
	}
}
