// Package progress provides CLI progress indicators. Output goes to stderr
// to keep stdout clean for piping, and TTY detection ensures proper
// formatting in both interactive and scripted usage.
package progress

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Reporter tracks and displays operation progress. It is shaped to sit
// directly behind the refresh pipeline's (done, total) callback.
type Reporter struct {
	w     io.Writer
	label string
	isTTY bool
	shown bool
}

// New creates a progress reporter that writes to stderr.
func New(label string) *Reporter {
	return &Reporter{
		w:     os.Stderr,
		label: label,
		isTTY: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Update writes the current progress. On a TTY the line is overwritten in
// place; otherwise updates are suppressed to keep scripted output clean.
func (r *Reporter) Update(done, total int) {
	if !r.isTTY || total == 0 {
		return
	}
	r.shown = true
	pct := (done * 100) / total
	fmt.Fprintf(r.w, "\r%s... %d/%d (%d%%)", r.label, done, total, pct)
}

// Done clears the progress line to make way for final output.
func (r *Reporter) Done() {
	if !r.isTTY || !r.shown {
		return
	}
	fmt.Fprintf(r.w, "\r%s\r", "                                        ")
}
