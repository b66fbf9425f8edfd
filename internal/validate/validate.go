// Package validate provides input validation for tag names and patterns.
//
// Design: minimal validation by design. Tags and patterns are user-defined
// text; overly restrictive rules would limit legitimate use cases. Only
// clearly dangerous inputs (empty, null bytes) are rejected.
package validate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTag     = errors.New("invalid tag")
	ErrInvalidPattern = errors.New("invalid pattern")
)

// Tag validates a tag name. Empty names are meaningless labels; null bytes
// are rejected to prevent injection into queries and storage.
func Tag(t string) error {
	if t == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if strings.ContainsRune(t, 0) {
		return fmt.Errorf("%w: null byte in tag", ErrInvalidTag)
	}
	return nil
}

// Pattern validates membership pattern text. Patterns that fail to match
// anything are fine (the matcher is total); only text that cannot be stored
// faithfully is rejected.
func Pattern(p string) error {
	if p == "" {
		return fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	if strings.ContainsRune(p, 0) {
		return fmt.Errorf("%w: null byte in pattern", ErrInvalidPattern)
	}
	return nil
}
