// Package glob provides glob pattern matching for task labels and file paths.
//
// Extends filepath.Match with ** support for matching any path segments.
// This enables patterns like "scripts/**" to match every task under scripts/,
// regardless of nesting depth, while "build:*" stays within one segment.
package glob

import (
	"path/filepath"
	"strings"
)

// Match reports whether s matches the glob pattern.
// Supports standard glob patterns (*, ?) plus ** for matching any path
// segments. Returns an error if the pattern is malformed.
func Match(pattern, s string) (bool, error) {
	pattern = filepath.ToSlash(pattern)
	s = filepath.ToSlash(s)

	// Handle ** (match any path segments, including zero)
	if strings.Contains(pattern, "**") {
		parts := strings.SplitN(pattern, "**", 2)
		prefix := strings.TrimSuffix(parts[0], "/")
		suffix := strings.TrimPrefix(parts[1], "/")

		// The prefix must cover whole segments: "scripts/**" matches
		// "scripts" and "scripts/x" but not "scriptsfoo".
		if prefix != "" && s != prefix && !strings.HasPrefix(s, prefix+"/") {
			return false, nil
		}
		if suffix == "" {
			return true, nil
		}
		// Match suffix as a glob against every segment tail
		segments := strings.Split(s, "/")
		for i := range segments {
			tail := strings.Join(segments[i:], "/")
			m, err := filepath.Match(suffix, tail)
			if err != nil {
				return false, err
			}
			if m {
				return true, nil
			}
			m, err = filepath.Match(suffix, segments[i])
			if err != nil {
				return false, err
			}
			if m {
				return true, nil
			}
		}
		return false, nil
	}

	matched, err := filepath.Match(pattern, s)
	if err != nil || matched {
		return matched, err
	}

	// Fall back to matching just the final segment
	return filepath.Match(pattern, s[strings.LastIndex(s, "/")+1:])
}

// IsGlob reports whether the string contains glob metacharacters. Strings
// without them are treated as literals by the pattern layer.
func IsGlob(s string) bool {
	return strings.ContainsAny(s, "*?")
}
