// Package pattern implements the rule language for declarative tags.
//
// A pattern decides whether a task belongs to a tag. Patterns arrive from
// two places - config files (strings or structured objects) and stored tag
// membership rows - and are decoded once, at the boundary, into a tagged
// union. Matching is pure and total: malformed input never panics, it just
// fails to match.
package pattern

import (
	"encoding/json"
	"strings"

	"github.com/jpl-au/tasklens/internal/glob"
	"github.com/jpl-au/tasklens/internal/task"
)

// Kind discriminates the pattern union.
type Kind int

const (
	// KindID matches a task by exact ID.
	KindID Kind = iota
	// KindTypeLabel matches "type:label", exact type plus label rule.
	KindTypeLabel
	// KindGlob matches a glob against label (and file path for ** patterns).
	KindGlob
	// KindFields matches a structured object; present fields are ANDed,
	// absent fields are wildcards.
	KindFields
	// KindLiteral is a bare label with no colon and no glob. It never
	// matches - a bare label would collide across same-named tasks of
	// different types - but it round-trips through storage byte-for-byte.
	KindLiteral
)

// Pattern is one decoded membership rule.
type Pattern struct {
	Kind Kind

	// Raw is the exact source text for string patterns. Preserved so that
	// persistence writes back precisely what the user supplied.
	Raw string

	// Fields patterns only.
	ID    string
	Type  string
	Label string
}

// Parse decodes a string pattern into the union. It never fails; the
// fallback classification is the non-matching literal.
func Parse(s string) Pattern {
	// Task IDs are "type:path:label"; any string with a colon that also
	// resolves as an exact ID is handled in Matches, so classification
	// here only separates the structural kinds.
	switch {
	case strings.Contains(s, ":"):
		return Pattern{Kind: KindTypeLabel, Raw: s}
	case glob.IsGlob(s):
		return Pattern{Kind: KindGlob, Raw: s}
	default:
		return Pattern{Kind: KindLiteral, Raw: s}
	}
}

// ParseJSON decodes a config-file pattern, which may be a JSON/YAML string
// or a structured {id, type, label} object. Unknown shapes decode to a
// non-matching literal so one bad entry cannot poison a pattern list.
func ParseJSON(raw json.RawMessage) Pattern {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return Parse(s)
	}

	var obj struct {
		ID    string `json:"id"`
		Type  string `json:"type"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return Pattern{Kind: KindFields, Raw: string(raw), ID: obj.ID, Type: obj.Type, Label: obj.Label}
	}

	return Pattern{Kind: KindLiteral, Raw: string(raw)}
}

// String returns the text persisted for this pattern. For string-sourced
// patterns this is the raw input, unchanged.
func (p Pattern) String() string {
	return p.Raw
}

// Matches reports whether the task satisfies the pattern. Pure, no side
// effects, total: malformed patterns return false rather than erroring.
func Matches(t task.Task, p Pattern) bool {
	switch p.Kind {
	case KindTypeLabel:
		// Exact ID wins before the type:label interpretation; IDs contain
		// colons too and users paste them directly.
		if p.Raw == t.ID {
			return true
		}
		typ, label, _ := strings.Cut(p.Raw, ":")
		if typ != t.Type {
			return false
		}
		return labelMatches(label, t)
	case KindGlob:
		return labelMatches(p.Raw, t)
	case KindFields:
		if p.ID == "" && p.Type == "" && p.Label == "" {
			// All-absent means all-wildcard: matches everything.
			return true
		}
		if p.ID != "" && p.ID != t.ID {
			return false
		}
		if p.Type != "" && p.Type != t.Type {
			return false
		}
		if p.Label != "" && p.Label != t.Label {
			return false
		}
		return true
	case KindID:
		return p.Raw == t.ID
	default:
		// Bare literals never match.
		return false
	}
}

// labelMatches applies the label rule: exact match, or glob when the text
// contains metacharacters. ** patterns additionally range over the task's
// file path and category path, since they express cross-segment intent.
func labelMatches(s string, t task.Task) bool {
	if !glob.IsGlob(s) {
		return s == t.Label
	}
	if ok, err := glob.Match(s, t.Label); err == nil && ok {
		return true
	}
	if strings.Contains(s, "**") {
		if ok, err := glob.Match(s, t.FilePath); err == nil && ok {
			return true
		}
		if t.Category != "" {
			if ok, err := glob.Match(s, t.Category+"/"+t.Label); err == nil && ok {
				return true
			}
		}
	}
	return false
}

// MatchesAny reports whether any pattern in the list matches the task.
func MatchesAny(t task.Task, patterns []Pattern) bool {
	for _, p := range patterns {
		if Matches(t, p) {
			return true
		}
	}
	return false
}
