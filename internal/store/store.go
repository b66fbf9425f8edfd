// Package store defines tasklens persistence types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on this interface, enabling testing and alternative backends.
package store

import (
	"encoding/json"
	"time"
)

// Member is one row of ordered tag membership. Pattern is usually an exact
// task ID (explicit tags and materialised declarative tags both store IDs)
// but any pattern text round-trips unchanged.
type Member struct {
	Tag          string // tag name
	Pattern      string // task ID or raw pattern text, byte-for-byte as supplied
	DisplayOrder int    // user-visible position; strict total order within a tag
	Seq          int64  // insertion sequence, tie-break for equal display orders
	CreatedAt    int64  // unix timestamp
}

// SummaryRecord is the per-task summary and embedding row. A record is
// complete only when Summary is non-empty and Embedding is present; anything
// less counts as "needs work", never as a usable search result.
type SummaryRecord struct {
	TaskID      string
	ContentHash string
	Summary     string
	Embedding   []float32 // nil when not yet embedded
	UpdatedAt   int64     // unix timestamp
}

// Complete reports whether the record can serve search results.
func (r *SummaryRecord) Complete() bool {
	return r.Summary != "" && len(r.Embedding) > 0
}

// MemberJSON is the API-friendly representation of a Member.
type MemberJSON struct {
	Tag       string `json:"tag"`
	Pattern   string `json:"pattern"`
	Order     int    `json:"order"`
	CreatedAt string `json:"created_at"`
}

// ToJSON converts a Member to its API representation with RFC3339 timestamps.
func (m *Member) ToJSON() MemberJSON {
	return MemberJSON{
		Tag:       m.Tag,
		Pattern:   m.Pattern,
		Order:     m.DisplayOrder,
		CreatedAt: time.Unix(m.CreatedAt, 0).UTC().Format(time.RFC3339),
	}
}

// MembersJSON converts a member slice to its API representation, preserving
// order.
func MembersJSON(members []Member) []MemberJSON {
	out := make([]MemberJSON, len(members))
	for i := range members {
		out[i] = members[i].ToJSON()
	}
	return out
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// QuickTag is the reserved tag backing the quick-launch pinning feature.
// It rides the same membership machinery as every other tag; the only
// special treatment is that declarative resolution never touches it.
const QuickTag = "quick"
