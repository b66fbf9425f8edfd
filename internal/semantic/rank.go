// rank.go implements cosine-similarity ranking over stored vectors.
//
// A linear scan is the right shape here: candidates are one workspace's
// command set, tens to low hundreds of vectors, far below the point where
// an index pays for itself.

package semantic

import (
	"math"
	"sort"
)

// minimumScore is the floor of the cosine range. Degenerate comparisons
// (zero-magnitude or mismatched-dimension vectors) score here so they rank
// below every real result and fall to minScore filtering; they never produce
// NaN or a division by zero.
const minimumScore = -1.0

// Candidate is one stored vector up for ranking.
type Candidate struct {
	ID     string
	Vector []float32
}

// Match is one ranked result, score in [-1, 1].
type Match struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Cosine returns the cosine similarity of two vectors. Zero-magnitude or
// length-mismatched inputs return the minimum score.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return minimumScore
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return minimumScore
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores every candidate against the query vector, drops scores below
// minScore, sorts descending with ties kept in candidate order, and
// truncates to topK. topK <= 0 means no truncation.
func Rank(query []float32, candidates []Candidate, topK int, minScore float64) []Match {
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		score := Cosine(query, c.Vector)
		if score < minScore {
			continue
		}
		matches = append(matches, Match{ID: c.ID, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}
