package matcher

import (
	"fmt"
	"math"
)

// worstFaceScore is the starting sentinel for face scans; any real
// cosine distance improves on it.
var worstFaceScore = math.Inf(1)

// CompareFace compares two face embeddings by cosine distance
// (1 - cosine similarity). Lower distance is better; a candidate matches
// when distance <= threshold.
//
// A zero-norm embedding carries no signal and never matches, not even
// itself. That is distinct from a genuine distance of 0.0 between two
// identical non-zero embeddings.
func CompareFace(a, b []float64, threshold float64) Comparison {
	if len(a) != len(b) {
		return Comparison{
			Outcome: Failed,
			Err:     fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b)),
		}
	}
	if len(a) == 0 {
		return Comparison{
			Outcome: Failed,
			Err:     fmt.Errorf("%w: empty embeddings", ErrDimensionMismatch),
		}
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return Comparison{Outcome: NoMatch, Score: 0.0}
	}

	similarity := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	distance := 1.0 - similarity

	outcome := NoMatch
	if distance <= threshold {
		outcome = Match
	}

	return Comparison{Outcome: outcome, Score: distance}
}
