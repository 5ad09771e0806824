// Package matcher implements the feature-comparison algorithms: cosine
// distance for face embeddings and Hamming-distance ORB matching with
// Lowe's ratio test for palm vein descriptors.
package matcher

import (
	"errors"
	"fmt"

	"github.com/saturnino-fabrica-de-software/bioid/internal/domain"
)

// Outcome distinguishes a deliberate non-match from a comparison that
// could not run at all. A Failed comparison never crashes a scan; the
// caller skips the candidate and keeps its error for logging.
type Outcome int

const (
	NoMatch Outcome = iota
	Match
	Failed
)

func (o Outcome) String() string {
	switch o {
	case NoMatch:
		return "no_match"
	case Match:
		return "match"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(o))
	}
}

// Comparison is the result of comparing one probe against one candidate.
// Score is a cosine distance for face (lower is better) and a good-match
// ratio for palm (higher is better).
type Comparison struct {
	Outcome Outcome
	Score   float64
	Err     error
}

// ErrDimensionMismatch is returned when two face embeddings have
// different lengths. The comparison fails explicitly instead of
// producing a meaningless score.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Compare dispatches to the matcher of the probe's type. Probe and
// candidate must share the same type; the search layer guarantees this
// by partitioning candidates per type.
func Compare(probe, candidate domain.FeatureVector, threshold float64) Comparison {
	switch probe.Type {
	case domain.TypeFace:
		return CompareFace(probe.Embedding, candidate.Embedding, threshold)
	case domain.TypePalm:
		return ComparePalm(probe.Descriptors, candidate.Descriptors, threshold)
	default:
		return Comparison{Outcome: Failed, Err: fmt.Errorf("unsupported biometric type %s", probe.Type)}
	}
}

// BetterScore reports whether a improves on b in the type's ordering:
// strictly lower for face (cosine distance), strictly higher for palm
// (match ratio). Equal scores are not an improvement, which keeps the
// earliest-seen candidate on ties.
func BetterScore(typ domain.BiometricType, a, b float64) bool {
	if typ == domain.TypeFace {
		return a < b
	}
	return a > b
}

// WorstScore is the sentinel a scan starts from: +Inf for face, 0 for palm.
func WorstScore(typ domain.BiometricType) float64 {
	if typ == domain.TypeFace {
		return worstFaceScore
	}
	return 0.0
}
