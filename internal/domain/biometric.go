package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BiometricType identifies which feature representation a record holds.
// Comparisons only ever happen within a single type.
type BiometricType int

const (
	TypeFace BiometricType = iota
	TypePalm
)

// ParseBiometricType parses the wire form ("face" / "palm").
func ParseBiometricType(s string) (BiometricType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "face":
		return TypeFace, nil
	case "palm":
		return TypePalm, nil
	default:
		return 0, ErrValidationFailed.WithError(fmt.Errorf("unknown biometric type %q (supported: face, palm)", s))
	}
}

func (t BiometricType) String() string {
	switch t {
	case TypeFace:
		return "face"
	case TypePalm:
		return "palm"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// IDPrefix is the prefix of caller-visible record IDs (FACE-..., PALM-...).
func (t BiometricType) IDPrefix() string {
	return strings.ToUpper(t.String())
}

// NewBiometricID generates a caller-visible record ID such as
// "FACE-3F2A09B1C4" or "PALM-0D77E1A2F9".
func NewBiometricID(t BiometricType) string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return t.IDPrefix() + "-" + raw[:10]
}

// DescriptorWidth is the fixed byte width of one ORB/BRIEF descriptor row.
const DescriptorWidth = 32

// EmbeddingDim is the dimension of the face embedding vector column.
// Embeddings of any other dimension are matched from feature_data only.
const EmbeddingDim = 512

// PalmDescriptors is a variable-count matrix of fixed-width binary
// descriptors. Zero rows is valid but uninformative.
type PalmDescriptors [][]byte

// FeatureVector is the transient feature representation produced by
// extraction. Exactly one of the two fields is set, according to Type.
type FeatureVector struct {
	Type        BiometricType
	Embedding   []float64
	Descriptors PalmDescriptors
}

// Biometric representa um registro biométrico cadastrado no sistema
type Biometric struct {
	ID          string        `json:"id"`
	Type        BiometricType `json:"-"`
	FeatureData []byte        `json:"-"`
	ImageKey    string        `json:"image_key,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// MatchResult is the outcome of an identification scan.
type MatchResult struct {
	Found bool          `json:"found"`
	ID    string        `json:"id,omitempty"`
	Type  BiometricType `json:"-"`
	Score float64       `json:"score,omitempty"`
}

// IdentificationAudit represents an audit log entry for identify operations
type IdentificationAudit struct {
	ID               string        `json:"id"`
	Type             BiometricType `json:"type"`
	Found            bool          `json:"found"`
	BestMatchID      *string       `json:"best_match_id,omitempty"`
	BestMatchScore   *float64      `json:"best_match_score,omitempty"`
	CandidatesTotal  int           `json:"candidates_total"`
	CandidatesFailed int           `json:"candidates_failed"`
	LatencyMs        int64         `json:"latency_ms"`
	ClientIP         string        `json:"client_ip"`
	CreatedAt        time.Time     `json:"created_at"`
}

// LivenessResult is the verdict of the external anti-spoofing collaborator.
type LivenessResult struct {
	IsLive     bool     `json:"is_live"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons,omitempty"`
}
