// Package provider defines the external ML collaborators the matching
// core consumes: feature extraction, face detection, and liveness
// checking. Model inference never happens in-process; every
// implementation talks to a sidecar service or a cloud API.
package provider

import (
	"context"

	"github.com/saturnino-fabrica-de-software/bioid/internal/domain"
)

// FaceExtractor produces a face embedding from an image. It must see
// exactly one usable face: zero faces yields domain.ErrNoFaceDetected
// and more than one yields domain.ErrMultipleFaces.
type FaceExtractor interface {
	ExtractEmbedding(ctx context.Context, image []byte) ([]float64, error)
}

// PalmExtractor produces ORB descriptors from a palm vein image. Before
// extracting it must confirm that no face is detectable in the image
// (cross-type rejection) and return domain.ErrFaceInPalmImage otherwise.
type PalmExtractor interface {
	ExtractDescriptors(ctx context.Context, image []byte) (domain.PalmDescriptors, error)
}

// FaceDetector counts detectable faces in an image. It backs both the
// single-face check on face samples and the no-face check on palm samples.
type FaceDetector interface {
	CountFaces(ctx context.Context, image []byte) (int, error)
}

// LivenessChecker classifies whether a face sample is a live human or a
// photo/screen replay.
type LivenessChecker interface {
	CheckLiveness(ctx context.Context, image []byte, threshold float64) (*domain.LivenessResult, error)
}

// ExtractorSet bundles the collaborators a request handler needs.
// Constructed once at startup and injected; never held as global state.
type ExtractorSet struct {
	Face     FaceExtractor
	Palm     PalmExtractor
	Liveness LivenessChecker
}

// Extract produces the feature vector for the requested type.
func (s ExtractorSet) Extract(ctx context.Context, image []byte, typ domain.BiometricType) (domain.FeatureVector, error) {
	switch typ {
	case domain.TypeFace:
		embedding, err := s.Face.ExtractEmbedding(ctx, image)
		if err != nil {
			return domain.FeatureVector{}, err
		}
		return domain.FeatureVector{Type: domain.TypeFace, Embedding: embedding}, nil
	case domain.TypePalm:
		descriptors, err := s.Palm.ExtractDescriptors(ctx, image)
		if err != nil {
			return domain.FeatureVector{}, err
		}
		return domain.FeatureVector{Type: domain.TypePalm, Descriptors: descriptors}, nil
	default:
		return domain.FeatureVector{}, domain.ErrValidationFailed
	}
}
