package deepface

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"

	"github.com/saturnino-fabrica-de-software/bioid/internal/domain"
	"github.com/saturnino-fabrica-de-software/bioid/internal/provider"
)

const (
	// minFaceArea is the minimum face area (in pixels²) for reliable detection
	minFaceArea = 2500 // 50x50 pixels
	// maxFaceArea is used for confidence scaling
	maxFaceArea = 250000 // 500x500 pixels
)

// Provider implements face extraction, face detection and liveness
// checking on top of the DeepFace sidecar.
type Provider struct {
	client *Client
}

// NewProvider creates a new DeepFace provider
func NewProvider(config Config) *Provider {
	return &Provider{
		client: NewClient(config),
	}
}

// ExtractEmbedding produces a face embedding. Exactly one face must be
// present in the image.
func (p *Provider) ExtractEmbedding(ctx context.Context, image []byte) ([]float64, error) {
	imageBase64 := base64.StdEncoding.EncodeToString(image)

	resp, err := p.client.Represent(ctx, imageBase64)
	if err != nil {
		return nil, fmt.Errorf("extract embedding: %w", err)
	}

	switch len(resp.Results) {
	case 0:
		return nil, domain.ErrNoFaceDetected.WithError(ErrNoFaceInResponse)
	case 1:
		// ok
	default:
		return nil, domain.ErrMultipleFaces
	}

	embedding := resp.Results[0].Embedding
	if len(embedding) == 0 {
		return nil, domain.ErrExtractionFailed.WithError(ErrInvalidResponse)
	}

	return embedding, nil
}

// CountFaces reports how many faces the detector sees in the image.
func (p *Provider) CountFaces(ctx context.Context, image []byte) (int, error) {
	imageBase64 := base64.StdEncoding.EncodeToString(image)

	resp, err := p.client.ExtractFaces(ctx, imageBase64)
	if err != nil {
		// DeepFace answers 4xx when detection finds nothing; that is a
		// count of zero, not a transport failure.
		if isClientError(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("count faces: %w", err)
	}

	return len(resp.Results), nil
}

// CheckLiveness estimates liveness from detection quality. DeepFace has
// no dedicated anti-spoofing endpoint; a single well-sized face with
// high detector confidence passes.
func (p *Provider) CheckLiveness(ctx context.Context, image []byte, threshold float64) (*domain.LivenessResult, error) {
	imageBase64 := base64.StdEncoding.EncodeToString(image)

	resp, err := p.client.ExtractFaces(ctx, imageBase64)
	if err != nil {
		return nil, fmt.Errorf("check liveness: %w", err)
	}

	result := &domain.LivenessResult{}

	if len(resp.Results) != 1 {
		if len(resp.Results) == 0 {
			result.Reasons = append(result.Reasons, "no face detected")
		} else {
			result.Reasons = append(result.Reasons, "multiple faces detected")
		}
		return result, nil
	}

	face := resp.Results[0]
	faceArea := float64(face.FacialArea.W * face.FacialArea.H)
	quality := calculateQuality(faceArea)

	result.Confidence = face.Confidence * quality
	result.IsLive = result.Confidence >= threshold

	if !result.IsLive {
		if quality < 0.6 {
			result.Reasons = append(result.Reasons, "image quality too low")
		}
		if result.Confidence < threshold {
			result.Reasons = append(result.Reasons, "confidence below threshold")
		}
	}

	return result, nil
}

// calculateQuality estimates quality from face area; larger faces give
// better embeddings.
func calculateQuality(faceArea float64) float64 {
	if faceArea < minFaceArea {
		return 0.4
	}
	normalized := math.Min(1.0, (faceArea-minFaceArea)/(maxFaceArea-minFaceArea))
	return 0.6 + (normalized * 0.35)
}

var (
	_ provider.FaceExtractor   = (*Provider)(nil)
	_ provider.FaceDetector    = (*Provider)(nil)
	_ provider.LivenessChecker = (*Provider)(nil)
)
