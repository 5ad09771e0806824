// Package factory assembles the provider collaborators from configuration.
package factory

import (
	"context"
	"fmt"

	"github.com/saturnino-fabrica-de-software/bioid/internal/config"
	"github.com/saturnino-fabrica-de-software/bioid/internal/provider"
	"github.com/saturnino-fabrica-de-software/bioid/internal/provider/deepface"
	"github.com/saturnino-fabrica-de-software/bioid/internal/provider/mock"
	"github.com/saturnino-fabrica-de-software/bioid/internal/provider/palmcv"
	"github.com/saturnino-fabrica-de-software/bioid/internal/provider/rekognition"
)

// ProviderType defines supported extraction provider types
type ProviderType string

const (
	// ProviderTypeDeepFace uses the DeepFace and palmcv sidecars
	ProviderTypeDeepFace ProviderType = "deepface"
	// ProviderTypeMock uses deterministic in-process providers (dev/test)
	ProviderTypeMock ProviderType = "mock"
)

// DetectorType defines supported face detector backends
type DetectorType string

const (
	// DetectorTypeDeepFace detects faces via the DeepFace sidecar
	DetectorTypeDeepFace DetectorType = "deepface"
	// DetectorTypeRekognition detects faces via AWS Rekognition
	DetectorTypeRekognition DetectorType = "rekognition"
)

// NewExtractorSet creates the provider.ExtractorSet based on configuration.
//
// Environment variables:
//   - PROVIDER_TYPE: "deepface" or "mock" (default: "deepface")
//   - DEEPFACE_URL: DeepFace API URL (default: "http://localhost:5005")
//   - DEEPFACE_MODEL: DeepFace embedding model (default: "ArcFace")
//   - PALMCV_URL: palmcv sidecar URL (default: "http://localhost:5006")
//   - FACE_DETECTOR: "deepface" or "rekognition" (default: "deepface")
//   - AWS_REGION: AWS region for Rekognition (default: "us-east-1")
func NewExtractorSet(ctx context.Context, cfg *config.Config) (provider.ExtractorSet, error) {
	switch ProviderType(cfg.ProviderType) {
	case ProviderTypeMock:
		m := mock.New()
		return provider.ExtractorSet{Face: m, Palm: m, Liveness: m}, nil

	case ProviderTypeDeepFace, "":
		return createSidecarSet(ctx, cfg)

	default:
		return provider.ExtractorSet{}, fmt.Errorf("unknown provider type: %s (supported: %s, %s)",
			cfg.ProviderType, ProviderTypeDeepFace, ProviderTypeMock)
	}
}

// createSidecarSet wires the DeepFace and palmcv sidecars together with
// the configured face detector
func createSidecarSet(ctx context.Context, cfg *config.Config) (provider.ExtractorSet, error) {
	deepfaceConfig := deepface.DefaultConfig()
	if cfg.DeepFaceURL != "" {
		deepfaceConfig.BaseURL = cfg.DeepFaceURL
	}
	if cfg.DeepFaceModel != "" {
		deepfaceConfig.Model = cfg.DeepFaceModel
	}
	faceProvider := deepface.NewProvider(deepfaceConfig)

	detector, err := newFaceDetector(ctx, cfg, faceProvider)
	if err != nil {
		return provider.ExtractorSet{}, err
	}

	palmConfig := palmcv.DefaultConfig()
	if cfg.PalmCVURL != "" {
		palmConfig.BaseURL = cfg.PalmCVURL
	}
	palmProvider := palmcv.NewProvider(palmConfig, detector)

	return provider.ExtractorSet{
		Face:     faceProvider,
		Palm:     palmProvider,
		Liveness: faceProvider,
	}, nil
}

// newFaceDetector selects the detector backend used for the single-face
// and no-face checks
func newFaceDetector(ctx context.Context, cfg *config.Config, fallback provider.FaceDetector) (provider.FaceDetector, error) {
	switch DetectorType(cfg.FaceDetector) {
	case DetectorTypeRekognition:
		rekogConfig := rekognition.DefaultConfig()
		rekogConfig.Region = cfg.AWSRegion

		detector, err := rekognition.NewDetector(ctx, rekogConfig)
		if err != nil {
			return nil, fmt.Errorf("create rekognition detector: %w", err)
		}
		return detector, nil

	case DetectorTypeDeepFace, "":
		return fallback, nil

	default:
		return nil, fmt.Errorf("unknown face detector: %s (supported: %s, %s)",
			cfg.FaceDetector, DetectorTypeDeepFace, DetectorTypeRekognition)
	}
}
