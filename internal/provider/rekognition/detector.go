// Package rekognition provides face detection backed by AWS Rekognition.
// It serves only as a FaceDetector; embedding extraction stays with the
// DeepFace sidecar so stored vectors remain provider-independent.
package rekognition

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsrekognition "github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"

	"github.com/saturnino-fabrica-de-software/bioid/internal/provider"
)

const (
	errCodeAccessDenied       = "AccessDeniedException"
	errCodeInvalidImageFormat = "InvalidImageFormatException"
	errCodeImageTooLarge      = "ImageTooLargeException"
	errCodeInvalidParameter   = "InvalidParameterException"
)

// Detector counts faces in images via the Rekognition DetectFaces API
type Detector struct {
	rekognition *awsrekognition.Client
	config      Config
}

// NewDetector creates a new Rekognition detector with the provided
// configuration. It uses the AWS default credential chain to authenticate.
func NewDetector(ctx context.Context, cfg Config) (*Detector, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Detector{
		rekognition: awsrekognition.NewFromConfig(awsCfg),
		config:      cfg,
	}, nil
}

// CountFaces reports how many faces Rekognition detects in the image
// with confidence at or above the configured minimum.
func (d *Detector) CountFaces(ctx context.Context, image []byte) (int, error) {
	input := &awsrekognition.DetectFacesInput{
		Image: &types.Image{
			Bytes: image,
		},
	}

	output, err := d.rekognition.DetectFaces(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case errCodeAccessDenied:
				return 0, fmt.Errorf("count faces: %w", ErrInvalidCredentials)
			case errCodeInvalidImageFormat, errCodeImageTooLarge, errCodeInvalidParameter:
				return 0, fmt.Errorf("%w: %s", ErrInvalidImage, apiErr.ErrorMessage())
			}
		}
		return 0, fmt.Errorf("failed to detect faces: %w", err)
	}

	count := 0
	for _, detail := range output.FaceDetails {
		if aws.ToFloat32(detail.Confidence) >= d.config.MinConfidence {
			count++
		}
	}

	return count, nil
}

var _ provider.FaceDetector = (*Detector)(nil)
