package palmcv

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/saturnino-fabrica-de-software/bioid/internal/domain"
	"github.com/saturnino-fabrica-de-software/bioid/internal/provider"
)

// Provider implements palm descriptor extraction on top of the palmcv
// sidecar. A face detector is consulted first: a palm image containing a
// face was almost certainly captured with the wrong modality.
type Provider struct {
	client       *Client
	faceDetector provider.FaceDetector
}

// NewProvider creates a new palmcv provider. faceDetector may be nil, in
// which case the cross-modality check is skipped.
func NewProvider(config Config, faceDetector provider.FaceDetector) *Provider {
	return &Provider{
		client:       NewClient(config),
		faceDetector: faceDetector,
	}
}

// ExtractDescriptors produces the ORB descriptor matrix for a palm image.
func (p *Provider) ExtractDescriptors(ctx context.Context, image []byte) (domain.PalmDescriptors, error) {
	if p.faceDetector != nil {
		count, err := p.faceDetector.CountFaces(ctx, image)
		if err != nil {
			return nil, fmt.Errorf("cross-modality check: %w", err)
		}
		if count > 0 {
			return nil, domain.ErrFaceInPalmImage
		}
	}

	imageBase64 := base64.StdEncoding.EncodeToString(image)

	resp, err := p.client.Descriptors(ctx, imageBase64)
	if err != nil {
		return nil, fmt.Errorf("extract descriptors: %w", err)
	}

	raw, err := base64.StdEncoding.DecodeString(resp.Descriptors)
	if err != nil {
		return nil, domain.ErrExtractionFailed.WithError(fmt.Errorf("decode descriptor payload: %w", err))
	}

	if len(raw) == 0 || len(raw)%domain.DescriptorWidth != 0 {
		return nil, domain.ErrExtractionFailed.WithError(
			fmt.Errorf("descriptor payload of %d bytes is not a multiple of %d", len(raw), domain.DescriptorWidth))
	}

	rows := len(raw) / domain.DescriptorWidth
	descriptors := make(domain.PalmDescriptors, rows)
	for i := 0; i < rows; i++ {
		descriptors[i] = raw[i*domain.DescriptorWidth : (i+1)*domain.DescriptorWidth]
	}

	return descriptors, nil
}

var _ provider.PalmExtractor = (*Provider)(nil)
