package mock

import (
	"context"
	"crypto/sha256"
	"math"

	"github.com/saturnino-fabrica-de-software/bioid/internal/domain"
	"github.com/saturnino-fabrica-de-software/bioid/internal/provider"
)

const (
	embeddingDimension = domain.EmbeddingDim
	descriptorRows     = 64
)

// minImageSize rejeita payloads pequenos demais para serem uma imagem real
const minImageSize = 1000

// Provider implementa todos os extractors para testes e desenvolvimento.
// Os vetores gerados são determinísticos em função do hash da imagem, de
// forma que a mesma imagem sempre produz o mesmo template.
type Provider struct{}

// New cria uma nova instância do MockProvider
func New() *Provider {
	return &Provider{}
}

// ExtractEmbedding gera embedding determinístico baseado no hash da imagem
func (p *Provider) ExtractEmbedding(ctx context.Context, image []byte) ([]float64, error) {
	if len(image) < minImageSize {
		return nil, domain.ErrInvalidImage
	}

	return generateEmbedding(image), nil
}

// ExtractDescriptors gera uma matriz de descriptors determinística
func (p *Provider) ExtractDescriptors(ctx context.Context, image []byte) (domain.PalmDescriptors, error) {
	if len(image) < minImageSize {
		return nil, domain.ErrInvalidImage
	}

	return generateDescriptors(image), nil
}

// CountFaces simula detecção de faces: sempre uma face
func (p *Provider) CountFaces(ctx context.Context, image []byte) (int, error) {
	if len(image) < minImageSize {
		return 0, domain.ErrInvalidImage
	}

	return 1, nil
}

// CheckLiveness simula prova de vida (mock returns live)
func (p *Provider) CheckLiveness(ctx context.Context, image []byte, threshold float64) (*domain.LivenessResult, error) {
	if len(image) < minImageSize {
		return nil, domain.ErrInvalidImage
	}

	return &domain.LivenessResult{
		IsLive:     true,
		Confidence: 0.95,
	}, nil
}

// generateEmbedding gera embedding normalizado a partir do hash da imagem
func generateEmbedding(image []byte) []float64 {
	hash := sha256.Sum256(image)
	embedding := make([]float64, embeddingDimension)
	hashLen := len(hash)

	for i := 0; i < embeddingDimension; i++ {
		idx := i % hashLen
		embedding[i] = (float64(hash[idx])/255.0)*2 - 1
	}

	norm := 0.0
	for _, v := range embedding {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	for i := range embedding {
		embedding[i] /= norm
	}

	return embedding
}

// generateDescriptors gera linhas de descriptors re-hasheando o hash da
// imagem, uma linha por keypoint simulado
func generateDescriptors(image []byte) domain.PalmDescriptors {
	row := sha256.Sum256(image)
	descriptors := make(domain.PalmDescriptors, descriptorRows)

	for i := 0; i < descriptorRows; i++ {
		descriptors[i] = append([]byte(nil), row[:domain.DescriptorWidth]...)
		row = sha256.Sum256(row[:])
	}

	return descriptors
}

var (
	_ provider.FaceExtractor   = (*Provider)(nil)
	_ provider.PalmExtractor   = (*Provider)(nil)
	_ provider.FaceDetector    = (*Provider)(nil)
	_ provider.LivenessChecker = (*Provider)(nil)
)
