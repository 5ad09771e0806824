package deepface

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/bioid/internal/domain"
)

func newTestProvider(serverURL string) *Provider {
	config := DefaultConfig()
	config.BaseURL = serverURL
	config.RetryCount = 0
	return NewProvider(config)
}

// TestProvider_ExtractEmbedding tests embedding extraction with mocked server
func TestProvider_ExtractEmbedding(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse RepresentResponse
		serverStatus   int
		wantEmbLen     int
		wantErr        error
	}{
		{
			name: "single face yields embedding",
			serverResponse: RepresentResponse{
				Results: []RepresentResult{
					{
						Embedding:  make([]float64, 512),
						FacialArea: FacialArea{X: 10, Y: 20, W: 200, H: 200},
					},
				},
			},
			serverStatus: http.StatusOK,
			wantEmbLen:   512,
		},
		{
			name:           "no face in image",
			serverResponse: RepresentResponse{Results: []RepresentResult{}},
			serverStatus:   http.StatusOK,
			wantErr:        domain.ErrNoFaceDetected,
		},
		{
			name: "multiple faces rejected",
			serverResponse: RepresentResponse{
				Results: []RepresentResult{
					{Embedding: make([]float64, 512), FacialArea: FacialArea{X: 10, Y: 10, W: 100, H: 100}},
					{Embedding: make([]float64, 512), FacialArea: FacialArea{X: 200, Y: 10, W: 100, H: 100}},
				},
			},
			serverStatus: http.StatusOK,
			wantErr:      domain.ErrMultipleFaces,
		},
		{
			name: "empty embedding is an extraction failure",
			serverResponse: RepresentResponse{
				Results: []RepresentResult{
					{FacialArea: FacialArea{X: 10, Y: 20, W: 200, H: 200}},
				},
			},
			serverStatus: http.StatusOK,
			wantErr:      domain.ErrExtractionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/represent", r.URL.Path)
				w.WriteHeader(tt.serverStatus)
				_ = json.NewEncoder(w).Encode(tt.serverResponse)
			}))
			defer server.Close()

			p := newTestProvider(server.URL)
			embedding, err := p.ExtractEmbedding(context.Background(), []byte("test-image"))

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, embedding, tt.wantEmbLen)
		})
	}
}

// TestProvider_CountFaces tests face counting with mocked server
func TestProvider_CountFaces(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse ExtractFacesResponse
		serverStatus   int
		wantCount      int
		wantErr        bool
	}{
		{
			name: "two faces",
			serverResponse: ExtractFacesResponse{
				Results: []ExtractedFace{
					{FacialArea: FacialArea{W: 100, H: 100}, Confidence: 0.9},
					{FacialArea: FacialArea{W: 80, H: 80}, Confidence: 0.8},
				},
			},
			serverStatus: http.StatusOK,
			wantCount:    2,
		},
		{
			name:           "no faces",
			serverResponse: ExtractFacesResponse{Results: []ExtractedFace{}},
			serverStatus:   http.StatusOK,
			wantCount:      0,
		},
		{
			name:         "4xx from detector means zero faces",
			serverStatus: http.StatusBadRequest,
			wantCount:    0,
		},
		{
			name:         "server error propagates",
			serverStatus: http.StatusInternalServerError,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/extract_faces", r.URL.Path)
				w.WriteHeader(tt.serverStatus)
				_ = json.NewEncoder(w).Encode(tt.serverResponse)
			}))
			defer server.Close()

			p := newTestProvider(server.URL)
			count, err := p.CountFaces(context.Background(), []byte("test-image"))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

// TestProvider_CheckLiveness tests the quality-based liveness heuristic
func TestProvider_CheckLiveness(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse ExtractFacesResponse
		threshold      float64
		wantLive       bool
		wantReason     string
	}{
		{
			name: "large confident face passes",
			serverResponse: ExtractFacesResponse{
				Results: []ExtractedFace{
					{FacialArea: FacialArea{W: 500, H: 500}, Confidence: 0.99},
				},
			},
			threshold: 0.8,
			wantLive:  true,
		},
		{
			name: "tiny face fails on quality",
			serverResponse: ExtractFacesResponse{
				Results: []ExtractedFace{
					{FacialArea: FacialArea{W: 30, H: 30}, Confidence: 0.99},
				},
			},
			threshold:  0.8,
			wantLive:   false,
			wantReason: "image quality too low",
		},
		{
			name:           "no face fails",
			serverResponse: ExtractFacesResponse{Results: []ExtractedFace{}},
			threshold:      0.8,
			wantLive:       false,
			wantReason:     "no face detected",
		},
		{
			name: "multiple faces fail",
			serverResponse: ExtractFacesResponse{
				Results: []ExtractedFace{
					{FacialArea: FacialArea{W: 200, H: 200}, Confidence: 0.9},
					{FacialArea: FacialArea{W: 200, H: 200}, Confidence: 0.9},
				},
			},
			threshold:  0.8,
			wantLive:   false,
			wantReason: "multiple faces detected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_ = json.NewEncoder(w).Encode(tt.serverResponse)
			}))
			defer server.Close()

			p := newTestProvider(server.URL)
			result, err := p.CheckLiveness(context.Background(), []byte("test-image"), tt.threshold)

			require.NoError(t, err)
			assert.Equal(t, tt.wantLive, result.IsLive)
			if tt.wantReason != "" {
				assert.Contains(t, result.Reasons, tt.wantReason)
			}
		})
	}
}

// TestCalculateQuality tests quality calculation
func TestCalculateQuality(t *testing.T) {
	tests := []struct {
		name     string
		faceArea float64
		wantMin  float64
		wantMax  float64
	}{
		{
			name:     "very small face",
			faceArea: 1000,
			wantMin:  0.39,
			wantMax:  0.41,
		},
		{
			name:     "minimum face area",
			faceArea: minFaceArea,
			wantMin:  0.59,
			wantMax:  0.61,
		},
		{
			name:     "large face",
			faceArea: maxFaceArea,
			wantMin:  0.94,
			wantMax:  0.96,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quality := calculateQuality(tt.faceArea)
			assert.GreaterOrEqual(t, quality, tt.wantMin)
			assert.LessOrEqual(t, quality, tt.wantMax)
		})
	}
}
