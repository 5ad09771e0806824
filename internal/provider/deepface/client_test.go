package deepface

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Represent(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse interface{}
		serverStatus   int
		wantErr        bool
		wantErrContain string
	}{
		{
			name: "successful response",
			serverResponse: RepresentResponse{
				Results: []RepresentResult{
					{
						Embedding:  make([]float64, 512),
						FacialArea: FacialArea{X: 10, Y: 20, W: 100, H: 100},
					},
				},
			},
			serverStatus: http.StatusOK,
		},
		{
			name:           "bad request 400",
			serverResponse: map[string]string{"error": "invalid image format"},
			serverStatus:   http.StatusBadRequest,
			wantErr:        true,
			wantErrContain: "status 400",
		},
		{
			name:           "service unavailable 503",
			serverResponse: map[string]string{"error": "service temporarily unavailable"},
			serverStatus:   http.StatusServiceUnavailable,
			wantErr:        true,
			wantErrContain: "deepface service unavailable",
		},
		{
			name:           "invalid json response",
			serverResponse: "not a valid json",
			serverStatus:   http.StatusOK,
			wantErr:        true,
			wantErrContain: "invalid deepface response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/represent", r.URL.Path)
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var req RepresentRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.NotEmpty(t, req.Img)

				w.WriteHeader(tt.serverStatus)
				if s, ok := tt.serverResponse.(string); ok {
					_, _ = w.Write([]byte(s))
				} else {
					_ = json.NewEncoder(w).Encode(tt.serverResponse)
				}
			}))
			defer server.Close()

			config := DefaultConfig()
			config.BaseURL = server.URL
			config.RetryCount = 0

			client := NewClient(config)
			resp, err := client.Represent(context.Background(), "dGVzdA==")

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrContain)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Len(t, resp.Results, 1)
		})
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(ExtractFacesResponse{
			Results: []ExtractedFace{{FacialArea: FacialArea{W: 100, H: 100}, Confidence: 0.9}},
		})
	}))
	defer server.Close()

	config := DefaultConfig()
	config.BaseURL = server.URL
	config.RetryCount = 1

	client := NewClient(config)
	resp, err := client.ExtractFaces(context.Background(), "dGVzdA==")

	require.NoError(t, err)
	assert.Len(t, resp.Results, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	config := DefaultConfig()
	config.BaseURL = server.URL
	config.RetryCount = 3

	client := NewClient(config)
	_, err := client.ExtractFaces(context.Background(), "dGVzdA==")

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCalculateBackoff(t *testing.T) {
	assert.Equal(t, time.Second, calculateBackoff(0))
	assert.Equal(t, time.Second, calculateBackoff(1))
	assert.Equal(t, 2*time.Second, calculateBackoff(2))
	assert.Equal(t, 4*time.Second, calculateBackoff(3))
	assert.Equal(t, 8*time.Second, calculateBackoff(4))
	// Capped growth for high attempts
	assert.Equal(t, 32*time.Second, calculateBackoff(10))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// ArcFace produces embeddings of the stored vector dimension
	assert.Equal(t, "ArcFace", cfg.Model)
	assert.Equal(t, "http://localhost:5005", cfg.BaseURL)
	assert.Equal(t, "opencv", cfg.Detector)
	assert.Equal(t, 3, cfg.RetryCount)
}

func TestIsClientError(t *testing.T) {
	assert.True(t, isClientError(errors.New("deepface returned status 400: bad image")))
	assert.True(t, isClientError(errors.New("deepface returned status 422: no face")))
	assert.False(t, isClientError(errors.New("deepface returned status 500: oops")))
	assert.False(t, isClientError(errors.New("connection refused")))
	assert.False(t, isClientError(nil))
}
