// Package palmcv talks to the OpenCV palm sidecar that preprocesses
// palm vein images (resize, CLAHE, adaptive threshold) and extracts ORB
// descriptors. Preprocessing and keypoint detection stay in the sidecar;
// this package only consumes the descriptor matrix.
package palmcv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config holds the configuration for the palmcv client
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxFeatures int
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaseURL:     "http://localhost:5006",
		Timeout:     15 * time.Second,
		MaxFeatures: 1000,
	}
}

// DescriptorsRequest for POST /descriptors
type DescriptorsRequest struct {
	Img         string `json:"img"` // base64 encoded image
	MaxFeatures int    `json:"max_features"`
}

// DescriptorsResponse from POST /descriptors
type DescriptorsResponse struct {
	// Descriptors is the base64 encoding of the raw descriptor matrix,
	// row-major, 32 bytes per keypoint.
	Descriptors string `json:"descriptors"`
	Keypoints   int    `json:"keypoints"`
}

// Client is the HTTP client for the palmcv sidecar
type Client struct {
	httpClient *http.Client
	config     Config
}

// NewClient creates a new palmcv client
func NewClient(config Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// Descriptors calls POST /descriptors to extract ORB descriptors
func (c *Client) Descriptors(ctx context.Context, imageBase64 string) (*DescriptorsResponse, error) {
	reqBody, err := json.Marshal(DescriptorsRequest{
		Img:         imageBase64,
		MaxFeatures: c.config.MaxFeatures,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.config.BaseURL + "/descriptors"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("palmcv returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result DescriptorsResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &result, nil
}
