package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Providers
	ProviderType  string `envconfig:"PROVIDER_TYPE" default:"deepface"`
	DeepFaceURL   string `envconfig:"DEEPFACE_URL" default:"http://localhost:5005"`
	DeepFaceModel string `envconfig:"DEEPFACE_MODEL" default:"ArcFace"`
	PalmCVURL     string `envconfig:"PALMCV_URL" default:"http://localhost:5006"`
	FaceDetector  string `envconfig:"FACE_DETECTOR" default:"deepface"`
	AWSRegion     string `envconfig:"AWS_REGION" default:"us-east-1"`

	// Matching
	FaceThreshold     float64 `envconfig:"FACE_THRESHOLD" default:"0.40"`
	PalmThreshold     float64 `envconfig:"PALM_THRESHOLD" default:"0.15"`
	MaxScanCandidates int     `envconfig:"MAX_SCAN_CANDIDATES" default:"0"`
	SearchWorkers     int     `envconfig:"SEARCH_WORKERS" default:"4"`

	// Liveness
	RequireLiveness   bool    `envconfig:"REQUIRE_LIVENESS" default:"false"`
	LivenessThreshold float64 `envconfig:"LIVENESS_THRESHOLD" default:"0.80"`

	// Image storage
	S3Endpoint  string `envconfig:"S3_ENDPOINT" default:""`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY" default:""`
	S3SecretKey string `envconfig:"S3_SECRET_KEY" default:""`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"bioid-images"`
	S3UseSSL    bool   `envconfig:"S3_USE_SSL" default:"false"`

	// Security
	APIKey string `envconfig:"API_KEY" required:"true"`

	// Rate limiting
	RateLimitMax int `envconfig:"RATE_LIMIT_MAX" default:"60"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
