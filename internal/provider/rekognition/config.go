package rekognition

// Config holds configuration for the AWS Rekognition face detector
type Config struct {
	// Region is the AWS region where Rekognition will be used (e.g., "us-east-1")
	Region string

	// MinConfidence is the minimum detection confidence (0-100) for a
	// face to be counted
	MinConfidence float32
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		Region:        "us-east-1",
		MinConfidence: 80,
	}
}
