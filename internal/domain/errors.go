package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Is makes a predefined AppError match its WithError copies under errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrUnauthorized = &AppError{
		Code:       "UNAUTHORIZED",
		Message:    "Invalid or missing API key",
		StatusCode: 401,
	}

	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "Resource not found",
		StatusCode: 404,
	}

	ErrBiometricNotFound = &AppError{
		Code:       "BIOMETRIC_NOT_FOUND",
		Message:    "Biometric record not found",
		StatusCode: 404,
	}

	// ErrBiometricExists is returned by the enrollment guard when the
	// submitted sample already matches an enrolled record.
	ErrBiometricExists = &AppError{
		Code:       "BIOMETRIC_ALREADY_REGISTERED",
		Message:    "This biometric is already registered",
		StatusCode: 409,
	}

	ErrInvalidImage = &AppError{
		Code:       "INVALID_IMAGE",
		Message:    "Invalid image format or corrupted file",
		StatusCode: 422,
	}

	ErrExtractionFailed = &AppError{
		Code:       "EXTRACTION_FAILED",
		Message:    "Could not extract biometric features from the image, retry with a clearer image",
		StatusCode: 422,
	}

	ErrNoFaceDetected = &AppError{
		Code:       "NO_FACE_DETECTED",
		Message:    "No face detected in the image",
		StatusCode: 422,
	}

	ErrMultipleFaces = &AppError{
		Code:       "MULTIPLE_FACES",
		Message:    "Multiple faces detected, please provide image with single face",
		StatusCode: 422,
	}

	// ErrFaceInPalmImage rejects a palm sample when the uploaded image
	// contains a detectable face.
	ErrFaceInPalmImage = &AppError{
		Code:       "FACE_IN_PALM_IMAGE",
		Message:    "A face was detected in the palm image, please provide a palm vein image",
		StatusCode: 422,
	}

	ErrLivenessFailed = &AppError{
		Code:       "LIVENESS_FAILED",
		Message:    "Liveness check failed, possible spoofing attempt",
		StatusCode: 422,
	}

	ErrRateLimitExceeded = &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "Rate limit exceeded, please try again later",
		StatusCode: 429,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}
)

// DuplicateError carries the conflicting record's identity back to the
// caller when the enrollment guard rejects a registration.
type DuplicateError struct {
	ExistingID string
	Score      float64
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("biometric already registered as %s (score %.4f)", e.ExistingID, e.Score)
}

// Unwrap ties DuplicateError into the AppError taxonomy (409).
func (e *DuplicateError) Unwrap() error {
	return ErrBiometricExists
}
