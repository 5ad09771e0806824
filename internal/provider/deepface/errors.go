package deepface

import "errors"

var (
	// ErrDeepFaceUnavailable indicates the DeepFace sidecar could not be
	// reached after all retries
	ErrDeepFaceUnavailable = errors.New("deepface service unavailable")

	// ErrInvalidResponse indicates the sidecar returned a payload that
	// could not be parsed
	ErrInvalidResponse = errors.New("invalid deepface response")

	// ErrNoFaceInResponse indicates the sidecar answered without any face
	ErrNoFaceInResponse = errors.New("no face in deepface response")
)
