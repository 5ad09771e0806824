// Package codec serializes feature representations to the form stored in
// the biometrics table. The encoded form is opaque to storage; only the
// codec of the matching biometric type can read it back.
package codec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/saturnino-fabrica-de-software/bioid/internal/domain"
)

// ErrDecode marks a stored feature payload that cannot be read back.
// Scans must treat it as "skip this candidate", never as fatal.
var ErrDecode = errors.New("decode feature data")

// EncodeFace encodes a face embedding as a JSON float array.
func EncodeFace(embedding []float64) ([]byte, error) {
	if len(embedding) == 0 {
		return nil, fmt.Errorf("%w: empty embedding", ErrDecode)
	}
	data, err := json.Marshal(embedding)
	if err != nil {
		return nil, fmt.Errorf("encode face embedding: %w", err)
	}
	return data, nil
}

// DecodeFace decodes a JSON float array back into an embedding.
func DecodeFace(data []byte) ([]float64, error) {
	var embedding []float64
	if err := json.Unmarshal(data, &embedding); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(embedding) == 0 {
		return nil, fmt.Errorf("%w: empty embedding", ErrDecode)
	}
	return embedding, nil
}

// EncodePalm encodes ORB descriptors as base64 over the raw row bytes.
// The row count is implicit: payload length must be a multiple of the
// fixed descriptor width, so the round trip is bit-exact.
func EncodePalm(descriptors domain.PalmDescriptors) ([]byte, error) {
	raw := make([]byte, 0, len(descriptors)*domain.DescriptorWidth)
	for i, row := range descriptors {
		if len(row) != domain.DescriptorWidth {
			return nil, fmt.Errorf("encode palm descriptors: row %d has %d bytes, want %d", i, len(row), domain.DescriptorWidth)
		}
		raw = append(raw, row...)
	}

	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(encoded, raw)
	return encoded, nil
}

// DecodePalm decodes a base64 payload back into descriptor rows.
func DecodePalm(data []byte) (domain.PalmDescriptors, error) {
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(data)))
	n, err := base64.StdEncoding.Decode(raw, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	raw = raw[:n]

	if len(raw)%domain.DescriptorWidth != 0 {
		return nil, fmt.Errorf("%w: payload of %d bytes is not a multiple of descriptor width %d", ErrDecode, len(raw), domain.DescriptorWidth)
	}

	descriptors := make(domain.PalmDescriptors, 0, len(raw)/domain.DescriptorWidth)
	for off := 0; off < len(raw); off += domain.DescriptorWidth {
		descriptors = append(descriptors, raw[off:off+domain.DescriptorWidth])
	}
	return descriptors, nil
}

// Encode serializes a feature vector according to its type.
func Encode(vector domain.FeatureVector) ([]byte, error) {
	switch vector.Type {
	case domain.TypeFace:
		return EncodeFace(vector.Embedding)
	case domain.TypePalm:
		return EncodePalm(vector.Descriptors)
	default:
		return nil, fmt.Errorf("encode: unsupported biometric type %s", vector.Type)
	}
}

// Decode deserializes stored feature data according to the record's type.
func Decode(data []byte, typ domain.BiometricType) (domain.FeatureVector, error) {
	switch typ {
	case domain.TypeFace:
		embedding, err := DecodeFace(data)
		if err != nil {
			return domain.FeatureVector{}, err
		}
		return domain.FeatureVector{Type: domain.TypeFace, Embedding: embedding}, nil
	case domain.TypePalm:
		descriptors, err := DecodePalm(data)
		if err != nil {
			return domain.FeatureVector{}, err
		}
		return domain.FeatureVector{Type: domain.TypePalm, Descriptors: descriptors}, nil
	default:
		return domain.FeatureVector{}, fmt.Errorf("decode: unsupported biometric type %s", typ)
	}
}
