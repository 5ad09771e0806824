package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBiometricType(t *testing.T) {
	tests := []struct {
		input   string
		want    BiometricType
		wantErr bool
	}{
		{"face", TypeFace, false},
		{"palm", TypePalm, false},
		{"  FACE  ", TypeFace, false},
		{"Palm", TypePalm, false},
		{"iris", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBiometricType(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidationFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewBiometricID(t *testing.T) {
	faceID := NewBiometricID(TypeFace)
	palmID := NewBiometricID(TypePalm)

	assert.True(t, strings.HasPrefix(faceID, "FACE-"))
	assert.True(t, strings.HasPrefix(palmID, "PALM-"))
	assert.Len(t, faceID, len("FACE-")+10)
	assert.Len(t, palmID, len("PALM-")+10)

	// Suffix is uppercase hex
	for _, r := range faceID[len("FACE-"):] {
		assert.Contains(t, "0123456789ABCDEF", string(r))
	}

	assert.NotEqual(t, NewBiometricID(TypeFace), NewBiometricID(TypeFace))
}

func TestAppError_Is(t *testing.T) {
	wrapped := ErrInvalidImage.WithError(errors.New("truncated file"))

	assert.ErrorIs(t, wrapped, ErrInvalidImage)
	assert.NotErrorIs(t, wrapped, ErrNoFaceDetected)
	assert.Contains(t, wrapped.Error(), "truncated file")
}

func TestDuplicateError(t *testing.T) {
	err := &DuplicateError{ExistingID: "FACE-0D77E1A2F9", Score: 0.08}

	assert.ErrorIs(t, err, ErrBiometricExists)
	assert.Contains(t, err.Error(), "FACE-0D77E1A2F9")
}
