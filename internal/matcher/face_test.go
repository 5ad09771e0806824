package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareFace(t *testing.T) {
	tests := []struct {
		name        string
		a, b        []float64
		threshold   float64
		wantOutcome Outcome
		wantScore   float64
	}{
		{
			name:        "identical embeddings match with distance zero",
			a:           []float64{0.6, 0.8},
			b:           []float64{0.6, 0.8},
			threshold:   0.4,
			wantOutcome: Match,
			wantScore:   0.0,
		},
		{
			name:        "scaled copy still matches",
			a:           []float64{0.6, 0.8},
			b:           []float64{1.2, 1.6},
			threshold:   0.4,
			wantOutcome: Match,
			wantScore:   0.0,
		},
		{
			name:        "orthogonal vectors distance one",
			a:           []float64{1, 0},
			b:           []float64{0, 1},
			threshold:   0.4,
			wantOutcome: NoMatch,
			wantScore:   1.0,
		},
		{
			name:        "opposite vectors distance two",
			a:           []float64{1, 0},
			b:           []float64{-1, 0},
			threshold:   0.4,
			wantOutcome: NoMatch,
			wantScore:   2.0,
		},
		{
			name:        "distance exactly at threshold matches",
			a:           []float64{1, 0},
			b:           []float64{0, 1},
			threshold:   1.0,
			wantOutcome: Match,
			wantScore:   1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp := CompareFace(tt.a, tt.b, tt.threshold)
			require.NoError(t, cmp.Err)
			assert.Equal(t, tt.wantOutcome, cmp.Outcome)
			assert.InDelta(t, tt.wantScore, cmp.Score, 1e-9)
		})
	}
}

func TestCompareFace_ZeroNormNeverMatches(t *testing.T) {
	zero := []float64{0, 0, 0}
	nonZero := []float64{1, 2, 3}

	// Even a generous threshold never turns a zero-norm side into a match.
	for _, pair := range [][2][]float64{
		{zero, nonZero},
		{nonZero, zero},
		{zero, zero},
	} {
		cmp := CompareFace(pair[0], pair[1], 100.0)
		require.NoError(t, cmp.Err)
		assert.Equal(t, NoMatch, cmp.Outcome)
		assert.Equal(t, 0.0, cmp.Score)
	}
}

func TestCompareFace_DimensionMismatch(t *testing.T) {
	cmp := CompareFace([]float64{1, 2, 3}, []float64{1, 2}, 0.4)
	assert.Equal(t, Failed, cmp.Outcome)
	assert.ErrorIs(t, cmp.Err, ErrDimensionMismatch)

	cmp = CompareFace(nil, nil, 0.4)
	assert.Equal(t, Failed, cmp.Outcome)
	assert.ErrorIs(t, cmp.Err, ErrDimensionMismatch)
}
