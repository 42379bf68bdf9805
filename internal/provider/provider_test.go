package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEuclideanDistance(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []float64
		want    float64
		wantErr bool
	}{
		{
			name: "identical",
			a:    []float64{0.1, 0.2, 0.3},
			b:    []float64{0.1, 0.2, 0.3},
			want: 0,
		},
		{
			name: "3-4-5 triangle",
			a:    []float64{0, 0},
			b:    []float64{3, 4},
			want: 5,
		},
		{
			name: "empty vectors",
			a:    []float64{},
			b:    []float64{},
			want: 0,
		},
		{
			name:    "dimension mismatch",
			a:       []float64{1, 2, 3},
			b:       []float64{1, 2},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EuclideanDistance(tt.a, tt.b)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestEuclideanDistance_Symmetric(t *testing.T) {
	a := []float64{0.5, -1, 2}
	b := []float64{-0.5, 1, 0}

	ab, err := EuclideanDistance(a, b)
	require.NoError(t, err)
	ba, err := EuclideanDistance(b, a)
	require.NoError(t, err)

	assert.Equal(t, ab, ba)
}
