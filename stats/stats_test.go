package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReturns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		prices   []float64
		expected []float64
	}{
		{
			name:     "doubling",
			prices:   []float64{100, 200, 100},
			expected: []float64{1.0, -0.5},
		},
		{
			name:     "flat",
			prices:   []float64{100, 100, 100},
			expected: []float64{0.0, 0.0},
		},
		{
			name:     "single_price",
			prices:   []float64{100},
			expected: nil,
		},
		{
			name:     "empty",
			prices:   nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Returns(tt.prices)
			assert.InDeltaSlice(t, tt.expected, got, 1e-12)
			if tt.expected == nil {
				assert.Nil(t, got)
			}
		})
	}
}

func TestSharpe(t *testing.T) {
	t.Parallel()

	t.Run("empty_series", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.0, Sharpe(nil))
	})

	t.Run("single_point", func(t *testing.T) {
		t.Parallel()
		// One observation has zero sample deviation.
		assert.Equal(t, 0.0, Sharpe([]float64{0.01}))
	})

	t.Run("constant_series", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.0, Sharpe([]float64{0.02, 0.02, 0.02}))
	})

	t.Run("known_value", func(t *testing.T) {
		t.Parallel()
		// mean 0.02, sample sd 0.01 => 2 * sqrt(252)
		got := Sharpe([]float64{0.01, 0.02, 0.03})
		assert.InDelta(t, 2*math.Sqrt(252), got, 1e-9)
	})

	t.Run("sign_follows_mean", func(t *testing.T) {
		t.Parallel()
		assert.Negative(t, Sharpe([]float64{-0.01, -0.02, -0.03}))
	})
}

func TestSampleVariance(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, SampleVariance(nil, 0))
	assert.Equal(t, 0.0, SampleVariance([]float64{0.5}, 0.5))
	assert.InDelta(t, 1.0, SampleVariance([]float64{1, 2, 3}, 2.0), 1e-12)
}
