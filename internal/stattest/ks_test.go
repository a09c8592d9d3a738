package stattest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func TestKS_IdenticalSamples(t *testing.T) {
	values := sequence(100, 0, 1)

	res, err := KolmogorovSmirnov{}.Run(NumericSample(values), NumericSample(values))
	require.NoError(t, err)

	assert.InDelta(t, 0, res.Statistic, 1e-12)
	assert.InDelta(t, 1, res.PValue, 1e-12)
	assert.InDelta(t, 0, res.Score, 1e-12)
}

func TestKS_DisjointSamples(t *testing.T) {
	ref := sequence(50, 0, 1)
	cur := sequence(50, 100, 1)

	res, err := KolmogorovSmirnov{}.Run(NumericSample(ref), NumericSample(cur))
	require.NoError(t, err)

	assert.InDelta(t, 1, res.Statistic, 1e-12)
	assert.Greater(t, res.Score, 0.999)
}

func TestKS_ShiftedSample(t *testing.T) {
	ref := sequence(100, 0, 0.1)
	cur := sequence(100, 5, 0.1)

	res, err := KolmogorovSmirnov{}.Run(NumericSample(ref), NumericSample(cur))
	require.NoError(t, err)

	assert.InDelta(t, 0.5, res.Statistic, 1e-12)
	assert.Greater(t, res.Score, KolmogorovSmirnov{}.Defaults().Drift)
}

func TestKS_StatisticWithTies(t *testing.T) {
	tests := []struct {
		name     string
		ref      []float64
		cur      []float64
		expected float64
	}{
		{
			name:     "single differing tail value",
			ref:      []float64{1, 2, 3, 4},
			cur:      []float64{1, 2, 3, 10},
			expected: 0.25,
		},
		{
			name:     "shared point mass is not drift",
			ref:      []float64{1, 1, 1},
			cur:      []float64{1},
			expected: 0,
		},
		{
			name:     "unequal sizes",
			ref:      []float64{1, 1, 2},
			cur:      []float64{1, 3},
			expected: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := KolmogorovSmirnov{}.Run(NumericSample(tt.ref), NumericSample(tt.cur))
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, res.Statistic, 1e-12)
		})
	}
}

func TestKS_EmptySample(t *testing.T) {
	_, err := KolmogorovSmirnov{}.Run(NumericSample(nil), NumericSample([]float64{1}))
	assert.Error(t, err)
}
