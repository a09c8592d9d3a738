package stattest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKL_IdenticalSamples(t *testing.T) {
	values := sequence(100, 0, 1)

	res, err := KLDivergence{}.Run(NumericSample(values), NumericSample(values))
	require.NoError(t, err)

	assert.InDelta(t, 0, res.Score, 1e-12)
	assert.True(t, math.IsNaN(res.PValue))
}

func TestKL_MassCollapse(t *testing.T) {
	ref := sequence(100, 0, 1)
	cur := make([]float64, 100)
	for i := range cur {
		cur[i] = 99
	}

	res, err := KLDivergence{}.Run(NumericSample(ref), NumericSample(cur))
	require.NoError(t, err)

	assert.Greater(t, res.Score, KLDivergence{}.Defaults().Drift)
}

func TestKL_SharedPointMass(t *testing.T) {
	ref := []float64{2, 2, 2}
	cur := []float64{2, 2}

	res, err := KLDivergence{}.Run(NumericSample(ref), NumericSample(cur))
	require.NoError(t, err)

	assert.InDelta(t, 0, res.Score, 1e-12)
}

func TestKL_ScoreIsNonNegative(t *testing.T) {
	ref := sequence(60, 0, 1)
	cur := sequence(60, 10, 1.2)

	res, err := KLDivergence{}.Run(NumericSample(ref), NumericSample(cur))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.Score, 0.0)
}

func TestKL_EmptySample(t *testing.T) {
	_, err := KLDivergence{}.Run(NumericSample([]float64{1}), NumericSample(nil))
	assert.Error(t, err)
}
