package stattest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWasserstein_IdenticalSamples(t *testing.T) {
	values := sequence(30, 0, 0.5)

	res, err := Wasserstein{}.Run(NumericSample(values), NumericSample(values))
	require.NoError(t, err)

	assert.InDelta(t, 0, res.Statistic, 1e-12)
	assert.InDelta(t, 0, res.Score, 1e-12)
	assert.True(t, math.IsNaN(res.PValue))
}

func TestWasserstein_UnitShift(t *testing.T) {
	ref := []float64{0, 1}
	cur := []float64{1, 2}

	res, err := Wasserstein{}.Run(NumericSample(ref), NumericSample(cur))
	require.NoError(t, err)

	// Shifting by one costs exactly one unit of mass transport; the
	// reference std is 0.5, so the normalized score doubles it.
	assert.InDelta(t, 1.0, res.Statistic, 1e-12)
	assert.InDelta(t, 2.0, res.Score, 1e-12)
}

func TestWasserstein_ZeroVarianceReference(t *testing.T) {
	ref := []float64{5, 5, 5, 5}
	cur := []float64{6, 6, 6, 6}

	res, err := Wasserstein{}.Run(NumericSample(ref), NumericSample(cur))
	require.NoError(t, err)

	// The std floor of 0.001 keeps the score finite.
	assert.InDelta(t, 1.0, res.Statistic, 1e-12)
	assert.InDelta(t, 1000.0, res.Score, 1e-6)
}

func TestWasserstein_InterleavedSamples(t *testing.T) {
	ref := []float64{0, 2, 4, 6}
	cur := []float64{1, 3, 5, 7}

	res, err := Wasserstein{}.Run(NumericSample(ref), NumericSample(cur))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, res.Statistic, 1e-12)
}

func TestWasserstein_EmptySample(t *testing.T) {
	_, err := Wasserstein{}.Run(NumericSample(nil), NumericSample(nil))
	assert.Error(t, err)
}
