package stattest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_HasAllBuiltins(t *testing.T) {
	r := NewRegistry(Options{})

	assert.Equal(t, []string{"ks", "mannwhitney", "ttest", "wasserstein", "kl", "chisquare", "psi"}, r.IDs())
	assert.Len(t, r.All(), 7)

	for _, id := range r.IDs() {
		test, ok := r.Lookup(id)
		require.True(t, ok, "test %s should be registered", id)
		assert.Equal(t, id, test.ID())
		assert.NotEmpty(t, test.Name())
		assert.Greater(t, test.Defaults().Drift, 0.0)
		assert.Greater(t, test.MinSampleSize(), 0)
	}
}

func TestNewRegistry_UnknownID(t *testing.T) {
	r := NewRegistry(Options{})

	_, ok := r.Lookup("anderson-darling")
	assert.False(t, ok)
}

func TestNewRegistry_OptionsPlumbed(t *testing.T) {
	r := NewRegistry(Options{PSIEpsilon: 0.01, KLGridPoints: 20, TTestResamples: 100, TTestSeed: 7})

	psiTest, ok := r.Lookup("psi")
	require.True(t, ok)
	assert.Equal(t, 0.01, psiTest.(PSI).Epsilon)

	klTest, ok := r.Lookup("kl")
	require.True(t, ok)
	assert.Equal(t, 20, klTest.(KLDivergence).GridPoints)

	tTest, ok := r.Lookup("ttest")
	require.True(t, ok)
	assert.Equal(t, 100, tTest.(TTest).Resamples)
	assert.Equal(t, int64(7), tTest.(TTest).Seed)
}

func TestSampleConstructors(t *testing.T) {
	num := NumericSample([]float64{1, 2, 3})
	assert.Equal(t, 3, num.Size)
	assert.Nil(t, num.Counts)

	cat := CategoricalSample(map[string]int64{"a": 4, "b": 6})
	assert.Equal(t, 10, cat.Size)
	assert.Empty(t, cat.Values)
}
