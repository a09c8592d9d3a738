package stattest

import (
	"errors"
	"math"
	"math/rand"
)

// TTest is Welch's unequal-variance t-test applied to bootstrap
// distributions of the sample means: each side contributes Resamples
// resampled means of a fifth of its observations. The fixed Seed keeps
// repeated runs on the same data identical.
type TTest struct {
	Resamples int
	Seed      int64
}

// ID implements Test.
func (TTest) ID() string { return "ttest" }

// Name implements Test.
func (TTest) Name() string { return "Welch's t-test" }

// Family implements Test.
func (TTest) Family() Family { return FamilyDistance }

// Defaults implements Test.
func (TTest) Defaults() Thresholds {
	return Thresholds{Drift: 0.95, Medium: 0.99, High: 0.999}
}

// MinSampleSize implements Test.
func (TTest) MinSampleSize() int { return 25 }

// Run implements Test.
func (t TTest) Run(reference, current Sample) (Result, error) {
	if len(reference.Values) == 0 || len(current.Values) == 0 {
		return Result{}, errors.New("ttest: empty sample")
	}
	resamples := t.Resamples
	if resamples <= 0 {
		resamples = 10000
	}
	seed := t.Seed
	if seed == 0 {
		seed = 1
	}

	rng := rand.New(rand.NewSource(seed))
	a := bootstrapMeans(rng, reference.Values, resamples)
	b := bootstrapMeans(rng, current.Values, resamples)

	ma, va := sampleMeanVar(a)
	mb, vb := sampleMeanVar(b)
	na, nb := float64(len(a)), float64(len(b))
	sa, sb := va/na, vb/nb
	se2 := sa + sb
	if se2 <= 0 {
		if ma == mb {
			return Result{Statistic: 0, PValue: 1, Score: 0}, nil
		}
		se2 = 1e-12
		sa, sb = se2/2, se2/2
	}

	tstat := (ma - mb) / math.Sqrt(se2)
	df := se2 * se2 / (sa*sa/(na-1) + sb*sb/(nb-1))
	p := clamp01(2 * studentSF(math.Abs(tstat), df))
	return Result{Statistic: tstat, PValue: p, Score: 1 - p}, nil
}

func bootstrapMeans(rng *rand.Rand, values []float64, resamples int) []float64 {
	k := len(values) / 5
	if k < 1 {
		k = 1
	}
	out := make([]float64, resamples)
	for i := range out {
		var sum float64
		for j := 0; j < k; j++ {
			sum += values[rng.Intn(len(values))]
		}
		out[i] = sum / float64(k)
	}
	return out
}
