package stattest

import (
	"errors"
	"math"
)

// KLDivergence bins both samples onto a shared uniform grid spanning their
// combined range and computes the Kullback-Leibler divergence between the
// bin distributions, reference side first. Empty bins are floored by Epsilon
// and the histograms renormalized, so the divergence is always finite.
type KLDivergence struct {
	GridPoints int     // grid points spanning the range, default 50 (49 bins)
	Epsilon    float64 // empty-bin floor, default 1e-8
}

// ID implements Test.
func (KLDivergence) ID() string { return "kl" }

// Name implements Test.
func (KLDivergence) Name() string { return "KL divergence" }

// Family implements Test.
func (KLDivergence) Family() Family { return FamilyDistance }

// Defaults implements Test.
func (KLDivergence) Defaults() Thresholds {
	return Thresholds{Drift: 0.1, Medium: 0.3, High: 0.5}
}

// MinSampleSize implements Test. The fixed grid needs a reasonably dense
// sample before bin proportions mean anything.
func (KLDivergence) MinSampleSize() int { return 50 }

// Run implements Test.
func (k KLDivergence) Run(reference, current Sample) (Result, error) {
	if len(reference.Values) == 0 || len(current.Values) == 0 {
		return Result{}, errors.New("kl: empty sample")
	}
	points := k.GridPoints
	if points < 3 {
		points = 50
	}
	eps := k.Epsilon
	if eps <= 0 {
		eps = 1e-8
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range reference.Values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	for _, v := range current.Values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		// Both samples are a point mass at the same value.
		return Result{Statistic: 0, PValue: math.NaN(), Score: 0}, nil
	}

	bins := points - 1
	p := binProportions(reference.Values, lo, hi, bins)
	q := binProportions(current.Values, lo, hi, bins)

	var sumP, sumQ float64
	for i := 0; i < bins; i++ {
		p[i] += eps
		q[i] += eps
		sumP += p[i]
		sumQ += q[i]
	}

	var kl float64
	for i := 0; i < bins; i++ {
		pi, qi := p[i]/sumP, q[i]/sumQ
		kl += pi * math.Log(pi/qi)
	}
	if kl < 0 {
		kl = 0
	}
	return Result{Statistic: kl, PValue: math.NaN(), Score: kl}, nil
}

// binProportions histograms values into equal-width bins over [lo, hi] and
// returns per-bin proportions. The top edge is inclusive.
func binProportions(values []float64, lo, hi float64, bins int) []float64 {
	props := make([]float64, bins)
	width := (hi - lo) / float64(bins)
	var total float64
	for _, v := range values {
		if v < lo || v > hi {
			continue
		}
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		props[idx]++
		total++
	}
	if total > 0 {
		for i := range props {
			props[i] /= total
		}
	}
	return props
}
