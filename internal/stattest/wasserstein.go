package stattest

import (
	"errors"
	"math"
)

// Wasserstein is the 1-D earth mover distance between the two empirical
// distributions. The score divides the distance by the reference standard
// deviation, floored at 0.001, so it stays unit-free.
type Wasserstein struct{}

// ID implements Test.
func (Wasserstein) ID() string { return "wasserstein" }

// Name implements Test.
func (Wasserstein) Name() string { return "Wasserstein distance" }

// Family implements Test.
func (Wasserstein) Family() Family { return FamilyDistance }

// Defaults implements Test.
func (Wasserstein) Defaults() Thresholds {
	return Thresholds{Drift: 0.1, Medium: 0.25, High: 0.5}
}

// MinSampleSize implements Test.
func (Wasserstein) MinSampleSize() int { return 25 }

// Run implements Test.
func (Wasserstein) Run(reference, current Sample) (Result, error) {
	if len(reference.Values) == 0 || len(current.Values) == 0 {
		return Result{}, errors.New("wasserstein: empty sample")
	}
	x := sortedCopy(reference.Values)
	y := sortedCopy(current.Values)

	d := emd(x, y)
	sigma := populationStd(reference.Values)
	if sigma < 0.001 {
		sigma = 0.001
	}
	return Result{Statistic: d, PValue: math.NaN(), Score: d / sigma}, nil
}

// emd integrates |F1 - F2| over the merged support of two sorted samples.
func emd(x, y []float64) float64 {
	nx, ny := float64(len(x)), float64(len(y))
	var dist, prev float64
	first := true
	i, j := 0, 0
	for i < len(x) || j < len(y) {
		var v float64
		switch {
		case i >= len(x):
			v = y[j]
		case j >= len(y):
			v = x[i]
		default:
			v = math.Min(x[i], y[j])
		}
		if !first {
			dist += math.Abs(float64(i)/nx-float64(j)/ny) * (v - prev)
		}
		for i < len(x) && x[i] == v {
			i++
		}
		for j < len(y) && y[j] == v {
			j++
		}
		prev = v
		first = false
	}
	return dist
}
