package stattest

import (
	"errors"
	"math"
)

// PSI is the population stability index over the union of observed
// categories. Zero-proportion bins are floored before the log ratio: by
// Epsilon, or by a millionth of a side's smallest observed proportion when
// that proportion is itself at or below Epsilon.
type PSI struct {
	Epsilon float64 // zero-proportion floor, default 1e-4
}

// ID implements Test.
func (PSI) ID() string { return "psi" }

// Name implements Test.
func (PSI) Name() string { return "Population stability index" }

// Family implements Test.
func (PSI) Family() Family { return FamilyFrequency }

// Defaults implements Test. The 0.1/0.2 boundaries are the conventional
// "monitor" and "act" PSI readings.
func (PSI) Defaults() Thresholds {
	return Thresholds{Drift: 0.1, Medium: 0.2, High: 0.3}
}

// MinSampleSize implements Test.
func (PSI) MinSampleSize() int { return 10 }

// Run implements Test.
func (s PSI) Run(reference, current Sample) (Result, error) {
	eps := s.Epsilon
	if eps <= 0 {
		eps = 1e-4
	}
	cats := unionCategories(reference.Counts, current.Counts)
	if len(cats) == 0 {
		return Result{}, errors.New("psi: empty sample")
	}
	n1 := totalCount(reference.Counts)
	n2 := totalCount(current.Counts)
	if n1 == 0 || n2 == 0 {
		return Result{}, errors.New("psi: empty sample")
	}

	p := make([]float64, len(cats))
	q := make([]float64, len(cats))
	for i, c := range cats {
		p[i] = float64(reference.Counts[c]) / n1
		q[i] = float64(current.Counts[c]) / n2
	}
	floorZeros(p, eps)
	floorZeros(q, eps)

	var psi float64
	for i := range cats {
		psi += (p[i] - q[i]) * math.Log(p[i]/q[i])
	}
	return Result{Statistic: psi, PValue: math.NaN(), Score: psi}, nil
}

// floorZeros replaces zero proportions in place. The floor drops to a
// millionth of the smallest nonzero proportion when that proportion is
// already at or below eps, keeping the log ratio meaningful for very
// fine-grained distributions.
func floorZeros(props []float64, eps float64) {
	minNonzero := math.Inf(1)
	hasZero := false
	for _, v := range props {
		if v == 0 {
			hasZero = true
		} else if v < minNonzero {
			minNonzero = v
		}
	}
	if !hasZero {
		return
	}
	floor := eps
	if minNonzero <= eps {
		floor = minNonzero / 1e6
	}
	for i, v := range props {
		if v == 0 {
			props[i] = floor
		}
	}
}
