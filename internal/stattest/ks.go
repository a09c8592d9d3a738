package stattest

import (
	"errors"
	"math"
)

// KolmogorovSmirnov is the two-sample Kolmogorov-Smirnov test. The p-value
// comes from the asymptotic Kolmogorov distribution with the Stephens
// small-sample correction, which tracks the exact distribution closely from
// a few dozen observations per side.
type KolmogorovSmirnov struct{}

// ID implements Test.
func (KolmogorovSmirnov) ID() string { return "ks" }

// Name implements Test.
func (KolmogorovSmirnov) Name() string { return "Kolmogorov-Smirnov" }

// Family implements Test.
func (KolmogorovSmirnov) Family() Family { return FamilyDistance }

// Defaults implements Test. The score is 1-p, so the drift threshold 0.95
// corresponds to rejecting at alpha 0.05.
func (KolmogorovSmirnov) Defaults() Thresholds {
	return Thresholds{Drift: 0.95, Medium: 0.99, High: 0.999}
}

// MinSampleSize implements Test.
func (KolmogorovSmirnov) MinSampleSize() int { return 25 }

// Run implements Test.
func (KolmogorovSmirnov) Run(reference, current Sample) (Result, error) {
	x := sortedCopy(reference.Values)
	y := sortedCopy(current.Values)
	if len(x) == 0 || len(y) == 0 {
		return Result{}, errors.New("ks: empty sample")
	}

	d := ksStatistic(x, y)
	ne := float64(len(x)) * float64(len(y)) / float64(len(x)+len(y))
	sqrtNe := math.Sqrt(ne)
	p := kolmogorovQ((sqrtNe + 0.12 + 0.11/sqrtNe) * d)
	return Result{Statistic: d, PValue: p, Score: 1 - p}, nil
}

// ksStatistic walks both sorted samples at once and returns the supremum
// distance between their empirical CDFs. Tie groups are consumed whole so
// shared values never inflate the statistic.
func ksStatistic(x, y []float64) float64 {
	nx, ny := float64(len(x)), float64(len(y))
	var d float64
	i, j := 0, 0
	for i < len(x) && j < len(y) {
		v := math.Min(x[i], y[j])
		for i < len(x) && x[i] == v {
			i++
		}
		for j < len(y) && y[j] == v {
			j++
		}
		if diff := math.Abs(float64(i)/nx - float64(j)/ny); diff > d {
			d = diff
		}
	}
	return d
}
