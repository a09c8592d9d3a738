package stattest

import (
	"math"
	"sort"
)

func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationStd is the uncorrected standard deviation, the convention used
// for score normalization.
func populationStd(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}

// sampleMeanVar returns the mean and the Bessel-corrected variance.
func sampleMeanVar(values []float64) (float64, float64) {
	n := len(values)
	if n < 2 {
		return mean(values), 0
	}
	m := mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return m, ss / float64(n-1)
}
