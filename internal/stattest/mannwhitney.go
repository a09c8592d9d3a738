package stattest

import (
	"errors"
	"math"
	"sort"
)

// MannWhitney is the two-sided Mann-Whitney U rank test, using the normal
// approximation with midranks, tie correction, and continuity correction.
type MannWhitney struct{}

// ID implements Test.
func (MannWhitney) ID() string { return "mannwhitney" }

// Name implements Test.
func (MannWhitney) Name() string { return "Mann-Whitney U" }

// Family implements Test.
func (MannWhitney) Family() Family { return FamilyDistance }

// Defaults implements Test.
func (MannWhitney) Defaults() Thresholds {
	return Thresholds{Drift: 0.95, Medium: 0.99, High: 0.999}
}

// MinSampleSize implements Test. The normal approximation needs a few dozen
// observations per side before its tail probabilities are trustworthy.
func (MannWhitney) MinSampleSize() int { return 25 }

// Run implements Test. The reported statistic is U of the reference sample.
func (MannWhitney) Run(reference, current Sample) (Result, error) {
	n1, n2 := len(reference.Values), len(current.Values)
	if n1 == 0 || n2 == 0 {
		return Result{}, errors.New("mannwhitney: empty sample")
	}

	type obs struct {
		v   float64
		ref bool
	}
	all := make([]obs, 0, n1+n2)
	for _, v := range reference.Values {
		all = append(all, obs{v: v, ref: true})
	}
	for _, v := range current.Values {
		all = append(all, obs{v: v})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].v < all[j].v })

	// Midranks, accumulating the tie correction term sum(t^3 - t).
	var r1, tieSum float64
	i := 0
	for i < len(all) {
		j := i
		for j < len(all) && all[j].v == all[i].v {
			j++
		}
		rank := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			if all[k].ref {
				r1 += rank
			}
		}
		t := float64(j - i)
		tieSum += t*t*t - t
		i = j
	}

	f1, f2 := float64(n1), float64(n2)
	u1 := r1 - f1*(f1+1)/2
	u2 := f1*f2 - u1
	u := math.Max(u1, u2)
	mu := f1 * f2 / 2
	n := f1 + f2
	sigma2 := f1 * f2 / 12 * ((n + 1) - tieSum/(n*(n-1)))
	if sigma2 <= 0 {
		// Every observation identical across both samples.
		return Result{Statistic: u1, PValue: 1, Score: 0}, nil
	}

	z := (u - mu - 0.5) / math.Sqrt(sigma2)
	if z < 0 {
		z = 0
	}
	p := clamp01(normalSFTwoSided(z))
	return Result{Statistic: u1, PValue: p, Score: 1 - p}, nil
}
