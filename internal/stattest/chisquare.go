package stattest

import (
	"errors"
	"math"
	"sort"
)

// ChiSquare is the chi-square homogeneity test on the 2xK contingency table
// over the union of observed categories. The score is Cramér's V, which
// stays comparable across sample sizes.
type ChiSquare struct{}

// ID implements Test.
func (ChiSquare) ID() string { return "chisquare" }

// Name implements Test.
func (ChiSquare) Name() string { return "Chi-square homogeneity" }

// Family implements Test.
func (ChiSquare) Family() Family { return FamilyFrequency }

// Defaults implements Test. Thresholds follow the usual reading of Cramér's
// V: above 0.1 is a weak association, 0.3 moderate, 0.5 strong.
func (ChiSquare) Defaults() Thresholds {
	return Thresholds{Drift: 0.1, Medium: 0.3, High: 0.5}
}

// MinSampleSize implements Test.
func (ChiSquare) MinSampleSize() int { return 5 }

// Run implements Test.
func (ChiSquare) Run(reference, current Sample) (Result, error) {
	cats := unionCategories(reference.Counts, current.Counts)
	if len(cats) == 0 {
		return Result{}, errors.New("chisquare: empty sample")
	}
	n1 := totalCount(reference.Counts)
	n2 := totalCount(current.Counts)
	if n1 == 0 || n2 == 0 {
		return Result{}, errors.New("chisquare: empty sample")
	}
	if len(cats) == 1 {
		// Single shared category, the distributions are identical.
		return Result{Statistic: 0, PValue: 1, Score: 0}, nil
	}

	n := n1 + n2
	var chi2 float64
	for _, c := range cats {
		o1 := float64(reference.Counts[c])
		o2 := float64(current.Counts[c])
		rowTotal := o1 + o2
		e1 := n1 * rowTotal / n
		e2 := n2 * rowTotal / n
		chi2 += (o1-e1)*(o1-e1)/e1 + (o2-e2)*(o2-e2)/e2
	}

	dof := float64(len(cats) - 1)
	p := gammaQ(dof/2, chi2/2)
	v := math.Sqrt(chi2 / n)
	return Result{Statistic: chi2, PValue: p, Score: v}, nil
}

func unionCategories(a, b map[string]int64) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for c := range a {
		seen[c] = struct{}{}
	}
	for c := range b {
		seen[c] = struct{}{}
	}
	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

func totalCount(counts map[string]int64) float64 {
	var total int64
	for _, c := range counts {
		total += c
	}
	return float64(total)
}
