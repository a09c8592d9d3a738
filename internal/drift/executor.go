package drift

import (
	"fmt"
	"math"
	"sort"

	"github.com/dbsmedya/godrift/internal/config"
	"github.com/dbsmedya/godrift/internal/profile"
	"github.com/dbsmedya/godrift/internal/stattest"
)

// InsufficientDataError marks a sample below the minimum size for the
// chosen test. Columns hitting it are recorded as not evaluated.
type InsufficientDataError struct {
	Dataset string
	Size    int
	Min     int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("not enough samples in %s dataset: %d < %d", e.Dataset, e.Size, e.Min)
}

// Execute prepares both samples per the decision and runs the test. The
// minimum sample size is the larger of the configured floor and the test's
// own minimum.
func Execute(cfg *config.Config, d Decision, ref, cur *profile.Profile) (stattest.Result, error) {
	minSize := cfg.MinSamplesFor(d.Test.MinSampleSize())
	if size := sampleSize(d, ref); size < minSize {
		return stattest.Result{}, &InsufficientDataError{Dataset: "reference", Size: size, Min: minSize}
	}
	if size := sampleSize(d, cur); size < minSize {
		return stattest.Result{}, &InsufficientDataError{Dataset: "current", Size: size, Min: minSize}
	}

	refSample, curSample := prepareSamples(&cfg.Drift, d, ref, cur)
	return d.Test.Run(refSample, curSample)
}

func sampleSize(d Decision, p *profile.Profile) int {
	if d.Test.Family() == stattest.FamilyDistance {
		return len(p.Values)
	}
	return p.Count - p.Missing
}

// prepareSamples shapes profiled columns into what the test family
// consumes: numeric observations for distance tests, label counts for
// frequency tests. Continuous columns routed to a frequency test are
// histogram-binned over the combined value range first.
func prepareSamples(cfg *config.DriftConfig, d Decision, ref, cur *profile.Profile) (stattest.Sample, stattest.Sample) {
	if d.Test.Family() == stattest.FamilyDistance {
		return stattest.NumericSample(ref.Values), stattest.NumericSample(cur.Values)
	}

	if d.Kind == profile.KindContinuous {
		refValues, curValues := ref.Values, cur.Values
		if cfg.QuantileTrim > 0 {
			refValues = trimUpperQuantile(refValues, cfg.QuantileTrim)
			curValues = trimUpperQuantile(curValues, cfg.QuantileTrim)
		}
		bins := cfg.Bins
		if bins <= 0 {
			bins = doaneBins(refValues)
		}
		refCounts, curCounts := histogram(refValues, curValues, bins)
		return stattest.CategoricalSample(refCounts), stattest.CategoricalSample(curCounts)
	}

	return stattest.CategoricalSample(ref.Counts), stattest.CategoricalSample(cur.Counts)
}

// histogram counts both samples into equal-width bins spanning their
// combined range. Bin keys are shared so absent bins stay aligned as
// zero counts.
func histogram(reference, current []float64, bins int) (map[string]int64, map[string]int64) {
	refCounts := make(map[string]int64)
	curCounts := make(map[string]int64)
	if len(reference) == 0 && len(current) == 0 {
		return refCounts, curCounts
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range reference {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	for _, v := range current {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	width := (hi - lo) / float64(bins)
	binOf := func(v float64) string {
		idx := 0
		if width > 0 {
			idx = int((v - lo) / width)
			if idx >= bins {
				idx = bins - 1
			}
		}
		return fmt.Sprintf("bin_%02d", idx)
	}
	for _, v := range reference {
		refCounts[binOf(v)]++
	}
	for _, v := range current {
		curCounts[binOf(v)]++
	}
	return refCounts, curCounts
}

// doaneBins is Doane's histogram bin count, Sturges' formula widened by
// the sample skewness. Degenerate samples get a single bin.
func doaneBins(values []float64) int {
	n := float64(len(values))
	if n < 3 {
		return 1
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	m := sum / n

	var m2, m3 float64
	for _, v := range values {
		d := v - m
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= n
	m3 /= n
	if m2 == 0 {
		return 1
	}

	g1 := m3 / math.Pow(m2, 1.5)
	sg1 := math.Sqrt(6 * (n - 2) / ((n + 1) * (n + 3)))
	k := 1 + math.Log2(n) + math.Log2(1+math.Abs(g1)/sg1)
	if k < 1 {
		return 1
	}
	return int(math.Ceil(k))
}

// trimUpperQuantile drops values at or above the sample's q quantile,
// taming heavy right tails before binning. A trim that would empty the
// sample is not applied.
func trimUpperQuantile(values []float64, q float64) []float64 {
	if q <= 0 || q >= 1 || len(values) == 0 {
		return values
	}
	cut := quantile(values, q)
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if v < cut {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return values
	}
	return kept
}

// quantile interpolates linearly between order statistics.
func quantile(values []float64, q float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
