// Package profile computes the per-column summaries that drive test
// selection: classification, counts, moments, and category frequencies.
// Profiling is a pure function of the column values and the options.
package profile

import (
	"math"

	"github.com/dbsmedya/godrift/internal/dataset"
	"github.com/dbsmedya/godrift/internal/types"
)

// Kind classifies how a column's values are treated statistically.
type Kind string

const (
	// KindContinuous columns carry numeric values with high cardinality.
	KindContinuous Kind = "continuous"
	// KindDiscrete columns carry numeric values with few distinct levels.
	KindDiscrete Kind = "discrete"
	// KindCategorical columns carry labels.
	KindCategorical Kind = "categorical"
)

// ParseKind maps a configuration string onto a Kind. The empty string means
// automatic classification and is accepted.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindContinuous, KindDiscrete, KindCategorical:
		return Kind(s), true
	case Kind(""):
		return "", true
	}
	return "", false
}

// DefaultCardinalityCutoff is the distinct-value count at or below which a
// numeric column is treated as discrete.
const DefaultCardinalityCutoff = 20

// Options tunes profiling.
type Options struct {
	// CardinalityCutoff routes numeric columns with at most this many
	// distinct values to the frequency tests. Zero means the default.
	CardinalityCutoff int
	// ForceKind overrides automatic classification when non-empty. Forcing
	// a numeric kind onto non-numeric values falls back to categorical.
	ForceKind Kind
}

// Profile summarizes one column of one dataset.
type Profile struct {
	Name     string
	Kind     Kind
	Count    int // rows, missing included
	Missing  int
	Distinct int  // distinct non-missing labels
	Numeric  bool // every non-missing cell is numeric

	// Moments and range, filled for numeric columns only.
	Mean float64
	Std  float64
	Min  float64
	Max  float64

	Values []float64        // non-missing numeric observations
	Counts map[string]int64 // label frequencies over non-missing cells

	AllMissing   bool
	ZeroVariance bool
}

// Column profiles a single dataset column.
func Column(col *dataset.Column, opts Options) *Profile {
	cutoff := opts.CardinalityCutoff
	if cutoff <= 0 {
		cutoff = DefaultCardinalityCutoff
	}

	p := &Profile{
		Name:   col.Name,
		Count:  len(col.Values),
		Counts: make(map[string]int64),
	}

	numeric := true
	var values []float64
	for _, cell := range col.Values {
		if types.IsMissing(cell) {
			p.Missing++
			continue
		}
		p.Counts[types.ToString(cell)]++
		if f, ok := types.ToFloat64(cell); ok {
			values = append(values, f)
		} else {
			numeric = false
		}
	}

	p.Distinct = len(p.Counts)
	if p.Count == p.Missing {
		p.AllMissing = true
		return p
	}

	p.Numeric = numeric
	if numeric {
		p.Values = values
		p.Mean = mean(values)
		p.Std = populationStd(values)
		p.Min, p.Max = bounds(values)
	}
	p.ZeroVariance = p.Distinct == 1
	p.Kind = classify(p, cutoff, opts.ForceKind)
	return p
}

// Degenerate reports whether the column cannot support any test at all.
func (p *Profile) Degenerate() bool {
	return p.AllMissing
}

func classify(p *Profile, cutoff int, forced Kind) Kind {
	if forced != "" {
		if forced == KindCategorical || p.Numeric {
			return forced
		}
		// A numeric kind was forced onto label data.
		return KindCategorical
	}
	if !p.Numeric {
		return KindCategorical
	}
	if p.Distinct <= cutoff {
		return KindDiscrete
	}
	return KindContinuous
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func populationStd(values []float64) float64 {
	m := mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}

func bounds(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
