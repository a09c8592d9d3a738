// Package stattest implements the two-sample statistical tests behind drift
// detection. Tests are pure: they consume prepared samples and return a
// statistic, an optional p-value, and a score on a shared "larger means more
// drift" scale. Adding a test means implementing Test and registering it in
// NewRegistry.
package stattest

// Family groups tests by the kind of sample they consume.
type Family string

const (
	// FamilyDistance tests compare numeric observations directly.
	FamilyDistance Family = "distance"
	// FamilyFrequency tests compare category frequencies.
	FamilyFrequency Family = "frequency"
)

// Sample is one dataset's view of a column, prepared by the caller. Distance
// tests read Values; frequency tests read Counts. Size is the number of
// observations backing the sample.
type Sample struct {
	Values []float64
	Counts map[string]int64
	Size   int
}

// NumericSample wraps non-missing numeric observations.
func NumericSample(values []float64) Sample {
	return Sample{Values: values, Size: len(values)}
}

// CategoricalSample wraps category frequencies.
func CategoricalSample(counts map[string]int64) Sample {
	var total int64
	for _, c := range counts {
		total += c
	}
	return Sample{Counts: counts, Size: int(total)}
}

// Result is the raw outcome of a single test run. PValue is NaN for tests
// that do not produce one; Statistic and Score are always finite.
type Result struct {
	Statistic float64
	PValue    float64
	Score     float64
}

// Thresholds is the score scale of a test. Drift is the default drift
// threshold, Medium and High bound the severity buckets above it.
type Thresholds struct {
	Drift  float64
	Medium float64
	High   float64
}

// Test is a two-sample drift test. Implementations are pure and safe for
// concurrent use.
type Test interface {
	ID() string
	Name() string
	Family() Family
	Defaults() Thresholds
	MinSampleSize() int
	Run(reference, current Sample) (Result, error)
}

// Options tunes the built-in tests. Zero values mean the per-test defaults.
type Options struct {
	PSIEpsilon     float64 // zero-proportion floor for psi, default 1e-4
	KLGridPoints   int     // histogram grid points for kl, default 50
	KLEpsilon      float64 // empty-bin floor for kl, default 1e-8
	TTestResamples int     // bootstrap draws per side for ttest, default 10000
	TTestSeed      int64   // RNG seed for ttest, default 1
}

// Registry holds the built-in tests keyed by id.
type Registry struct {
	tests map[string]Test
	ids   []string
}

// NewRegistry builds the registry of built-in tests with the given options.
func NewRegistry(opts Options) *Registry {
	r := &Registry{tests: make(map[string]Test)}
	r.add(KolmogorovSmirnov{})
	r.add(MannWhitney{})
	r.add(TTest{Resamples: opts.TTestResamples, Seed: opts.TTestSeed})
	r.add(Wasserstein{})
	r.add(KLDivergence{GridPoints: opts.KLGridPoints, Epsilon: opts.KLEpsilon})
	r.add(ChiSquare{})
	r.add(PSI{Epsilon: opts.PSIEpsilon})
	return r
}

func (r *Registry) add(t Test) {
	r.tests[t.ID()] = t
	r.ids = append(r.ids, t.ID())
}

// Lookup returns the test registered under id.
func (r *Registry) Lookup(id string) (Test, bool) {
	t, ok := r.tests[id]
	return t, ok
}

// IDs returns the registered test ids in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// All returns the registered tests in registration order.
func (r *Registry) All() []Test {
	out := make([]Test, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.tests[id])
	}
	return out
}
