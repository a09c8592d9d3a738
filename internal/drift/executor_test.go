package drift

import (
	"errors"
	"math"
	"testing"

	"github.com/dbsmedya/godrift/internal/profile"
)

func TestExecuteMinSampleGate(t *testing.T) {
	cfg := testConfig()
	d := Decision{Test: lookupTest(t, "ks"), Kind: profile.KindContinuous}

	t.Run("reference too small", func(t *testing.T) {
		ref := profileOf(t, "age", seqValues(10, 0, 1))
		cur := profileOf(t, "age", seqValues(30, 0, 1))

		_, err := Execute(cfg, d, ref, cur)
		var insufficient *InsufficientDataError
		if !errors.As(err, &insufficient) {
			t.Fatalf("expected InsufficientDataError, got %v", err)
		}
		if insufficient.Dataset != "reference" {
			t.Errorf("expected reference side, got %s", insufficient.Dataset)
		}
		if insufficient.Size != 10 || insufficient.Min != 25 {
			t.Errorf("expected 10 < 25, got %d < %d", insufficient.Size, insufficient.Min)
		}
	})

	t.Run("current too small", func(t *testing.T) {
		ref := profileOf(t, "age", seqValues(30, 0, 1))
		cur := profileOf(t, "age", seqValues(10, 0, 1))

		_, err := Execute(cfg, d, ref, cur)
		var insufficient *InsufficientDataError
		if !errors.As(err, &insufficient) {
			t.Fatalf("expected InsufficientDataError, got %v", err)
		}
		if insufficient.Dataset != "current" {
			t.Errorf("expected current side, got %s", insufficient.Dataset)
		}
	})

	t.Run("configured floor raises the minimum", func(t *testing.T) {
		cfg := testConfig()
		cfg.Drift.MinSampleSize = 40
		ref := profileOf(t, "age", seqValues(30, 0, 1))
		cur := profileOf(t, "age", seqValues(30, 0, 1))

		_, err := Execute(cfg, d, ref, cur)
		var insufficient *InsufficientDataError
		if !errors.As(err, &insufficient) {
			t.Fatalf("expected InsufficientDataError, got %v", err)
		}
		if insufficient.Min != 40 {
			t.Errorf("expected minimum 40, got %d", insufficient.Min)
		}
	})
}

func TestExecuteIdenticalSamples(t *testing.T) {
	cfg := testConfig()
	d := Decision{Test: lookupTest(t, "ks"), Kind: profile.KindContinuous}
	ref := profileOf(t, "age", seqValues(30, 0, 1))
	cur := profileOf(t, "age", seqValues(30, 0, 1))

	res, err := Execute(cfg, d, ref, cur)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.Score > 0.05 {
		t.Errorf("identical samples should score near zero, got %f", res.Score)
	}
}

func TestExecuteShiftedSamples(t *testing.T) {
	cfg := testConfig()
	d := Decision{Test: lookupTest(t, "ks"), Kind: profile.KindContinuous}
	ref := profileOf(t, "age", seqValues(30, 0, 1))
	cur := profileOf(t, "age", seqValues(30, 100, 1))

	res, err := Execute(cfg, d, ref, cur)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.Score <= 0.95 {
		t.Errorf("disjoint samples should score above the ks threshold, got %f", res.Score)
	}
}

func TestExecuteFrequencyCollapse(t *testing.T) {
	// Six balanced observations against six copies of one level.
	cfg := testConfig()
	ref := profileOf(t, "stars", repeatValues(6, 1, 1, 2, 2, 3, 3))
	cur := profileOf(t, "stars", repeatValues(6, 1))
	d := Select(cfg, testRegistry(), ref, cur)
	if d.Skip {
		t.Fatalf("unexpected skip: %s", d.Reason)
	}

	res, err := Execute(cfg, d, ref, cur)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	// Contingency table: chi2 = 6 over N = 12, Cramér's V = sqrt(0.5).
	if math.Abs(res.Score-math.Sqrt(0.5)) > 1e-9 {
		t.Errorf("expected Cramér's V %.4f, got %.4f", math.Sqrt(0.5), res.Score)
	}
	if res.Score <= d.Test.Defaults().Drift {
		t.Errorf("collapse should exceed the default threshold %.2f, got %f",
			d.Test.Defaults().Drift, res.Score)
	}
}

func TestExecuteDuplicationInvariance(t *testing.T) {
	cfg := testConfig()
	refBase := repeatValues(12, "a", "a", "a", "b", "b", "c")
	curBase := repeatValues(12, "a", "b", "b", "b", "c", "c")
	refDoubled := append(append([]interface{}{}, refBase...), refBase...)
	curDoubled := append(append([]interface{}{}, curBase...), curBase...)

	for _, id := range []string{"psi", "chisquare"} {
		d := Decision{Test: lookupTest(t, id), Kind: profile.KindCategorical}

		single, err := Execute(cfg, d, profileOf(t, "plan", refBase), profileOf(t, "plan", curBase))
		if err != nil {
			t.Fatalf("%s failed: %v", id, err)
		}
		doubled, err := Execute(cfg, d, profileOf(t, "plan", refDoubled), profileOf(t, "plan", curDoubled))
		if err != nil {
			t.Fatalf("%s doubled failed: %v", id, err)
		}
		if math.Abs(single.Score-doubled.Score) > 1e-9 {
			t.Errorf("%s score should be duplication invariant: %f vs %f", id, single.Score, doubled.Score)
		}
	}
}

func TestExecuteContinuousBinning(t *testing.T) {
	cfg := testConfig()
	cfg.Drift.Bins = 5
	d := Decision{Test: lookupTest(t, "psi"), Kind: profile.KindContinuous}
	ref := profileOf(t, "age", seqValues(30, 0, 1))
	cur := profileOf(t, "age", seqValues(30, 5, 1))

	res, err := Execute(cfg, d, ref, cur)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	// Only the outermost bins differ: 2 * (5/30) * ln(7/2).
	want := 2 * (5.0 / 30.0) * math.Log(3.5)
	if math.Abs(res.Score-want) > 1e-9 {
		t.Errorf("expected psi %.6f, got %.6f", want, res.Score)
	}
}

func TestHistogram(t *testing.T) {
	refCounts, curCounts := histogram([]float64{0, 1, 2, 3}, []float64{3.5}, 2)

	if refCounts["bin_00"] != 2 || refCounts["bin_01"] != 2 {
		t.Errorf("unexpected reference counts: %v", refCounts)
	}
	if curCounts["bin_01"] != 1 || len(curCounts) != 1 {
		t.Errorf("unexpected current counts: %v", curCounts)
	}
}

func TestHistogramDegenerateRange(t *testing.T) {
	refCounts, curCounts := histogram([]float64{2, 2, 2}, []float64{2, 2}, 4)

	if refCounts["bin_00"] != 3 {
		t.Errorf("expected all reference values in one bin: %v", refCounts)
	}
	if curCounts["bin_00"] != 2 {
		t.Errorf("expected all current values in one bin: %v", curCounts)
	}
}

func TestDoaneBins(t *testing.T) {
	small := doaneBins([]float64{1, 2})
	if small != 1 {
		t.Errorf("tiny samples get one bin, got %d", small)
	}

	constant := doaneBins([]float64{5, 5, 5, 5})
	if constant != 1 {
		t.Errorf("constant samples get one bin, got %d", constant)
	}

	uniform := make([]float64, 100)
	for i := range uniform {
		uniform[i] = float64(i)
	}
	// Symmetric data: ceil(1 + log2(100)).
	if got := doaneBins(uniform); got != 8 {
		t.Errorf("expected 8 bins for 100 uniform values, got %d", got)
	}
}

func TestTrimUpperQuantile(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	kept := trimUpperQuantile(values, 0.9)
	if len(kept) != 9 {
		t.Fatalf("expected 9 values after trim, got %d", len(kept))
	}
	for _, v := range kept {
		if v > 9 {
			t.Errorf("trim left value %f above the cut", v)
		}
	}

	constant := trimUpperQuantile([]float64{3, 3, 3}, 0.9)
	if len(constant) != 3 {
		t.Errorf("trim emptying the sample must not apply, got %d values", len(constant))
	}
}

func TestQuantile(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	if got := quantile(values, 0.5); got != 5.5 {
		t.Errorf("median should interpolate to 5.5, got %f", got)
	}
	if got := quantile(values, 0); got != 1 {
		t.Errorf("zero quantile is the minimum, got %f", got)
	}
	if got := quantile(values, 1); got != 10 {
		t.Errorf("unit quantile is the maximum, got %f", got)
	}
}
