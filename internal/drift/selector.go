package drift

import (
	"fmt"

	"github.com/dbsmedya/godrift/internal/config"
	"github.com/dbsmedya/godrift/internal/profile"
	"github.com/dbsmedya/godrift/internal/stattest"
)

// Decision is the outcome of test selection for one column: either a test
// to run under an effective kind, or a skip with a reason.
type Decision struct {
	Test   stattest.Test
	Kind   profile.Kind
	Skip   bool
	Reason string
}

func skipDecision(reason string) Decision {
	return Decision{Skip: true, Reason: reason}
}

// Select chooses the test for one column from its two profiles. An explicit
// per-column override wins; otherwise the column kind routes to the
// configured continuous or categorical default. Profiles that disagree on
// kind are compared as categorical labels. Columns with no values on either
// side are skipped, never reported as "no drift".
func Select(cfg *config.Config, registry *stattest.Registry, ref, cur *profile.Profile) Decision {
	if ref.Degenerate() {
		return skipDecision("column has no values in the reference dataset")
	}
	if cur.Degenerate() {
		return skipDecision("column has no values in the current dataset")
	}

	kind := ref.Kind
	if cur.Kind != kind {
		kind = profile.KindCategorical
	}

	var testID string
	if override, ok := cfg.ColumnOverride(ref.Name); ok && override.Test != "" {
		testID = override.Test
	} else if kind == profile.KindContinuous {
		testID = cfg.Drift.DefaultContinuousTest
	} else {
		testID = cfg.Drift.DefaultCategoricalTest
	}

	t, ok := registry.Lookup(testID)
	if !ok {
		return skipDecision(fmt.Sprintf("unknown test %q", testID))
	}

	if t.Family() == stattest.FamilyDistance && (!ref.Numeric || !cur.Numeric) {
		return skipDecision(fmt.Sprintf("test %q requires numeric values", testID))
	}

	return Decision{Test: t, Kind: kind}
}
