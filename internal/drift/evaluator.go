package drift

import (
	"github.com/dbsmedya/godrift/internal/config"
	"github.com/dbsmedya/godrift/internal/report"
	"github.com/dbsmedya/godrift/internal/stattest"
)

// Verdict buckets one score against the resolved thresholds.
type Verdict struct {
	Drifted   bool
	Threshold float64
	Severity  report.Severity
}

// Evaluate resolves the thresholds for a column and buckets its score.
// Threshold resolution order is per-column override, then the global
// threshold, then the test default; a column drifts when its score
// exceeds the resolved threshold.
func Evaluate(cfg *config.Config, column string, test stattest.Test, score float64) Verdict {
	defaults := test.Defaults()
	threshold := cfg.ThresholdFor(column, defaults.Drift)
	medium, high := cfg.SeverityFor(test.ID(), defaults.Medium, defaults.High)

	v := Verdict{Threshold: threshold, Severity: report.SeverityNone}
	if score <= threshold {
		return v
	}

	v.Drifted = true
	switch {
	case high > 0 && score >= high:
		v.Severity = report.SeverityHigh
	case medium > 0 && score >= medium:
		v.Severity = report.SeverityMedium
	default:
		v.Severity = report.SeverityLow
	}
	return v
}
