// Package report assembles per-column drift results into a run report
// and renders it as a terminal table or JSON.
package report

import (
	"time"

	"github.com/dbsmedya/godrift/internal/config"
)

// Status of a single column comparison.
type Status string

// Column statuses.
const (
	StatusOK      Status = "ok"
	StatusDrift   Status = "drift"
	StatusSkipped Status = "skipped"
)

// Severity buckets a drift score once it crosses the threshold.
type Severity string

// Severity levels.
const (
	SeverityNone   Severity = "none"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// DatasetInfo describes one side of the comparison.
type DatasetInfo struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

// ColumnResult is one row of a drift report.
type ColumnResult struct {
	Column    string   `json:"column"`
	Kind      string   `json:"kind,omitempty"`
	Test      string   `json:"test,omitempty"`
	Statistic float64  `json:"statistic"`
	PValue    *float64 `json:"p_value,omitempty"`
	Score     float64  `json:"score"`
	Threshold float64  `json:"threshold"`
	Status    Status   `json:"status"`
	Severity  Severity `json:"severity"`
	Reason    string   `json:"reason,omitempty"`

	ReferenceMean *float64 `json:"reference_mean,omitempty"`
	ReferenceStd  *float64 `json:"reference_std,omitempty"`
	CurrentMean   *float64 `json:"current_mean,omitempty"`
	CurrentStd    *float64 `json:"current_std,omitempty"`
}

// Meta identifies a run and the datasets it compared.
type Meta struct {
	RunID       string
	GeneratedAt time.Time
	Reference   DatasetInfo
	Current     DatasetInfo
	Duration    time.Duration

	// CurrentOnly lists columns present in the current dataset but not
	// the reference, surfaced as a schema note.
	CurrentOnly []string
}

// Report is the complete outcome of a drift run.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Reference   DatasetInfo `json:"reference"`
	Current     DatasetInfo `json:"current"`
	CurrentOnly []string    `json:"current_only_columns,omitempty"`

	Columns []ColumnResult `json:"columns"`

	Checked       int     `json:"checked"`
	Drifted       int     `json:"drifted"`
	Skipped       int     `json:"skipped"`
	DriftFraction float64 `json:"drift_fraction"`
	DriftDetected bool    `json:"drift_detected"`
	Rule          string  `json:"rule"`

	DurationSeconds float64 `json:"duration_seconds"`
}

// Build aggregates column results into a report. Column order is kept as
// given. Skipped columns stay out of the drift fraction denominator
// unless the aggregation config includes them.
func Build(meta Meta, columns []ColumnResult, agg config.AggregationConfig) *Report {
	r := &Report{
		RunID:           meta.RunID,
		GeneratedAt:     meta.GeneratedAt,
		Reference:       meta.Reference,
		Current:         meta.Current,
		CurrentOnly:     meta.CurrentOnly,
		Columns:         columns,
		Rule:            agg.Rule,
		DurationSeconds: meta.Duration.Seconds(),
	}
	if r.Rule == "" {
		r.Rule = "any"
	}

	for _, c := range columns {
		switch c.Status {
		case StatusSkipped:
			r.Skipped++
		case StatusDrift:
			r.Checked++
			r.Drifted++
		default:
			r.Checked++
		}
	}

	denominator := r.Checked
	if agg.IncludeSkipped {
		denominator += r.Skipped
	}
	if denominator > 0 {
		r.DriftFraction = float64(r.Drifted) / float64(denominator)
	}

	switch r.Rule {
	case "fraction":
		threshold := agg.Fraction
		if threshold <= 0 {
			threshold = 0.5
		}
		r.DriftDetected = denominator > 0 && r.DriftFraction >= threshold
	default:
		r.DriftDetected = r.Drifted > 0
	}

	return r
}
