// Package drift runs the column-by-column comparison at the heart of
// godrift: profile both sides of every column, pick a test, execute it,
// and bucket the scores into a report.
package drift

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dbsmedya/godrift/internal/config"
	"github.com/dbsmedya/godrift/internal/dataset"
	"github.com/dbsmedya/godrift/internal/logger"
	"github.com/dbsmedya/godrift/internal/profile"
	"github.com/dbsmedya/godrift/internal/report"
	"github.com/dbsmedya/godrift/internal/stattest"
)

// smallSampleRows is the row count below which the run logs a stability
// warning.
const smallSampleRows = 1000

// Runner executes the drift check described by a Config. Columns are
// checked concurrently; each result lands in its own slot, so report
// order never depends on scheduling.
type Runner struct {
	cfg      *config.Config
	logger   *logger.Logger
	registry *stattest.Registry

	// Injectable for deterministic tests.
	now   func() time.Time
	runID func() string
}

// NewRunner creates a runner for the given configuration. A nil logger
// falls back to the default logger.
func NewRunner(cfg *config.Config, log *logger.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}

	return &Runner{
		cfg:    cfg,
		logger: log,
		registry: stattest.NewRegistry(stattest.Options{
			PSIEpsilon: cfg.Drift.PSIEpsilon,
		}),
		now:   time.Now,
		runID: func() string { return uuid.NewString()[:8] },
	}, nil
}

// Run compares the two datasets column by column and assembles the
// report. Per-column data problems become skipped entries; only context
// cancellation or invalid arguments abort the run.
func (r *Runner) Run(ctx context.Context, ref, cur *dataset.Dataset) (*report.Report, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}
	if ref == nil || cur == nil {
		return nil, fmt.Errorf("both datasets are required")
	}

	started := r.now()
	id := r.runID()
	log := r.logger.WithRun(id)

	log.Infow("Starting drift check",
		"reference", ref.Name(),
		"reference_rows", ref.Rows(),
		"current", cur.Name(),
		"current_rows", cur.Rows(),
		"workers", r.cfg.Drift.Workers,
	)
	if ref.Rows() < smallSampleRows || cur.Rows() < smallSampleRows {
		log.Warnw("Dataset smaller than recommended, results may be unstable",
			"recommended_rows", smallSampleRows,
			"reference_rows", ref.Rows(),
			"current_rows", cur.Rows(),
		)
	}

	columns := r.cfg.CompareColumns(ref.ColumnNames())
	results := make([]report.ColumnResult, len(columns))

	g, gctx := errgroup.WithContext(ctx)
	if r.cfg.Drift.Workers > 0 {
		g.SetLimit(r.cfg.Drift.Workers)
	}
	for i, name := range columns {
		i, name := i, name // per-iteration copies: required under go <1.22 loop semantics
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.checkColumn(log, name, ref, cur)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	completed := r.now()
	meta := report.Meta{
		RunID:       id,
		GeneratedAt: completed,
		Reference:   report.DatasetInfo{Name: ref.Name(), Rows: ref.Rows()},
		Current:     report.DatasetInfo{Name: cur.Name(), Rows: cur.Rows()},
		Duration:    completed.Sub(started),
		CurrentOnly: r.currentOnly(columns, ref, cur),
	}

	rep := report.Build(meta, results, r.cfg.Aggregation)
	log.Infow("Drift check complete",
		"checked", rep.Checked,
		"drifted", rep.Drifted,
		"skipped", rep.Skipped,
		"drift_detected", rep.DriftDetected,
		"duration", meta.Duration.String(),
	)
	return rep, nil
}

func (r *Runner) checkColumn(log *logger.Logger, name string, ref, cur *dataset.Dataset) report.ColumnResult {
	clog := log.WithColumn(name)

	refCol := ref.Column(name)
	if refCol == nil {
		return skipped(name, "column missing from reference dataset")
	}
	curCol := cur.Column(name)
	if curCol == nil {
		return skipped(name, "column missing from current dataset")
	}

	opts := profile.Options{CardinalityCutoff: r.cfg.Drift.CardinalityCutoff}
	if override, ok := r.cfg.ColumnOverride(name); ok {
		if kind, valid := profile.ParseKind(override.Kind); valid {
			opts.ForceKind = kind
		}
	}
	refProfile := profile.Column(refCol, opts)
	curProfile := profile.Column(curCol, opts)

	decision := Select(r.cfg, r.registry, refProfile, curProfile)
	if decision.Skip {
		clog.Debugw("Column skipped", "reason", decision.Reason)
		return skipped(name, decision.Reason)
	}

	result, err := Execute(r.cfg, decision, refProfile, curProfile)
	if err != nil {
		clog.Debugw("Column not evaluated", "test", decision.Test.ID(), "reason", err.Error())
		row := skipped(name, err.Error())
		row.Kind = string(decision.Kind)
		row.Test = decision.Test.ID()
		return row
	}

	verdict := Evaluate(r.cfg, name, decision.Test, result.Score)
	status := report.StatusOK
	if verdict.Drifted {
		status = report.StatusDrift
	}
	clog.Debugw("Column checked",
		"test", decision.Test.ID(),
		"score", result.Score,
		"threshold", verdict.Threshold,
		"status", status,
	)

	row := report.ColumnResult{
		Column:    name,
		Kind:      string(decision.Kind),
		Test:      decision.Test.ID(),
		Statistic: result.Statistic,
		Score:     result.Score,
		Threshold: verdict.Threshold,
		Status:    status,
		Severity:  verdict.Severity,
	}
	if !math.IsNaN(result.PValue) {
		p := result.PValue
		row.PValue = &p
	}
	if refProfile.Numeric {
		mean, std := refProfile.Mean, refProfile.Std
		row.ReferenceMean, row.ReferenceStd = &mean, &std
	}
	if curProfile.Numeric {
		mean, std := curProfile.Mean, curProfile.Std
		row.CurrentMean, row.CurrentStd = &mean, &std
	}
	return row
}

// currentOnly lists columns present in the current dataset but not the
// reference schema, minus anything already compared or excluded, so
// schema growth stays visible in the report.
func (r *Runner) currentOnly(compared []string, ref, cur *dataset.Dataset) []string {
	comparedSet := make(map[string]bool, len(compared))
	for _, name := range compared {
		comparedSet[name] = true
	}
	excluded := make(map[string]bool, len(r.cfg.Exclude))
	for _, name := range r.cfg.Exclude {
		excluded[name] = true
	}

	var extra []string
	for _, name := range cur.ColumnNames() {
		if !ref.HasColumn(name) && !comparedSet[name] && !excluded[name] {
			extra = append(extra, name)
		}
	}
	return extra
}

func skipped(column, reason string) report.ColumnResult {
	return report.ColumnResult{
		Column:   column,
		Status:   report.StatusSkipped,
		Severity: report.SeverityNone,
		Reason:   reason,
	}
}
