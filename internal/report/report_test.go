package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/godrift/internal/config"
)

func f64(v float64) *float64 { return &v }

func testMeta() Meta {
	return Meta{
		RunID:       "a1b2c3d4",
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Reference:   DatasetInfo{Name: "train.csv", Rows: 5000},
		Current:     DatasetInfo{Name: "serving.csv", Rows: 4200},
		Duration:    1500 * time.Millisecond,
	}
}

func TestBuild_Counts(t *testing.T) {
	columns := []ColumnResult{
		{Column: "age", Status: StatusDrift, Score: 0.9876, Threshold: 0.95},
		{Column: "income", Status: StatusOK, Score: 0.1200, Threshold: 0.95},
		{Column: "notes", Status: StatusSkipped, Reason: "not enough samples: 3 < 25"},
	}

	r := Build(testMeta(), columns, config.AggregationConfig{})

	assert.Equal(t, 2, r.Checked)
	assert.Equal(t, 1, r.Drifted)
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, 0.5, r.DriftFraction)
	assert.Equal(t, "any", r.Rule)
	assert.True(t, r.DriftDetected)
}

func TestBuild_Meta(t *testing.T) {
	meta := testMeta()
	meta.CurrentOnly = []string{"signup_source"}

	r := Build(meta, nil, config.AggregationConfig{Rule: "any"})

	assert.Equal(t, "a1b2c3d4", r.RunID)
	assert.Equal(t, meta.GeneratedAt, r.GeneratedAt)
	assert.Equal(t, "train.csv", r.Reference.Name)
	assert.Equal(t, 5000, r.Reference.Rows)
	assert.Equal(t, "serving.csv", r.Current.Name)
	assert.Equal(t, 4200, r.Current.Rows)
	assert.Equal(t, []string{"signup_source"}, r.CurrentOnly)
	assert.Equal(t, 1.5, r.DurationSeconds)
}

func TestBuild_AnyRule(t *testing.T) {
	t.Run("no drift", func(t *testing.T) {
		columns := []ColumnResult{
			{Column: "a", Status: StatusOK},
			{Column: "b", Status: StatusOK},
		}
		r := Build(testMeta(), columns, config.AggregationConfig{Rule: "any"})
		assert.False(t, r.DriftDetected)
		assert.Equal(t, 0.0, r.DriftFraction)
	})

	t.Run("single drift triggers", func(t *testing.T) {
		columns := []ColumnResult{
			{Column: "a", Status: StatusOK},
			{Column: "b", Status: StatusOK},
			{Column: "c", Status: StatusOK},
			{Column: "d", Status: StatusDrift},
		}
		r := Build(testMeta(), columns, config.AggregationConfig{Rule: "any"})
		assert.True(t, r.DriftDetected)
		assert.Equal(t, 0.25, r.DriftFraction)
	})
}

func TestBuild_FractionRule(t *testing.T) {
	columns := []ColumnResult{
		{Column: "a", Status: StatusDrift},
		{Column: "b", Status: StatusOK},
		{Column: "c", Status: StatusOK},
		{Column: "d", Status: StatusOK},
	}

	t.Run("below threshold", func(t *testing.T) {
		r := Build(testMeta(), columns, config.AggregationConfig{Rule: "fraction", Fraction: 0.5})
		assert.Equal(t, 0.25, r.DriftFraction)
		assert.False(t, r.DriftDetected)
	})

	t.Run("at threshold", func(t *testing.T) {
		r := Build(testMeta(), columns, config.AggregationConfig{Rule: "fraction", Fraction: 0.25})
		assert.True(t, r.DriftDetected)
	})

	t.Run("zero fraction defaults to half", func(t *testing.T) {
		r := Build(testMeta(), columns, config.AggregationConfig{Rule: "fraction"})
		assert.False(t, r.DriftDetected)

		half := []ColumnResult{
			{Column: "a", Status: StatusDrift},
			{Column: "b", Status: StatusOK},
		}
		r = Build(testMeta(), half, config.AggregationConfig{Rule: "fraction"})
		assert.True(t, r.DriftDetected)
	})
}

func TestBuild_IncludeSkipped(t *testing.T) {
	columns := []ColumnResult{
		{Column: "a", Status: StatusDrift},
		{Column: "b", Status: StatusOK},
		{Column: "c", Status: StatusSkipped},
		{Column: "d", Status: StatusSkipped},
	}

	t.Run("skipped excluded by default", func(t *testing.T) {
		r := Build(testMeta(), columns, config.AggregationConfig{Rule: "fraction", Fraction: 0.5})
		assert.Equal(t, 0.5, r.DriftFraction)
		assert.True(t, r.DriftDetected)
	})

	t.Run("skipped widens denominator", func(t *testing.T) {
		r := Build(testMeta(), columns, config.AggregationConfig{Rule: "fraction", Fraction: 0.5, IncludeSkipped: true})
		assert.Equal(t, 0.25, r.DriftFraction)
		assert.False(t, r.DriftDetected)
	})
}

func TestBuild_EmptyColumns(t *testing.T) {
	r := Build(testMeta(), nil, config.AggregationConfig{Rule: "fraction", Fraction: 0.5})

	assert.Equal(t, 0, r.Checked)
	assert.Equal(t, 0.0, r.DriftFraction)
	assert.False(t, r.DriftDetected)
}

func TestBuild_PreservesOrder(t *testing.T) {
	columns := []ColumnResult{
		{Column: "zip"},
		{Column: "age"},
		{Column: "income"},
	}

	r := Build(testMeta(), columns, config.AggregationConfig{})

	names := make([]string, 0, len(r.Columns))
	for _, c := range r.Columns {
		names = append(names, c.Column)
	}
	assert.Equal(t, []string{"zip", "age", "income"}, names)
}

func TestBuild_Deterministic(t *testing.T) {
	columns := []ColumnResult{
		{Column: "a", Status: StatusDrift, Score: 0.97},
		{Column: "b", Status: StatusOK, Score: 0.12},
	}
	agg := config.AggregationConfig{Rule: "fraction", Fraction: 0.3}

	first := Build(testMeta(), columns, agg)
	second := Build(testMeta(), columns, agg)

	assert.Equal(t, first, second)
}

func TestRenderJSON(t *testing.T) {
	columns := []ColumnResult{
		{
			Column:    "age",
			Kind:      "continuous",
			Test:      "ks",
			Statistic: 0.41,
			PValue:    f64(0.0123),
			Score:     0.9877,
			Threshold: 0.95,
			Status:    StatusDrift,
			Severity:  SeverityHigh,
		},
		{Column: "notes", Status: StatusSkipped, Reason: "column has no values"},
	}
	r := Build(testMeta(), columns, config.AggregationConfig{})

	var buf bytes.Buffer
	require.NoError(t, renderJSON(&buf, r))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "a1b2c3d4", decoded["run_id"])
	assert.Equal(t, true, decoded["drift_detected"])
	assert.Equal(t, "any", decoded["rule"])

	cols, ok := decoded["columns"].([]interface{})
	require.True(t, ok)
	require.Len(t, cols, 2)

	first, ok := cols[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "age", first["column"])
	assert.Equal(t, 0.0123, first["p_value"])
	assert.Equal(t, "high", first["severity"])

	second, ok := cols[1].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "skipped", second["status"])
	assert.NotContains(t, second, "p_value")
	assert.NotContains(t, second, "test")
	assert.Equal(t, "column has no values", second["reason"])
}

func TestRender_FormatDispatch(t *testing.T) {
	r := Build(testMeta(), []ColumnResult{{Column: "age", Status: StatusOK}}, config.AggregationConfig{})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, r, &config.ReportConfig{Format: "json"}))
		assert.True(t, json.Valid(buf.Bytes()))
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, r, &config.ReportConfig{Format: "table"}))
		assert.Contains(t, buf.String(), "COLUMN")
	})
}
