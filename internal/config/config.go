// Package config provides configuration structures and loading for GoDrift.
package config

// Config represents the complete application configuration.
type Config struct {
	Reference   DatasetConfig             `yaml:"reference" mapstructure:"reference"`
	Current     DatasetConfig             `yaml:"current" mapstructure:"current"`
	Drift       DriftConfig               `yaml:"drift" mapstructure:"drift"`
	Severity    map[string]SeverityConfig `yaml:"severity" mapstructure:"severity"`
	Aggregation AggregationConfig         `yaml:"aggregation" mapstructure:"aggregation"`
	Columns     map[string]ColumnConfig   `yaml:"columns" mapstructure:"columns"`
	Include     []string                  `yaml:"include" mapstructure:"include"`
	Exclude     []string                  `yaml:"exclude" mapstructure:"exclude"`
	Report      ReportConfig              `yaml:"report" mapstructure:"report"`
	Logging     LoggingConfig             `yaml:"logging" mapstructure:"logging"`
}

// DatasetConfig describes where one dataset is loaded from. Type selects the
// source; the remaining fields apply to the matching source only.
type DatasetConfig struct {
	Type string `yaml:"type" mapstructure:"type"` // csv, parquet, sql, object
	Name string `yaml:"name" mapstructure:"name"` // display name, defaults to the role

	// File-backed sources (csv, parquet).
	Path      string `yaml:"path" mapstructure:"path"`
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"` // csv field separator, default ","
	NoHeader  bool   `yaml:"no_header" mapstructure:"no_header"` // csv without a header row

	// SQL sources.
	Driver   string `yaml:"driver" mapstructure:"driver"` // mysql or postgres
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	Database string `yaml:"database" mapstructure:"database"`
	Query    string `yaml:"query" mapstructure:"query"`

	// Object storage sources. Key extension picks the decoder (csv, parquet).
	Endpoint  string `yaml:"endpoint" mapstructure:"endpoint"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	Bucket    string `yaml:"bucket" mapstructure:"bucket"`
	Key       string `yaml:"key" mapstructure:"key"`
	UseSSL    bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
	Region    string `yaml:"region" mapstructure:"region"`
}

// DriftConfig tunes the drift engine.
type DriftConfig struct {
	DefaultContinuousTest  string  `yaml:"default_continuous_test" mapstructure:"default_continuous_test"`
	DefaultCategoricalTest string  `yaml:"default_categorical_test" mapstructure:"default_categorical_test"`
	Threshold              float64 `yaml:"threshold" mapstructure:"threshold"`                   // 0 means per-test defaults
	MinSampleSize          int     `yaml:"min_sample_size" mapstructure:"min_sample_size"`       // floor, combined with per-test minimums
	CardinalityCutoff      int     `yaml:"cardinality_cutoff" mapstructure:"cardinality_cutoff"` // numeric distinct count at or below is discrete
	Workers                int     `yaml:"workers" mapstructure:"workers"`
	Bins                   int     `yaml:"bins" mapstructure:"bins"`                   // histogram bins for frequency tests on continuous data, 0 means automatic
	QuantileTrim           float64 `yaml:"quantile_trim" mapstructure:"quantile_trim"` // drop values at or above this quantile before binning, 0 disables
	PSIEpsilon             float64 `yaml:"psi_epsilon" mapstructure:"psi_epsilon"`
}

// SeverityConfig overrides a test's severity bucket boundaries.
type SeverityConfig struct {
	Medium float64 `yaml:"medium" mapstructure:"medium"`
	High   float64 `yaml:"high" mapstructure:"high"`
}

// AggregationConfig controls the dataset-level drift verdict.
type AggregationConfig struct {
	Rule           string  `yaml:"rule" mapstructure:"rule"` // any or fraction
	Fraction       float64 `yaml:"fraction" mapstructure:"fraction"`
	IncludeSkipped bool    `yaml:"include_skipped" mapstructure:"include_skipped"`
}

// ColumnConfig overrides engine behavior for a single column.
type ColumnConfig struct {
	Test      string  `yaml:"test" mapstructure:"test"`
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"` // 0 means inherit
	Kind      string  `yaml:"kind" mapstructure:"kind"`           // continuous, discrete, categorical
}

// ReportConfig controls rendering of the drift report.
type ReportConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // table or json
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
	Color  bool   `yaml:"color" mapstructure:"color"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Drift: DriftConfig{
			DefaultContinuousTest:  "ks",
			DefaultCategoricalTest: "chisquare",
			MinSampleSize:          5,
			CardinalityCutoff:      20,
			Workers:                4,
			PSIEpsilon:             0.0001,
		},
		Aggregation: AggregationConfig{
			Rule:     "any",
			Fraction: 0.5,
		},
		Report: ReportConfig{
			Format: "table",
			Output: "stdout",
			Color:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}

// ColumnOverride returns the per-column override, if one is configured.
func (c *Config) ColumnOverride(name string) (ColumnConfig, bool) {
	cc, ok := c.Columns[name]
	return cc, ok
}

// ThresholdFor resolves the drift threshold for a column: per-column
// override first, then the global threshold, then the test default.
func (c *Config) ThresholdFor(column string, testDefault float64) float64 {
	if cc, ok := c.Columns[column]; ok && cc.Threshold > 0 {
		return cc.Threshold
	}
	if c.Drift.Threshold > 0 {
		return c.Drift.Threshold
	}
	return testDefault
}

// SeverityFor resolves the severity bucket boundaries for a test id,
// applying any configured override on top of the given test defaults.
func (c *Config) SeverityFor(testID string, medium, high float64) (float64, float64) {
	if s, ok := c.Severity[testID]; ok {
		if s.Medium > 0 {
			medium = s.Medium
		}
		if s.High > 0 {
			high = s.High
		}
	}
	return medium, high
}

// MinSamplesFor combines the configured floor with a test's own minimum.
func (c *Config) MinSamplesFor(testMin int) int {
	if c.Drift.MinSampleSize > testMin {
		return c.Drift.MinSampleSize
	}
	return testMin
}

// CompareColumns returns the columns to compare after applying the include
// and exclude lists. Reference order is preserved; included columns missing
// from the reference are appended so they still show up as schema mismatches.
func (c *Config) CompareColumns(referenceOrder []string) []string {
	excluded := make(map[string]bool, len(c.Exclude))
	for _, name := range c.Exclude {
		excluded[name] = true
	}

	if len(c.Include) == 0 {
		out := make([]string, 0, len(referenceOrder))
		for _, name := range referenceOrder {
			if !excluded[name] {
				out = append(out, name)
			}
		}
		return out
	}

	included := make(map[string]bool, len(c.Include))
	for _, name := range c.Include {
		included[name] = true
	}
	inReference := make(map[string]bool, len(referenceOrder))
	out := make([]string, 0, len(c.Include))
	for _, name := range referenceOrder {
		inReference[name] = true
		if included[name] && !excluded[name] {
			out = append(out, name)
		}
	}
	for _, name := range c.Include {
		if !inReference[name] && !excluded[name] {
			out = append(out, name)
		}
	}
	return out
}
