package config

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/godrift/internal/stattest"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors
	registry := stattest.NewRegistry(stattest.Options{})

	// Validate dataset sources
	if err := c.validateDataset("reference", &c.Reference); err != nil {
		errors = append(errors, err...)
	}
	if err := c.validateDataset("current", &c.Current); err != nil {
		errors = append(errors, err...)
	}

	// Validate drift settings
	if err := c.validateDrift(registry); err != nil {
		errors = append(errors, err...)
	}

	// Validate severity overrides
	if err := c.validateSeverity(registry); err != nil {
		errors = append(errors, err...)
	}

	// Validate aggregation settings
	if err := c.validateAggregation(); err != nil {
		errors = append(errors, err...)
	}

	// Validate per-column overrides
	for name, col := range c.Columns {
		if err := c.validateColumn(name, &col, registry); err != nil {
			errors = append(errors, err...)
		}
	}

	// Validate report settings
	if err := c.validateReport(); err != nil {
		errors = append(errors, err...)
	}

	// Validate logging settings
	if err := c.validateLogging(); err != nil {
		errors = append(errors, err...)
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateDataset(prefix string, ds *DatasetConfig) ValidationErrors {
	var errors ValidationErrors

	switch ds.Type {
	case "csv", "parquet":
		if ds.Path == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + ".path",
				Message: "path is required",
			})
		}
		if ds.Type == "csv" && len(ds.Delimiter) > 1 {
			errors = append(errors, ValidationError{
				Field:   prefix + ".delimiter",
				Message: "delimiter must be a single character",
			})
		}
	case "sql":
		errors = append(errors, c.validateSQLDataset(prefix, ds)...)
	case "object":
		errors = append(errors, c.validateObjectDataset(prefix, ds)...)
	case "":
		errors = append(errors, ValidationError{
			Field:   prefix + ".type",
			Message: "type is required",
		})
	default:
		errors = append(errors, ValidationError{
			Field:   prefix + ".type",
			Message: "type must be 'csv', 'parquet', 'sql', or 'object'",
		})
	}

	return errors
}

func (c *Config) validateSQLDataset(prefix string, ds *DatasetConfig) ValidationErrors {
	var errors ValidationErrors

	validDrivers := map[string]bool{"mysql": true, "postgres": true}
	if !validDrivers[ds.Driver] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".driver",
			Message: "driver must be 'mysql' or 'postgres'",
		})
	}

	if ds.Host == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".host",
			Message: "host is required",
		})
	}

	if ds.Port <= 0 || ds.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".port",
			Message: "port must be between 1 and 65535",
		})
	}

	if ds.User == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".user",
			Message: "user is required",
		})
	}

	if ds.Database == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".database",
			Message: "database name is required",
		})
	}

	if ds.Query == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".query",
			Message: "query is required",
		})
	}

	return errors
}

func (c *Config) validateObjectDataset(prefix string, ds *DatasetConfig) ValidationErrors {
	var errors ValidationErrors

	if ds.Endpoint == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".endpoint",
			Message: "endpoint is required",
		})
	}

	if ds.Bucket == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".bucket",
			Message: "bucket is required",
		})
	}

	if ds.Key == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".key",
			Message: "key is required",
		})
	}

	return errors
}

func (c *Config) validateDrift(registry *stattest.Registry) ValidationErrors {
	var errors ValidationErrors

	if c.Drift.Threshold < 0 {
		errors = append(errors, ValidationError{
			Field:   "drift.threshold",
			Message: "threshold cannot be negative",
		})
	}

	if c.Drift.MinSampleSize < 0 {
		errors = append(errors, ValidationError{
			Field:   "drift.min_sample_size",
			Message: "min_sample_size cannot be negative",
		})
	}

	if c.Drift.CardinalityCutoff < 0 {
		errors = append(errors, ValidationError{
			Field:   "drift.cardinality_cutoff",
			Message: "cardinality_cutoff cannot be negative",
		})
	}

	if c.Drift.Workers < 0 {
		errors = append(errors, ValidationError{
			Field:   "drift.workers",
			Message: "workers cannot be negative",
		})
	}

	if c.Drift.Bins < 0 {
		errors = append(errors, ValidationError{
			Field:   "drift.bins",
			Message: "bins cannot be negative",
		})
	}

	if c.Drift.QuantileTrim < 0 || c.Drift.QuantileTrim >= 1 {
		errors = append(errors, ValidationError{
			Field:   "drift.quantile_trim",
			Message: "quantile_trim must be at least 0 and below 1",
		})
	}

	if c.Drift.PSIEpsilon < 0 {
		errors = append(errors, ValidationError{
			Field:   "drift.psi_epsilon",
			Message: "psi_epsilon cannot be negative",
		})
	}

	if c.Drift.DefaultContinuousTest != "" {
		if _, ok := registry.Lookup(c.Drift.DefaultContinuousTest); !ok {
			errors = append(errors, ValidationError{
				Field:   "drift.default_continuous_test",
				Message: fmt.Sprintf("unknown test %q (known: %s)", c.Drift.DefaultContinuousTest, strings.Join(registry.IDs(), ", ")),
			})
		}
	}

	if c.Drift.DefaultCategoricalTest != "" {
		test, ok := registry.Lookup(c.Drift.DefaultCategoricalTest)
		if !ok {
			errors = append(errors, ValidationError{
				Field:   "drift.default_categorical_test",
				Message: fmt.Sprintf("unknown test %q (known: %s)", c.Drift.DefaultCategoricalTest, strings.Join(registry.IDs(), ", ")),
			})
		} else if test.Family() != stattest.FamilyFrequency {
			errors = append(errors, ValidationError{
				Field:   "drift.default_categorical_test",
				Message: fmt.Sprintf("test %q compares numeric values and cannot serve categorical columns", c.Drift.DefaultCategoricalTest),
			})
		}
	}

	return errors
}

func (c *Config) validateSeverity(registry *stattest.Registry) ValidationErrors {
	var errors ValidationErrors

	for id, s := range c.Severity {
		prefix := fmt.Sprintf("severity.%s", id)
		if _, ok := registry.Lookup(id); !ok {
			errors = append(errors, ValidationError{
				Field:   prefix,
				Message: fmt.Sprintf("unknown test %q", id),
			})
			continue
		}
		if s.Medium < 0 || s.High < 0 {
			errors = append(errors, ValidationError{
				Field:   prefix,
				Message: "severity boundaries cannot be negative",
			})
		}
		if s.Medium > 0 && s.High > 0 && s.High < s.Medium {
			errors = append(errors, ValidationError{
				Field:   prefix,
				Message: "high boundary must not be below medium",
			})
		}
	}

	return errors
}

func (c *Config) validateAggregation() ValidationErrors {
	var errors ValidationErrors

	validRules := map[string]bool{"any": true, "fraction": true}
	if !validRules[c.Aggregation.Rule] {
		errors = append(errors, ValidationError{
			Field:   "aggregation.rule",
			Message: "rule must be 'any' or 'fraction'",
		})
	}

	if c.Aggregation.Rule == "fraction" && (c.Aggregation.Fraction <= 0 || c.Aggregation.Fraction > 1) {
		errors = append(errors, ValidationError{
			Field:   "aggregation.fraction",
			Message: "fraction must be between 0 and 1",
		})
	}

	return errors
}

func (c *Config) validateColumn(name string, col *ColumnConfig, registry *stattest.Registry) ValidationErrors {
	var errors ValidationErrors
	prefix := fmt.Sprintf("columns.%s", name)

	if col.Test != "" {
		if _, ok := registry.Lookup(col.Test); !ok {
			errors = append(errors, ValidationError{
				Field:   prefix + ".test",
				Message: fmt.Sprintf("unknown test %q (known: %s)", col.Test, strings.Join(registry.IDs(), ", ")),
			})
		}
	}

	if col.Threshold < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".threshold",
			Message: "threshold cannot be negative",
		})
	}

	validKinds := map[string]bool{"continuous": true, "discrete": true, "categorical": true, "": true}
	if !validKinds[col.Kind] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".kind",
			Message: "kind must be 'continuous', 'discrete', or 'categorical'",
		})
	}

	return errors
}

func (c *Config) validateReport() ValidationErrors {
	var errors ValidationErrors

	validFormats := map[string]bool{"table": true, "json": true, "": true}
	if !validFormats[c.Report.Format] {
		errors = append(errors, ValidationError{
			Field:   "report.format",
			Message: "format must be 'table' or 'json'",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
