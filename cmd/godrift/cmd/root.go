package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile       string
	logLevel      string
	logFormat     string
	threshold     float64
	minSampleSize int
	workers       int
	refPath       string
	curPath       string
	format        string
	output        string
	noColor       bool
)

var rootCmd = &cobra.Command{
	Use:   "godrift",
	Short: "Tabular Data Drift Detector",
	Long: `A production-grade CLI tool for detecting distribution drift between
a reference dataset and a current dataset, column by column.

Features:
  - Seven statistical tests (KS, Mann-Whitney U, t-test, Wasserstein, KL, chi-square, PSI)
  - Automatic column classification (continuous, discrete, categorical)
  - CSV, Parquet, SQL, and S3-compatible object storage sources
  - Concurrent column checks with deterministic reports
  - Severity grading with per-test and per-column thresholds`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "godrift.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Drift overrides
	rootCmd.PersistentFlags().Float64Var(&threshold, "threshold", 0,
		"Override drift threshold for every column")
	rootCmd.PersistentFlags().IntVar(&minSampleSize, "min-sample-size", 0,
		"Override minimum sample size required per column")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0,
		"Override number of concurrent column workers")

	// Dataset overrides
	rootCmd.PersistentFlags().StringVar(&refPath, "reference", "",
		"Override reference dataset file path (CSV or Parquet)")
	rootCmd.PersistentFlags().StringVar(&curPath, "current", "",
		"Override current dataset file path (CSV or Parquet)")

	// Report overrides
	rootCmd.PersistentFlags().StringVar(&format, "format", "",
		"Override report format (table, json)")
	rootCmd.PersistentFlags().StringVar(&output, "output", "",
		"Override report output (stdout, stderr, or a file path)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored report output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel      string
	LogFormat     string
	Threshold     float64
	MinSampleSize int
	Workers       int
	Reference     string
	Current       string
	Format        string
	Output        string
	NoColor       bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:      logLevel,
		LogFormat:     logFormat,
		Threshold:     threshold,
		MinSampleSize: minSampleSize,
		Workers:       workers,
		Reference:     refPath,
		Current:       curPath,
		Format:        format,
		Output:        output,
		NoColor:       noColor,
	}
}
