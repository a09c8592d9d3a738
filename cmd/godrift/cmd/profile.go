package cmd

import (
	"context"
	"fmt"

	"github.com/dbsmedya/godrift/internal/config"
	"github.com/dbsmedya/godrift/internal/profile"
	"github.com/dbsmedya/godrift/internal/source"
	"github.com/spf13/cobra"
)

var profileWhich string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Summarize one dataset without comparing",
	Long: `Profile loads a single dataset and prints a per-column summary: the
classified kind, row counts, missing values, cardinality, and moments
for numeric columns.

Useful for inspecting what the checker will see before running a
comparison.

Example:
  godrift profile --config godrift.yaml --which current`,
	RunE: runProfile,
}

func init() {
	profileCmd.Flags().StringVar(&profileWhich, "which", "reference",
		"Dataset to profile (reference, current)")

	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply CLI overrides
	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.Threshold, overrides.MinSampleSize, overrides.Workers,
		overrides.Reference, overrides.Current,
		overrides.Format, overrides.Output, overrides.NoColor)

	var dsCfg *config.DatasetConfig
	switch profileWhich {
	case "reference":
		dsCfg = &cfg.Reference
	case "current":
		dsCfg = &cfg.Current
	default:
		return fmt.Errorf("unknown dataset %q (expected 'reference' or 'current')", profileWhich)
	}

	loader, err := source.New(dsCfg, profileWhich)
	if err != nil {
		return fmt.Errorf("failed to create %s loader: %w", profileWhich, err)
	}

	ds, err := loader.Load(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load %s dataset: %w", profileWhich, err)
	}

	cmd.Printf("Dataset: %s (%d rows, %d columns)\n\n", ds.Name(), ds.Rows(), ds.NumColumns())

	names := ds.ColumnNames()
	nameWidth := len("COLUMN")
	for _, name := range names {
		if len(name) > nameWidth {
			nameWidth = len(name)
		}
	}

	cmd.Printf("%-*s  %-12s %8s %8s %9s  %10s %10s %10s %10s\n",
		nameWidth, "COLUMN", "KIND", "COUNT", "MISSING", "DISTINCT",
		"MEAN", "STD", "MIN", "MAX")

	for _, name := range names {
		opts := profile.Options{CardinalityCutoff: cfg.Drift.CardinalityCutoff}
		if override, ok := cfg.ColumnOverride(name); ok {
			if kind, valid := profile.ParseKind(override.Kind); valid {
				opts.ForceKind = kind
			}
		}
		p := profile.Column(ds.Column(name), opts)

		kind := string(p.Kind)
		if p.AllMissing {
			kind = "empty"
		}

		mean, std, min, max := "-", "-", "-", "-"
		if p.Numeric && !p.AllMissing {
			mean = fmt.Sprintf("%.4f", p.Mean)
			std = fmt.Sprintf("%.4f", p.Std)
			min = fmt.Sprintf("%.4f", p.Min)
			max = fmt.Sprintf("%.4f", p.Max)
		}

		cmd.Printf("%-*s  %-12s %8d %8d %9d  %10s %10s %10s %10s\n",
			nameWidth, p.Name, kind, p.Count, p.Missing, p.Distinct,
			mean, std, min, max)
	}

	return nil
}
