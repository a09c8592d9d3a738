package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/dbsmedya/godrift/internal/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and run preflight checks",
	Long: `Validate checks the configuration file and verifies that configured
dataset sources are reachable before a check runs.

Checks performed:
  - Configuration syntax and required fields
  - Test ids, thresholds, and severity boundaries
  - Per-column override consistency
  - File-backed dataset existence

Example:
  godrift validate --config godrift.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
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

	fmt.Printf("\n=== Configuration Validation ===\n")
	fmt.Printf("Config file: %s\n", configFile)
	fmt.Printf("Column overrides: %d\n\n", len(cfg.Columns))

	hasErrors := false

	// Structural validation
	if err := cfg.Validate(); err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			for _, verr := range verrs {
				fmt.Printf("❌ %s\n", verr.Error())
			}
		} else {
			fmt.Printf("❌ %v\n", err)
		}
		hasErrors = true
	} else {
		fmt.Printf("✅ Configuration fields are valid\n")
	}

	// Preflight: file-backed sources must exist on disk
	for _, side := range []struct {
		role string
		ds   *config.DatasetConfig
	}{
		{"reference", &cfg.Reference},
		{"current", &cfg.Current},
	} {
		switch side.ds.Type {
		case "csv", "parquet":
			if _, err := os.Stat(side.ds.Path); err != nil {
				fmt.Printf("❌ %s dataset not readable: %v\n", side.role, err)
				hasErrors = true
				continue
			}
			fmt.Printf("✅ %s dataset found: %s\n", side.role, side.ds.Path)
		case "sql", "object":
			fmt.Printf("   %s dataset: %s source, connectivity checked at run time\n",
				side.role, side.ds.Type)
		}
	}

	if hasErrors {
		fmt.Println()
		return fmt.Errorf("validation failed")
	}

	fmt.Println("\n=== Validation Complete ===")
	fmt.Println("✅ Configuration validated successfully")
	return nil
}
