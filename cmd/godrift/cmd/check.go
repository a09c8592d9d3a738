package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dbsmedya/godrift/internal/config"
	"github.com/dbsmedya/godrift/internal/drift"
	"github.com/dbsmedya/godrift/internal/logger"
	"github.com/dbsmedya/godrift/internal/report"
	"github.com/dbsmedya/godrift/internal/source"
	"github.com/spf13/cobra"
)

var checkFailOnDrift bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare the current dataset against the reference",
	Long: `Check loads both datasets, profiles every selected column, runs the
configured statistical test per column, and renders a drift report.

The check process follows these steps:
  1. Load the reference and current datasets
  2. Classify each column (continuous, discrete, categorical)
  3. Run the configured test and score it against its threshold
  4. Aggregate column verdicts into a dataset-level verdict

Example:
  godrift check --config godrift.yaml --fail-on-drift`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkFailOnDrift, "fail-on-drift", false,
		"Exit with code 2 when the dataset-level verdict is drift")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Setup context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Warn("Received shutdown signal - aborting check...")
		cancel()
	}()

	// Execute the comparison
	rep, err := checkOnce(ctx, cfg, log)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Drift check cancelled by user")
			return nil
		}
		return err
	}

	if checkFailOnDrift && rep.DriftDetected {
		os.Exit(2)
	}
	return nil
}

// checkOnce loads both datasets, runs the column comparison, and writes
// the report. Watch reuses it for every re-run.
func checkOnce(ctx context.Context, cfg *config.Config, log *logger.Logger) (*report.Report, error) {
	refLoader, err := source.New(&cfg.Reference, "reference")
	if err != nil {
		return nil, fmt.Errorf("failed to create reference loader: %w", err)
	}
	curLoader, err := source.New(&cfg.Current, "current")
	if err != nil {
		return nil, fmt.Errorf("failed to create current loader: %w", err)
	}

	ref, err := refLoader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference dataset: %w", err)
	}
	cur, err := curLoader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load current dataset: %w", err)
	}

	runner, err := drift.NewRunner(cfg, log)
	if err != nil {
		return nil, err
	}

	rep, err := runner.Run(ctx, ref, cur)
	if err != nil {
		return nil, err
	}

	if err := report.Write(rep, &cfg.Report); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	return rep, nil
}
