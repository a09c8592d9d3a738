package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dbsmedya/godrift/internal/config"
	"github.com/dbsmedya/godrift/internal/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the drift check when the current dataset changes",
	Long: `Watch monitors the current dataset file and re-runs the drift check
after every write, keeping the report current as new data lands.

Only file-backed current datasets (csv, parquet) can be watched. Rapid
successive writes are debounced into a single check.

Example:
  godrift watch --config godrift.yaml --debounce 2s`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second,
		"Quiet period after a file change before the check re-runs")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	if cfg.Current.Type != "csv" && cfg.Current.Type != "parquet" {
		return fmt.Errorf("watch requires a file-backed current dataset, got type %q", cfg.Current.Type)
	}

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	target, err := filepath.Abs(cfg.Current.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve current dataset path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file itself: atomic writers
	// replace the file, which drops a watch registered on the old inode.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	// Setup context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Warn("Received shutdown signal - stopping watch...")
		cancel()
	}()

	log.Infow("Watching current dataset",
		"path", target,
		"debounce", watchDebounce.String(),
	)

	// Initial check before waiting for changes
	if _, err := checkOnce(ctx, cfg, log); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		log.Errorw("Drift check failed", "error", err)
	}

	// A nil timer channel blocks forever, so the debounce case only
	// fires while a change is pending.
	var debounce *time.Timer
	var debounceC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			log.Info("Watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event, target) {
				continue
			}
			log.Debugw("Current dataset changed", "op", event.Op.String())
			if debounce == nil {
				debounce = time.NewTimer(watchDebounce)
				debounceC = debounce.C
			} else {
				debounce.Reset(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorw("Watcher error", "error", err)

		case <-debounceC:
			debounce = nil
			debounceC = nil
			if _, err := checkOnce(ctx, cfg, log); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				log.Errorw("Drift check failed", "error", err)
			}
		}
	}
}

// relevantEvent reports whether a watcher event is a content change of
// the target file. Renames of the target away and sibling files in the
// watched directory are ignored.
func relevantEvent(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
