package report

import (
	"fmt"
	"io"
	"os"

	"github.com/dbsmedya/godrift/internal/config"
)

// Render writes the report to w in the configured format.
func Render(w io.Writer, r *Report, cfg *config.ReportConfig) error {
	switch cfg.Format {
	case "json":
		return renderJSON(w, r)
	default:
		return renderTable(w, r, cfg.Color)
	}
}

// Write renders the report to the configured destination: stdout, stderr,
// or a file path.
func Write(r *Report, cfg *config.ReportConfig) error {
	switch cfg.Output {
	case "stdout", "":
		return Render(os.Stdout, r, cfg)
	case "stderr":
		return Render(os.Stderr, r, cfg)
	default:
		f, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("create report file: %w", err)
		}
		if err := Render(f, r, cfg); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
}
