// Package source loads datasets from the locations a comparison is
// configured against: CSV and Parquet files, SQL query results, and
// objects in S3-compatible storage.
package source

import (
	"context"
	"fmt"

	"github.com/dbsmedya/godrift/internal/config"
	"github.com/dbsmedya/godrift/internal/dataset"
)

// Loader loads a dataset from a configured location.
type Loader interface {
	Load(ctx context.Context) (*dataset.Dataset, error)
}

// New creates the Loader for a dataset configuration. The role names the
// dataset in reports and logs when the configuration carries no name of
// its own, typically "reference" or "current".
func New(cfg *config.DatasetConfig, role string) (Loader, error) {
	switch cfg.Type {
	case "csv":
		return NewCSV(cfg, role), nil
	case "parquet":
		return NewParquet(cfg, role), nil
	case "sql":
		return NewSQL(cfg, role), nil
	case "object":
		store, err := NewMinioStore(cfg)
		if err != nil {
			return nil, err
		}
		return NewObject(cfg, role, store), nil
	default:
		return nil, fmt.Errorf("unsupported source type %q", cfg.Type)
	}
}

// displayName resolves the dataset name, preferring an explicit one.
func displayName(cfg *config.DatasetConfig, role string) string {
	if cfg.Name != "" {
		return cfg.Name
	}
	return role
}
