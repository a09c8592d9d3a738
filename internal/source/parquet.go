package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/common"
	"github.com/xitongsys/parquet-go/reader"
	pqsource "github.com/xitongsys/parquet-go/source"

	"github.com/dbsmedya/godrift/internal/config"
	"github.com/dbsmedya/godrift/internal/dataset"
)

// ParquetLoader reads a dataset from a local Parquet file.
type ParquetLoader struct {
	cfg  *config.DatasetConfig
	name string
}

// NewParquet creates a ParquetLoader for the given configuration.
func NewParquet(cfg *config.DatasetConfig, role string) *ParquetLoader {
	return &ParquetLoader{cfg: cfg, name: displayName(cfg, role)}
}

// Load reads the configured file into a dataset.
func (l *ParquetLoader) Load(ctx context.Context) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pf, err := local.NewLocalFileReader(l.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.cfg.Path, err)
	}
	defer pf.Close()

	ds, err := readParquet(pf, l.name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.cfg.Path, err)
	}
	return ds, nil
}

// readParquet decodes every leaf column of a Parquet file. Values are
// taken at their physical representation, so logical decorations such
// as DECIMAL arrive as their stored bytes.
func readParquet(pf pqsource.ParquetFile, name string) (*dataset.Dataset, error) {
	pr, err := reader.NewParquetColumnReader(pf, 1)
	if err != nil {
		return nil, fmt.Errorf("read footer: %w", err)
	}
	defer pr.ReadStop()

	rows := pr.GetNumRows()
	ds := dataset.New(name)

	for _, inPath := range pr.SchemaHandler.ValueColumns {
		values, _, _, err := pr.ReadColumnByPath(inPath, rows)
		if err != nil {
			return nil, fmt.Errorf("read column %s: %w", columnName(pr, inPath), err)
		}

		colName := columnName(pr, inPath)
		if int64(len(values)) != rows {
			return nil, fmt.Errorf("column %s has nested or repeated values", colName)
		}
		if err := ds.AddColumn(colName, values); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

// columnName maps an internal leaf path to its file-level column name,
// dropping the schema root.
func columnName(pr *reader.ParquetReader, inPath string) string {
	exPath, ok := pr.SchemaHandler.InPathToExPath[inPath]
	if !ok {
		exPath = inPath
	}
	parts := common.StrToPath(exPath)
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}
