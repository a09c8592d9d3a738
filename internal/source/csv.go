package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dbsmedya/godrift/internal/config"
	"github.com/dbsmedya/godrift/internal/dataset"
)

// missingMarkers are cell values read as missing, matching the markers
// common tabular tooling treats as null.
var missingMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}

// CSVLoader reads a dataset from a delimited text file.
type CSVLoader struct {
	cfg  *config.DatasetConfig
	name string
}

// NewCSV creates a CSVLoader for the given configuration.
func NewCSV(cfg *config.DatasetConfig, role string) *CSVLoader {
	return &CSVLoader{cfg: cfg, name: displayName(cfg, role)}
}

// Load reads and parses the configured file into a dataset.
func (l *CSVLoader) Load(ctx context.Context) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.cfg.Path, err)
	}

	ds, err := parseCSV(data, l.cfg, l.name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.cfg.Path, err)
	}
	return ds, nil
}

// parseCSV decodes delimited text into a dataset, inferring cell types
// column value by column value.
func parseCSV(data []byte, cfg *config.DatasetConfig, name string) (*dataset.Dataset, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	if cfg.Delimiter != "" {
		reader.Comma = rune(cfg.Delimiter[0])
	}
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	var header []string
	var rows [][]string
	if cfg.NoHeader {
		header = make([]string, len(records[0]))
		for i := range header {
			header[i] = fmt.Sprintf("col_%d", i+1)
		}
		rows = records
	} else {
		header = records[0]
		rows = records[1:]
	}

	cells := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells[i] = make([]interface{}, len(row))
		for j, cell := range row {
			cells[i][j] = inferCell(cell)
		}
	}

	return dataset.FromRows(name, header, cells)
}

// inferCell parses a raw cell into the most specific scalar it holds:
// missing marker, integer, float, boolean, or string.
func inferCell(s string) interface{} {
	s = strings.TrimSpace(s)
	if missingMarkers[strings.ToLower(s)] {
		return nil
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}

	return s
}
