// Package dataset defines the in-memory columnar table the drift pipeline
// operates on. Datasets are built once by a source and read-only afterwards.
package dataset

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/godrift/internal/types"
)

// Column holds the cells of a single named column. Cells are normalized
// (types.Normalize), so a cell is one of nil, int64, float64, bool, or string.
type Column struct {
	Name   string
	Values []interface{}
}

// Dataset is a named columnar table. Column order follows insertion order,
// which for loaded datasets is the column order of the underlying source.
type Dataset struct {
	name    string
	columns *orderedmap.OrderedMap[string, *Column]
	rows    int
}

// New returns an empty dataset with the given name.
func New(name string) *Dataset {
	return &Dataset{
		name:    name,
		columns: orderedmap.NewOrderedMap[string, *Column](),
	}
}

// Name returns the dataset name used in logs and reports.
func (d *Dataset) Name() string {
	return d.name
}

// AddColumn appends a column to the dataset. The first column fixes the row
// count; later columns must match it. Values are normalized on the way in.
func (d *Dataset) AddColumn(name string, values []interface{}) error {
	if name == "" {
		return fmt.Errorf("dataset %s: column name must not be empty", d.name)
	}
	if _, ok := d.columns.Get(name); ok {
		return fmt.Errorf("dataset %s: duplicate column %q", d.name, name)
	}
	if d.columns.Len() > 0 && len(values) != d.rows {
		return fmt.Errorf("dataset %s: column %q has %d values, dataset has %d rows",
			d.name, name, len(values), d.rows)
	}

	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = types.Normalize(v)
	}
	d.columns.Set(name, &Column{Name: name, Values: cells})
	d.rows = len(values)
	return nil
}

// Column returns the named column, or nil when the dataset does not have it.
func (d *Dataset) Column(name string) *Column {
	c, ok := d.columns.Get(name)
	if !ok {
		return nil
	}
	return c
}

// HasColumn reports whether the dataset carries the named column.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.columns.Get(name)
	return ok
}

// ColumnNames returns the column names in insertion order.
func (d *Dataset) ColumnNames() []string {
	return d.columns.Keys()
}

// Rows returns the number of rows.
func (d *Dataset) Rows() int {
	return d.rows
}

// NumColumns returns the number of columns.
func (d *Dataset) NumColumns() int {
	return d.columns.Len()
}

// FromRows builds a dataset from row-oriented data, the natural shape for
// CSV and SQL sources. Every row must have one cell per header entry.
func FromRows(name string, header []string, rows [][]interface{}) (*Dataset, error) {
	d := New(name)
	for i, col := range header {
		values := make([]interface{}, len(rows))
		for j, row := range rows {
			if len(row) != len(header) {
				return nil, fmt.Errorf("dataset %s: row %d has %d cells, header has %d",
					name, j, len(row), len(header))
			}
			values[j] = row[i]
		}
		if err := d.AddColumn(col, values); err != nil {
			return nil, err
		}
	}
	return d, nil
}
