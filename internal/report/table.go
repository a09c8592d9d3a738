package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
)

var tableHeader = []string{"COLUMN", "KIND", "TEST", "SCORE", "THRESHOLD", "P-VALUE", "STATUS", "SEVERITY", "NOTE"}

// renderTable writes the report as an aligned terminal table. Cells are
// measured and padded before any color is applied, so ANSI codes never
// skew the column widths.
func renderTable(w io.Writer, r *Report, colorize bool) error {
	rows := make([][]string, 0, len(r.Columns))
	for _, c := range r.Columns {
		rows = append(rows, tableRow(c))
	}

	widths := make([]int, len(tableHeader))
	for i, h := range tableHeader {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Drift report %s\n", r.RunID)
	fmt.Fprintf(&b, "reference: %s (%d rows)    current: %s (%d rows)\n\n",
		r.Reference.Name, r.Reference.Rows, r.Current.Name, r.Current.Rows)

	writeRow(&b, tableHeader, widths, nil)
	separator := make([]string, len(tableHeader))
	for i, width := range widths {
		separator[i] = strings.Repeat("-", width)
	}
	writeRow(&b, separator, widths, nil)

	for i, row := range rows {
		var paint func(string) string
		if colorize {
			paint = statusPainter(r.Columns[i].Status)
		}
		writeRow(&b, row, widths, paint)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "checked: %d    drifted: %d    skipped: %d    fraction: %s\n",
		r.Checked, r.Drifted, r.Skipped, formatScore(r.DriftFraction))

	verdict := "no drift detected"
	if r.DriftDetected {
		verdict = "DRIFT DETECTED"
	}
	if colorize {
		if r.DriftDetected {
			verdict = color.Bold.Sprint(color.Red.Sprint(verdict))
		} else {
			verdict = color.Green.Sprint(verdict)
		}
	}
	fmt.Fprintf(&b, "%s (rule: %s, %.2fs)\n", verdict, r.Rule, r.DurationSeconds)

	if len(r.CurrentOnly) > 0 {
		fmt.Fprintf(&b, "note: columns only in current dataset: %s\n", strings.Join(r.CurrentOnly, ", "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// tableRow formats one column result with four-decimal numbers and "-"
// for values a skipped or p-less test does not produce.
func tableRow(c ColumnResult) []string {
	if c.Status == StatusSkipped {
		return []string{c.Column, orDash(c.Kind), orDash(c.Test), "-", "-", "-", string(c.Status), "-", c.Reason}
	}

	pvalue := "-"
	if c.PValue != nil {
		pvalue = formatScore(*c.PValue)
	}
	return []string{
		c.Column,
		orDash(c.Kind),
		c.Test,
		formatScore(c.Score),
		formatScore(c.Threshold),
		pvalue,
		string(c.Status),
		string(c.Severity),
		c.Reason,
	}
}

// writeRow pads every cell to its column width, then optionally paints
// the status cell.
func writeRow(b *strings.Builder, row []string, widths []int, paint func(string) string) {
	cells := make([]string, len(row))
	for i, cell := range row {
		padded := runewidth.FillRight(cell, widths[i])
		if paint != nil && i == 6 {
			padded = paint(padded)
		}
		cells[i] = padded
	}
	b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
	b.WriteString("\n")
}

func statusPainter(s Status) func(string) string {
	var c color.Color
	switch s {
	case StatusDrift:
		c = color.Red
	case StatusSkipped:
		c = color.Yellow
	default:
		c = color.Green
	}
	return func(v string) string { return c.Sprint(v) }
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
