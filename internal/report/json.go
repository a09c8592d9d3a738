package report

import (
	"encoding/json"
	"io"
)

// renderJSON writes the report as indented JSON.
func renderJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
