// Package types holds the scalar cell helpers shared by the dataset sources
// and the statistical pipeline. After normalization a cell is one of nil,
// int64, float64, bool, or string; nil marks a missing observation.
package types

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Normalize canonicalizes a raw cell value into the small set of cell types.
// Integer widths collapse to int64, float32 widens to float64, []byte becomes
// string, time.Time is formatted as RFC 3339, and NaN becomes nil. Anything
// else falls back to its fmt representation.
func Normalize(v interface{}) interface{} {
	switch c := v.(type) {
	case nil:
		return nil
	case int64:
		return c
	case int:
		return int64(c)
	case int32:
		return int64(c)
	case int16:
		return int64(c)
	case int8:
		return int64(c)
	case uint:
		return int64(c)
	case uint64:
		return int64(c)
	case uint32:
		return int64(c)
	case uint16:
		return int64(c)
	case uint8:
		return int64(c)
	case float64:
		if math.IsNaN(c) {
			return nil
		}
		return c
	case float32:
		return float64(c)
	case bool:
		return c
	case string:
		return c
	case []byte:
		return string(c)
	case time.Time:
		return c.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", c)
	}
}

// IsMissing reports whether a cell value represents a missing observation.
// nil cells and NaN floats both count as missing.
func IsMissing(v interface{}) bool {
	if v == nil {
		return true
	}
	if f, ok := v.(float64); ok {
		return math.IsNaN(f)
	}
	return false
}

// ToFloat64 converts a cell value to float64. The second return is false for
// anything non-numeric, including nil, bool, and string.
func ToFloat64(v interface{}) (float64, bool) {
	switch c := v.(type) {
	case float64:
		if math.IsNaN(c) {
			return 0, false
		}
		return c, true
	case float32:
		return float64(c), true
	case int64:
		return float64(c), true
	case int:
		return float64(c), true
	case int32:
		return float64(c), true
	case int16:
		return float64(c), true
	case int8:
		return float64(c), true
	case uint:
		return float64(c), true
	case uint64:
		return float64(c), true
	case uint32:
		return float64(c), true
	case uint16:
		return float64(c), true
	case uint8:
		return float64(c), true
	default:
		return 0, false
	}
}

// ToString renders a cell value as a category label. Equal numeric values
// produce the same label regardless of cell type, so int64(1) and
// float64(1.0) bin together. Missing cells render as the empty string.
func ToString(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case bool:
		return strconv.FormatBool(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case float64:
		if math.IsNaN(c) {
			return ""
		}
		return strconv.FormatFloat(c, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", c)
	}
}
