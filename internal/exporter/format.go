package exporter

import (
	"fmt"
	"math"
	"strconv"
)

// Text written for infinite values
const (
	PosInfText = "inf"
	NegInfText = "-inf"
)

// formatFloat formats a float64 with the shortest exact representation.
// NaN becomes an empty cell.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ""
	case math.IsInf(f, 1):
		return PosInfText
	case math.IsInf(f, -1):
		return NegInfText
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// FormatCell renders a sheet cell as text.
func FormatCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return formatInt(x)
	case float64:
		return formatFloat(x)
	default:
		return fmt.Sprint(x)
	}
}

// workbookValue maps a sheet cell to the value handed to excelize: nil for
// NaN, text for infinities, the value itself otherwise.
func workbookValue(v interface{}) interface{} {
	f, ok := v.(float64)
	if !ok {
		return v
	}
	switch {
	case math.IsNaN(f):
		return nil
	case math.IsInf(f, 0):
		return formatFloat(f)
	}
	return f
}
