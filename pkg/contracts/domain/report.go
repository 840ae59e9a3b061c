package domain

import "math"

// Trend metric names, in matrix order.
const (
	MetricSessions     = "sessions"
	MetricAddsToCart   = "addsToCart"
	MetricTransactions = "transactions"
	MetricQuantity     = "QTY"
	MetricECR          = "ECR"
)

// TrendMetrics is the fixed metric order of the month-to-month matrix.
var TrendMetrics = []string{
	MetricSessions,
	MetricAddsToCart,
	MetricTransactions,
	MetricQuantity,
	MetricECR,
}

// TrendRow carries one metric across the selected months. Deltas for the
// first month are NaN.
type TrendRow struct {
	Metric    string    `json:"metric"`
	Values    []float64 `json:"values"`
	AbsChange []float64 `json:"abs_change"`
	PctChange []float64 `json:"pct_change"`
}

// MatrixRow is one labeled row of the transposed comparison table.
type MatrixRow struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// TrendReport is the month-to-month comparison: months are columns.
type TrendReport struct {
	Months []string   `json:"months"`
	Rows   []TrendRow `json:"rows"`
}

// Empty reports whether no month survived selection and joining.
func (t TrendReport) Empty() bool {
	return len(t.Months) == 0
}

// Matrix returns value, absolute change and percent change rows per metric
// in TrendMetrics order.
func (t TrendReport) Matrix() []MatrixRow {
	out := make([]MatrixRow, 0, len(t.Rows)*3)
	for _, r := range t.Rows {
		out = append(out,
			MatrixRow{Label: r.Metric, Values: r.Values},
			MatrixRow{Label: r.Metric + "_abs_change", Values: r.AbsChange},
			MatrixRow{Label: r.Metric + "_pct_change", Values: r.PctChange},
		)
	}
	return out
}

// Row returns the TrendRow for metric.
func (t TrendReport) Row(metric string) (TrendRow, bool) {
	for _, r := range t.Rows {
		if r.Metric == metric {
			return r, true
		}
	}
	return TrendRow{}, false
}

// ReportSet is the pipeline output: the four report tables of one run.
type ReportSet struct {
	MonthDevice       []AggregateRow `json:"month_device"`
	Trend             TrendReport    `json:"trend"`
	TopBrowsers       []AggregateRow `json:"top_browsers"`
	MonthDeviceTotals []AggregateRow `json:"month_device_totals"`
}

// Undefined reports whether a derived value has no defined result.
func Undefined(v float64) bool {
	return math.IsNaN(v)
}
