package domain

import "math"

// Session table column names.
const (
	ColDate           = "dim_date"
	ColDeviceCategory = "dim_deviceCategory"
	ColBrowser        = "dim_browser"
	ColSessions       = "sessions"
	ColTransactions   = "transactions"
	ColQuantity       = "QTY"
)

// Cart-add table column names.
const (
	ColMonth      = "dim_month"
	ColYear       = "dim_year"
	ColAddsToCart = "addsToCart"
)

// SessionRecord is one row of the session-count feed after normalization.
type SessionRecord struct {
	RawDate        string `json:"dim_date" validate:"required"`
	DeviceCategory string `json:"dim_deviceCategory"`
	Browser        string `json:"dim_browser"`
	Sessions       int64  `json:"sessions" validate:"gte=0"`
	Transactions   int64  `json:"transactions" validate:"gte=0"`
	Quantity       int64  `json:"QTY" validate:"gte=0"`

	// Row is the 1-based data row in the source table, 0 when unknown.
	Row int `json:"-"`

	// Derived by the time normalizer.
	Year        int    `json:"Year"`
	MonthNumber int    `json:"month_number" validate:"min=1,max=12"`
	MonthName   string `json:"month_name"`
}

// CartAddRecord is one row of the adds-to-cart feed after normalization.
type CartAddRecord struct {
	RawMonth   string `json:"dim_month" validate:"required"`
	Year       int    `json:"Year"`
	AddsToCart int64  `json:"addsToCart" validate:"gte=0"`
	Row        int    `json:"-"`

	MonthNumber int    `json:"month_number" validate:"min=1,max=12"`
	MonthName   string `json:"month_name"`
	// MonthIndex is the position of MonthName in the session-derived
	// MonthOrdering, or -1 when the month never appears in session data.
	MonthIndex int `json:"-"`
}

// InDomain reports whether the record's month is part of the month ordering.
func (c CartAddRecord) InDomain() bool {
	return c.MonthIndex >= 0
}

// AggregateRow holds summed traffic metrics for one grouping key. Keys that
// are not part of the grouping are left empty.
type AggregateRow struct {
	MonthName      string  `json:"month_name,omitempty"`
	DeviceCategory string  `json:"dim_deviceCategory,omitempty"`
	Browser        string  `json:"dim_browser,omitempty"`
	Sessions       int64   `json:"sessions"`
	Transactions   int64   `json:"transactions"`
	Quantity       int64   `json:"QTY"`
	ECR            float64 `json:"ECR"`
}

// ConversionRate returns transactions/sessions, NaN when sessions is zero.
func ConversionRate(transactions, sessions int64) float64 {
	if sessions == 0 {
		return math.NaN()
	}
	return float64(transactions) / float64(sessions)
}

// Add folds other's counts into r and recomputes ECR.
func (r AggregateRow) Add(sessions, transactions, quantity int64) AggregateRow {
	r.Sessions += sessions
	r.Transactions += transactions
	r.Quantity += quantity
	r.ECR = ConversionRate(r.Transactions, r.Sessions)
	return r
}
