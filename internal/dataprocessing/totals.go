package dataprocessing

import (
	"fmt"
	"math"
	"sort"

	"webagg/pkg/contracts/domain"
)

// CategoryOrder ranks device categories: listed names first in list order,
// then unlisted names alphabetically, then the total label.
type CategoryOrder struct {
	names []string
	rank  map[string]int
	total string
}

// NewCategoryOrder creates a category order with total as the synthetic label.
func NewCategoryOrder(names []string, total string) CategoryOrder {
	o := CategoryOrder{rank: make(map[string]int, len(names)), total: total}
	for _, n := range names {
		if n == total {
			continue
		}
		if _, dup := o.rank[n]; dup {
			continue
		}
		o.rank[n] = len(o.names)
		o.names = append(o.names, n)
	}
	return o
}

// Rank returns the sort rank of category.
func (o CategoryOrder) Rank(category string) int {
	if category == o.total {
		return len(o.names) + 1
	}
	if r, ok := o.rank[category]; ok {
		return r
	}
	return len(o.names)
}

// Less orders two categories by rank, breaking ties by name.
func (o CategoryOrder) Less(a, b string) bool {
	ra, rb := o.Rank(a), o.Rank(b)
	if ra != rb {
		return ra < rb
	}
	return a < b
}

// Total returns the label of the synthetic total rows.
func (o CategoryOrder) Total() string {
	return o.total
}

// TotalECR selects how the ECR of a total row is derived
type TotalECR int

const (
	// SumECR adds the ECR values of the month's device rows, counting
	// undefined (NaN) rates as 0.
	SumECR TotalECR = iota
	// RecomputeECR divides the summed transactions by the summed sessions.
	RecomputeECR
)

// Config names of the TotalECR modes
const (
	TotalECRSum       = "sum"
	TotalECRRecompute = "recompute"
)

// ParseTotalECR maps a configuration value to a TotalECR mode. Empty means sum.
func ParseTotalECR(s string) (TotalECR, error) {
	switch s {
	case "", TotalECRSum:
		return SumECR, nil
	case TotalECRRecompute:
		return RecomputeECR, nil
	}
	return SumECR, fmt.Errorf("unknown total ECR mode %q", s)
}

// AddMonthTotals appends one total row per month to the month/device rows
// and sorts by (month, category). Counts are summed; the total row's ECR
// follows mode. The input slice is not modified.
func AddMonthTotals(rows []domain.AggregateRow, months domain.MonthOrdering, order CategoryOrder, mode TotalECR) []domain.AggregateRow {
	out := make([]domain.AggregateRow, 0, len(rows)+months.Len())
	out = append(out, rows...)

	index := make(map[string]int)
	totals := make([]domain.AggregateRow, 0, months.Len())
	for _, r := range rows {
		i, ok := index[r.MonthName]
		if !ok {
			i = len(totals)
			index[r.MonthName] = i
			totals = append(totals, domain.AggregateRow{MonthName: r.MonthName, DeviceCategory: order.Total()})
		}
		t := totals[i]
		t.Sessions += r.Sessions
		t.Transactions += r.Transactions
		t.Quantity += r.Quantity
		if !math.IsNaN(r.ECR) {
			t.ECR += r.ECR
		}
		totals[i] = t
	}
	if mode == RecomputeECR {
		for i := range totals {
			totals[i].ECR = domain.ConversionRate(totals[i].Transactions, totals[i].Sessions)
		}
	}
	out = append(out, totals...)

	sort.SliceStable(out, func(i, j int) bool {
		mi, mj := months.Rank(out[i].MonthName), months.Rank(out[j].MonthName)
		if mi != mj {
			return mi < mj
		}
		return order.Less(out[i].DeviceCategory, out[j].DeviceCategory)
	})

	return out
}
