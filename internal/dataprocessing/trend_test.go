package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webagg/pkg/contracts/domain"
)

// trendFixture is four months of single-device traffic with cart adds for
// every month.
func trendFixture() ([]domain.SessionRecord, domain.MonthOrdering) {
	sessions := []domain.SessionRecord{
		rec(2012, 7, "Desktop", "Chrome", 100, 10, 12),
		rec(2012, 8, "Desktop", "Chrome", 200, 30, 40),
		rec(2012, 9, "Desktop", "Chrome", 150, 15, 20),
		rec(2012, 10, "Desktop", "Chrome", 300, 60, 70),
	}
	return sessions, BuildMonthOrdering(sessions)
}

func trendRow(t *testing.T, report domain.TrendReport, metric string) domain.TrendRow {
	t.Helper()
	row, ok := report.Row(metric)
	require.True(t, ok, metric)
	return row
}

func TestTrailingMonths(t *testing.T) {
	raw, err := DecodeSessions(fiscalYearSessions())
	require.NoError(t, err)
	data, err := NewNormalizer("20").Normalize(raw, nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		window int
		want   []string
	}{
		{name: "default window", window: 3, want: []string{"April", "May", "June"}},
		{name: "single month", window: 1, want: []string{"June"}},
		{name: "window spans year boundary", window: 7, want: []string{"December", "January", "February", "March", "April", "May", "June"}},
		{name: "window wider than data", window: 24, want: data.Months.Names()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrailingMonths(data.Sessions, data.Months, tt.window))
		})
	}
}

func TestCompareTrailingMonths(t *testing.T) {
	sessions, months := trendFixture()
	carts := []domain.CartAddRecord{
		cart(2012, 7, 10, months),
		cart(2012, 8, 20, months),
		cart(2012, 9, 30, months),
		cart(2012, 10, 40, months),
	}

	report := CompareTrailingMonths(sessions, carts, months, 3)
	require.Equal(t, []string{"August", "September", "October"}, report.Months)
	require.Len(t, report.Rows, len(domain.TrendMetrics))

	s := trendRow(t, report, domain.MetricSessions)
	assert.Equal(t, []float64{200, 150, 300}, s.Values)
	assert.True(t, math.IsNaN(s.AbsChange[0]))
	assert.True(t, math.IsNaN(s.PctChange[0]))
	assert.Equal(t, []float64{-50, 150}, s.AbsChange[1:])
	assert.InDelta(t, -25.0, s.PctChange[1], 1e-9)
	assert.InDelta(t, 100.0, s.PctChange[2], 1e-9)

	a := trendRow(t, report, domain.MetricAddsToCart)
	assert.Equal(t, []float64{20, 30, 40}, a.Values)
	assert.InDelta(t, 50.0, a.PctChange[1], 1e-9)
	assert.InDelta(t, 100.0/3, a.PctChange[2], 1e-9)

	q := trendRow(t, report, domain.MetricQuantity)
	assert.Equal(t, []float64{40, 20, 70}, q.Values)

	e := trendRow(t, report, domain.MetricECR)
	assert.InDelta(t, 0.15, e.Values[0], 1e-12)
	assert.InDelta(t, 0.10, e.Values[1], 1e-12)
	assert.InDelta(t, 0.20, e.Values[2], 1e-12)
	assert.InDelta(t, -0.05, e.AbsChange[1], 1e-12)

	for _, row := range report.Rows {
		for i := 1; i < len(report.Months); i++ {
			assert.InDelta(t, row.Values[i]-row.Values[i-1], row.AbsChange[i], 1e-12, row.Metric)
			if row.Values[i-1] != 0 {
				want := (row.Values[i] - row.Values[i-1]) / row.Values[i-1] * 100
				assert.InDelta(t, want, row.PctChange[i], 1e-9, row.Metric)
			}
		}
	}
}

func TestCompareTrailingMonths_InnerJoin(t *testing.T) {
	sessions, months := trendFixture()
	carts := []domain.CartAddRecord{
		cart(2012, 8, 20, months),
		cart(2012, 10, 40, months),
		cart(2013, 3, 99, months),
	}

	report := CompareTrailingMonths(sessions, carts, months, 3)
	assert.Equal(t, []string{"August", "October"}, report.Months, "September has no cart adds")

	s := trendRow(t, report, domain.MetricSessions)
	assert.Equal(t, 100.0, s.AbsChange[1], "deltas skip the missing month")
	assert.InDelta(t, 50.0, s.PctChange[1], 1e-9)
}

func TestCompareTrailingMonths_SumsDuplicateCartMonths(t *testing.T) {
	sessions, months := trendFixture()
	carts := []domain.CartAddRecord{
		cart(2012, 10, 15, months),
		cart(2012, 10, 25, months),
	}

	report := CompareTrailingMonths(sessions, carts, months, 1)
	require.Equal(t, []string{"October"}, report.Months)
	assert.Equal(t, []float64{40}, trendRow(t, report, domain.MetricAddsToCart).Values)
}

func TestCompareTrailingMonths_DropsInactiveMonth(t *testing.T) {
	sessions := []domain.SessionRecord{
		rec(2012, 7, "Desktop", "Chrome", 100, 10, 12),
		rec(2012, 8, "Desktop", "Chrome", 0, 0, 0),
		rec(2012, 9, "Desktop", "Chrome", 150, 15, 20),
	}
	months := BuildMonthOrdering(sessions)
	carts := []domain.CartAddRecord{
		cart(2012, 7, 1, months),
		cart(2012, 8, 1, months),
		cart(2012, 9, 1, months),
	}

	report := CompareTrailingMonths(sessions, carts, months, 3)
	assert.Equal(t, []string{"July", "September"}, report.Months)
}

func TestCompareTrailingMonths_KeepsPartiallyZeroMonth(t *testing.T) {
	sessions := []domain.SessionRecord{
		rec(2012, 7, "Desktop", "Chrome", 100, 10, 12),
		rec(2012, 8, "Desktop", "Chrome", 80, 0, 0),
	}
	months := BuildMonthOrdering(sessions)
	carts := []domain.CartAddRecord{cart(2012, 7, 1, months), cart(2012, 8, 1, months)}

	report := CompareTrailingMonths(sessions, carts, months, 3)
	require.Equal(t, []string{"July", "August"}, report.Months)

	tx := trendRow(t, report, domain.MetricTransactions)
	assert.Equal(t, -10.0, tx.AbsChange[1])
	assert.Equal(t, -100.0, tx.PctChange[1])
}

func TestCompareTrailingMonths_SingleMonth(t *testing.T) {
	sessions := []domain.SessionRecord{rec(2012, 7, "Desktop", "Chrome", 100, 10, 12)}
	months := BuildMonthOrdering(sessions)

	report := CompareTrailingMonths(sessions, []domain.CartAddRecord{cart(2012, 7, 50, months)}, months, 3)
	require.Equal(t, []string{"July"}, report.Months)
	for _, row := range report.Rows {
		require.Len(t, row.Values, 1)
		assert.True(t, math.IsNaN(row.AbsChange[0]), row.Metric)
		assert.True(t, math.IsNaN(row.PctChange[0]), row.Metric)
	}
}

func TestCompareTrailingMonths_Empty(t *testing.T) {
	sessions, months := trendFixture()

	report := CompareTrailingMonths(sessions, nil, months, 3)
	assert.True(t, report.Empty())
	assert.Empty(t, report.Months)
	require.Len(t, report.Rows, len(domain.TrendMetrics))
	for _, row := range report.Rows {
		assert.Empty(t, row.Values)
	}
}

func TestCompareTrailingMonths_MatrixLayout(t *testing.T) {
	sessions, months := trendFixture()
	carts := []domain.CartAddRecord{cart(2012, 9, 3, months), cart(2012, 10, 4, months)}

	matrix := CompareTrailingMonths(sessions, carts, months, 2).Matrix()

	labels := make([]string, len(matrix))
	for i, r := range matrix {
		labels[i] = r.Label
		assert.Len(t, r.Values, 2)
	}
	assert.Equal(t, []string{
		"sessions", "sessions_abs_change", "sessions_pct_change",
		"addsToCart", "addsToCart_abs_change", "addsToCart_pct_change",
		"transactions", "transactions_abs_change", "transactions_pct_change",
		"QTY", "QTY_abs_change", "QTY_pct_change",
		"ECR", "ECR_abs_change", "ECR_pct_change",
	}, labels)
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name      string
		prev, cur float64
		check     func(t *testing.T, got float64)
	}{
		{name: "increase", prev: 100, cur: 150, check: func(t *testing.T, got float64) { assert.InDelta(t, 50.0, got, 1e-12) }},
		{name: "decrease", prev: 200, cur: 100, check: func(t *testing.T, got float64) { assert.InDelta(t, -50.0, got, 1e-12) }},
		{name: "unchanged", prev: 7, cur: 7, check: func(t *testing.T, got float64) { assert.Zero(t, got) }},
		{name: "from zero up", prev: 0, cur: 5, check: func(t *testing.T, got float64) { assert.True(t, math.IsInf(got, 1)) }},
		{name: "from zero down", prev: 0, cur: -5, check: func(t *testing.T, got float64) { assert.True(t, math.IsInf(got, -1)) }},
		{name: "zero to zero", prev: 0, cur: 0, check: func(t *testing.T, got float64) { assert.True(t, math.IsNaN(got)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, PercentChange(tt.prev, tt.cur))
		})
	}
}
