package dataprocessing

import (
	"math"
	"sort"

	"webagg/pkg/contracts/domain"
)

// monthTotals is one month of the trailing window after the join.
type monthTotals struct {
	month        string
	sessions     float64
	transactions float64
	quantity     float64
	ecr          float64
	addsToCart   float64
}

func (m monthTotals) metric(name string) float64 {
	switch name {
	case domain.MetricSessions:
		return m.sessions
	case domain.MetricAddsToCart:
		return m.addsToCart
	case domain.MetricTransactions:
		return m.transactions
	case domain.MetricQuantity:
		return m.quantity
	case domain.MetricECR:
		return m.ecr
	}
	return math.NaN()
}

// TrailingMonths returns the last window distinct month names after sorting
// sessions by (Year, month ordering). Fewer are returned when the data holds
// fewer months.
func TrailingMonths(sessions []domain.SessionRecord, months domain.MonthOrdering, window int) []string {
	idx := make([]int, len(sessions))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		sa, sb := sessions[idx[a]], sessions[idx[b]]
		if sa.Year != sb.Year {
			return sa.Year < sb.Year
		}
		return months.Rank(sa.MonthName) < months.Rank(sb.MonthName)
	})

	seen := make(map[string]bool)
	distinct := make([]string, 0, months.Len())
	for _, i := range idx {
		name := sessions[i].MonthName
		if seen[name] {
			continue
		}
		seen[name] = true
		distinct = append(distinct, name)
	}

	if window > 0 && len(distinct) > window {
		distinct = distinct[len(distinct)-window:]
	}
	return distinct
}

// CompareTrailingMonths builds the month-to-month comparison over the last
// window months. Months with no activity are dropped, the rest are inner
// joined with cart adds by month name, and each metric gets its absolute and
// percent change against the previous surviving month.
func CompareTrailingMonths(sessions []domain.SessionRecord, cartAdds []domain.CartAddRecord, months domain.MonthOrdering, window int) domain.TrendReport {
	selected := make(map[string]bool)
	for _, m := range TrailingMonths(sessions, months, window) {
		selected[m] = true
	}

	grouped := make(map[string]domain.AggregateRow)
	for _, s := range sessions {
		if !selected[s.MonthName] {
			continue
		}
		row := grouped[s.MonthName]
		row.MonthName = s.MonthName
		grouped[s.MonthName] = row.Add(s.Sessions, s.Transactions, s.Quantity)
	}

	adds := make(map[string]float64)
	for _, c := range cartAdds {
		if !c.InDomain() {
			continue
		}
		adds[c.MonthName] += float64(c.AddsToCart)
	}

	kept := make([]monthTotals, 0, len(grouped))
	for _, name := range months.Names() {
		row, ok := grouped[name]
		if !ok {
			continue
		}
		mt := monthTotals{
			month:        name,
			sessions:     float64(row.Sessions),
			transactions: float64(row.Transactions),
			quantity:     float64(row.Quantity),
			ecr:          zeroIfNaN(row.ECR),
		}
		if mt.sessions == 0 && mt.transactions == 0 && mt.quantity == 0 && mt.ecr == 0 {
			continue
		}
		a, ok := adds[name]
		if !ok {
			continue
		}
		mt.addsToCart = a
		kept = append(kept, mt)
	}

	report := domain.TrendReport{
		Months: make([]string, len(kept)),
		Rows:   make([]domain.TrendRow, 0, len(domain.TrendMetrics)),
	}
	for i, mt := range kept {
		report.Months[i] = mt.month
	}

	for _, metric := range domain.TrendMetrics {
		row := domain.TrendRow{
			Metric:    metric,
			Values:    make([]float64, len(kept)),
			AbsChange: make([]float64, len(kept)),
			PctChange: make([]float64, len(kept)),
		}
		for i, mt := range kept {
			v := mt.metric(metric)
			row.Values[i] = v
			if i == 0 {
				row.AbsChange[i] = math.NaN()
				row.PctChange[i] = math.NaN()
				continue
			}
			prev := kept[i-1].metric(metric)
			row.AbsChange[i] = v - prev
			row.PctChange[i] = PercentChange(prev, v)
		}
		report.Rows = append(report.Rows, row)
	}

	return report
}

// PercentChange returns (cur-prev)/prev*100 with IEEE semantics: +/-Inf
// when prev is zero and cur is not, NaN when both are zero.
func PercentChange(prev, cur float64) float64 {
	return (cur - prev) / prev * 100
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
