package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webagg/pkg/contracts/domain"
)

func TestAggregateByMonthDevice(t *testing.T) {
	sessions := []domain.SessionRecord{
		rec(2012, 7, "Desktop", "Chrome", 60, 6, 7),
		rec(2012, 7, "Desktop", "Firefox", 40, 4, 5),
		rec(2012, 8, "Desktop", "Chrome", 50, 10, 11),
	}
	months := BuildMonthOrdering(sessions)

	rows := AggregateByMonthDevice(sessions, months)
	require.Len(t, rows, 2)

	assert.Equal(t, "July", rows[0].MonthName)
	assert.Equal(t, "Desktop", rows[0].DeviceCategory)
	assert.Equal(t, int64(100), rows[0].Sessions)
	assert.Equal(t, int64(10), rows[0].Transactions)
	assert.Equal(t, int64(12), rows[0].Quantity)
	assert.InDelta(t, 0.10, rows[0].ECR, 1e-12)

	assert.Equal(t, "August", rows[1].MonthName)
	assert.Equal(t, int64(50), rows[1].Sessions)
	assert.InDelta(t, 0.20, rows[1].ECR, 1e-12)
}

func TestAggregateByMonthDevice_Ordering(t *testing.T) {
	sessions := []domain.SessionRecord{
		rec(2013, 1, "Tablet", "Chrome", 1, 0, 0),
		rec(2012, 8, "Mobile", "Chrome", 1, 0, 0),
		rec(2012, 8, "Desktop", "Chrome", 1, 0, 0),
		rec(2012, 7, "Tablet", "Chrome", 1, 0, 0),
		rec(2012, 7, "Desktop", "Chrome", 1, 0, 0),
	}
	months := BuildMonthOrdering(sessions)

	rows := AggregateByMonthDevice(sessions, months)

	var keys [][2]string
	for _, r := range rows {
		keys = append(keys, [2]string{r.MonthName, r.DeviceCategory})
	}
	assert.Equal(t, [][2]string{
		{"July", "Desktop"},
		{"July", "Tablet"},
		{"August", "Desktop"},
		{"August", "Mobile"},
		{"January", "Tablet"},
	}, keys)
}

func TestAggregateByMonthDevice_ZeroSessions(t *testing.T) {
	sessions := []domain.SessionRecord{rec(2012, 7, "Desktop", "Chrome", 0, 0, 0)}

	rows := AggregateByMonthDevice(sessions, BuildMonthOrdering(sessions))
	require.Len(t, rows, 1)
	assert.True(t, math.IsNaN(rows[0].ECR))
}

func TestAggregateByMonthDevice_SumsMatchInput(t *testing.T) {
	table := fiscalYearSessions()
	raw, err := DecodeSessions(table)
	require.NoError(t, err)
	data, err := NewNormalizer("20").Normalize(raw, nil)
	require.NoError(t, err)

	rows := AggregateByMonthDevice(data.Sessions, data.Months)

	var inSessions, outSessions int64
	for _, s := range data.Sessions {
		inSessions += s.Sessions
	}
	for _, r := range rows {
		outSessions += r.Sessions
	}
	assert.Equal(t, inSessions, outSessions)
	assert.Len(t, rows, 36)
}

func TestTopBrowsers(t *testing.T) {
	sessions := []domain.SessionRecord{
		rec(2012, 7, "Desktop", "Safari", 30, 3, 3),
		rec(2012, 7, "Desktop", "Chrome", 50, 5, 6),
		rec(2012, 8, "Mobile", "Chrome", 50, 5, 6),
		rec(2012, 8, "Mobile", "Opera", 5, 0, 0),
		rec(2012, 8, "Mobile", "Firefox", 40, 8, 8),
	}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "cap below group count", n: 2, want: []string{"Chrome", "Firefox"}},
		{name: "cap above group count", n: 20, want: []string{"Chrome", "Firefox", "Safari", "Opera"}},
		{name: "no cap", n: 0, want: []string{"Chrome", "Firefox", "Safari", "Opera"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := TopBrowsers(sessions, tt.n)
			got := make([]string, len(rows))
			for i, r := range rows {
				got[i] = r.Browser
			}
			assert.Equal(t, tt.want, got)
		})
	}

	rows := TopBrowsers(sessions, 1)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(100), rows[0].Sessions)
	assert.Equal(t, int64(10), rows[0].Transactions)
	assert.Equal(t, int64(12), rows[0].Quantity)
	assert.InDelta(t, 0.10, rows[0].ECR, 1e-12)
	assert.Empty(t, rows[0].MonthName)
}

func TestTopBrowsers_TiesKeepNameOrder(t *testing.T) {
	sessions := []domain.SessionRecord{
		rec(2012, 7, "Desktop", "Safari", 10, 0, 0),
		rec(2012, 7, "Desktop", "Edge", 10, 0, 0),
		rec(2012, 7, "Desktop", "Chrome", 10, 0, 0),
		rec(2012, 7, "Desktop", "Firefox", 10, 0, 0),
	}

	for i := 0; i < 5; i++ {
		rows := TopBrowsers(sessions, 3)
		require.Len(t, rows, 3)
		assert.Equal(t, "Chrome", rows[0].Browser)
		assert.Equal(t, "Edge", rows[1].Browser)
		assert.Equal(t, "Firefox", rows[2].Browser)
	}
}

func TestTopBrowsers_SortedDescending(t *testing.T) {
	raw, err := DecodeSessions(fiscalYearSessions())
	require.NoError(t, err)
	data, err := NewNormalizer("20").Normalize(raw, nil)
	require.NoError(t, err)

	rows := TopBrowsers(data.Sessions, 20)
	require.Len(t, rows, 3)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].Sessions, rows[i].Sessions)
	}
	assert.Equal(t, "Chrome", rows[0].Browser)
	assert.Equal(t, int64(7800), rows[0].Sessions)
}

func TestAddMonthTotals(t *testing.T) {
	sessions := []domain.SessionRecord{
		rec(2012, 7, "Tablet", "Chrome", 20, 1, 1),
		rec(2012, 7, "Mobile", "Chrome", 30, 3, 4),
		rec(2012, 7, "Desktop", "Chrome", 50, 6, 7),
		rec(2012, 8, "Desktop", "Chrome", 40, 4, 4),
	}
	months := BuildMonthOrdering(sessions)
	rows := AggregateByMonthDevice(sessions, months)
	before := append([]domain.AggregateRow(nil), rows...)

	out := AddMonthTotals(rows, months, NewCategoryOrder([]string{"Desktop", "Mobile", "Tablet"}, "Total"), SumECR)

	assert.Equal(t, before, rows, "input rows are not modified")

	var keys [][2]string
	for _, r := range out {
		keys = append(keys, [2]string{r.MonthName, r.DeviceCategory})
	}
	assert.Equal(t, [][2]string{
		{"July", "Desktop"},
		{"July", "Mobile"},
		{"July", "Tablet"},
		{"July", "Total"},
		{"August", "Desktop"},
		{"August", "Total"},
	}, keys)

	july := out[3]
	assert.Equal(t, int64(100), july.Sessions)
	assert.Equal(t, int64(10), july.Transactions)
	assert.Equal(t, int64(12), july.Quantity)
	assert.InDelta(t, 0.12+0.10+0.05, july.ECR, 1e-12, "total ECR is the sum of the device ECRs")
}

func TestAddMonthTotals_ECRModes(t *testing.T) {
	sessions := []domain.SessionRecord{
		rec(2012, 7, "Desktop", "Chrome", 100, 10, 10),
		rec(2012, 7, "Mobile", "Chrome", 100, 30, 30),
		rec(2012, 7, "Tablet", "Chrome", 0, 0, 0),
		rec(2012, 8, "Desktop", "Chrome", 0, 0, 0),
	}
	months := BuildMonthOrdering(sessions)
	rows := AggregateByMonthDevice(sessions, months)
	require.True(t, math.IsNaN(rows[2].ECR), "zero-session tablet row has no rate")

	tests := []struct {
		name       string
		mode       TotalECR
		wantJuly   float64
		wantAugust float64
	}{
		{name: "sum skips undefined rates", mode: SumECR, wantJuly: 0.4, wantAugust: 0},
		{name: "recompute from counts", mode: RecomputeECR, wantJuly: 0.2, wantAugust: math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := AddMonthTotals(rows, months, NewCategoryOrder(DefaultOptions().CategoryOrder, "Total"), tt.mode)

			totals := make(map[string]domain.AggregateRow)
			for _, r := range out {
				if r.DeviceCategory == "Total" {
					totals[r.MonthName] = r
				}
			}
			require.Len(t, totals, 2)

			july := totals["July"]
			assert.Equal(t, int64(200), july.Sessions)
			assert.Equal(t, int64(40), july.Transactions)
			assert.InDelta(t, tt.wantJuly, july.ECR, 1e-12)

			if math.IsNaN(tt.wantAugust) {
				assert.True(t, math.IsNaN(totals["August"].ECR))
			} else {
				assert.InDelta(t, tt.wantAugust, totals["August"].ECR, 1e-12)
			}
		})
	}
}

func TestParseTotalECR(t *testing.T) {
	tests := []struct {
		in      string
		want    TotalECR
		wantErr bool
	}{
		{in: "", want: SumECR},
		{in: "sum", want: SumECR},
		{in: "recompute", want: RecomputeECR},
		{in: "average", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTotalECR(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddMonthTotals_TotalsEqualDeviceSums(t *testing.T) {
	raw, err := DecodeSessions(fiscalYearSessions())
	require.NoError(t, err)
	data, err := NewNormalizer("20").Normalize(raw, nil)
	require.NoError(t, err)

	rows := AggregateByMonthDevice(data.Sessions, data.Months)
	out := AddMonthTotals(rows, data.Months, NewCategoryOrder(DefaultOptions().CategoryOrder, "Total"), SumECR)
	require.Len(t, out, len(rows)+data.Months.Len())

	type sums struct{ sessions, transactions, quantity int64 }
	devices := make(map[string]sums)
	totals := make(map[string]sums)
	for _, r := range out {
		target := devices
		if r.DeviceCategory == "Total" {
			target = totals
		}
		s := target[r.MonthName]
		s.sessions += r.Sessions
		s.transactions += r.Transactions
		s.quantity += r.Quantity
		target[r.MonthName] = s
	}

	for _, m := range data.Months.Names() {
		assert.Equal(t, devices[m], totals[m], m)
	}
}

func TestAddMonthTotals_UnlistedCategory(t *testing.T) {
	sessions := []domain.SessionRecord{
		rec(2012, 7, "Tablet", "Chrome", 1, 0, 0),
		rec(2012, 7, "Smart Tv", "Chrome", 1, 0, 0),
		rec(2012, 7, "Desktop", "Chrome", 1, 0, 0),
		rec(2012, 7, "Console", "Chrome", 1, 0, 0),
	}
	months := BuildMonthOrdering(sessions)

	out := AddMonthTotals(AggregateByMonthDevice(sessions, months), months,
		NewCategoryOrder([]string{"Desktop", "Mobile", "Tablet"}, "Total"), SumECR)

	var got []string
	for _, r := range out {
		got = append(got, r.DeviceCategory)
	}
	assert.Equal(t, []string{"Desktop", "Tablet", "Console", "Smart Tv", "Total"}, got)
}

func TestCategoryOrder(t *testing.T) {
	order := NewCategoryOrder([]string{"Desktop", "Mobile", "Desktop", "Total", "Tablet"}, "Total")

	assert.Equal(t, "Total", order.Total())
	assert.Equal(t, 0, order.Rank("Desktop"))
	assert.Equal(t, 1, order.Rank("Mobile"))
	assert.Equal(t, 2, order.Rank("Tablet"))
	assert.Equal(t, 3, order.Rank("Other"))
	assert.Equal(t, 4, order.Rank("Total"))

	assert.True(t, order.Less("Tablet", "Other"))
	assert.True(t, order.Less("Alpha", "Beta"))
	assert.False(t, order.Less("Total", "Zeta"))
}
