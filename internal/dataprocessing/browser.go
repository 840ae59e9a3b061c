package dataprocessing

import (
	"sort"

	"webagg/pkg/contracts/domain"
)

// TopBrowsers collapses the month dimension, sums metrics per browser and
// returns the n busiest browsers by sessions. Groups start in browser name
// order and the ranking sort is stable, so equal session counts keep that
// order. n <= 0 returns every browser.
func TopBrowsers(sessions []domain.SessionRecord, n int) []domain.AggregateRow {
	index := make(map[string]int)
	rows := make([]domain.AggregateRow, 0)
	for _, s := range sessions {
		i, ok := index[s.Browser]
		if !ok {
			i = len(rows)
			index[s.Browser] = i
			rows = append(rows, domain.AggregateRow{Browser: s.Browser})
		}
		rows[i] = rows[i].Add(s.Sessions, s.Transactions, s.Quantity)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Browser < rows[j].Browser
	})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Sessions > rows[j].Sessions
	})

	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
