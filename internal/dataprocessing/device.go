package dataprocessing

import (
	"sort"

	"webagg/pkg/contracts/domain"
)

// AggregateByMonthDevice sums sessions, transactions and quantity per
// (month, device category) and derives ECR. Rows follow the month ordering,
// then device category.
func AggregateByMonthDevice(sessions []domain.SessionRecord, months domain.MonthOrdering) []domain.AggregateRow {
	type key struct {
		month  string
		device string
	}

	index := make(map[key]int)
	rows := make([]domain.AggregateRow, 0)
	for _, s := range sessions {
		k := key{month: s.MonthName, device: s.DeviceCategory}
		i, ok := index[k]
		if !ok {
			i = len(rows)
			index[k] = i
			rows = append(rows, domain.AggregateRow{MonthName: s.MonthName, DeviceCategory: s.DeviceCategory})
		}
		rows[i] = rows[i].Add(s.Sessions, s.Transactions, s.Quantity)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		mi, mj := months.Rank(rows[i].MonthName), months.Rank(rows[j].MonthName)
		if mi != mj {
			return mi < mj
		}
		return rows[i].DeviceCategory < rows[j].DeviceCategory
	})

	return rows
}
