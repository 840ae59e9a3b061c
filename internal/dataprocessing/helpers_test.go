package dataprocessing

import (
	"strconv"

	"webagg/pkg/contracts/domain"
)

var sessionHeader = []string{"dim_date", "dim_deviceCategory", "dim_browser", "sessions", "transactions", "QTY"}

var cartHeader = []string{"dim_month", "dim_year", "addsToCart"}

// sessionRow builds a raw session row.
func sessionRow(date, device, browser string, sessions, transactions, qty int) []string {
	return []string{date, device, browser, strconv.Itoa(sessions), strconv.Itoa(transactions), strconv.Itoa(qty)}
}

func sessionTable(rows ...[]string) domain.Table {
	return domain.Table{Name: SessionsTable, Header: sessionHeader, Rows: rows}
}

func cartTable(rows ...[]string) domain.Table {
	return domain.Table{Name: CartAddsTable, Header: cartHeader, Rows: rows}
}

// rec builds a normalized session record without going through the parser.
func rec(year, month int, device, browser string, sessions, transactions, qty int64) domain.SessionRecord {
	name, _ := domain.MonthName(month)
	return domain.SessionRecord{
		RawDate:        strconv.Itoa(month) + "/1/" + strconv.Itoa(year%100),
		DeviceCategory: device,
		Browser:        browser,
		Sessions:       sessions,
		Transactions:   transactions,
		Quantity:       qty,
		Year:           year,
		MonthNumber:    month,
		MonthName:      name,
	}
}

// cart builds a normalized cart-add record resolved against months.
func cart(year, month int, adds int64, months domain.MonthOrdering) domain.CartAddRecord {
	name, _ := domain.MonthName(month)
	return domain.CartAddRecord{
		RawMonth:    strconv.Itoa(month),
		Year:        year,
		AddsToCart:  adds,
		MonthNumber: month,
		MonthName:   name,
		MonthIndex:  months.Rank(name),
	}
}

// fiscalYearSessions is a July 2012 - June 2013 feed with two devices and
// three browsers per month.
func fiscalYearSessions() domain.Table {
	var rows [][]string
	dates := []string{
		"7/1/12", "8/1/12", "9/1/12", "10/1/12", "11/1/12", "12/1/12",
		"1/1/13", "2/1/13", "3/1/13", "4/1/13", "5/1/13", "6/1/13",
	}
	for i, d := range dates {
		base := 100 * (i + 1)
		rows = append(rows,
			sessionRow(d, "desktop", "Chrome", base, base/10, base/20),
			sessionRow(d, "mobile", "Safari", base/2, base/25, base/50),
			sessionRow(d, "tablet", "Firefox", base/4, 0, 0),
		)
	}
	return sessionTable(rows...)
}

func fiscalYearCartAdds() domain.Table {
	var rows [][]string
	for m := 1; m <= 12; m++ {
		year := "2013"
		if m >= 7 {
			year = "2012"
		}
		rows = append(rows, []string{strconv.Itoa(m), year, strconv.Itoa(m * 10)})
	}
	return cartTable(rows...)
}
