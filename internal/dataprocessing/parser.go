package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"webagg/internal/errors"
	"webagg/pkg/contracts/domain"
)

// Table names used in error messages and metrics
const (
	SessionsTable = "sessions"
	CartAddsTable = "adds_to_cart"
)

// columnMap resolves required column names to positions, failing with a
// MissingColumnError on the first absent column.
func columnMap(table domain.Table, tableName string, required ...string) (map[string]int, error) {
	cols := make(map[string]int, len(required))
	for _, name := range required {
		idx, ok := table.Column(name)
		if !ok {
			return nil, errors.NewMissingColumnError(tableName, name)
		}
		cols[name] = idx
	}
	return cols, nil
}

// DecodeSessions turns the raw session table into records. Derived time
// fields are left zero for the normalizer.
func DecodeSessions(table domain.Table) ([]domain.SessionRecord, error) {
	cols, err := columnMap(table, SessionsTable,
		domain.ColDate, domain.ColDeviceCategory, domain.ColBrowser,
		domain.ColSessions, domain.ColTransactions, domain.ColQuantity)
	if err != nil {
		return nil, err
	}

	records := make([]domain.SessionRecord, 0, table.Len())
	for i := range table.Rows {
		if rowIsBlank(table.Rows[i]) {
			continue
		}

		rec := domain.SessionRecord{Row: i + 1}
		rec.RawDate = table.Cell(i, cols[domain.ColDate])
		rec.DeviceCategory = table.Cell(i, cols[domain.ColDeviceCategory])
		rec.Browser = table.Cell(i, cols[domain.ColBrowser])

		counts := []struct {
			col string
			dst *int64
		}{
			{domain.ColSessions, &rec.Sessions},
			{domain.ColTransactions, &rec.Transactions},
			{domain.ColQuantity, &rec.Quantity},
		}
		for _, c := range counts {
			v, err := parseCount(table.Cell(i, cols[c.col]))
			if err != nil {
				return nil, cellError(SessionsTable, i, c.col, err)
			}
			*c.dst = v
		}

		records = append(records, rec)
	}

	return records, nil
}

// DecodeCartAdds turns the raw adds-to-cart table into records.
func DecodeCartAdds(table domain.Table) ([]domain.CartAddRecord, error) {
	cols, err := columnMap(table, CartAddsTable,
		domain.ColMonth, domain.ColYear, domain.ColAddsToCart)
	if err != nil {
		return nil, err
	}

	records := make([]domain.CartAddRecord, 0, table.Len())
	for i := range table.Rows {
		if rowIsBlank(table.Rows[i]) {
			continue
		}

		rec := domain.CartAddRecord{
			RawMonth:   table.Cell(i, cols[domain.ColMonth]),
			Row:        i + 1,
			MonthIndex: -1,
		}

		year, err := parseWhole(table.Cell(i, cols[domain.ColYear]))
		if err != nil {
			return nil, cellError(CartAddsTable, i, domain.ColYear, err)
		}
		rec.Year = int(year)

		if rec.AddsToCart, err = parseCount(table.Cell(i, cols[domain.ColAddsToCart])); err != nil {
			return nil, cellError(CartAddsTable, i, domain.ColAddsToCart, err)
		}

		records = append(records, rec)
	}

	return records, nil
}

// parseCount parses a count cell. Thousands separators are accepted and an
// empty cell counts as zero.
func parseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return parseWhole(s)
}

// parseWhole parses an integral number written as "7", "1,200" or "7.0".
func parseWhole(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int64(f), nil
}

func cellError(table string, row int, column string, cause error) error {
	return errors.NewParsingError(fmt.Sprintf("invalid %s value in %s row %d", column, table, row+1), cause).
		WithContext("table", table).
		WithContext("row", row+1).
		WithContext("column", column)
}

func rowIsBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
