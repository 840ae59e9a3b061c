package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/xuri/excelize/v2"
)

// SessionHeader and CartAddHeader are the input column layouts.
var (
	SessionHeader = []string{"dim_date", "dim_deviceCategory", "dim_browser", "sessions", "transactions", "QTY"}
	CartAddHeader = []string{"dim_month", "dim_year", "addsToCart"}
)

// FiscalYearDates are the first days of July 2012 through June 2013.
var FiscalYearDates = []string{
	"7/1/12", "8/1/12", "9/1/12", "10/1/12", "11/1/12", "12/1/12",
	"1/1/13", "2/1/13", "3/1/13", "4/1/13", "5/1/13", "6/1/13",
}

// Inputs are the paths of a written fixture pair.
type Inputs struct {
	SessionCounts string
	AddsToCart    string
}

// SessionRows returns session rows for the fiscal year: per month, desktop
// Chrome, mobile Safari and tablet Firefox traffic growing by 100 sessions a
// month.
func SessionRows() [][]string {
	rows := make([][]string, 0, len(FiscalYearDates)*3)
	for i, d := range FiscalYearDates {
		base := 100 * (i + 1)
		rows = append(rows,
			[]string{d, "desktop", "Chrome", itoa(base), itoa(base / 10), itoa(base / 20)},
			[]string{d, "mobile", "Safari", itoa(base / 2), itoa(base / 25), itoa(base / 50)},
			[]string{d, "tablet", "Firefox", itoa(base / 4), "0", "0"},
		)
	}
	return rows
}

// CartAddRows returns one adds-to-cart row per fiscal month with month*10 adds.
func CartAddRows() [][]string {
	rows := make([][]string, 0, 12)
	for m := 1; m <= 12; m++ {
		year := "2013"
		if m >= 7 {
			year = "2012"
		}
		rows = append(rows, []string{itoa(m), year, itoa(m * 10)})
	}
	return rows
}

// WriteInputs writes the fiscal-year fixture pair into dir with the given
// extension (".csv" or ".xlsx").
func WriteInputs(t *testing.T, dir, ext string) Inputs {
	t.Helper()
	in := Inputs{
		SessionCounts: filepath.Join(dir, "session_counts"+ext),
		AddsToCart:    filepath.Join(dir, "adds_to_cart"+ext),
	}
	WriteTable(t, in.SessionCounts, SessionHeader, SessionRows())
	WriteTable(t, in.AddsToCart, CartAddHeader, CartAddRows())
	return in
}

// WriteTable writes header and rows to path as CSV or, for .xlsx paths, as
// the first worksheet of a workbook.
func WriteTable(t *testing.T, path string, header []string, rows [][]string) {
	t.Helper()

	if filepath.Ext(path) == ".xlsx" {
		writeWorkbook(t, path, header, rows)
		return
	}

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write rows: %v", err)
	}
}

func writeWorkbook(t *testing.T, path string, header []string, rows [][]string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for r, row := range append([][]string{header}, rows...) {
		values := make([]interface{}, len(row))
		for i, v := range row {
			// Counts go in as numbers, the way analytics exports store them.
			if n, err := strconv.Atoi(v); err == nil && r > 0 {
				values[i] = n
			} else {
				values[i] = v
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("write row %d: %v", r, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
