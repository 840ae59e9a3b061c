package exporter

import (
	"webagg/internal/config"
	"webagg/pkg/contracts/domain"
)

// Layout names the output sheets.
type Layout struct {
	MonthDevice  string
	MonthToMonth string
	TopBrowsers  string
	MonthTotals  string
}

// LayoutFromConfig derives sheet names from the report configuration. The
// browser sheet title carries the configured cap.
func LayoutFromConfig(cfg config.ReportConfig) Layout {
	return Layout{
		MonthDevice:  config.SheetMonthDevice,
		MonthToMonth: config.SheetMonthToMonth,
		TopBrowsers:  cfg.TopBrowsersSheet(),
		MonthTotals:  config.SheetMonthTotals,
	}
}

// Sheet is one report laid out for writing. Cells hold string, int, int64
// or float64 values.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

var metricHeader = []string{domain.ColSessions, domain.ColTransactions, domain.ColQuantity, domain.MetricECR}

// BuildSheets lays out the report set in output order: month/device,
// month-to-month, top browsers, month totals.
func BuildSheets(reports *domain.ReportSet, layout Layout) []Sheet {
	return []Sheet{
		monthDeviceSheet(layout.MonthDevice, reports.MonthDevice),
		trendSheet(layout.MonthToMonth, reports.Trend),
		browserSheet(layout.TopBrowsers, reports.TopBrowsers),
		totalsSheet(layout.MonthTotals, reports.MonthDeviceTotals),
	}
}

func monthDeviceSheet(name string, rows []domain.AggregateRow) Sheet {
	s := Sheet{
		Name:   name,
		Header: append([]string{"month_name", domain.ColDeviceCategory}, metricHeader...),
		Rows:   make([][]interface{}, 0, len(rows)),
	}
	for _, r := range rows {
		s.Rows = append(s.Rows, []interface{}{r.MonthName, r.DeviceCategory, r.Sessions, r.Transactions, r.Quantity, r.ECR})
	}
	return s
}

// trendSheet writes the transposed comparison: one labeled row per metric
// series, one column per month.
func trendSheet(name string, report domain.TrendReport) Sheet {
	s := Sheet{
		Name:   name,
		Header: append([]string{"month_name"}, report.Months...),
	}
	matrix := report.Matrix()
	s.Rows = make([][]interface{}, 0, len(matrix))
	for _, m := range matrix {
		row := make([]interface{}, 0, len(m.Values)+1)
		row = append(row, m.Label)
		for _, v := range m.Values {
			row = append(row, v)
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

func browserSheet(name string, rows []domain.AggregateRow) Sheet {
	s := Sheet{
		Name:   name,
		Header: append([]string{domain.ColBrowser}, metricHeader...),
		Rows:   make([][]interface{}, 0, len(rows)),
	}
	for _, r := range rows {
		s.Rows = append(s.Rows, []interface{}{r.Browser, r.Sessions, r.Transactions, r.Quantity, r.ECR})
	}
	return s
}

// totalsSheet leads with a zero-based row index column.
func totalsSheet(name string, rows []domain.AggregateRow) Sheet {
	s := Sheet{
		Name:   name,
		Header: append([]string{"", "month_name", domain.ColDeviceCategory}, metricHeader...),
		Rows:   make([][]interface{}, 0, len(rows)),
	}
	for i, r := range rows {
		s.Rows = append(s.Rows, []interface{}{i, r.MonthName, r.DeviceCategory, r.Sessions, r.Transactions, r.Quantity, r.ECR})
	}
	return s
}
