// Package exporter writes a report set to its output formats.
//
// BuildSheets lays the four report tables out as sheets: header row plus
// typed cells. Two ReportWriter implementations consume them:
//
// WorkbookWriter: one XLSX workbook with a worksheet per report, written
// with excelize.
//
// CSVWriter: one CSV file per report in a directory, with a UTF-8 BOM for
// Excel compatibility.
//
// Undefined values (NaN) are written as empty cells and infinite percent
// changes as "inf" or "-inf", so both formats carry the same cell text.
//
// Example usage:
//
//	layout := exporter.LayoutFromConfig(cfg.Report)
//	w := exporter.MultiWriter(
//		exporter.NewWorkbookWriter("website_agg.xlsx", layout, logger),
//		exporter.NewCSVWriter("out/csv", layout, logger),
//	)
//	err := w.Write(ctx, reports)
package exporter
