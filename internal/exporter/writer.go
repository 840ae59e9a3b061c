package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"webagg/internal/errors"
	"webagg/internal/files"
	"webagg/pkg/contracts/domain"
)

// ReportWriter persists a complete report set.
type ReportWriter interface {
	Write(ctx context.Context, reports *domain.ReportSet) error
}

type multiWriter []ReportWriter

// MultiWriter returns a writer that runs each writer in order and stops at
// the first error.
func MultiWriter(writers ...ReportWriter) ReportWriter {
	return multiWriter(writers)
}

func (m multiWriter) Write(ctx context.Context, reports *domain.ReportSet) error {
	for _, w := range m {
		if err := w.Write(ctx, reports); err != nil {
			return err
		}
	}
	return nil
}

// WorkbookWriter writes every report as a worksheet of one XLSX file.
type WorkbookWriter struct {
	path   string
	layout Layout
	files  *files.Manager
	logger *slog.Logger
}

// NewWorkbookWriter creates a workbook writer targeting path.
func NewWorkbookWriter(path string, layout Layout, logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{path: path, layout: layout, files: files.NewManager(logger), logger: logger}
}

// Path returns the target file.
func (w *WorkbookWriter) Path() string {
	return w.path
}

// Write builds the workbook in memory and publishes it atomically.
func (w *WorkbookWriter) Write(ctx context.Context, reports *domain.ReportSet) error {
	if reports == nil {
		return errors.NewAppValidationError("no report set to write")
	}

	sheets := BuildSheets(reports, w.layout)

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.NewStorageError("failed to create header style", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			err = f.SetSheetName(f.GetSheetName(0), sheet.Name)
		} else {
			_, err = f.NewSheet(sheet.Name)
		}
		if err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to create sheet %q", sheet.Name), err)
		}

		if err := writeSheet(f, sheet, headerStyle); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to write sheet %q", sheet.Name), err)
		}
	}
	f.SetActiveSheet(0)

	if err := w.files.AtomicWrite(w.path, func(tmp string) error { return f.SaveAs(tmp) }); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to save workbook %s", w.path), err)
	}

	w.logger.InfoContext(ctx, "Workbook written",
		slog.String("path", w.path),
		slog.Int("sheets", len(sheets)))
	return nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle int) error {
	header := make([]interface{}, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet.Name, 1, 1, headerStyle); err != nil {
		return err
	}

	for r, row := range sheet.Rows {
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = workbookValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
