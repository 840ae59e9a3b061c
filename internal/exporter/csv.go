package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"webagg/internal/errors"
	"webagg/internal/files"
	"webagg/pkg/contracts/domain"
)

// CSVWriter writes every report as its own CSV file in a directory
type CSVWriter struct {
	dir    string
	layout Layout
	files  *files.Manager
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(dir string, layout Layout, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{dir: dir, layout: layout, files: files.NewManager(logger), logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// Write exports each sheet to <dir>/<sheet_file_name>.csv
func (w *CSVWriter) Write(ctx context.Context, reports *domain.ReportSet) error {
	if reports == nil {
		return errors.NewAppValidationError("no report set to write")
	}

	for _, sheet := range BuildSheets(reports, w.layout) {
		records := make([][]string, len(sheet.Rows))
		for i, row := range sheet.Rows {
			rec := make([]string, len(row))
			for j, v := range row {
				rec[j] = FormatCell(v)
			}
			records[i] = rec
		}

		path := filepath.Join(w.dir, SheetFileName(sheet.Name))
		err := w.WriteCSV(ctx, path, WriteOptions{
			Headers:   sheet.Header,
			Records:   records,
			BOMPrefix: true,
		})
		if err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to export sheet %q", sheet.Name), err)
		}
	}
	return nil
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(ctx context.Context, filePath string, options WriteOptions) error {
	w.logger.InfoContext(ctx, "Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)))

	return w.files.AtomicWrite(filePath, func(tmp string) error {
		return writeRecords(tmp, options)
	})
}

func writeRecords(path string, options WriteOptions) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Close()
}

// SheetFileName maps a sheet name to its CSV file name:
// "Month Device Agg" becomes "month_device_agg.csv".
func SheetFileName(sheet string) string {
	return strings.ToLower(strings.Join(strings.Fields(sheet), "_")) + ".csv"
}
