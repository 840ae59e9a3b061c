package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"webagg/internal/errors"
	"webagg/pkg/contracts/domain"
)

// Supported input extensions
const (
	ExtCSV  = ".csv"
	ExtXLSX = ".xlsx"
	ExtXLSM = ".xlsm"
)

// Reader loads input tables from disk.
type Reader struct {
	// Sheet selects the worksheet of XLSX inputs; empty means the first sheet.
	Sheet  string
	logger *slog.Logger
}

// NewReader creates a reader.
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger}
}

// ReadTable loads path as a table named name, dispatching on the file
// extension.
func (r *Reader) ReadTable(path, name string) (domain.Table, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		table domain.Table
		err   error
	)
	switch ext {
	case ExtCSV:
		table, err = r.readCSVFile(path, name)
	case ExtXLSX, ExtXLSM:
		table, err = r.readWorkbook(path, name)
	default:
		return domain.Table{}, errors.NewAppValidationError(
			fmt.Sprintf("unsupported input format %q for %s", ext, path)).
			WithContext("table", name)
	}
	if err != nil {
		return domain.Table{}, err
	}

	r.logger.Info("input table loaded",
		slog.String("table", name),
		slog.String("path", path),
		slog.Int("columns", len(table.Header)),
		slog.Int("rows", table.Len()))
	return table, nil
}

func (r *Reader) readCSVFile(path, name string) (domain.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.Table{}, errors.NewStorageError(fmt.Sprintf("failed to open %s", path), err).
			WithContext("table", name)
	}
	defer file.Close()

	return ReadCSV(file, name)
}

// ReadCSV parses CSV text into a table. The first record is the header.
func ReadCSV(rd io.Reader, name string) (domain.Table, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return domain.Table{}, errors.NewParsingError(fmt.Sprintf("failed to read %s CSV", name), err).
			WithContext("table", name)
	}
	return newTable(name, records)
}

func (r *Reader) readWorkbook(path, name string) (domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Table{}, errors.NewStorageError(fmt.Sprintf("failed to open workbook %s", path), err).
			WithContext("table", name)
	}
	defer f.Close()

	sheet := r.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return domain.Table{}, errors.NewNotFoundError(fmt.Sprintf("worksheet in %s", path))
		}
		sheet = sheets[0]
	} else if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return domain.Table{}, errors.NewNotFoundError(fmt.Sprintf("worksheet %q in %s", sheet, path))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return domain.Table{}, errors.NewParsingError(fmt.Sprintf("failed to read worksheet %q", sheet), err).
			WithContext("table", name)
	}

	r.logger.Debug("worksheet selected",
		slog.String("table", name),
		slog.String("sheet", sheet))
	return newTable(name, rows)
}

// newTable splits records into header and data rows.
func newTable(name string, records [][]string) (domain.Table, error) {
	if len(records) == 0 {
		return domain.Table{}, errors.NewParsingError(fmt.Sprintf("%s input has no header row", name), nil).
			WithContext("table", name)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	return domain.Table{
		Name:   name,
		Header: header,
		Rows:   records[1:],
	}, nil
}
