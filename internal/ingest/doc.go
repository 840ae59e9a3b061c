// Package ingest loads the session-count and adds-to-cart inputs into
// domain.Table values.
//
// CSV files are read with encoding/csv; a UTF-8 BOM and ragged rows are
// tolerated. XLSX workbooks are read with excelize from the first sheet, or
// from a named sheet when one is given. Cells stay as text: typing and
// validation belong to the pipeline.
package ingest
