// Package dataprocessing turns the web-analytics session feed and the
// adds-to-cart feed into the four report tables of a run.
//
// # Architecture
//
// The pipeline runs these stages in order:
//
// 1. Decode: map table columns to SessionRecord and CartAddRecord values
// 2. Normalize: parse dates into (Year, MonthName), title-case device
// categories and derive the MonthOrdering from the session data
// 3. Month/device aggregation with ECR
// 4. Browser ranking, truncated to the top N
// 5. Month-to-month comparison over the trailing window, joined with cart adds
// 6. Per-month "Total" rows added to the month/device aggregation
//
// # Usage
//
//	p := dataprocessing.NewPipeline(logger, dataprocessing.DefaultOptions())
//	reports, err := p.Run(ctx, sessionsTable, cartAddsTable)
//	if err != nil {
//	    return err
//	}
//
// Every stage is a pure function over record slices and an explicit
// MonthOrdering; they can be called directly in tests.
//
// # Error Handling
//
// Decode failures return MissingColumnError or a parsing AppError naming the
// row and column. Date and month tokens that cannot be parsed return
// MalformedDateError. Any error aborts the run and no ReportSet is returned.
// An empty month-to-month window is logged, not returned.
package dataprocessing
