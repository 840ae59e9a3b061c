// Package shared holds code used across packages that belongs to no single
// layer.
//
// The testutil subpackage provides:
//
//	- Input fixtures: session-count and adds-to-cart files for a July 2012
//	  to June 2013 feed, as CSV or XLSX
//	- A buffered slog handler that captures records, including the run id
//	  carried by the context
//
// Example usage:
//
//	func TestRun(t *testing.T) {
//	    inputs := testutil.WriteInputs(t, t.TempDir(), ".csv")
//	    logger, logs := testutil.NewTestLogger(t)
//	    ...
//	    testutil.AssertNoErrors(t, logs)
//	}
package shared
