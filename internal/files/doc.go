// Package files provides the file operations behind report output.
//
// Manager publishes files atomically: content is produced at a temporary
// path next to the target and moved into place only once complete, so a
// failed run never leaves a truncated workbook or CSV behind.
//
// Example usage:
//
//	manager := files.NewManager(logger)
//	err := manager.AtomicWrite("out/website_agg.xlsx", func(tmp string) error {
//	    return workbook.SaveAs(tmp)
//	})
package files
