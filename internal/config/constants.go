package config

import "webagg/pkg/contracts"

// Application constants
const (
	// Application Info
	AppName    = "webagg"
	AppVersion = contracts.Version

	// EnvPrefix namespaces every environment variable (WEBAGG_*).
	EnvPrefix = "WEBAGG"

	// Report defaults
	DefaultTrailingWindowSize = 3
	DefaultTopNBrowsers       = 20
	DefaultCenturyPrefix      = "20"
	DefaultTotalLabel         = "Total"
	DefaultTotalECR           = "sum"
	DefaultOutputPath         = "website_agg.xlsx"

	// Logging defaults
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "json"
	DefaultLogOutput   = "console"
	DefaultLogFilePath = "logs/webagg.log"

	// Sheet names of the generated workbook
	SheetMonthDevice       = "Month Device Agg"
	SheetMonthToMonth      = "Month to Month Comparison"
	SheetTopBrowsersFormat = "Top %d Browsers"
	SheetMonthTotals       = "Month Aggs with Total"
)

// DefaultCategoryOrder is the device category order used by the totals report.
var DefaultCategoryOrder = []string{"Desktop", "Mobile", "Tablet"}
