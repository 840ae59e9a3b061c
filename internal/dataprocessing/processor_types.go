package dataprocessing

import (
	"webagg/internal/config"
)

// Options configures the report pipeline
type Options struct {
	// TrailingWindowSize is how many of the latest months the trend compares
	TrailingWindowSize int

	// TopNBrowsers caps the browser ranking; 0 or less disables the cap
	TopNBrowsers int

	// CenturyPrefix is prepended to two-digit years
	CenturyPrefix string

	// CategoryOrder ranks device categories in the totals report
	CategoryOrder []string

	// TotalLabel tags the synthetic per-month total rows
	TotalLabel string

	// TotalECR selects how the total rows derive their ECR
	TotalECR TotalECR
}

// DefaultOptions returns default processing options
func DefaultOptions() Options {
	return Options{
		TrailingWindowSize: config.DefaultTrailingWindowSize,
		TopNBrowsers:       config.DefaultTopNBrowsers,
		CenturyPrefix:      config.DefaultCenturyPrefix,
		CategoryOrder:      append([]string(nil), config.DefaultCategoryOrder...),
		TotalLabel:         config.DefaultTotalLabel,
		TotalECR:           SumECR,
	}
}

// OptionsFromConfig maps the report section of the configuration. The config
// validator restricts TotalECR to known modes.
func OptionsFromConfig(cfg config.ReportConfig) Options {
	totalECR, _ := ParseTotalECR(cfg.TotalECR)
	return Options{
		TrailingWindowSize: cfg.TrailingWindowSize,
		TopNBrowsers:       cfg.TopNBrowsers,
		CenturyPrefix:      cfg.CenturyPrefix,
		CategoryOrder:      append([]string(nil), cfg.CategoryOrder...),
		TotalLabel:         cfg.TotalLabel,
		TotalECR:           totalECR,
	}
}
