// Package config provides configuration management for webagg.
// It loads settings from multiple sources, validates them, and hands
// typed sections to the pipeline, the logger and the telemetry setup.
//
// # Configuration Sources
//
// Configuration is resolved in the following order of precedence:
//
//	1. Command-line flags (applied by cmd/webagg)
//	2. Environment variables, optionally seeded from a .env file
//	3. A YAML configuration file
//	4. Default values
//
// # Environment Variables
//
// All environment variables follow the pattern WEBAGG_<SECTION>_<FIELD>:
//
//	WEBAGG_REPORT_TRAILING_WINDOW_SIZE=3
//	WEBAGG_REPORT_TOP_N_BROWSERS=20
//	WEBAGG_REPORT_CATEGORY_ORDER=Desktop,Mobile,Tablet
//	WEBAGG_LOGGING_LEVEL=debug
//	WEBAGG_TELEMETRY_METRICS_TEXTFILE=/var/lib/node_exporter/webagg.prom
//
// # Validation
//
// Struct tags are checked with go-playground/validator at load time, so a
// zero or negative window size fails before any input is read.
package config
