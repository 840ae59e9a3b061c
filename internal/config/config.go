package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Report    ReportConfig    `yaml:"report" envconfig:"REPORT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ReportConfig controls the transformation pipeline and its outputs.
type ReportConfig struct {
	// TrailingWindowSize is the number of months in the month-to-month comparison.
	TrailingWindowSize int `yaml:"trailing_window_size" envconfig:"TRAILING_WINDOW_SIZE" validate:"min=1"`
	// TopNBrowsers caps the browser ranking.
	TopNBrowsers int `yaml:"top_n_browsers" envconfig:"TOP_N_BROWSERS" validate:"min=1"`
	// CenturyPrefix expands two-digit years ("12" becomes "2012").
	CenturyPrefix string   `yaml:"century_prefix" envconfig:"CENTURY_PREFIX" validate:"required,numeric,len=2"`
	CategoryOrder []string `yaml:"category_order" envconfig:"CATEGORY_ORDER" validate:"dive,required"`
	TotalLabel    string   `yaml:"total_label" envconfig:"TOTAL_LABEL" validate:"required"`
	// TotalECR is "sum" (add the device rows' ECR) or "recompute"
	// (summed transactions / summed sessions).
	TotalECR   string `yaml:"total_ecr" envconfig:"TOTAL_ECR" validate:"oneof=sum recompute"`
	OutputPath string `yaml:"output_path" envconfig:"OUTPUT_PATH" validate:"required"`
	// CSVDir enables a per-sheet CSV export next to the workbook when set.
	CSVDir string `yaml:"csv_dir" envconfig:"CSV_DIR"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// TelemetryConfig contains tracing and batch metrics configuration
type TelemetryConfig struct {
	ServiceName   string `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	EnableTracing bool   `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	EnableMetrics bool   `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	// MetricsTextfile receives a Prometheus text dump after each run.
	MetricsTextfile string `yaml:"metrics_textfile" envconfig:"METRICS_TEXTFILE"`
}

// Load builds the configuration from defaults, an optional YAML file, an
// optional .env file and the environment, then validates it.
// An empty configFile falls back to the first file found in the usual locations.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if err := loadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields without a matching variable keep their file or default value.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv seeds the environment from path; a missing file is not an error.
// Variables already set in the environment win.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// loadFromFile overlays YAML configuration onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	// Always JSON, matching the logger
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFilePath
	}

	for _, cat := range c.Report.CategoryOrder {
		if cat == c.Report.TotalLabel {
			return fmt.Errorf("category order must not contain the total label %q", c.Report.TotalLabel)
		}
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"webagg.yaml",
		"configs/webagg.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	order := make([]string, len(DefaultCategoryOrder))
	copy(order, DefaultCategoryOrder)

	return &Config{
		Report: ReportConfig{
			TrailingWindowSize: DefaultTrailingWindowSize,
			TopNBrowsers:       DefaultTopNBrowsers,
			CenturyPrefix:      DefaultCenturyPrefix,
			CategoryOrder:      order,
			TotalLabel:         DefaultTotalLabel,
			TotalECR:           DefaultTotalECR,
			OutputPath:         DefaultOutputPath,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFilePath,
		},
		Telemetry: TelemetryConfig{
			ServiceName:   AppName,
			EnableTracing: false,
			TraceExporter: "none",
			EnableMetrics: true,
		},
	}
}

// TopBrowsersSheet returns the browser sheet title for the configured cap.
func (r ReportConfig) TopBrowsersSheet() string {
	return fmt.Sprintf(SheetTopBrowsersFormat, r.TopNBrowsers)
}
