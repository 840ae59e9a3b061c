package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"webagg/internal/config"
	"webagg/internal/dataprocessing"
	"webagg/internal/errors"
	"webagg/internal/exporter"
	"webagg/internal/infrastructure"
	"webagg/internal/ingest"
	"webagg/internal/validation"
	"webagg/pkg/contracts/domain"
)

// Overrides carries command-line values that win over every other
// configuration source. Nil or empty fields leave the loaded value alone.
type Overrides struct {
	OutputPath         string
	CSVDir             string
	TrailingWindowSize *int
	TopNBrowsers       *int
}

// Apply overlays the overrides onto cfg.
func (o Overrides) Apply(cfg *config.ReportConfig) {
	if o.OutputPath != "" {
		cfg.OutputPath = o.OutputPath
	}
	if o.CSVDir != "" {
		cfg.CSVDir = o.CSVDir
	}
	if o.TrailingWindowSize != nil {
		cfg.TrailingWindowSize = *o.TrailingWindowSize
	}
	if o.TopNBrowsers != nil {
		cfg.TopNBrowsers = *o.TopNBrowsers
	}
}

// Settings selects how the application is assembled.
type Settings struct {
	// ConfigFile is an explicit YAML file; empty searches the usual locations.
	ConfigFile string
	Overrides  Overrides
	// Logger replaces the global logger built from configuration.
	Logger *slog.Logger
}

// Application wires configuration, telemetry, readers, the pipeline and
// the report writers for one batch run.
type Application struct {
	Config        *config.Config
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.PipelineMetrics
	Validator     *validation.FileValidator
	Reader        *ingest.Reader
	Pipeline      *dataprocessing.Pipeline
	Writer        exporter.ReportWriter
}

// NewApplication loads configuration and builds every component.
func NewApplication(ctx context.Context, settings Settings) (*Application, error) {
	cfg, err := config.Load(settings.ConfigFile)
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}

	settings.Overrides.Apply(&cfg.Report)
	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigError("invalid command-line options", err)
	}

	logger := settings.Logger
	if logger == nil {
		logger, err = infrastructure.InitializeLogger(cfg.Logging)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	otelProviders, err := infrastructure.InitializeOTel(ctx, cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreatePipelineMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	layout := exporter.LayoutFromConfig(cfg.Report)
	writers := []exporter.ReportWriter{
		exporter.NewWorkbookWriter(cfg.Report.OutputPath, layout, infrastructure.WithComponent(logger, "workbook")),
	}
	if cfg.Report.CSVDir != "" {
		writers = append(writers, exporter.NewCSVWriter(cfg.Report.CSVDir, layout, infrastructure.WithComponent(logger, "csv")))
	}

	pipeline := dataprocessing.NewPipeline(logger, dataprocessing.OptionsFromConfig(cfg.Report)).
		WithTelemetry(otelProviders.Tracer, metrics)

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		Validator:     validation.NewFileValidator(infrastructure.WithComponent(logger, "validation")),
		Reader:        ingest.NewReader(infrastructure.WithComponent(logger, "ingest")),
		Pipeline:      pipeline,
		Writer:        exporter.MultiWriter(writers...),
	}

	logger.InfoContext(ctx, "Application initialized",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("output", cfg.Report.OutputPath),
		slog.String("csv_dir", cfg.Report.CSVDir),
		slog.Int("trailing_window_size", cfg.Report.TrailingWindowSize),
		slog.Int("top_n_browsers", cfg.Report.TopNBrowsers))

	return app, nil
}

// Run produces the report workbook from the two input files. Nothing is
// written unless every pipeline stage succeeds.
func (a *Application) Run(ctx context.Context, sessionsPath, cartAddsPath string) (err error) {
	ctx = infrastructure.EnsureRunID(ctx)
	start := time.Now()

	a.Logger.InfoContext(ctx, "Report run started",
		slog.String("session_counts", sessionsPath),
		slog.String("adds_to_cart", cartAddsPath))

	defer func() {
		a.Metrics.RecordRun(ctx, err == nil)
		a.flushMetrics(ctx)
		if err != nil {
			infrastructure.WithError(a.Logger, err).ErrorContext(ctx, "Report run failed",
				slog.Duration("duration", time.Since(start)))
			return
		}
		a.Logger.InfoContext(ctx, "Report run complete",
			slog.String("output", a.Config.Report.OutputPath),
			slog.Duration("duration", time.Since(start)))
	}()

	if err := a.validate(sessionsPath, cartAddsPath); err != nil {
		return err
	}

	sessions, err := a.Reader.ReadTable(sessionsPath, dataprocessing.SessionsTable)
	if err != nil {
		return err
	}
	cartAdds, err := a.Reader.ReadTable(cartAddsPath, dataprocessing.CartAddsTable)
	if err != nil {
		return err
	}

	reports, err := a.Pipeline.Run(ctx, sessions, cartAdds)
	if err != nil {
		return err
	}

	return a.write(ctx, reports)
}

func (a *Application) validate(sessionsPath, cartAddsPath string) error {
	for _, p := range []string{sessionsPath, cartAddsPath} {
		if err := a.Validator.ValidateInputFile(p); err != nil {
			return err
		}
	}
	if err := a.Validator.ValidateDistinctInputs(sessionsPath, cartAddsPath); err != nil {
		return err
	}
	if err := a.Validator.ValidateOutputFile(a.Config.Report.OutputPath); err != nil {
		return err
	}
	if dir := a.Config.Report.CSVDir; dir != "" {
		return a.Validator.ValidateOutputDirectory(dir)
	}
	return nil
}

func (a *Application) write(ctx context.Context, reports *domain.ReportSet) error {
	return a.Writer.Write(ctx, reports)
}

// flushMetrics dumps batch metrics when a textfile target is configured.
func (a *Application) flushMetrics(ctx context.Context) {
	path := a.Config.Telemetry.MetricsTextfile
	if path == "" || !a.Config.Telemetry.EnableMetrics {
		return
	}
	if err := a.OTelProviders.WriteMetrics(path); err != nil {
		a.Logger.WarnContext(ctx, "Failed to write metrics textfile",
			slog.String("path", path),
			slog.String("error", err.Error()))
	}
}

// Shutdown flushes telemetry and closes the log file
func (a *Application) Shutdown(ctx context.Context) error {
	var err error
	if a.OTelProviders != nil {
		if shutdownErr := a.OTelProviders.Shutdown(ctx); shutdownErr != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", shutdownErr.Error()))
			err = shutdownErr
		}
	}
	if closeErr := infrastructure.CloseLogFile(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
