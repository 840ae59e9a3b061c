package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"webagg/internal/errors"
	"webagg/internal/infrastructure"
	"webagg/pkg/contracts/domain"
)

// Pipeline stage names, used for spans, metrics and log records
const (
	StageDecode    = "decode"
	StageNormalize = "normalize"
	StageDevice    = "month_device"
	StageBrowser   = "top_browsers"
	StageTrend     = "month_to_month"
	StageTotals    = "month_totals"
)

// Pipeline turns the session and adds-to-cart tables into the four report
// tables. It holds no state between runs; Run either returns a complete
// ReportSet or an error.
type Pipeline struct {
	opts    Options
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewPipeline creates a pipeline with the given options.
func NewPipeline(logger *slog.Logger, opts Options) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TotalLabel == "" {
		opts.TotalLabel = DefaultOptions().TotalLabel
	}
	return &Pipeline{
		opts:    opts,
		logger:  infrastructure.WithComponent(logger, "pipeline"),
		tracer:  otel.Tracer(infrastructure.InstrumentationName),
		metrics: infrastructure.NoopPipelineMetrics(),
	}
}

// WithTelemetry sets the tracer and metric instruments used by Run.
func (p *Pipeline) WithTelemetry(tracer trace.Tracer, metrics *infrastructure.PipelineMetrics) *Pipeline {
	if tracer != nil {
		p.tracer = tracer
	}
	if metrics != nil {
		p.metrics = metrics
	}
	return p
}

// Run executes every stage in order. The first failing stage aborts the run.
func (p *Pipeline) Run(ctx context.Context, sessionsTable, cartAddsTable domain.Table) (*domain.ReportSet, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.run", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	var (
		rawSessions []domain.SessionRecord
		rawCartAdds []domain.CartAddRecord
		data        *Normalized
		reports     domain.ReportSet
	)

	err := p.stage(ctx, StageDecode, func(ctx context.Context) error {
		var err error
		if rawSessions, err = DecodeSessions(sessionsTable); err != nil {
			return err
		}
		if rawCartAdds, err = DecodeCartAdds(cartAddsTable); err != nil {
			return err
		}
		p.metrics.RecordRowsRead(ctx, SessionsTable, len(rawSessions))
		p.metrics.RecordRowsRead(ctx, CartAddsTable, len(rawCartAdds))
		return nil
	})
	if err != nil {
		return nil, p.fail(span, err)
	}

	err = p.stage(ctx, StageNormalize, func(ctx context.Context) error {
		var err error
		data, err = NewNormalizer(p.opts.CenturyPrefix).Normalize(rawSessions, rawCartAdds)
		if err != nil {
			return err
		}
		outside := 0
		for _, c := range data.CartAdds {
			if !c.InDomain() {
				outside++
			}
		}
		p.logger.DebugContext(ctx, "month ordering established",
			slog.Any("months", data.Months.Names()),
			slog.Int("cart_adds_outside_domain", outside))
		return nil
	})
	if err != nil {
		return nil, p.fail(span, err)
	}

	err = p.stage(ctx, StageDevice, func(ctx context.Context) error {
		reports.MonthDevice = AggregateByMonthDevice(data.Sessions, data.Months)
		p.metrics.RecordRowsWritten(ctx, StageDevice, len(reports.MonthDevice))
		return nil
	})
	if err != nil {
		return nil, p.fail(span, err)
	}

	err = p.stage(ctx, StageBrowser, func(ctx context.Context) error {
		reports.TopBrowsers = TopBrowsers(data.Sessions, p.opts.TopNBrowsers)
		p.metrics.RecordRowsWritten(ctx, StageBrowser, len(reports.TopBrowsers))
		return nil
	})
	if err != nil {
		return nil, p.fail(span, err)
	}

	err = p.stage(ctx, StageTrend, func(ctx context.Context) error {
		reports.Trend = CompareTrailingMonths(data.Sessions, data.CartAdds, data.Months, p.opts.TrailingWindowSize)
		if reports.Trend.Empty() {
			p.logger.WarnContext(ctx, "month-to-month comparison is empty",
				slog.String("error", errors.NewAggregationError(StageTrend, "month_name").Error()))
		}
		p.metrics.RecordRowsWritten(ctx, StageTrend, len(reports.Trend.Months))
		return nil
	})
	if err != nil {
		return nil, p.fail(span, err)
	}

	err = p.stage(ctx, StageTotals, func(ctx context.Context) error {
		order := NewCategoryOrder(p.opts.CategoryOrder, p.opts.TotalLabel)
		reports.MonthDeviceTotals = AddMonthTotals(reports.MonthDevice, data.Months, order, p.opts.TotalECR)
		p.metrics.RecordRowsWritten(ctx, StageTotals, len(reports.MonthDeviceTotals))
		return nil
	})
	if err != nil {
		return nil, p.fail(span, err)
	}

	p.logger.InfoContext(ctx, "report tables built",
		slog.Int("session_rows", len(data.Sessions)),
		slog.Int("cart_add_rows", len(data.CartAdds)),
		slog.Int("months", data.Months.Len()),
		slog.Int("month_device_rows", len(reports.MonthDevice)),
		slog.Int("browser_rows", len(reports.TopBrowsers)),
		slog.Any("trend_months", reports.Trend.Months))

	return &reports, nil
}

// stage runs fn inside its own span and records its duration.
func (p *Pipeline) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := p.tracer.Start(ctx, "pipeline."+name,
		trace.WithAttributes(attribute.String("stage", name)))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	p.metrics.RecordStage(ctx, name, time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logger.ErrorContext(ctx, "pipeline stage failed",
			slog.String("stage", name),
			slog.String("error", err.Error()))
		return err
	}

	p.logger.DebugContext(ctx, "pipeline stage complete", slog.String("stage", name))
	return nil
}

func (p *Pipeline) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
