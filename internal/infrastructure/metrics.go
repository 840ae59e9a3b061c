package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// PipelineMetrics holds the instruments recorded by a report run
type PipelineMetrics struct {
	RowsRead      metric.Int64Counter
	RowsWritten   metric.Int64Counter
	StageDuration metric.Float64Histogram
	RunsTotal     metric.Int64Counter
}

// CreatePipelineMetrics creates the report run instruments on meter
func CreatePipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	rowsRead, err := meter.Int64Counter(
		"webagg_input_rows",
		metric.WithDescription("Number of input rows decoded, by table"),
	)
	if err != nil {
		return nil, err
	}

	rowsWritten, err := meter.Int64Counter(
		"webagg_report_rows",
		metric.WithDescription("Number of report rows produced, by report"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"webagg_stage_duration",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	runsTotal, err := meter.Int64Counter(
		"webagg_runs",
		metric.WithDescription("Number of report runs, by status"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RowsRead:      rowsRead,
		RowsWritten:   rowsWritten,
		StageDuration: stageDuration,
		RunsTotal:     runsTotal,
	}, nil
}

// NoopPipelineMetrics returns instruments that record nothing
func NoopPipelineMetrics() *PipelineMetrics {
	m, _ := CreatePipelineMetrics(noop.NewMeterProvider().Meter(InstrumentationName))
	return m
}

// RecordStage records a stage duration
func (m *PipelineMetrics) RecordStage(ctx context.Context, stage string, d time.Duration) {
	m.StageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordRowsRead counts decoded input rows for table
func (m *PipelineMetrics) RecordRowsRead(ctx context.Context, table string, n int) {
	m.RowsRead.Add(ctx, int64(n), metric.WithAttributes(attribute.String("table", table)))
}

// RecordRowsWritten counts produced rows for report
func (m *PipelineMetrics) RecordRowsWritten(ctx context.Context, report string, n int) {
	m.RowsWritten.Add(ctx, int64(n), metric.WithAttributes(attribute.String("report", report)))
}

// RecordRun counts a finished run
func (m *PipelineMetrics) RecordRun(ctx context.Context, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.RunsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}
