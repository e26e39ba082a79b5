package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ERPMetrics holds client-side metrics for outbound ERP calls.
type ERPMetrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// NewERPMetrics creates metrics for outbound ERP calls.
func NewERPMetrics() (*ERPMetrics, error) {
	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"erp.client.request.duration",
		metric.WithDescription("ERP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestTotal, err := meter.Int64Counter(
		"erp.client.request.total",
		metric.WithDescription("Total number of ERP requests"),
	)
	if err != nil {
		return nil, err
	}

	return &ERPMetrics{
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

// Record records one completed ERP call.
func (m *ERPMetrics) Record(ctx context.Context, operation string, success bool, elapsed time.Duration) {
	if m == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("erp.operation", operation),
		attribute.Bool("erp.success", success),
	}

	m.requestDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}
