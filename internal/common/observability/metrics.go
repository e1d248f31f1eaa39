package observability

import (
	"context"
	"time"

	"truecheck/internal/common/logger"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability owns the OpenTelemetry meter provider. Its instruments are
// exported through the Prometheus registry served on /metrics.
type Observability struct {
	meterProvider        *metric.MeterProvider
	meter                otelmetric.Meter
	verificationCounter  otelmetric.Int64Counter
	verificationDuration otelmetric.Float64Histogram
}

// New registers the exporter with the default Prometheus registerer.
func New(serviceName string, log logger.Logger) *Observability {
	return NewWithRegisterer(serviceName, promclient.DefaultRegisterer, log)
}

// NewWithRegisterer is New with an explicit registerer. A failed exporter
// yields an Observability whose Record methods are no-ops.
func NewWithRegisterer(serviceName string, reg promclient.Registerer, log logger.Logger) *Observability {
	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		log.Warn("failed to create prometheus exporter", map[string]interface{}{"error": err.Error()})
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	counter, _ := meter.Int64Counter(
		"verifications.processed",
		otelmetric.WithDescription("Number of verifications processed"),
	)

	duration, _ := meter.Float64Histogram(
		"verifications.duration",
		otelmetric.WithDescription("Verification processing duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:        provider,
		meter:                meter,
		verificationCounter:  counter,
		verificationDuration: duration,
	}
}

func (o *Observability) RecordVerification(ctx context.Context, shape, outcome string) {
	if o == nil || o.verificationCounter == nil {
		return
	}
	o.verificationCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("shape", shape),
		attribute.String("outcome", outcome),
	))
}

func (o *Observability) RecordDuration(ctx context.Context, duration time.Duration, shape string) {
	if o == nil || o.verificationDuration == nil {
		return
	}
	o.verificationDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("shape", shape),
	))
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}
