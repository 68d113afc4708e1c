package observability

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability exports OpenTelemetry job instruments through the Prometheus registry
// served on /metrics.
type Observability struct {
	meterProvider *metric.MeterProvider
	jobCounter    otelmetric.Int64Counter
	jobDuration   otelmetric.Float64Histogram
}

// New sets up the global meter provider. A failing exporter yields a no-op Observability.
func New(serviceName string) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return &Observability{}, err
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)
	meter := provider.Meter(serviceName)

	jobCounter, err := meter.Int64Counter(
		"jobs.activated",
		otelmetric.WithDescription("Number of jobs handed to a worker"),
	)
	if err != nil {
		return &Observability{meterProvider: provider}, err
	}

	jobDuration, err := meter.Float64Histogram(
		"jobs.handler.duration",
		otelmetric.WithDescription("Wall time spent inside a job handler"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return &Observability{meterProvider: provider}, err
	}

	return &Observability{
		meterProvider: provider,
		jobCounter:    jobCounter,
		jobDuration:   jobDuration,
	}, nil
}

// Instrument wraps a job handler so every activation is counted and timed per task type.
func (o *Observability) Instrument(taskType string, next worker.JobHandler) worker.JobHandler {
	attrs := otelmetric.WithAttributes(attribute.String("task_type", taskType))
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		next(client, job)

		ctx := context.Background()
		if o.jobCounter != nil {
			o.jobCounter.Add(ctx, 1, attrs)
		}
		if o.jobDuration != nil {
			o.jobDuration.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)
		}
	}
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o.meterProvider == nil {
		return nil
	}
	return o.meterProvider.Shutdown(ctx)
}
