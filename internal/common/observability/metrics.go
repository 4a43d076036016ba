package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	sendCounter   otelmetric.Int64Counter
	sendDuration  otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	sendCounter, _ := meter.Int64Counter(
		"notifications.sent",
		otelmetric.WithDescription("Number of channel sends attempted"),
	)

	sendDuration, _ := meter.Float64Histogram(
		"notifications.send.duration",
		otelmetric.WithDescription("Channel send duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		sendCounter:   sendCounter,
		sendDuration:  sendDuration,
	}
}

func (o *Observability) RecordSend(ctx context.Context, channel, status string) {
	if o.sendCounter != nil {
		o.sendCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("channel", channel),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordSendDuration(ctx context.Context, duration time.Duration, channel string) {
	if o.sendDuration != nil {
		o.sendDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("channel", channel),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
