package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"osucard-backend/lib/configutil"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Endpoint is one otlp collector.
//
//	{protocol: "grpc", url: "http://localhost:4317", headers: {...}}
type Endpoint struct {
	// Protocol is "grpc" or "http", empty means http.
	Protocol string            `json:"protocol"`
	Url      string            `json:"url"`
	Headers  map[string]string `json:"headers"`
}

// Config is the contents of telemetry.json5.
type Config struct {
	Traces  Endpoint `json:"traces"`
	Metrics Endpoint `json:"metrics"`
	// MetricIntervalSeconds defaults to 15.
	MetricIntervalSeconds int `json:"metric_interval_seconds"`
}

type Telemetry struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
}

func (t Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.TracerProvider != nil {
		errs = append(errs, t.TracerProvider.Shutdown(ctx))
	}
	if t.MeterProvider != nil {
		errs = append(errs, t.MeterProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

var testSetup = struct {
	lock  sync.Mutex
	names map[string]bool
}{names: map[string]bool{}}

// SetupForTesting initializes logging and, when a telemetry.json5 can be
// found, exporters for a test binary. Only the first call for a given
// serviceName does anything, later calls get a no-op cleanup.
func SetupForTesting(t testing.TB, serviceName string) func() {
	testSetup.lock.Lock()
	defer testSetup.lock.Unlock()

	if testSetup.names[serviceName] {
		return func() {}
	}
	testSetup.names[serviceName] = true

	InitSlog(testing.Verbose())

	ctx := context.Background()
	tel, err := SetupFromEnv(ctx, serviceName)
	if os.IsNotExist(err) {
		return func() {}
	}
	if err != nil {
		t.Fatal(err)
	}
	return func() {
		err := tel.Shutdown(ctx)
		if err != nil {
			t.Fatal(err)
		}
	}
}

// SetupFromEnv looks for telemetry.json5 in the working directory and its
// parents. It returns an error satisfying os.IsNotExist if there is none.
func SetupFromEnv(ctx context.Context, serviceName string) (Telemetry, error) {
	config, err := configutil.ReadRecursively[Config]("telemetry.json5")
	if err != nil {
		return Telemetry{}, err
	}
	return Setup(ctx, serviceName, config)
}

// Setup creates the providers described by config and installs them as
// the otel globals.
func Setup(ctx context.Context, serviceName string, config Config) (Telemetry, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*15)
	defer cancel()

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return Telemetry{}, err
	}

	spanExporter, err := newSpanExporter(ctx, config.Traces)
	if err != nil {
		return Telemetry{}, fmt.Errorf("trace exporter: %w", err)
	}
	metricExporter, err := newMetricExporter(ctx, config.Metrics)
	if err != nil {
		return Telemetry{}, fmt.Errorf("metric exporter: %w", err)
	}

	interval := time.Duration(config.MetricIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Second * 15
	}

	tel := Telemetry{
		TracerProvider: trace.NewTracerProvider(
			trace.WithBatcher(spanExporter),
			trace.WithResource(r),
		),
		MeterProvider: metric.NewMeterProvider(
			metric.WithReader(metric.NewPeriodicReader(metricExporter, metric.WithInterval(interval))),
			metric.WithResource(r),
		),
	}
	otel.SetTracerProvider(tel.TracerProvider)
	otel.SetMeterProvider(tel.MeterProvider)

	slog.Info(
		"telemetry exporters initialized",
		"traces", config.Traces.Url,
		"traces_protocol", protocolOf(config.Traces),
		"metrics", config.Metrics.Url,
		"metrics_protocol", protocolOf(config.Metrics),
	)
	return tel, nil
}

func protocolOf(e Endpoint) string {
	if e.Protocol == "" {
		return "http"
	}
	return e.Protocol
}

func newSpanExporter(ctx context.Context, e Endpoint) (trace.SpanExporter, error) {
	switch protocolOf(e) {
	case "grpc":
		return otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpointURL(e.Url),
			otlptracegrpc.WithHeaders(e.Headers),
		)
	case "http":
		return otlptracehttp.New(
			ctx,
			otlptracehttp.WithEndpointURL(e.Url),
			otlptracehttp.WithHeaders(e.Headers),
		)
	}
	return nil, fmt.Errorf("unknown otlp protocol %q", e.Protocol)
}

func newMetricExporter(ctx context.Context, e Endpoint) (metric.Exporter, error) {
	switch protocolOf(e) {
	case "grpc":
		return otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpointURL(e.Url),
			otlpmetricgrpc.WithHeaders(e.Headers),
		)
	case "http":
		return otlpmetrichttp.New(
			ctx,
			otlpmetrichttp.WithEndpointURL(e.Url),
			otlpmetrichttp.WithHeaders(e.Headers),
		)
	}
	return nil, fmt.Errorf("unknown otlp protocol %q", e.Protocol)
}
