// Package telemetry provides OpenTelemetry tracer and meter initialization
// with support for stdout (development) and OTLP/HTTP (production) exporters.
//
// Tracer initialization:
//
//	tp, err := telemetry.InitTracer(ctx, "clubstate", telemetry.ExporterStdout, "")
//	defer tp.Shutdown(ctx)
//
// Meter initialization and the service's instruments:
//
//	mp, err := telemetry.InitMeter(ctx, "clubstate", telemetry.ExporterStdout, "")
//	metrics, err := telemetry.NewMetrics(mp, "clubstate")
//	metrics.RecordCommand(ctx, "increment", telemetry.ResultSuccess, start)
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// Supported exporter names.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Result label values shared by every instrument.
const (
	ResultSuccess      = "success"
	ResultUnauthorized = "unauthorized"
	ResultInvalid      = "invalid"
	ResultError        = "error"
	ResultCircuitOpen  = "circuit_open"
)

// Attribute keys for metric labels.
var (
	AttrHTTPMethod = attribute.Key("http.method")
	AttrHTTPStatus = attribute.Key("http.status_code")
	AttrCommand    = attribute.Key("club.command")
	AttrBackend    = attribute.Key("store.backend")
	AttrOperation  = attribute.Key("store.operation")
	AttrResult     = attribute.Key("result")
	AttrPeer       = attribute.Key("peer.service")
)

// Metrics holds pre-registered OpenTelemetry metric instruments.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	CommandDuration       metric.Float64Histogram
	CommandTotal          metric.Int64Counter
	StoreOpDuration       metric.Float64Histogram
	StoreOpTotal          metric.Int64Counter
	ClientRequestDuration metric.Float64Histogram
	ClientRequestTotal    metric.Int64Counter
}

// InitTracer creates and registers a global TracerProvider.
//
// The exporter parameter selects the span exporter: ExporterOTLP uses
// OTLP/HTTP with the given endpoint; ExporterStdout uses a pretty-printed
// stdout exporter for development.
//
// The returned TracerProvider must be shut down when the application exits.
func InitTracer(ctx context.Context, serviceName, exporter, endpoint string) (*sdktrace.TracerProvider, error) {
	if err := checkExporter(exporter, endpoint); err != nil {
		return nil, err
	}

	res, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	spanExporter, err := newSpanExporter(ctx, exporter, endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, nil
}

// InitMeter creates and registers a global MeterProvider.
// Exporter selection follows InitTracer.
//
// The returned MeterProvider must be shut down when the application exits.
func InitMeter(ctx context.Context, serviceName, exporter, endpoint string) (*sdkmetric.MeterProvider, error) {
	if err := checkExporter(exporter, endpoint); err != nil {
		return nil, err
	}

	res, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	metricExporter, err := newMetricExporter(ctx, exporter, endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	return mp, nil
}

// NewMetrics creates and registers all metric instruments on a meter scoped
// to the given instrumentation name.
func NewMetrics(mp metric.MeterProvider, scope string) (*Metrics, error) {
	meter := mp.Meter(scope)

	var (
		m    Metrics
		errs []error
	)
	histogram := func(name, desc string) metric.Float64Histogram {
		h, err := meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
		if err != nil {
			errs = append(errs, fmt.Errorf("creating %s: %w", name, err))
		}
		return h
	}
	counter := func(name, desc, unit string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
		if err != nil {
			errs = append(errs, fmt.Errorf("creating %s: %w", name, err))
		}
		return c
	}

	m.ServerRequestDuration = histogram("http.server.request.duration", "Duration of incoming HTTP requests")
	m.ServerRequestTotal = counter("http.server.request.total", "Total number of incoming HTTP requests", "{request}")
	m.CommandDuration = histogram("club.command.duration", "Duration of club commands including persistence")
	m.CommandTotal = counter("club.command.total", "Total number of club commands", "{command}")
	m.StoreOpDuration = histogram("club.store.duration", "Duration of storage backend operations")
	m.StoreOpTotal = counter("club.store.total", "Total number of storage backend operations", "{operation}")
	m.ClientRequestDuration = histogram("http.client.request.duration", "Duration of outbound HTTP requests")
	m.ClientRequestTotal = counter("http.client.request.total", "Total number of outbound HTTP requests", "{request}")

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordCommand records one command outcome. Safe to call on a nil receiver.
func (m *Metrics) RecordCommand(ctx context.Context, command, result string, start time.Time) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		AttrCommand.String(command),
		AttrResult.String(result),
	)
	m.CommandDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	m.CommandTotal.Add(ctx, 1, attrs)
}

// RecordStoreOp records one storage backend call. Safe to call on a nil receiver.
func (m *Metrics) RecordStoreOp(ctx context.Context, backend, operation, result string, start time.Time) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		AttrBackend.String(backend),
		AttrOperation.String(operation),
		AttrResult.String(result),
	)
	m.StoreOpDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	m.StoreOpTotal.Add(ctx, 1, attrs)
}

func checkExporter(exporter, endpoint string) error {
	switch exporter {
	case ExporterStdout:
		return nil
	case ExporterOTLP:
		if endpoint == "" {
			return errors.New("otlp exporter requires an endpoint")
		}
		return nil
	default:
		return fmt.Errorf("unsupported exporter %q (want %s or %s)", exporter, ExporterStdout, ExporterOTLP)
	}
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}

func newSpanExporter(ctx context.Context, exporter, endpoint string) (sdktrace.SpanExporter, error) {
	if exporter == ExporterOTLP {
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(hostPort(endpoint))}
		if !isHTTPS(endpoint) {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	}
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func newMetricExporter(ctx context.Context, exporter, endpoint string) (sdkmetric.Exporter, error) {
	if exporter == ExporterOTLP {
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(hostPort(endpoint))}
		if !isHTTPS(endpoint) {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		return otlpmetrichttp.New(ctx, opts...)
	}
	return stdoutmetric.New()
}

// hostPort extracts the host:port from a URL string
// (e.g., "http://otel-collector:4318" -> "otel-collector:4318").
func hostPort(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Host
}

// isHTTPS returns true if the endpoint URL uses the https scheme.
func isHTTPS(endpoint string) bool {
	u, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	return u.Scheme == "https"
}

// RecordClientRequest records one outbound request to peer. A zero status
// means no response was received. Safe to call on a nil receiver.
func (m *Metrics) RecordClientRequest(ctx context.Context, peer, method string, status int, result string, start time.Time) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		AttrPeer.String(peer),
		AttrHTTPMethod.String(method),
		AttrHTTPStatus.Int(status),
		AttrResult.String(result),
	)
	m.ClientRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	m.ClientRequestTotal.Add(ctx, 1, attrs)
}
