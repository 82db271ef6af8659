package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const (
	meterName          = "team-draft-service"
	otlpExportInterval = 15 * time.Second
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup builds a meter provider that always serves Prometheus and also pushes over OTLP when an
// endpoint is configured. It returns the Recorder, the /metrics handler and the provider shutdown.
// When telemetry is disabled the Recorder only keeps in-process counters and the handler is nil.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	provider, handler, err := newMeterProvider(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	inst, err := instrumentFactory(provider)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, nil, nil, err
	}
	return newRecorder(inst), handler, provider.Shutdown, nil
}

func newMeterProvider(ctx context.Context, cfg TelemetryConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = meterName
	}

	promReader, handler, err := promReaderFactory()
	if err != nil {
		return nil, nil, err
	}
	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, nil, err
	}
	opts = append(opts, sdkmetric.WithResource(res))

	return sdkmetric.NewMeterProvider(opts...), handler, nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	exporter, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return exporter, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(otlpExportInterval)), nil
}

// otelInstruments mirrors the Recorder's in-process counters as OTel instruments.
type otelInstruments struct {
	ctx context.Context

	requests       metric.Int64Counter
	requestLatency metric.Float64Histogram

	extractorAttempts metric.Int64Counter
	extractorErrors   metric.Int64Counter
	extractorLatency  metric.Float64Histogram
	rateLimitHits     metric.Int64Counter
	retryAfter        metric.Float64Histogram

	allocationRuns     metric.Int64Counter
	allocationFailures metric.Int64Counter
	allocationLatency  metric.Float64Histogram
	teamsPerRun        metric.Int64Histogram
	playersPerRun      metric.Int64Histogram
}

// instrumentBuilder keeps the first creation error so newOtelInstruments reads as a flat list.
type instrumentBuilder struct {
	meter metric.Meter
	err   error
}

func (b *instrumentBuilder) counter(name, desc string) metric.Int64Counter {
	if b.err != nil {
		return nil
	}
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc))
	b.err = err
	return c
}

func (b *instrumentBuilder) histogram(name, desc string) metric.Float64Histogram {
	if b.err != nil {
		return nil
	}
	h, err := b.meter.Float64Histogram(name, metric.WithDescription(desc))
	b.err = err
	return h
}

func (b *instrumentBuilder) intHistogram(name, desc string) metric.Int64Histogram {
	if b.err != nil {
		return nil
	}
	h, err := b.meter.Int64Histogram(name, metric.WithDescription(desc))
	b.err = err
	return h
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	b := &instrumentBuilder{meter: provider.Meter(meterName)}
	inst := &otelInstruments{
		ctx: context.Background(),

		requests:       b.counter("http_requests_total", "HTTP requests served"),
		requestLatency: b.histogram("http_request_duration_ms", "HTTP request latency in milliseconds"),

		extractorAttempts: b.counter("extractor_attempts_total", "Name extractor calls, retries included"),
		extractorErrors:   b.counter("extractor_errors_total", "Name extractor calls that failed"),
		extractorLatency:  b.histogram("extractor_duration_ms", "Name extractor latency in milliseconds"),
		rateLimitHits:     b.counter("extractor_rate_limit_hits_total", "Upstream rate limit responses"),
		retryAfter:        b.histogram("extractor_retry_after_ms", "Retry-After requested by the upstream in milliseconds"),

		allocationRuns:     b.counter("allocation_runs_total", "Team generation runs"),
		allocationFailures: b.counter("allocation_failures_total", "Team generation runs that returned an error"),
		allocationLatency:  b.histogram("allocation_duration_ms", "Allocator latency in milliseconds"),
		teamsPerRun:        b.intHistogram("allocation_teams", "Teams produced per successful run"),
		playersPerRun:      b.intHistogram("allocation_players", "Players allocated per successful run"),
	}
	if b.err != nil {
		return nil, b.err
	}
	return inst, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	)
	o.requests.Add(o.ctx, 1, attrs)
	o.requestLatency.Record(o.ctx, millis(duration), attrs)
}

func (o *otelInstruments) recordExtractorAttempt(extractor string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrExtractor, extractor))
	o.extractorAttempts.Add(o.ctx, 1, attrs)
	o.extractorLatency.Record(o.ctx, millis(duration), attrs)
	if err != nil {
		o.extractorErrors.Add(o.ctx, 1, attrs)
	}
}

func (o *otelInstruments) recordRateLimit(extractor string, retryAfter time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrExtractor, extractor))
	o.rateLimitHits.Add(o.ctx, 1, attrs)
	if retryAfter > 0 {
		o.retryAfter.Record(o.ctx, millis(retryAfter), attrs)
	}
}

func (o *otelInstruments) recordAllocation(playerCount, teamCount int, balanced bool, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Bool(AttrBalanced, balanced))
	o.allocationRuns.Add(o.ctx, 1, attrs)
	o.allocationLatency.Record(o.ctx, millis(duration), attrs)
	if err != nil {
		o.allocationFailures.Add(o.ctx, 1, attrs)
		return
	}
	o.teamsPerRun.Record(o.ctx, int64(teamCount), attrs)
	o.playersPerRun.Record(o.ctx, int64(playerCount), attrs)
}

// millis keeps sub-millisecond precision; allocations usually finish in microseconds.
func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
