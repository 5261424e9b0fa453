// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	otelsemconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Exporter names an OpenTelemetry exporter.
type Exporter string

// Available exporters. Prometheus exports metrics only; OTLPGRPC exports
// traces only.
const (
	ExporterNone       Exporter = "none"
	ExporterPrometheus Exporter = "prometheus"
	ExporterOTLP       Exporter = "otlp"
	ExporterOTLPGRPC   Exporter = "otlp-grpc"
	ExporterStdout     Exporter = "stdout"
)

// DefaultExportInterval is how often push exporters send metrics.
const DefaultExportInterval = 30 * time.Second

// ProviderConfig selects the exporters of [NewProviders].
type ProviderConfig struct {
	ServiceName    string
	ServiceVersion string

	// Metrics is the metric exporter. Empty means none.
	Metrics Exporter
	// Traces is the span exporter. Empty means none.
	Traces Exporter

	// Endpoint of the OTLP collector, with or without scheme. An http://
	// endpoint is used without TLS.
	Endpoint string
	// Insecure disables TLS for the OTLP gRPC exporter.
	Insecure bool
	// ExportInterval applies to push metric exporters.
	ExportInterval time.Duration
	// Writer receives stdout exports. It defaults to os.Stdout.
	Writer io.Writer
}

// Providers are the SDK providers built by [NewProviders]. Unconfigured
// signals are nil.
type Providers struct {
	Meter  *metric.MeterProvider
	Tracer *sdktrace.TracerProvider
	// Handler serves the Prometheus registry when metrics are exported to
	// Prometheus.
	Handler http.Handler
}

// NewProviders builds the providers cfg asks for. The context is used by
// the OTLP exporters.
func NewProviders(ctx context.Context, cfg ProviderConfig) (*Providers, error) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.ExportInterval <= 0 {
		cfg.ExportInterval = DefaultExportInterval
	}
	res := newResource(cfg.ServiceName, cfg.ServiceVersion)

	p := &Providers{}
	if err := p.initMetrics(ctx, cfg, res); err != nil {
		return nil, err
	}
	if err := p.initTraces(ctx, cfg, res); err != nil {
		// the meter provider holds no exporter connection yet
		_ = p.Shutdown(ctx)
		return nil, err
	}

	return p, nil
}

// NewPrometheusProvider creates a meter provider that exports to a private
// Prometheus registry and the handler serving it.
func NewPrometheusProvider() (*metric.MeterProvider, http.Handler, error) {
	registry := promclient.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	mp := metric.NewMeterProvider(metric.WithReader(exporter))
	return mp, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), nil
}

func (p *Providers) initMetrics(ctx context.Context, cfg ProviderConfig, res *resource.Resource) error {
	switch cfg.Metrics {
	case "", ExporterNone:
		return nil
	case ExporterPrometheus:
		mp, handler, err := NewPrometheusProvider()
		if err != nil {
			return err
		}
		p.Meter, p.Handler = mp, handler
		return nil
	case ExporterOTLP:
		var opts []otlpmetrichttp.Option
		if cfg.Endpoint != "" {
			endpoint, insecure := splitEndpoint(cfg.Endpoint)
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
			if insecure {
				opts = append(opts, otlpmetrichttp.WithInsecure())
			}
		}
		exporter, err := otlpmetrichttp.New(ctx, opts...)
		if err != nil {
			return fmt.Errorf("failed to create OTLP metric exporter: %w", err)
		}
		p.Meter = periodic(exporter, cfg.ExportInterval, res)
		return nil
	case ExporterStdout:
		exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(cfg.Writer))
		if err != nil {
			return fmt.Errorf("failed to create stdout metric exporter: %w", err)
		}
		p.Meter = periodic(exporter, cfg.ExportInterval, res)
		return nil
	default:
		return fmt.Errorf("%w for metrics: %q", ErrUnsupportedExporter, cfg.Metrics)
	}
}

func (p *Providers) initTraces(ctx context.Context, cfg ProviderConfig, res *resource.Resource) error {
	var (
		exporter sdktrace.SpanExporter
		err      error
	)
	switch cfg.Traces {
	case "", ExporterNone:
		return nil
	case ExporterStdout:
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(cfg.Writer))
	case ExporterOTLP:
		var opts []otlptracehttp.Option
		if cfg.Endpoint != "" {
			endpoint, insecure := splitEndpoint(cfg.Endpoint)
			opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
			if insecure {
				opts = append(opts, otlptracehttp.WithInsecure())
			}
		}
		exporter, err = otlptracehttp.New(ctx, opts...)
	case ExporterOTLPGRPC:
		var opts []otlptracegrpc.Option
		if cfg.Endpoint != "" {
			endpoint, insecure := splitEndpoint(cfg.Endpoint)
			opts = append(opts, otlptracegrpc.WithEndpoint(endpoint))
			if insecure || cfg.Insecure {
				opts = append(opts, otlptracegrpc.WithInsecure())
			}
		}
		exporter, err = otlptracegrpc.New(ctx, opts...)
	default:
		return fmt.Errorf("%w for traces: %q", ErrUnsupportedExporter, cfg.Traces)
	}
	if err != nil {
		return fmt.Errorf("failed to create %s span exporter: %w", cfg.Traces, err)
	}

	p.Tracer = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return nil
}

// Shutdown flushes and stops the providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Tracer != nil {
		if err := p.Tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider: %w", err))
		}
	}
	if p.Meter != nil {
		if err := p.Meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider: %w", err))
		}
	}
	return errors.Join(errs...)
}

func periodic(exporter metric.Exporter, interval time.Duration, res *resource.Resource) *metric.MeterProvider {
	return metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(interval))),
		metric.WithResource(res),
	)
}

// splitEndpoint strips the scheme and path from an OTLP endpoint and
// reports whether it asked for plain HTTP.
func splitEndpoint(endpoint string) (string, bool) {
	insecure := false
	if trimmed, ok := strings.CutPrefix(endpoint, "http://"); ok {
		endpoint = trimmed
		insecure = true
	} else if trimmed, ok := strings.CutPrefix(endpoint, "https://"); ok {
		endpoint = trimmed
	}
	if idx := strings.Index(endpoint, "/"); idx != -1 {
		endpoint = endpoint[:idx]
	}
	return endpoint, insecure
}

func newResource(serviceName, serviceVersion string) *resource.Resource {
	return resource.NewWithAttributes(
		otelsemconv.SchemaURL,
		otelsemconv.ServiceName(serviceName),
		otelsemconv.ServiceVersion(serviceVersion),
	)
}
