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

package versioning

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/dispatch"
	"rivaas.dev/apiversioning/reader"
	"rivaas.dev/apiversioning/report"
	"rivaas.dev/apiversioning/request"
	"rivaas.dev/apiversioning/selector"
	"rivaas.dev/apiversioning/telemetry/semconv"
)

// Versioning dispatches requests among versions of the same endpoint.
// It is safe for concurrent use once created.
type Versioning struct {
	cfg    *Config
	policy dispatch.Policy

	// mediaParam is the media type parameter that carries versions, if any.
	mediaParam string
	// vary lists the request headers versions are read from.
	vary []string
}

// New creates a versioning engine with the given options.
//
// Example:
//
//	v, err := versioning.New(
//	    versioning.WithReader(reader.Header()),
//	    versioning.WithDefaultVersion(apiversioning.New(1, 0)),
//	)
func New(opts ...Option) (*Versioning, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Selector == nil {
		cfg.Selector = selector.Default(cfg.DefaultVersion)
	}
	switch {
	case !cfg.ReportVersions:
		cfg.Reporter = nil
	case cfg.Reporter == nil:
		rep, err := report.New(
			report.WithSunsetPolicies(cfg.SunsetPolicies),
			report.WithDeprecationPolicies(cfg.DeprecationPolicies),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create reporter: %w", err)
		}
		cfg.Reporter = rep
	}

	v := &Versioning{
		cfg:        cfg,
		policy:     dispatch.Policy{Selector: cfg.Selector, AssumeDefault: cfg.AssumeDefault},
		mediaParam: reader.ParameterName(cfg.Reader, reader.LocationMediaType),
		vary:       reader.ParameterNames(cfg.Reader, reader.LocationHeader),
	}
	if v.mediaParam != "" {
		v.vary = append(v.vary, "Accept")
	}

	return v, nil
}

// Config returns the configuration of the engine.
func (v *Versioning) Config() *Config {
	return v.cfg
}

// Route starts a route for the named API. The options declare the versions
// of the API as a whole; every endpoint added with [RouteBuilder.Handle]
// inherits them unless it declares its own.
func (v *Versioning) Route(name string, opts ...VersionOption) *RouteBuilder {
	b := &RouteBuilder{v: v, name: name}
	if name == "" {
		b.err = ErrEmptyRouteName
	}
	b.apply(&b.api, opts)
	return b
}

// logger returns the logger with the trace of ctx attached.
func (v *Versioning) logger(ctx context.Context) *slog.Logger {
	l := v.cfg.Logger
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		l = l.With(
			semconv.TraceID, sc.TraceID().String(),
			semconv.SpanID, sc.SpanID().String(),
		)
	}
	return l
}

// RequestedVersion returns the version the request in ctx is served with.
// That is the default version when the client sent none.
func RequestedVersion(ctx context.Context) (apiversioning.Version, bool) {
	f, ok := request.FromContext(ctx)
	if !ok {
		return apiversioning.Version{}, false
	}
	if !f.Version.IsZero() {
		return f.Version, true
	}
	return f.Requested, f.HasRequested()
}

// MetadataFrom returns the version metadata of the endpoint serving the
// request in ctx.
func MetadataFrom(ctx context.Context) (*apiversioning.Metadata, bool) {
	f, ok := request.FromContext(ctx)
	if !ok || f.Metadata == nil {
		return nil, false
	}
	return f.Metadata, true
}
