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
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/dispatch"
	"rivaas.dev/apiversioning/request"
	"rivaas.dev/apiversioning/telemetry/semconv"
)

// InstrumentationName names the meter and tracer of this module.
const InstrumentationName = "rivaas.dev/apiversioning"

// Metric names.
const (
	MetricRequests           = "api_version.requests"
	MetricRejections         = "api_version.rejections"
	MetricDeprecatedRequests = "api_version.deprecated_requests"
)

// Observation is what telemetry knows about the versioning of one request.
type Observation struct {
	// API is the name of the API, empty when unknown.
	API string
	// Endpoint identifies the endpoint that served the request.
	Endpoint string
	Outcome  dispatch.Outcome
	// Requested is the raw version sent by the client.
	Requested string
	// Version is the version the request is served with.
	Version apiversioning.Version
	Mapping apiversioning.Mapping
	// Defaulted is true when the client sent no version and the default
	// was selected.
	Defaulted  bool
	Deprecated bool
	// Sunset is the sunset date of Version, or zero.
	Sunset time.Time
	// Ambiguous holds the conflicting values of an ambiguous request.
	Ambiguous []string
}

// NewObservation describes a dispatch. The API and endpoint names and the
// sunset date are left for the caller, which knows the chosen endpoint.
func NewObservation(res dispatch.Result, f *request.Feature) Observation {
	obs := Observation{
		Outcome: res.Outcome,
		Version: res.Version,
		Mapping: res.Mapping,
	}
	if f != nil {
		obs.Requested = f.RawValue()
		obs.Defaulted = res.Outcome == dispatch.Matched && f.Requested.IsZero() && !res.Version.IsZero()
		if res.Outcome == dispatch.AmbiguousVersion {
			obs.Ambiguous = f.RawValues
		}
	}
	if res.Outcome == dispatch.Matched && !res.Version.IsZero() {
		obs.Deprecated = res.Model.Deprecates(res.Version)
	}
	return obs
}

// Recorder counts versioned requests. A nil *Recorder records nothing.
type Recorder struct {
	requests   metric.Int64Counter
	rejections metric.Int64Counter
	deprecated metric.Int64Counter
}

// NewRecorder creates the counters on a meter of mp. A nil mp uses the
// global meter provider.
func NewRecorder(mp metric.MeterProvider) (*Recorder, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(InstrumentationName)

	var (
		r   Recorder
		err error
	)
	r.requests, err = meter.Int64Counter(MetricRequests,
		metric.WithDescription("Requests by API version and dispatch outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricRequests, err)
	}
	r.rejections, err = meter.Int64Counter(MetricRejections,
		metric.WithDescription("Requests rejected because of their API version"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricRejections, err)
	}
	r.deprecated, err = meter.Int64Counter(MetricDeprecatedRequests,
		metric.WithDescription("Requests served with a deprecated API version"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricDeprecatedRequests, err)
	}

	return &r, nil
}

// Record counts one request.
func (r *Recorder) Record(ctx context.Context, obs Observation) {
	if r == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(semconv.APIName, obs.API),
		attribute.String(semconv.APIVersionResolved, versionText(obs.Version)),
		attribute.String(semconv.APIVersionOutcome, obs.Outcome.String()),
	)
	r.requests.Add(ctx, 1, attrs)

	switch {
	case obs.Outcome != dispatch.Matched:
		r.rejections.Add(ctx, 1, attrs)
	case obs.Deprecated:
		r.deprecated.Add(ctx, 1, attrs)
	}
}

// versionText keeps neutral and unversioned requests apart in attributes.
func versionText(v apiversioning.Version) string {
	if v.IsZero() {
		return ""
	}
	return v.String()
}
