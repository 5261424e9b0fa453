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
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/apiversioning/dispatch"
	"rivaas.dev/apiversioning/telemetry/semconv"
)

// Annotate adds the observation to the span in ctx, if it is recording.
// Ambiguous requests and default selection are recorded as span events;
// an ambiguous endpoint marks the span as failed.
func Annotate(ctx context.Context, obs Observation) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(semconv.APIVersionOutcome, obs.Outcome.String()),
	}
	if obs.API != "" {
		attrs = append(attrs, attribute.String(semconv.APIName, obs.API))
	}
	if obs.Endpoint != "" {
		attrs = append(attrs, attribute.String(semconv.APIEndpoint, obs.Endpoint))
	}
	if obs.Requested != "" {
		attrs = append(attrs, attribute.String(semconv.APIVersionRequested, obs.Requested))
	}
	if !obs.Version.IsZero() {
		attrs = append(attrs,
			attribute.String(semconv.APIVersionResolved, obs.Version.String()),
			attribute.Bool(semconv.APIVersionDeprecated, obs.Deprecated),
		)
	}
	if obs.Outcome == dispatch.Matched {
		attrs = append(attrs, attribute.String(semconv.APIVersionMapping, obs.Mapping.String()))
	}
	if !obs.Sunset.IsZero() {
		attrs = append(attrs, attribute.String(semconv.APIVersionSunset, obs.Sunset.UTC().Format(time.RFC3339)))
	}
	span.SetAttributes(attrs...)

	if len(obs.Ambiguous) > 0 {
		span.AddEvent(semconv.EventAmbiguousVersion, trace.WithAttributes(
			attribute.StringSlice(semconv.APIVersions, obs.Ambiguous),
		))
	}
	if obs.Defaulted {
		span.AddEvent(semconv.EventDefaultVersion, trace.WithAttributes(
			attribute.String(semconv.APIVersionResolved, obs.Version.String()),
		))
	}
	if obs.Outcome == dispatch.AmbiguousEndpoint {
		span.SetStatus(codes.Error, "ambiguous endpoint")
	}
}
