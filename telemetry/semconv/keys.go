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

package semconv

// API versioning attributes.
const (
	// APIName is the name of the API the endpoint belongs to, as used for
	// policy lookup.
	APIName = "api.name"

	// APIEndpoint identifies the endpoint chosen for the request.
	APIEndpoint = "api.endpoint"

	// APIVersionRequested is the version the client asked for, in its raw form.
	APIVersionRequested = "api.version.requested"

	// APIVersionResolved is the version the request is served with. It
	// differs from the requested version when a default was selected.
	APIVersionResolved = "api.version.resolved"

	// APIVersionOutcome is the dispatch outcome ("matched", "unsupported", ...).
	APIVersionOutcome = "api.version.outcome"

	// APIVersionMapping tells whether the endpoint maps to the version
	// explicitly or implicitly.
	APIVersionMapping = "api.version.mapping"

	// APIVersionDeprecated is true when the resolved version is deprecated.
	APIVersionDeprecated = "api.version.deprecated"

	// APIVersionSunset is the sunset date of the resolved version (RFC 3339).
	APIVersionSunset = "api.version.sunset"

	// APIVersions lists the conflicting raw values of an ambiguous request.
	APIVersions = "api_versions"
)

// Span event names.
const (
	// EventAmbiguousVersion is recorded when a request carries several
	// different versions.
	EventAmbiguousVersion = "api_version.ambiguous"

	// EventDefaultVersion is recorded when a request without a version is
	// served with the default.
	EventDefaultVersion = "api_version.default_selected"
)

// HTTP attributes.
const (
	// HTTPMethod stores the HTTP request method.
	HTTPMethod = "http.method"

	// HTTPRoute stores the route pattern matched by the router, not the
	// actual path (e.g., "/orders/{id}").
	HTTPRoute = "http.route"

	// HTTPTarget stores the actual path requested.
	HTTPTarget = "http.target"

	// HTTPStatusCode stores the response status code.
	HTTPStatusCode = "http.status_code"
)

// Trace correlation.
const (
	// TraceID stores the identifier of the distributed trace.
	TraceID = "trace_id"

	// SpanID stores the identifier of the span within the trace.
	SpanID = "span_id"
)

// Problem responses.
const (
	// ErrorID correlates a problem response with the log record about it.
	ErrorID = "error_id"

	// ErrorCode is the machine-readable problem code.
	ErrorCode = "error.code"
)
