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

// Package semconv defines the attribute keys used in logs, metrics and
// traces about API version resolution.
//
// Keys that describe HTTP requests follow the OpenTelemetry semantic
// conventions. Keys that describe versioning live under the api.* namespace:
//
//	logger.Warn("ambiguous API version",
//	    semconv.HTTPMethod, r.Method,
//	    semconv.HTTPTarget, r.URL.Path,
//	    semconv.APIVersions, []string{"1.0", "2.0"},
//	)
//
// Log records are correlated with traces through [TraceID] and [SpanID].
package semconv
