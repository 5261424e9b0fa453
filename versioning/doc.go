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

// Package versioning serves several versions of an HTTP API side by side.
//
// A [Versioning] engine holds the request-wide settings: where versions are
// read from, which version requests without one get, how lifecycle policies
// are reported and how failures are written. Routes group the endpoints that
// share a path and method and differ only by version:
//
//	v, err := versioning.New(
//	    versioning.WithReader(reader.Combine(reader.Query(), reader.Header())),
//	    versioning.WithDefaultVersion(apiversioning.New(1, 0)),
//	    versioning.WithSunsetPolicies(sunset),
//	)
//	if err != nil {
//	    return err
//	}
//
//	orders, err := v.Route("Orders").
//	    Handle(ordersV1, versioning.Versions(apiversioning.New(1, 0))).
//	    Handle(ordersV2, versioning.Versions(apiversioning.New(2, 0))).
//	    Build()
//	if err != nil {
//	    return err
//	}
//	mux.Handle("GET /orders", orders)
//
// Requests for a version no endpoint implements receive an RFC 9457 problem
// document. Successful responses carry the api-supported-versions and
// api-deprecated-versions headers and, when a policy applies, the Sunset,
// Deprecation and Link headers.
//
// Handlers find the version they serve with [RequestedVersion].
package versioning
