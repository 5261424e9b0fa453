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

// Package reader extracts candidate API versions from HTTP requests.
//
// A [Reader] looks at one or more locations of a request (query string,
// header, path segment, media type parameter) and returns every raw value it
// finds. Readers never parse or judge the values; package request does that.
//
//	r := reader.Combine(
//	    reader.Query(),                  // ?api-version=1.0
//	    reader.Header("X-API-Version"),  // X-API-Version: 1.0
//	)
//
// # Introspection
//
// Every reader also describes where it looks. Documentation generators use
// the VersionsBy* helpers and [ParameterName] to render the version
// parameter without re-implementing the reader:
//
//	if reader.VersionsByHeader(r, true) {
//	    name := reader.ParameterName(r, reader.LocationHeader)
//	    ...
//	}
package reader
