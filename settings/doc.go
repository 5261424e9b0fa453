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

// Package settings loads versioning settings from YAML, TOML or JSON
// documents.
//
// Sources are merged in the order they are given, later sources
// overriding earlier ones. The merged document is checked against an
// embedded JSON Schema, decoded into [Settings] and validated:
//
//	s, err := settings.Load(ctx,
//	    settings.WithFile("versioning.yaml"),
//	    settings.WithFile("versioning.local.yaml"),
//	)
//	if err != nil {
//	    return err
//	}
//	opts, err := s.Options()
//	if err != nil {
//	    return err
//	}
//	v, err := versioning.New(opts...)
//
// A document looks like this:
//
//	default_version: "1.0"
//	selector: current
//	readers:
//	  - type: query
//	  - type: header
//	    names: [x-api-version]
//	sunset:
//	  - name: orders
//	    version: "1.0"
//	    date: 2026-07-01
//	    links:
//	      - url: https://example.com/sunset
//	telemetry:
//	  service_name: orders
//	  metrics: prometheus
//
// Versions must be quoted in YAML and TOML; the schema rejects numbers
// because 1.10 and 1.1 read the same.
package settings
