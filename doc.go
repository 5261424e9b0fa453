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

// Package apiversioning provides the value types behind multi-version HTTP APIs.
//
// A service that exposes several API versions at once needs to answer three
// questions for every request: which version did the caller ask for, which
// endpoint implements that version, and what should the caller be told about
// the versions that exist. This package holds the building blocks shared by
// every answer: [Version], its parser, the [Model] that describes which
// versions a routable unit declares, and the [Metadata] that pairs an
// endpoint's model with the aggregated model of its API.
//
// # Versions
//
// A version is a group date, a major/minor number, or both, with an optional
// status:
//
//	apiversioning.MustParse("1")                    // 1
//	apiversioning.MustParse("1.1-beta")             // 1.1-beta
//	apiversioning.MustParse("2018-04-01")           // 2018-04-01
//	apiversioning.MustParse("2018-04-01.1.0-beta")  // 2018-04-01.1.0-beta
//
// Versions are ordered by group date (versions without a date first), then
// major, then minor (a missing minor counts as 0), then status (no status
// first, compared case-insensitively). Use [Version.Equal] or [Compare]
// rather than == to compare versions: "1" and "1.0" are the same version.
//
// # Models
//
// A [Model] is built once per endpoint from its declarations and then folded
// into the model of its API with [Model.Aggregate] or [AggregateAll]:
//
//	users := apiversioning.NewModel(apiversioning.ModelSpec{
//	    Supported:  []apiversioning.Version{apiversioning.New(1, 0), apiversioning.New(2, 0)},
//	    Deprecated: []apiversioning.Version{apiversioning.New(0, 9)},
//	})
//	api := apiversioning.AggregateAll(users, orders)
//
// Aggregated models never report a version as deprecated while another unit
// still supports it.
//
// Request resolution, routing and reporting live in the sub-packages reader,
// request, selector, dispatch, policy and report. Package versioning wires
// them into a net/http handler.
package apiversioning
