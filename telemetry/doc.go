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

// Package telemetry records metrics and trace data about API version
// resolution.
//
// A [Recorder] counts requests per API, version and dispatch outcome and
// annotates the active span:
//
//	rec, err := telemetry.NewRecorder(provider.Meter)
//	if err != nil {
//	    return err
//	}
//	obs := telemetry.NewObservation(res, feature)
//	rec.Record(ctx, obs)
//	telemetry.Annotate(ctx, obs)
//
// [NewProviders] builds OpenTelemetry SDK providers for the common exporters
// (Prometheus, OTLP and stdout) for services that do not bring their own.
package telemetry
