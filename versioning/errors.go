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

import "errors"

// Static errors for configuration and route building.
// These errors should be wrapped with fmt.Errorf and %w to provide context.
var (
	// ErrNeutralDefaultVersion indicates a default version equal to the neutral marker.
	ErrNeutralDefaultVersion = errors.New("default API version cannot be neutral")

	// ErrNilReader indicates a missing version reader.
	ErrNilReader = errors.New("version reader cannot be nil")

	// ErrNilLogger indicates a missing logger.
	ErrNilLogger = errors.New("logger cannot be nil")

	// ErrNilFormatter indicates a missing problem formatter.
	ErrNilFormatter = errors.New("problem formatter cannot be nil")

	// ErrNilClock indicates a missing clock function.
	ErrNilClock = errors.New("clock cannot be nil")

	// ErrNilHandler indicates an endpoint without a handler.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrEmptyRouteName indicates a route without an API name.
	ErrEmptyRouteName = errors.New("route name cannot be empty")

	// ErrNoEndpoints indicates a route without endpoints.
	ErrNoEndpoints = errors.New("route has no endpoints")

	// ErrUnknownMapping indicates an endpoint mapped to a version its API
	// does not implement.
	ErrUnknownMapping = errors.New("endpoint maps to a version its API does not implement")

	// ErrDuplicateMapping indicates two endpoints of a route mapped to the
	// same version at the same level.
	ErrDuplicateMapping = errors.New("endpoints map to the same API version")

	// ErrNoNamespaceVersion indicates a namespace without a version segment.
	ErrNoNamespaceVersion = errors.New("namespace has no API version")

	// ErrVersionSunset indicates a request for a version past its sunset date.
	ErrVersionSunset = errors.New("API version is past its sunset date")
)
