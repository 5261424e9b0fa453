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

package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"rivaas.dev/apiversioning"
)

// Static errors for dispatch outcomes.
var (
	ErrUnsupportedVersion = errors.New("the requested API version is not supported")
	ErrUnspecifiedVersion = errors.New("an API version is required, but was not specified")
	ErrInvalidVersion     = errors.New("the requested API version is invalid")
	ErrAmbiguousEndpoint  = errors.New("more than one endpoint matches the API version")
)

// UnsupportedVersionError reports a valid version no candidate implements.
type UnsupportedVersionError struct {
	Version apiversioning.Version
}

// Error implements error.
func (e *UnsupportedVersionError) Error() string {
	if e.Version.IsZero() {
		return ErrUnsupportedVersion.Error()
	}
	return fmt.Sprintf("%v: %s", ErrUnsupportedVersion, e.Version)
}

// Unwrap returns ErrUnsupportedVersion.
func (e *UnsupportedVersionError) Unwrap() error { return ErrUnsupportedVersion }

// AmbiguousEndpointError reports endpoints that claim the same version.
// It is a route configuration error, not a client error.
type AmbiguousEndpointError struct {
	Version   apiversioning.Version
	Endpoints []string
}

// Error implements error.
func (e *AmbiguousEndpointError) Error() string {
	return fmt.Sprintf("%v %s: %s", ErrAmbiguousEndpoint, e.Version, strings.Join(e.Endpoints, ", "))
}

// Unwrap returns ErrAmbiguousEndpoint.
func (e *AmbiguousEndpointError) Unwrap() error { return ErrAmbiguousEndpoint }
