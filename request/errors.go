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

package request

import (
	"errors"
	"strings"
)

// ErrAmbiguousVersion is matched by every [AmbiguousVersionError].
var ErrAmbiguousVersion = errors.New("multiple different API versions requested")

// AmbiguousVersionError reports a request that asked for two or more
// different versions.
type AmbiguousVersionError struct {
	// Values are the conflicting literals in the order they were found.
	Values []string
}

// Error implements error.
func (e *AmbiguousVersionError) Error() string {
	return ErrAmbiguousVersion.Error() + ": " + strings.Join(e.Values, ", ")
}

// Unwrap returns ErrAmbiguousVersion.
func (e *AmbiguousVersionError) Unwrap() error {
	return ErrAmbiguousVersion
}
