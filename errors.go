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

package apiversioning

import (
	"errors"
	"fmt"
)

// Static errors for version parsing and construction.
// These errors should be wrapped with fmt.Errorf and %w when context is needed.
var (
	// Parsing errors
	ErrInvalidVersion      = errors.New("invalid API version")
	ErrInvalidGroupVersion = errors.New("invalid API group version")
	ErrInvalidStatus       = errors.New("invalid API version status")

	// Construction errors
	ErrMissingComponents = errors.New("API version requires a group version or a major version")
	ErrNegativeComponent = errors.New("API version components cannot be negative")
	ErrMinorWithoutMajor = errors.New("minor version requires a major version")

	// Metadata errors
	ErrNeutralDefault = errors.New("the default API version cannot be version-neutral")
)

// ParseError reports a version literal that does not match the version grammar.
type ParseError struct {
	Text string
	Err  error
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Text)
}

// Unwrap returns the underlying sentinel error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes every ParseError match ErrInvalidVersion in addition to its own cause.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidVersion
}
