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

package settings

import (
	"errors"
	"fmt"
)

// Static errors for settings validation.
var (
	ErrNoSources          = errors.New("no settings sources")
	ErrUnknownFormat      = errors.New("unknown settings format")
	ErrNeutralDefault     = errors.New("default version cannot be version-neutral")
	ErrUnknownReader      = errors.New("unknown reader type")
	ErrInvalidReader      = errors.New("invalid reader settings")
)

// Error is a settings failure together with where it happened.
type Error struct {
	Source    string // such as "source[0]", "json-schema" or "binding"
	Field     string
	Operation string // such as "load", "merge", "validate" or "build"
	Err       error
}

// Error implements error.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("settings error in %s.%s during %s: %v", e.Source, e.Field, e.Operation, e.Err)
	}
	return fmt.Sprintf("settings error in %s during %s: %v", e.Source, e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(source, operation string, err error) *Error {
	return &Error{Source: source, Operation: operation, Err: err}
}
