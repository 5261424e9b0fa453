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

package policy

import "errors"

// Static errors for policy configuration.
// These errors should be wrapped with fmt.Errorf and %w to provide context.
var (
	ErrInvalidRelationType = errors.New("link relation type does not match the list")
	ErrInvalidLink         = errors.New("invalid link")
	ErrEmptyKey            = errors.New("policy name and API version cannot both be empty")
	ErrNeutralVersion      = errors.New("policies cannot target the version-neutral marker")
	ErrNilPolicy           = errors.New("policy cannot be nil")
)
