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

package reader

import "errors"

// Static errors for reader configuration.
var (
	ErrEmptyPathPattern   = errors.New("path pattern cannot be empty")
	ErrMissingPlaceholder = errors.New("pattern must contain a {name} placeholder")
	ErrPlaceholderAtStart = errors.New("path pattern must have a prefix before the placeholder")
	ErrEmptyParameterName = errors.New("parameter name cannot be empty")
	ErrEmptyMediaType     = errors.New("media type cannot be empty")
)
