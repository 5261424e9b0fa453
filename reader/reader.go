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

import (
	"net/http"
	"strings"
)

// DefaultParameterName is the query parameter and header read when no name is given.
const DefaultParameterName = "api-version"

// Candidate is a raw version value found in a request.
type Candidate struct {
	// Value is the literal text, trimmed of surrounding whitespace.
	Value string
	// Location is where the value was found.
	Location Location
	// Name is the query parameter, header, route value or media type
	// parameter that carried it.
	Name string
}

// Reader extracts candidate versions from a request.
// Implementations must be safe for concurrent use.
type Reader interface {
	ParameterSource
	// Read returns the raw values found in r, in the order they were found.
	Read(r *http.Request) []Candidate
}

// ═══════════════════════════════════════════════════════════════════════════════
// Combined Reader
// ═══════════════════════════════════════════════════════════════════════════════

type combined []Reader

// Combine returns a reader that reads from every reader in order and merges
// their results. Nil readers are skipped and nested combinations are flattened.
func Combine(readers ...Reader) Reader {
	out := make(combined, 0, len(readers))
	for _, r := range readers {
		switch r := r.(type) {
		case nil:
		case combined:
			out = append(out, r...)
		default:
			out = append(out, r)
		}
	}
	return out
}

func (c combined) Read(r *http.Request) []Candidate {
	var out []Candidate
	for _, reader := range c {
		out = append(out, reader.Read(r)...)
	}
	return out
}

func (c combined) AddParameters(ctx DescriptionContext) {
	for _, reader := range c {
		reader.AddParameters(ctx)
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// Custom Reader
// ═══════════════════════════════════════════════════════════════════════════════

type customReader struct {
	name     string
	location Location
	fn       func(*http.Request) []string
}

// Custom returns a reader backed by fn. It describes itself as reading the
// parameter name at location.
func Custom(name string, location Location, fn func(*http.Request) []string) Reader {
	return &customReader{name: name, location: location, fn: fn}
}

func (c *customReader) Read(r *http.Request) []Candidate {
	if c.fn == nil || r == nil {
		return nil
	}
	var out []Candidate
	for _, v := range c.fn(r) {
		out = appendCandidate(out, v, c.location, c.name)
	}
	return out
}

func (c *customReader) AddParameters(ctx DescriptionContext) {
	ctx.AddParameter(c.name, c.location)
}

func appendCandidate(out []Candidate, value string, location Location, name string) []Candidate {
	value = strings.TrimSpace(value)
	if value == "" {
		return out
	}
	return append(out, Candidate{Value: value, Location: location, Name: name})
}

// namesOrDefault drops empty names and falls back to DefaultParameterName.
func namesOrDefault(in []string) []string {
	out := make([]string, 0, len(in))
	for _, n := range in {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		out = append(out, DefaultParameterName)
	}
	return out
}
