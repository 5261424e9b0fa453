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

// Package request resolves the API version a request asks for.
//
// Resolution runs in three steps. Collect gathers the raw values of every
// configured location, dropping case-insensitive duplicates. Parse keeps the
// values that are valid versions. Decide yields no version, exactly one
// version, or an ambiguity when the values disagree:
//
//	?api-version=1.0 and api-version: 1   -> 1.0
//	?api-version=1.0 and api-version: 2.0 -> ambiguous
//
// The outcome travels with the request as a [Feature] stored in its context.
package request

import (
	"net/http"
	"strings"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/reader"
)

// Resolve reads the request with rd and decides which version it asks for.
// A nil reader finds nothing.
func Resolve(r *http.Request, rd reader.Reader) *Feature {
	f := &Feature{}
	if rd == nil || r == nil {
		return f
	}

	f.Candidates = collect(rd.Read(r))
	for _, c := range f.Candidates {
		f.RawValues = append(f.RawValues, c.Value)
	}

	f.decide(parse(f.Candidates))
	return f
}

// collect drops candidates whose value repeats an earlier one, ignoring case.
// Different literals of the same version are kept.
func collect(in []reader.Candidate) []reader.Candidate {
	out := make([]reader.Candidate, 0, len(in))
outer:
	for _, c := range in {
		for _, seen := range out {
			if strings.EqualFold(seen.Value, c.Value) {
				continue outer
			}
		}
		out = append(out, c)
	}
	return out
}

type parsed struct {
	raw     string
	version apiversioning.Version
}

func parse(candidates []reader.Candidate) []parsed {
	out := make([]parsed, 0, len(candidates))
	for _, c := range candidates {
		if v, ok := apiversioning.TryParse(c.Value); ok {
			out = append(out, parsed{raw: c.Value, version: v})
		}
	}
	return out
}

func (f *Feature) decide(values []parsed) {
	if len(values) == 0 {
		return
	}

	first := values[0].version
	for _, p := range values[1:] {
		if !p.version.Equal(first) {
			raw := make([]string, len(values))
			for i, v := range values {
				raw[i] = v.raw
			}
			f.err = &AmbiguousVersionError{Values: raw}
			return
		}
	}

	f.Requested = first
	f.RequestedRaw = values[0].raw
}
