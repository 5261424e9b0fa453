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
	"maps"
	"net/http"
	"slices"
	"strings"
)

type queryReader struct {
	names []string
}

// Query returns a reader for query string parameters.
// Parameter names match case-insensitively; every occurrence is returned.
// With no names it reads "api-version".
func Query(names ...string) Reader {
	return &queryReader{names: namesOrDefault(names)}
}

func (q *queryReader) Read(r *http.Request) []Candidate {
	if r == nil || r.URL == nil || r.URL.RawQuery == "" {
		return nil
	}

	values := r.URL.Query()
	keys := slices.Sorted(maps.Keys(values))

	var out []Candidate
	for _, name := range q.names {
		for _, key := range keys {
			if !strings.EqualFold(key, name) {
				continue
			}
			for _, v := range values[key] {
				out = appendCandidate(out, v, LocationQuery, name)
			}
		}
	}
	return out
}

func (q *queryReader) AddParameters(ctx DescriptionContext) {
	for _, name := range q.names {
		ctx.AddParameter(name, LocationQuery)
	}
}

type headerReader struct {
	names []string
}

// Header returns a reader for request headers. Comma-separated header values
// are split. With no names it reads "api-version".
func Header(names ...string) Reader {
	return &headerReader{names: namesOrDefault(names)}
}

func (h *headerReader) Read(r *http.Request) []Candidate {
	if r == nil {
		return nil
	}

	var out []Candidate
	for _, name := range h.names {
		for _, v := range r.Header.Values(name) {
			for part := range strings.SplitSeq(v, ",") {
				out = appendCandidate(out, part, LocationHeader, name)
			}
		}
	}
	return out
}

func (h *headerReader) AddParameters(ctx DescriptionContext) {
	for _, name := range h.names {
		ctx.AddParameter(name, LocationHeader)
	}
}
