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
	"context"
	"fmt"
	"net/http"
	"strings"
)

// RouteValueFunc looks up a matched route parameter by name.
// Router integrations install one with [WithRouteValues].
type RouteValueFunc func(r *http.Request, name string) (string, bool)

type routeValuesKey struct{}

// WithRouteValues returns a context whose requests resolve route parameters
// with fn.
func WithRouteValues(ctx context.Context, fn RouteValueFunc) context.Context {
	return context.WithValue(ctx, routeValuesKey{}, fn)
}

// RouteValue returns the route parameter name of r. It asks the function
// installed with [WithRouteValues] first and falls back to the pattern
// wildcards of [http.ServeMux].
func RouteValue(r *http.Request, name string) (string, bool) {
	if fn, ok := r.Context().Value(routeValuesKey{}).(RouteValueFunc); ok && fn != nil {
		if v, ok := fn(r, name); ok {
			return v, true
		}
	}
	if v := r.PathValue(name); v != "" {
		return v, true
	}
	return "", false
}

// ═══════════════════════════════════════════════════════════════════════════════
// URL Segment Reader
// ═══════════════════════════════════════════════════════════════════════════════

type segmentReader struct {
	name string
}

// URLSegment returns a reader for the route parameter name, as matched by
// the router. A leading "v" is dropped when a digit follows it, so
// "/{version}/users" matches "/v1/users" as version "1".
func URLSegment(name string) Reader {
	if name == "" {
		name = "version"
	}
	return &segmentReader{name: name}
}

func (s *segmentReader) Read(r *http.Request) []Candidate {
	if r == nil {
		return nil
	}
	v, ok := RouteValue(r, s.name)
	if !ok {
		return nil
	}
	return appendCandidate(nil, trimVersionPrefix(v), LocationPath, s.name)
}

func (s *segmentReader) AddParameters(ctx DescriptionContext) {
	ctx.AddParameter(s.name, LocationPath)
}

// ═══════════════════════════════════════════════════════════════════════════════
// Path Pattern Reader
// ═══════════════════════════════════════════════════════════════════════════════

type patternReader struct {
	prefix string
	name   string
}

// PathPattern returns a reader that finds the version in the URL path
// without help from a router. The pattern holds one placeholder:
//
//	reader.PathPattern("/api/v{version}/")  // "/api/v2/users" -> "2"
//
// Only the text between the placeholder and the next "/" is read.
func PathPattern(pattern string) (Reader, error) {
	if pattern == "" {
		return nil, ErrEmptyPathPattern
	}

	open := strings.IndexByte(pattern, '{')
	end := strings.IndexByte(pattern, '}')
	if open < 0 || end < open+2 {
		return nil, fmt.Errorf("%w: %q", ErrMissingPlaceholder, pattern)
	}
	if open == 0 {
		return nil, fmt.Errorf("%w: %q", ErrPlaceholderAtStart, pattern)
	}

	return &patternReader{
		prefix: pattern[:open],
		name:   pattern[open+1 : end],
	}, nil
}

func (p *patternReader) Read(r *http.Request) []Candidate {
	if r == nil || r.URL == nil {
		return nil
	}

	path := r.URL.Path
	if !strings.HasPrefix(path, p.prefix) {
		return nil
	}

	// version segment runs to the next "/" or the end
	segment := path[len(p.prefix):]
	if i := strings.IndexByte(segment, '/'); i >= 0 {
		segment = segment[:i]
	}
	return appendCandidate(nil, segment, LocationPath, p.name)
}

func (p *patternReader) AddParameters(ctx DescriptionContext) {
	ctx.AddParameter(p.name, LocationPath)
}

func trimVersionPrefix(v string) string {
	if len(v) > 1 && (v[0] == 'v' || v[0] == 'V') && v[1] >= '0' && v[1] <= '9' {
		return v[1:]
	}
	return v
}
