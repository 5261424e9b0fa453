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

package versioning

import (
	"errors"
	"fmt"
	"net/http"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/dispatch"
)

// VersionOption declares versions of an API or of one of its endpoints.
type VersionOption func(*versionSpec) error

type versionSpec struct {
	supported            []apiversioning.Version
	deprecated           []apiversioning.Version
	advertised           []apiversioning.Version
	deprecatedAdvertised []apiversioning.Version
	mapTo                []apiversioning.Version
	neutral              bool
}

// model returns the declared versions. Versions named by MapTo count as
// declared, so the endpoint maps to them explicitly.
func (s *versionSpec) model() apiversioning.Model {
	spec := apiversioning.ModelSpec{
		Supported:            s.supported,
		Deprecated:           s.deprecated,
		Advertised:           s.advertised,
		DeprecatedAdvertised: s.deprecatedAdvertised,
		Neutral:              s.neutral,
	}
	if len(s.mapTo) > 0 {
		spec.Declared = append(append(append([]apiversioning.Version{}, s.mapTo...), s.supported...), s.deprecated...)
	}
	return apiversioning.NewModel(spec)
}

// Versions declares supported versions.
func Versions(vs ...apiversioning.Version) VersionOption {
	return func(s *versionSpec) error {
		s.supported = append(s.supported, vs...)
		return nil
	}
}

// Deprecated declares implemented versions that are deprecated.
func Deprecated(vs ...apiversioning.Version) VersionOption {
	return func(s *versionSpec) error {
		s.deprecated = append(s.deprecated, vs...)
		return nil
	}
}

// Advertised declares versions implemented elsewhere that are reported as
// supported.
func Advertised(vs ...apiversioning.Version) VersionOption {
	return func(s *versionSpec) error {
		s.advertised = append(s.advertised, vs...)
		return nil
	}
}

// DeprecatedAdvertised declares versions implemented elsewhere that are
// reported as deprecated.
func DeprecatedAdvertised(vs ...apiversioning.Version) VersionOption {
	return func(s *versionSpec) error {
		s.deprecatedAdvertised = append(s.deprecatedAdvertised, vs...)
		return nil
	}
}

// MapTo maps an endpoint explicitly to versions its API implements,
// without declaring new ones.
func MapTo(vs ...apiversioning.Version) VersionOption {
	return func(s *versionSpec) error {
		s.mapTo = append(s.mapTo, vs...)
		return nil
	}
}

// Neutral makes the API or endpoint accept every version, including none.
func Neutral() VersionOption {
	return func(s *versionSpec) error {
		s.neutral = true
		return nil
	}
}

// FromNamespace declares the versions found in a package path or dotted
// namespace, such as "example.com/api/v2/orders".
func FromNamespace(namespace string) VersionOption {
	return func(s *versionSpec) error {
		vs := apiversioning.ParseNamespace(namespace)
		if len(vs) == 0 {
			return fmt.Errorf("%w: %q", ErrNoNamespaceVersion, namespace)
		}
		s.supported = append(s.supported, vs...)
		return nil
	}
}

type endpoint struct {
	handler http.Handler
	spec    versionSpec
}

// RouteBuilder collects the endpoints of a route. Errors are reported by
// [RouteBuilder.Build].
type RouteBuilder struct {
	v         *Versioning
	name      string
	api       versionSpec
	endpoints []endpoint
	err       error
}

func (b *RouteBuilder) apply(s *versionSpec, opts []VersionOption) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(s); err != nil {
			b.err = errors.Join(b.err, err)
		}
	}
}

// Handle adds an endpoint. Without options it serves every version of
// the API that no other endpoint maps to explicitly.
func (b *RouteBuilder) Handle(h http.Handler, opts ...VersionOption) *RouteBuilder {
	if h == nil {
		b.err = errors.Join(b.err, ErrNilHandler)
		return b
	}
	e := endpoint{handler: h}
	b.apply(&e.spec, opts)
	b.endpoints = append(b.endpoints, e)
	return b
}

// HandleFunc adds an endpoint from a function.
func (b *RouteBuilder) HandleFunc(fn func(http.ResponseWriter, *http.Request), opts ...VersionOption) *RouteBuilder {
	if fn == nil {
		return b.Handle(nil, opts...)
	}
	return b.Handle(http.HandlerFunc(fn), opts...)
}

// Build aggregates the versions of the route and returns its handler.
//
// Errors:
//   - [ErrEmptyRouteName] or [ErrNilHandler] for misuse of the builder
//   - [ErrNoEndpoints] if no endpoint was added
//   - [ErrUnknownMapping] if MapTo names a version the API does not implement
//   - [ErrDuplicateMapping] if two endpoints claim the same version
func (b *RouteBuilder) Build() (http.Handler, error) {
	if b.err != nil {
		return nil, fmt.Errorf("route %q: %w", b.name, b.err)
	}
	if len(b.endpoints) == 0 {
		return nil, fmt.Errorf("route %q: %w", b.name, ErrNoEndpoints)
	}

	models := make([]apiversioning.Model, len(b.endpoints))
	for i := range b.endpoints {
		models[i] = b.endpoints[i].spec.model()
	}

	api := b.api.model()
	if !api.IsNeutral() {
		for _, m := range models {
			if !m.IsNeutral() {
				api = api.Aggregate(m)
			}
		}
	}

	h := &routeHandler{
		v:          b.v,
		name:       b.name,
		candidates: make([]dispatch.Candidate, len(b.endpoints)),
		handlers:   make([]http.Handler, len(b.endpoints)),
	}
	for i, e := range b.endpoints {
		for _, mv := range e.spec.mapTo {
			if !api.Implements(mv) {
				return nil, fmt.Errorf("route %q endpoint %d: %w: %s", b.name, i, ErrUnknownMapping, mv)
			}
		}
		h.candidates[i] = dispatch.Candidate{
			ID:       fmt.Sprintf("%s[%d]", b.name, i),
			Metadata: apiversioning.NewMetadata(api, models[i], b.name),
		}
		h.handlers[i] = e.handler
	}

	if err := dispatch.Conflicts(h.candidates); err != nil {
		return nil, fmt.Errorf("route %q: %w: %w", b.name, ErrDuplicateMapping, err)
	}

	return h, nil
}

// Middleware wraps handlers whose route is already known with fixed
// metadata. Requests for versions md does not map to are rejected. A nil md
// is version-neutral.
func (v *Versioning) Middleware(md *apiversioning.Metadata) func(http.Handler) http.Handler {
	if md == nil {
		md = apiversioning.NeutralMetadata("")
	}
	return func(next http.Handler) http.Handler {
		return &routeHandler{
			v:          v,
			name:       md.Name(),
			candidates: []dispatch.Candidate{{ID: md.Name(), Metadata: md}},
			handlers:   []http.Handler{next},
		}
	}
}
