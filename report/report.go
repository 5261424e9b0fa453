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

// Package report writes API version information into HTTP responses and
// reads it back on the client side.
//
// A server reports every version an API supports and every version it has
// deprecated, plus the lifecycle policies of the version being served:
//
//	api-supported-versions: 1.0, 2.0
//	api-deprecated-versions: 0.9
//	Sunset: Wed, 01 Jul 2026 00:00:00 GMT
//	Deprecation: @1780185600
//	Link: <https://example.com/sunset>; rel="sunset"
//
// A Deprecation header is only written when the deprecation takes effect no
// later than the sunset; a version that is gone before it would become
// deprecated is reported as sunset only.
package report

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/policy"
)

// Header names.
const (
	HeaderSupportedVersions  = "api-supported-versions"
	HeaderDeprecatedVersions = "api-deprecated-versions"
	HeaderSunset             = "Sunset"
	HeaderDeprecation        = "Deprecation"
	HeaderLink               = "Link"
)

// ErrEmptyHeaderName is returned for an empty version header name.
var ErrEmptyHeaderName = errors.New("header name cannot be empty")

// Reporter writes version information into response headers.
type Reporter interface {
	// Report writes the headers describing md. version is the version the
	// request is served with and selects the lifecycle policies.
	Report(h http.Header, md *apiversioning.Metadata, version apiversioning.Version)
	// Mapping selects which versions of the metadata are reported.
	Mapping() apiversioning.Mapping
}

// Option configures a [Default] reporter.
type Option func(*Default) error

// WithSunsetPolicies sets the sunset policies to report.
func WithSunsetPolicies(m *policy.Manager[*policy.SunsetPolicy]) Option {
	return func(d *Default) error {
		d.sunset = m
		return nil
	}
}

// WithDeprecationPolicies sets the deprecation policies to report.
func WithDeprecationPolicies(m *policy.Manager[*policy.DeprecationPolicy]) Option {
	return func(d *Default) error {
		d.deprecation = m
		return nil
	}
}

// WithHeaderNames renames the supported and deprecated version headers.
func WithHeaderNames(supported, deprecated string) Option {
	return func(d *Default) error {
		if supported == "" || deprecated == "" {
			return fmt.Errorf("%w: supported=%q deprecated=%q", ErrEmptyHeaderName, supported, deprecated)
		}
		d.supportedName, d.deprecatedName = supported, deprecated
		return nil
	}
}

// WithMapping selects the versions that are reported. The default reports
// the versions of the whole API.
func WithMapping(m apiversioning.Mapping) Option {
	return func(d *Default) error {
		d.mapping = m
		return nil
	}
}

// Default is the standard [Reporter].
type Default struct {
	sunset         *policy.Manager[*policy.SunsetPolicy]
	deprecation    *policy.Manager[*policy.DeprecationPolicy]
	supportedName  string
	deprecatedName string
	mapping        apiversioning.Mapping
}

// New creates a reporter. Without policy managers only the version lists
// are reported.
func New(opts ...Option) (*Default, error) {
	d := &Default{
		supportedName:  HeaderSupportedVersions,
		deprecatedName: HeaderDeprecatedVersions,
		mapping:        apiversioning.MappingExplicit | apiversioning.MappingImplicit,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	return d, nil
}

// Mapping implements [Reporter].
func (d *Default) Mapping() apiversioning.Mapping { return d.mapping }

// Report implements [Reporter]. Version-neutral endpoints report nothing.
func (d *Default) Report(h http.Header, md *apiversioning.Metadata, version apiversioning.Version) {
	if md == nil || md.IsNeutral() {
		return
	}

	model := md.Map(d.mapping)
	if model.IsNeutral() {
		return
	}
	setVersions(h, d.supportedName, model.Supported())
	setVersions(h, d.deprecatedName, model.Deprecated())

	var sunsetDate time.Time
	if p, ok := d.sunset.TryResolvePolicy(md.Name(), version); ok {
		sunsetDate, _ = p.Date()
		WriteSunsetPolicy(h, p)
	}

	if p, ok := d.deprecation.TryResolvePolicy(md.Name(), version); ok && p.IsEffective(sunsetDate) {
		WriteDeprecationPolicy(h, p)
	}
}

func setVersions(h http.Header, name string, versions []apiversioning.Version) {
	if len(versions) == 0 {
		return
	}
	h.Set(name, FormatVersions(versions))
}

// FormatVersions joins versions the way the version headers carry them.
func FormatVersions(versions []apiversioning.Version) string {
	return strings.Join(lo.Map(versions, func(v apiversioning.Version, _ int) string {
		return v.String()
	}), ", ")
}

// WriteSunsetPolicy writes the Sunset header and the sunset links. It does
// nothing when a Sunset header is already present.
func WriteSunsetPolicy(h http.Header, p *policy.SunsetPolicy) {
	if p == nil || has(h, HeaderSunset) {
		return
	}
	if date, ok := p.Date(); ok {
		h.Set(HeaderSunset, date.UTC().Format(http.TimeFormat))
	}
	addLinks(h, p.Links())
}

// WriteDeprecationPolicy writes the Deprecation header and the deprecation
// links. It does nothing when a Deprecation header is already present.
func WriteDeprecationPolicy(h http.Header, p *policy.DeprecationPolicy) {
	if p == nil || has(h, HeaderDeprecation) {
		return
	}
	if date, ok := p.Date(); ok {
		h.Set(HeaderDeprecation, FormatDeprecationDate(date))
	}
	addLinks(h, p.Links())
}

// FormatDeprecationDate renders a date as a Deprecation header value, an
// '@' followed by Unix seconds.
func FormatDeprecationDate(t time.Time) string {
	return "@" + strconv.FormatInt(t.Unix(), 10)
}

func addLinks(h http.Header, links []policy.Link) {
	for _, l := range links {
		h.Add(HeaderLink, l.String())
	}
}

func has(h http.Header, name string) bool {
	_, ok := h[http.CanonicalHeaderKey(name)]
	return ok
}
