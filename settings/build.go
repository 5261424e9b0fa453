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
	"context"
	"fmt"
	"maps"
	"slices"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/policy"
	"rivaas.dev/apiversioning/reader"
	"rivaas.dev/apiversioning/selector"
	"rivaas.dev/apiversioning/telemetry"
	"rivaas.dev/apiversioning/versioning"
)

// Options translates s into versioning options.
func (s *Settings) Options() ([]versioning.Option, error) {
	opts := []versioning.Option{
		versioning.WithDefaultVersion(s.DefaultVersion),
	}

	if s.Selector != "" && s.Selector != SelectorDefault {
		opts = append(opts, versioning.WithSelector(s.VersionSelector()))
	}
	if s.AssumeDefault != nil {
		opts = append(opts, versioning.WithAssumeDefaultVersionWhenUnspecified(*s.AssumeDefault))
	}
	if s.ReportVersions != nil {
		opts = append(opts, versioning.WithReportVersions(*s.ReportVersions))
	}
	if s.EnforceSunset {
		opts = append(opts, versioning.WithSunsetEnforcement())
	}
	if s.Warning299 {
		opts = append(opts, versioning.WithWarning299())
	}

	rd, err := s.Reader()
	if err != nil {
		return nil, err
	}
	if rd != nil {
		opts = append(opts, versioning.WithReader(rd))
	}

	sunset, err := s.SunsetPolicies()
	if err != nil {
		return nil, err
	}
	deprecation, err := s.DeprecationPolicies()
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		versioning.WithSunsetPolicies(sunset),
		versioning.WithDeprecationPolicies(deprecation),
	)

	return opts, nil
}

// VersionSelector returns the configured selector. Every selector falls
// back to the default version.
func (s *Settings) VersionSelector() selector.Selector {
	switch s.Selector {
	case SelectorCurrent:
		return selector.CurrentImplementation(s.DefaultVersion)
	case SelectorLowest:
		return selector.LowestImplemented(s.DefaultVersion)
	default:
		return selector.Default(s.DefaultVersion)
	}
}

// Reader combines the configured readers. It returns nil when none are
// configured.
func (s *Settings) Reader() (reader.Reader, error) {
	if len(s.Readers) == 0 {
		return nil, nil
	}
	readers := make([]reader.Reader, 0, len(s.Readers))
	for i, rs := range s.Readers {
		rd, err := rs.build()
		if err != nil {
			return nil, &Error{Source: "settings", Field: fmt.Sprintf("readers[%d]", i), Operation: "build", Err: err}
		}
		readers = append(readers, rd)
	}
	return reader.Combine(readers...), nil
}

func (rs ReaderSettings) build() (reader.Reader, error) {
	switch rs.Type {
	case ReaderQuery:
		return reader.Query(rs.Names...), nil
	case ReaderHeader:
		return reader.Header(rs.Names...), nil
	case ReaderURL:
		var name string
		if len(rs.Names) > 0 {
			name = rs.Names[0]
		}
		return reader.URLSegment(name), nil
	case ReaderPath:
		return reader.PathPattern(rs.Pattern)
	case ReaderMediaType:
		var opts []reader.MediaTypeOption
		if rs.Parameter != "" {
			opts = append(opts, reader.WithParameterName(rs.Parameter))
		}
		if rs.Template != "" {
			opts = append(opts, reader.WithTemplate(rs.Template))
		}
		if len(rs.Include) > 0 {
			opts = append(opts, reader.WithInclude(rs.Include...))
		}
		switch rs.Select {
		case "first":
			opts = append(opts, reader.SelectFirst())
		case "last":
			opts = append(opts, reader.SelectLast())
		}
		return reader.MediaType(opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownReader, rs.Type)
	}
}

// SunsetPolicies builds a manager holding the sunset policies.
func (s *Settings) SunsetPolicies() (*policy.Manager[*policy.SunsetPolicy], error) {
	m, err := buildPolicies(s.Sunset, policy.NewSunsetBuilder)
	if err != nil {
		return nil, &Error{Source: "settings", Field: "sunset", Operation: "build", Err: err}
	}
	return m, nil
}

// DeprecationPolicies builds a manager holding the deprecation policies.
func (s *Settings) DeprecationPolicies() (*policy.Manager[*policy.DeprecationPolicy], error) {
	m, err := buildPolicies(s.Deprecation, policy.NewDeprecationBuilder)
	if err != nil {
		return nil, &Error{Source: "settings", Field: "deprecation", Operation: "build", Err: err}
	}
	return m, nil
}

func buildPolicies[P policy.Policy](
	list []PolicySettings,
	newBuilder func(string, apiversioning.Version) *policy.Builder[P],
) (*policy.Manager[P], error) {
	builders := make([]*policy.Builder[P], len(list))
	for i, ps := range list {
		b := newBuilder(ps.Name, ps.Version)
		if !ps.Date.IsZero() {
			b.EffectiveAt(ps.Date)
		}
		for _, ls := range ps.Links {
			lb := b.Link(ls.URL).Title(ls.Title).Type(ls.Type).Media(ls.Media)
			for _, lang := range ls.Languages {
				lb.Language(lang)
			}
			for _, k := range slices.Sorted(maps.Keys(ls.Extensions)) {
				lb.Extension(k, ls.Extensions[k])
			}
		}
		builders[i] = b
	}

	m := policy.NewManager[P]()
	if err := m.Register(builders...); err != nil {
		return nil, err
	}
	return m, nil
}

// ProviderConfig returns the exporter selection for [telemetry.NewProviders].
func (s *Settings) ProviderConfig() telemetry.ProviderConfig {
	t := s.Telemetry
	return telemetry.ProviderConfig{
		ServiceName:    t.ServiceName,
		ServiceVersion: t.ServiceVersion,
		Metrics:        telemetry.Exporter(t.Metrics),
		Traces:         telemetry.Exporter(t.Traces),
		Endpoint:       t.Endpoint,
		Insecure:       t.Insecure,
		ExportInterval: t.ExportInterval,
	}
}

// Providers builds the configured telemetry providers.
func (s *Settings) Providers(ctx context.Context) (*telemetry.Providers, error) {
	return telemetry.NewProviders(ctx, s.ProviderConfig())
}
