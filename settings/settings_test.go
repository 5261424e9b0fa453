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

//go:build !integration

package settings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/policy"
	"rivaas.dev/apiversioning/reader"
	"rivaas.dev/apiversioning/telemetry"
	"rivaas.dev/apiversioning/versioning"
)

const ordersYAML = `
default_version: "1.0"
selector: current
warning_299: true
readers:
  - type: header
    names: [x-api-version]
  - type: query
sunset:
  - name: orders
    version: "1.0"
    date: "2026-07-01"
    links:
      - url: https://example.com/sunset
        title: Sunset notice
        languages: [en]
deprecation:
  - name: orders
    version: "1.0"
    date: "2026-01-01T00:00:00Z"
telemetry:
  service_name: orders
  metrics: prometheus
  export_interval: 10s
`

const ordersTOML = `
default_version = "1.0"
selector = "current"
warning_299 = true

[[readers]]
type = "header"
names = ["x-api-version"]

[[readers]]
type = "query"

[[sunset]]
name = "orders"
version = "1.0"
date = "2026-07-01"

[[sunset.links]]
url = "https://example.com/sunset"
title = "Sunset notice"
languages = ["en"]

[[deprecation]]
name = "orders"
version = "1.0"
date = "2026-01-01T00:00:00Z"

[telemetry]
service_name = "orders"
metrics = "prometheus"
export_interval = "10s"
`

const ordersJSON = `{
  "default_version": "1.0",
  "selector": "current",
  "warning_299": true,
  "readers": [
    {"type": "header", "names": ["x-api-version"]},
    {"type": "query"}
  ],
  "sunset": [{
    "name": "orders",
    "version": "1.0",
    "date": "2026-07-01",
    "links": [{"url": "https://example.com/sunset", "title": "Sunset notice", "languages": ["en"]}]
  }],
  "deprecation": [{"name": "orders", "version": "1.0", "date": "2026-01-01T00:00:00Z"}],
  "telemetry": {"service_name": "orders", "metrics": "prometheus", "export_interval": "10s"}
}`

func TestLoadFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"yaml", ordersYAML, FormatYAML},
		{"toml", ordersTOML, FormatTOML},
		{"json", ordersJSON, FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := Load(t.Context(), WithContent([]byte(tt.data), tt.format))
			require.NoError(t, err)

			assert.Equal(t, apiversioning.New(1, 0), s.DefaultVersion)
			assert.Equal(t, SelectorCurrent, s.Selector)
			assert.True(t, s.Warning299)
			assert.Nil(t, s.AssumeDefault)

			require.Len(t, s.Readers, 2)
			assert.Equal(t, ReaderSettings{Type: ReaderHeader, Names: []string{"x-api-version"}}, s.Readers[0])
			assert.Equal(t, ReaderQuery, s.Readers[1].Type)

			require.Len(t, s.Sunset, 1)
			sunset := s.Sunset[0]
			assert.Equal(t, "orders", sunset.Name)
			assert.Equal(t, apiversioning.New(1, 0), sunset.Version)
			assert.True(t, sunset.Date.Equal(time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)))
			require.Len(t, sunset.Links, 1)
			assert.Equal(t, "https://example.com/sunset", sunset.Links[0].URL)
			assert.Equal(t, []string{"en"}, sunset.Links[0].Languages)

			require.Len(t, s.Deprecation, 1)
			assert.True(t, s.Deprecation[0].Date.Equal(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)))

			assert.Equal(t, TelemetrySettings{ServiceName: "orders", Metrics: "prometheus", ExportInterval: 10 * time.Second}, s.Telemetry)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	s, err := Load(t.Context(), WithContent([]byte(`{}`), FormatJSON))
	require.NoError(t, err)

	assert.Equal(t, apiversioning.Default(), s.DefaultVersion)
	assert.Equal(t, SelectorDefault, s.Selector)
	assert.Empty(t, s.Readers)

	rd, err := s.Reader()
	require.NoError(t, err)
	assert.Nil(t, rd)
}

func TestLoadMergesSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := filepath.Join(dir, "versioning.yaml")
	local := filepath.Join(dir, "versioning.local.toml")
	require.NoError(t, os.WriteFile(base, []byte(ordersYAML), 0o600))
	require.NoError(t, os.WriteFile(local, []byte("Default_Version = \"2.0\"\nreport_versions = false\n"), 0o600))

	s, err := Load(t.Context(), WithFile(base), WithFile(local))
	require.NoError(t, err)

	assert.Equal(t, apiversioning.New(2, 0), s.DefaultVersion, "later sources win and keys are case-insensitive")
	require.NotNil(t, s.ReportVersions)
	assert.False(t, *s.ReportVersions)
	assert.Len(t, s.Readers, 2, "keys absent from later sources are kept")
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   string
		source string
		is     error
	}{
		{"unquoted version", "default_version: 1.10\n", "json-schema", nil},
		{"unknown key", "defaultversion: \"1.0\"\n", "json-schema", nil},
		{"unknown selector", "selector: newest\n", "json-schema", nil},
		{"reader without type", "readers:\n  - names: [v]\n", "json-schema", nil},
		{"policy without key", "sunset:\n  - date: \"2026-01-01\"\n", "json-schema", nil},
		{"malformed version", "default_version: \"1.x\"\n", "binding", nil},
		{"malformed date", "sunset:\n  - name: orders\n    date: soon\n", "binding", nil},
		{"bad link", "sunset:\n  - name: orders\n    links:\n      - url: \"not a url\"\n", "binding", nil},
		{"neutral default", "default_version: neutral\n", "binding", ErrNeutralDefault},
		{"path reader without pattern", "readers:\n  - type: path\n", "binding", ErrInvalidReader},
		{"not yaml", "default_version: [\n", "source[0]", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(t.Context(), WithContent([]byte(tt.data), FormatYAML))
			require.Error(t, err)

			var serr *Error
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.source, serr.Source)
			if tt.is != nil {
				require.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestLoadOptionErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(t.Context())
	require.ErrorIs(t, err, ErrNoSources)

	_, err = Load(t.Context(), WithFile("versioning.ini"))
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(t.Context(), WithContent(nil, "xml"))
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(t.Context(), WithFile(filepath.Join(t.TempDir(), "missing.yaml")))
	require.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = Load(ctx, WithContent([]byte("{}"), FormatJSON))
	require.ErrorIs(t, err, context.Canceled)
}

func TestFormatOf(t *testing.T) {
	t.Parallel()

	for path, want := range map[string]Format{
		"a.yaml": FormatYAML,
		"a.YML":  FormatYAML,
		"a.toml": FormatTOML,
		"a.json": FormatJSON,
	} {
		got, err := FormatOf(path)
		require.NoError(t, err)
		assert.Equal(t, want, got, path)
	}
}

func TestReaderSettings(t *testing.T) {
	t.Parallel()

	s, err := Load(t.Context(), WithContent([]byte(`
readers:
  - type: path
    pattern: /api/v{version}/
  - type: media-type
    parameter: ver
    include: [application/json]
    select: first
  - type: url
    names: [apiVersion]
`), FormatYAML))
	require.NoError(t, err)

	rd, err := s.Reader()
	require.NoError(t, err)

	assert.Equal(t, "ver", reader.ParameterName(rd, reader.LocationMediaType))

	req := httptest.NewRequest(http.MethodGet, "/api/v2/orders", nil)
	req.Header.Set("Accept", "application/json; ver=3.0")
	values := make([]string, 0, 2)
	for _, c := range rd.Read(req) {
		values = append(values, c.Value)
	}
	assert.Equal(t, []string{"2", "3.0"}, values)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	s, err := Load(t.Context(), WithContent([]byte(ordersYAML), FormatYAML))
	require.NoError(t, err)

	serve := func(t *testing.T, extra ...versioning.Option) *httptest.ResponseRecorder {
		t.Helper()

		opts, err := s.Options()
		require.NoError(t, err)
		v, err := versioning.New(append(opts, extra...)...)
		require.NoError(t, err)

		h, err := v.Route("Orders").
			HandleFunc(func(w http.ResponseWriter, _ *http.Request) {}, versioning.Versions(apiversioning.New(1, 0), apiversioning.New(2, 0))).
			Build()
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.Header.Set("X-Api-Version", "1.0")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	t.Run("headers", func(t *testing.T) {
		t.Parallel()

		w := serve(t, versioning.WithClock(func() time.Time {
			return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Wed, 01 Jul 2026 00:00:00 GMT", w.Header().Get("Sunset"))
		assert.Equal(t, "@1767225600", w.Header().Get("Deprecation"))
		assert.Contains(t, w.Header().Values("Link"), `<https://example.com/sunset>; rel="sunset"; title="Sunset notice"; hreflang=en`)
	})

	t.Run("enforcement", func(t *testing.T) {
		t.Parallel()

		w := serve(t,
			versioning.WithSunsetEnforcement(),
			versioning.WithClock(func() time.Time { return time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC) }),
		)

		assert.Equal(t, http.StatusGone, w.Code)
	})
}

func TestPolicies(t *testing.T) {
	t.Parallel()

	s := &Settings{
		Sunset: []PolicySettings{
			{Name: "orders", Date: time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)},
			{Version: apiversioning.New(0, 9), Links: []LinkSettings{{
				URL:        "https://example.com/0.9",
				Extensions: map[string]string{"api-version": "0.9"},
			}}},
		},
		Deprecation: []PolicySettings{{}},
	}

	sunset, err := s.SunsetPolicies()
	require.NoError(t, err)
	assert.Equal(t, 2, sunset.Len())

	p, ok := sunset.TryResolvePolicy("Orders", apiversioning.New(3, 0))
	require.True(t, ok, "name-only policies apply to every version")
	date, _ := p.Date()
	assert.Equal(t, 2026, date.Year())

	p, ok = sunset.TryResolvePolicy("", apiversioning.New(0, 9))
	require.True(t, ok)
	require.Len(t, p.Links(), 1)
	assert.Equal(t, policy.RelationSunset, p.Links()[0].Relation)
	assert.Equal(t, "0.9", p.Links()[0].Extensions["api-version"])

	_, err = s.DeprecationPolicies()
	require.ErrorIs(t, err, policy.ErrEmptyKey)

	_, err = s.Options()
	require.ErrorIs(t, err, policy.ErrEmptyKey)
}

func TestVersionSelector(t *testing.T) {
	t.Parallel()

	model := apiversioning.NewModel(apiversioning.ModelSpec{
		Supported: []apiversioning.Version{apiversioning.New(1, 0), apiversioning.New(2, 0)},
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	tests := []struct {
		selector string
		want     apiversioning.Version
	}{
		{SelectorDefault, apiversioning.New(1, 5)},
		{SelectorCurrent, apiversioning.New(2, 0)},
		{SelectorLowest, apiversioning.New(1, 0)},
	}
	for _, tt := range tests {
		s := &Settings{DefaultVersion: apiversioning.New(1, 5), Selector: tt.selector}
		got, err := s.VersionSelector().SelectVersion(req, model)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.selector)
	}
}

func TestProviders(t *testing.T) {
	t.Parallel()

	s, err := Load(t.Context(), WithContent([]byte(ordersYAML), FormatYAML))
	require.NoError(t, err)

	cfg := s.ProviderConfig()
	assert.Equal(t, "orders", cfg.ServiceName)
	assert.Equal(t, telemetry.ExporterPrometheus, cfg.Metrics)
	assert.Equal(t, 10*time.Second, cfg.ExportInterval)

	p, err := s.Providers(t.Context())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })
	assert.NotNil(t, p.Meter)
	assert.NotNil(t, p.Handler)
	assert.Nil(t, p.Tracer)
}

func TestSchema(t *testing.T) {
	t.Parallel()

	assert.Contains(t, string(Schema()), "default_version")

	_, err := compiledSchema()
	require.NoError(t, err)
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	err := &Error{Source: "binding", Field: "readers[0]", Operation: "validate", Err: errors.New("boom")}
	assert.Equal(t, "settings error in binding.readers[0] during validate: boom", err.Error())
	assert.Equal(t, "settings error in json-schema during validate: boom", newError("json-schema", "validate", errors.New("boom")).Error())
}
