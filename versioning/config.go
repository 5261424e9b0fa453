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
	"log/slog"
	"net/http"
	"time"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/dispatch"
	"rivaas.dev/apiversioning/policy"
	"rivaas.dev/apiversioning/problem"
	"rivaas.dev/apiversioning/reader"
	"rivaas.dev/apiversioning/report"
	"rivaas.dev/apiversioning/selector"
	"rivaas.dev/apiversioning/telemetry"
)

// Config holds the settings of a [Versioning] engine.
type Config struct {
	// Reader extracts versions from requests. It defaults to the
	// api-version query parameter and the {version} route value.
	Reader reader.Reader

	// DefaultVersion serves requests without a version when AssumeDefault
	// is set and no Selector is configured.
	DefaultVersion apiversioning.Version
	AssumeDefault  bool
	Selector       selector.Selector

	// Reporter writes version and lifecycle headers. ReportVersions false
	// disables reporting altogether.
	Reporter       report.Reporter
	ReportVersions bool

	SunsetPolicies      *policy.Manager[*policy.SunsetPolicy]
	DeprecationPolicies *policy.Manager[*policy.DeprecationPolicy]

	// EnforceSunset answers requests for versions past their sunset date
	// with 410 Gone.
	EnforceSunset bool
	// EmitWarning299 adds a Warning: 299 header to responses served with a
	// deprecated version.
	EmitWarning299 bool

	Logger    *slog.Logger
	Recorder  *telemetry.Recorder
	Tracing   bool
	Formatter problem.Formatter

	// Now is the clock used for sunset enforcement.
	Now func() time.Time

	// RouteValues looks up route parameters for URL segment readers.
	RouteValues reader.RouteValueFunc

	Observer *Observer
}

// Observer holds optional callbacks for dispatch events. Callbacks run on
// the request goroutine.
//
// Example:
//
//	versioning.WithObserver(
//	    versioning.WithOnDeprecatedUse(func(r *http.Request, api string, v apiversioning.Version) {
//	        log.Warn("deprecated API used", "api", api, "version", v)
//	    }),
//	)
type Observer struct {
	// OnMatched is called when an endpoint was chosen for the request.
	OnMatched func(r *http.Request, version apiversioning.Version, md *apiversioning.Metadata)

	// OnRejected is called when the request failed version dispatch.
	OnRejected func(r *http.Request, outcome dispatch.Outcome, err error)

	// OnDeprecatedUse is called when the request is served with a
	// deprecated version.
	OnDeprecatedUse func(r *http.Request, api string, version apiversioning.Version)
}

// Option is a functional option for configuring the versioning engine.
type Option func(*Config) error

// ObserverOption is a functional option for configuring an Observer.
type ObserverOption func(*Observer)

func defaultConfig() *Config {
	return &Config{
		Reader:         reader.Combine(reader.Query(), reader.URLSegment("")),
		DefaultVersion: apiversioning.Default(),
		AssumeDefault:  true,
		ReportVersions: true,
		Logger:         slog.New(slog.DiscardHandler),
		Formatter:      problem.NewRFC9457(),
		Now:            time.Now,
	}
}

// validate checks the configuration for errors and inconsistencies.
func (c *Config) validate() error {
	if c.Reader == nil {
		return ErrNilReader
	}
	if c.DefaultVersion.IsNeutral() {
		return ErrNeutralDefaultVersion
	}
	if c.Logger == nil {
		return ErrNilLogger
	}
	if c.Formatter == nil {
		return ErrNilFormatter
	}
	return nil
}
