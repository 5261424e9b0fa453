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

// WithReader sets where versions are read from.
//
// Example:
//
//	versioning.WithReader(reader.Combine(reader.Query(), reader.Header("x-api-version")))
func WithReader(rd reader.Reader) Option {
	return func(cfg *Config) error {
		if rd == nil {
			return ErrNilReader
		}
		cfg.Reader = rd
		return nil
	}
}

// WithDefaultVersion sets the version of requests that carry none.
// The neutral version is rejected by [New].
func WithDefaultVersion(v apiversioning.Version) Option {
	return func(cfg *Config) error {
		cfg.DefaultVersion = v
		return nil
	}
}

// WithAssumeDefaultVersionWhenUnspecified controls whether requests without
// a version are served with the default. It is enabled by default; when
// disabled, such requests are rejected unless a version-neutral endpoint
// can serve them.
func WithAssumeDefaultVersionWhenUnspecified(assume bool) Option {
	return func(cfg *Config) error {
		cfg.AssumeDefault = assume
		return nil
	}
}

// WithSelector sets how the version of a request without one is chosen.
// It replaces [WithDefaultVersion].
//
// Example:
//
//	versioning.WithSelector(selector.CurrentImplementation(apiversioning.Default()))
func WithSelector(s selector.Selector) Option {
	return func(cfg *Config) error {
		cfg.Selector = s
		return nil
	}
}

// WithReporter replaces the default header reporter.
func WithReporter(r report.Reporter) Option {
	return func(cfg *Config) error {
		cfg.Reporter = r
		return nil
	}
}

// WithReportVersions enables or disables version and lifecycle headers.
// Reporting is enabled by default.
func WithReportVersions(enabled bool) Option {
	return func(cfg *Config) error {
		cfg.ReportVersions = enabled
		return nil
	}
}

// WithSunsetPolicies sets the sunset policies reported and enforced.
func WithSunsetPolicies(m *policy.Manager[*policy.SunsetPolicy]) Option {
	return func(cfg *Config) error {
		cfg.SunsetPolicies = m
		return nil
	}
}

// WithDeprecationPolicies sets the deprecation policies reported.
func WithDeprecationPolicies(m *policy.Manager[*policy.DeprecationPolicy]) Option {
	return func(cfg *Config) error {
		cfg.DeprecationPolicies = m
		return nil
	}
}

// WithSunsetEnforcement enables 410 Gone responses for versions past their
// sunset date. The response still carries the Sunset and Link headers.
func WithSunsetEnforcement() Option {
	return func(cfg *Config) error {
		cfg.EnforceSunset = true
		return nil
	}
}

// WithWarning299 enables Warning: 299 headers on responses served with a
// deprecated version.
//
// Example:
//
//	versioning.WithWarning299()
//	// Response includes: Warning: 299 - "API Orders version 1.0 is deprecated"
func WithWarning299() Option {
	return func(cfg *Config) error {
		cfg.EmitWarning299 = true
		return nil
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *Config) error {
		if l == nil {
			return ErrNilLogger
		}
		cfg.Logger = l
		return nil
	}
}

// WithRecorder records dispatch outcomes as metrics.
func WithRecorder(r *telemetry.Recorder) Option {
	return func(cfg *Config) error {
		cfg.Recorder = r
		return nil
	}
}

// WithTracing controls whether the active span of a request is annotated
// with the requested and resolved versions.
func WithTracing(enabled bool) Option {
	return func(cfg *Config) error {
		cfg.Tracing = enabled
		return nil
	}
}

// WithProblemFormatter sets how failures are written.
func WithProblemFormatter(f problem.Formatter) Option {
	return func(cfg *Config) error {
		if f == nil {
			return ErrNilFormatter
		}
		cfg.Formatter = f
		return nil
	}
}

// WithClock sets a custom clock function for testing.
//
// Example:
//
//	versioning.WithClock(func() time.Time {
//	    return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
//	})
func WithClock(nowFn func() time.Time) Option {
	return func(cfg *Config) error {
		if nowFn == nil {
			return ErrNilClock
		}
		cfg.Now = nowFn
		return nil
	}
}

// WithRouteValueFunc sets how URL segment readers find route parameters.
// Router adapters provide one for their router.
func WithRouteValueFunc(fn reader.RouteValueFunc) Option {
	return func(cfg *Config) error {
		cfg.RouteValues = fn
		return nil
	}
}

// WithObserver configures callbacks for dispatch events.
func WithObserver(opts ...ObserverOption) Option {
	return func(cfg *Config) error {
		observer := &Observer{}
		for _, opt := range opts {
			opt(observer)
		}
		cfg.Observer = observer
		return nil
	}
}

// WithOnMatched sets the callback for requests that found their endpoint.
func WithOnMatched(fn func(r *http.Request, version apiversioning.Version, md *apiversioning.Metadata)) ObserverOption {
	return func(o *Observer) {
		o.OnMatched = fn
	}
}

// WithOnRejected sets the callback for requests that failed dispatch.
func WithOnRejected(fn func(r *http.Request, outcome dispatch.Outcome, err error)) ObserverOption {
	return func(o *Observer) {
		o.OnRejected = fn
	}
}

// WithOnDeprecatedUse sets the callback for requests served with a
// deprecated version.
func WithOnDeprecatedUse(fn func(r *http.Request, api string, version apiversioning.Version)) ObserverOption {
	return func(o *Observer) {
		o.OnDeprecatedUse = fn
	}
}
