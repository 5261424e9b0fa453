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
	"rivaas.dev/apiversioning/policy"
	"rivaas.dev/apiversioning/problem"
	"rivaas.dev/apiversioning/reader"
	"rivaas.dev/apiversioning/report"
	"rivaas.dev/apiversioning/request"
	"rivaas.dev/apiversioning/telemetry"
	"rivaas.dev/apiversioning/telemetry/semconv"
)

// routeHandler serves the endpoints of one route.
type routeHandler struct {
	v          *Versioning
	name       string
	candidates []dispatch.Candidate
	handlers   []http.Handler
}

// ServeHTTP resolves the version of r, picks the endpoint and serves it, or
// writes a problem response.
func (h *routeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	v := h.v
	if v.cfg.RouteValues != nil {
		r = r.WithContext(reader.WithRouteValues(r.Context(), v.cfg.RouteValues))
	}

	f := request.Resolve(r, v.cfg.Reader)
	res := v.policy.Select(r, f, h.candidates)

	obs := telemetry.NewObservation(res, f)
	obs.API = h.name

	if res.Outcome != dispatch.Matched {
		v.observe(r, obs, res, nil)
		v.reject(w, r, res, f)
		return
	}

	c := h.candidates[res.Index]
	obs.Endpoint = c.ID
	f.Version = res.Version
	f.Metadata = c.Metadata

	sunset, hasSunset := v.sunsetPolicy(c.Metadata, res.Version)
	if hasSunset {
		obs.Sunset, _ = sunset.Date()
	}
	v.observe(r, obs, res, c.Metadata)

	if v.cfg.EnforceSunset && hasSunset && !obs.Sunset.IsZero() && v.cfg.Now().After(obs.Sunset) {
		v.gone(w, r, f, sunset)
		return
	}

	rw := &reportingWriter{
		ResponseWriter: w,
		before: func(hdr http.Header) {
			v.writeHeaders(hdr, c.Metadata, res.Version, obs.Deprecated)
		},
	}
	h.handlers[res.Index].ServeHTTP(rw, r.WithContext(request.WithFeature(r.Context(), f)))
	rw.prepare()
}

// sunsetPolicy finds the sunset policy of a version-aware endpoint.
func (v *Versioning) sunsetPolicy(md *apiversioning.Metadata, version apiversioning.Version) (*policy.SunsetPolicy, bool) {
	if md == nil || md.IsNeutral() || version.IsZero() {
		return nil, false
	}
	return v.cfg.SunsetPolicies.TryResolvePolicy(md.Name(), version)
}

// writeHeaders reports the versions of a served request.
func (v *Versioning) writeHeaders(h http.Header, md *apiversioning.Metadata, version apiversioning.Version, deprecated bool) {
	if v.cfg.Reporter != nil {
		v.cfg.Reporter.Report(h, md, version)
	}
	if v.mediaParam != "" && !version.IsZero() && !version.IsNeutral() {
		report.AddVersionToContentType(h, v.mediaParam, version.String())
	}
	if v.cfg.EmitWarning299 && deprecated {
		h.Add("Warning", fmt.Sprintf("299 - %q", fmt.Sprintf("API %s version %s is deprecated", md.Name(), version)))
	}
	addVary(h, v.vary...)
}

// reject writes the problem response of a failed dispatch. Except for an
// ambiguous endpoint, which is a server fault, the response tells the
// client which versions exist.
func (v *Versioning) reject(w http.ResponseWriter, r *http.Request, res dispatch.Result, f *request.Feature) {
	hdr := http.Header{}
	if v.cfg.Reporter != nil && res.Outcome != dispatch.AmbiguousEndpoint {
		// an unnamed metadata never resolves lifecycle policies
		v.cfg.Reporter.Report(hdr, apiversioning.NewMetadata(res.Model, res.Model, ""), apiversioning.Version{})
	}
	addVary(hdr, v.vary...)

	v.writeProblem(w, r, problem.FromResult(res, f), hdr)
}

// gone answers a request for a version past its sunset date.
func (v *Versioning) gone(w http.ResponseWriter, r *http.Request, f *request.Feature, p *policy.SunsetPolicy) {
	hdr := http.Header{}
	report.WriteSunsetPolicy(hdr, p)
	addVary(hdr, v.vary...)

	date, _ := p.Date()
	md := f.Metadata
	v.logger(r.Context()).Info("API version past sunset requested",
		semconv.APIName, md.Name(),
		semconv.APIVersionResolved, f.Version.String(),
		semconv.APIVersionSunset, date,
	)

	v.writeProblem(w, r, &problem.Error{
		Kind:       problem.Sunset,
		Err:        fmt.Errorf("%w: %s", ErrVersionSunset, f.Version),
		Requested:  f.RawValue(),
		Supported:  md.API().Supported(),
		Deprecated: md.API().Deprecated(),
	}, hdr)
}

func (v *Versioning) writeProblem(w http.ResponseWriter, r *http.Request, err error, hdr http.Header) {
	resp := v.cfg.Formatter.Format(r, err)
	if resp.Headers == nil {
		resp.Headers = make(http.Header, len(hdr))
	}
	for k, vals := range hdr {
		for _, val := range vals {
			resp.Headers.Add(k, val)
		}
	}
	if werr := resp.Write(w); werr != nil {
		v.logger(r.Context()).Error("failed to write problem response", "error", werr)
		return
	}

	attrs := []any{
		semconv.HTTPMethod, r.Method,
		semconv.HTTPTarget, r.URL.Path,
		semconv.HTTPStatusCode, resp.Status,
	}
	if r.Pattern != "" {
		attrs = append(attrs, semconv.HTTPRoute, r.Pattern)
	}
	var perr *problem.Error
	if errors.As(err, &perr) {
		attrs = append(attrs, semconv.ErrorCode, perr.Code())
	}
	if d, ok := resp.Body.(problem.Detail); ok {
		if id, ok := d.Extensions[semconv.ErrorID]; ok {
			attrs = append(attrs, semconv.ErrorID, id)
		}
	}
	v.logger(r.Context()).Debug("problem response written", attrs...)
}

// observe logs, records and reports a dispatch to the observer.
func (v *Versioning) observe(r *http.Request, obs telemetry.Observation, res dispatch.Result, md *apiversioning.Metadata) {
	ctx := r.Context()

	v.cfg.Recorder.Record(ctx, obs)
	if v.cfg.Tracing {
		telemetry.Annotate(ctx, obs)
	}

	switch res.Outcome {
	case dispatch.Matched:
	case dispatch.AmbiguousVersion:
		v.logger(ctx).Warn("ambiguous API version",
			semconv.HTTPMethod, r.Method,
			semconv.HTTPTarget, r.URL.Path,
			semconv.APIName, obs.API,
			semconv.APIVersions, obs.Ambiguous,
		)
	case dispatch.AmbiguousEndpoint:
		v.logger(ctx).Error("ambiguous endpoint",
			semconv.HTTPMethod, r.Method,
			semconv.HTTPTarget, r.URL.Path,
			semconv.APIName, obs.API,
			"error", res.Err,
		)
	default:
		v.logger(ctx).Debug("API version rejected",
			semconv.HTTPMethod, r.Method,
			semconv.HTTPTarget, r.URL.Path,
			semconv.APIName, obs.API,
			semconv.APIVersionRequested, obs.Requested,
			semconv.APIVersionOutcome, res.Outcome.String(),
		)
	}

	o := v.cfg.Observer
	if o == nil {
		return
	}
	if res.Outcome != dispatch.Matched {
		if o.OnRejected != nil {
			o.OnRejected(r, res.Outcome, res.Err)
		}
		return
	}
	if o.OnMatched != nil {
		o.OnMatched(r, res.Version, md)
	}
	if obs.Deprecated && o.OnDeprecatedUse != nil {
		o.OnDeprecatedUse(r, obs.API, res.Version)
	}
}
