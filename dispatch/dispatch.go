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

// Package dispatch picks the endpoint that serves a request among
// endpoints that differ only by API version.
//
// The router matches path and method first; the candidates that remain are
// handed to [Policy.Select] together with the resolved request [request.Feature]:
//
//	res := policy.Select(r, feature, candidates)
//	switch res.Outcome {
//	case dispatch.Matched:
//	    // serve with candidates[res.Index]
//	default:
//	    // write a problem response for res.Err
//	}
package dispatch

import (
	"fmt"
	"net/http"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/request"
	"rivaas.dev/apiversioning/selector"
)

// Candidate is an endpoint that matched everything but the version.
type Candidate struct {
	// ID names the endpoint in errors and logs.
	ID string
	// Metadata holds the versions of the endpoint and its API.
	Metadata *apiversioning.Metadata
}

// Outcome is the result kind of a dispatch.
type Outcome uint8

// Dispatch outcomes.
const (
	Matched Outcome = iota
	Unspecified
	Unsupported
	Invalid
	AmbiguousVersion
	AmbiguousEndpoint
)

// String returns the outcome name used in logs and metrics.
func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case Unspecified:
		return "unspecified"
	case Unsupported:
		return "unsupported"
	case Invalid:
		return "invalid"
	case AmbiguousVersion:
		return "ambiguous_version"
	case AmbiguousEndpoint:
		return "ambiguous_endpoint"
	default:
		return "unknown"
	}
}

// Result describes the endpoint chosen for a request, or why none was.
type Result struct {
	Outcome Outcome
	// Index of the chosen candidate; -1 unless Outcome is Matched.
	Index int
	// Version the request is served with. It is zero for a neutral endpoint
	// serving a request that asked for no version.
	Version apiversioning.Version
	// Mapping tells how the chosen endpoint maps to Version.
	Mapping apiversioning.Mapping
	// Model aggregates every version-aware candidate. Error responses use it
	// to tell clients which versions exist.
	Model apiversioning.Model
	// Err is set for every outcome but Matched.
	Err error
}

// Policy chooses among candidates. The zero Policy serves requests that
// ask for no version only if every candidate is version-neutral.
type Policy struct {
	// Selector picks the version for requests that ask for none.
	Selector selector.Selector
	// AssumeDefault enables Selector.
	AssumeDefault bool
}

// Select picks the candidate that serves r.
func (p Policy) Select(r *http.Request, f *request.Feature, candidates []Candidate) Result {
	res := Result{Index: -1}
	if f == nil {
		f = &request.Feature{}
	}

	// ambiguity stops everything before any candidate is looked at
	if err := f.Err(); err != nil {
		res.Outcome, res.Err = AmbiguousVersion, err
		return res
	}

	neutral, sensitive := partition(candidates)
	res.Model = aggregate(candidates, sensitive)

	if len(sensitive) == 0 {
		return selectNeutral(res, neutral, candidates, f.Requested)
	}

	version := f.Requested
	if version.IsZero() {
		switch {
		case f.IsInvalid():
			res.Outcome = Invalid
			res.Err = fmt.Errorf("%w: %q", ErrInvalidVersion, f.RawValue())
			return res
		case !p.AssumeDefault || p.Selector == nil:
			if len(neutral) > 0 {
				return selectNeutral(res, neutral, candidates, version)
			}
			res.Outcome, res.Err = Unspecified, ErrUnspecifiedVersion
			return res
		}

		selected, err := p.Selector.SelectVersion(r, res.Model)
		if err != nil {
			res.Outcome = Unspecified
			res.Err = fmt.Errorf("%w: %w", ErrUnspecifiedVersion, err)
			return res
		}
		version = selected
	}

	idx, mapping, err := match(version, candidates, sensitive)
	switch {
	case err != nil:
		res.Outcome, res.Err = AmbiguousEndpoint, err
		return res
	case idx >= 0:
		res.Outcome, res.Index, res.Version, res.Mapping = Matched, idx, version, mapping
		return res
	case len(neutral) > 0:
		return selectNeutral(res, neutral, candidates, version)
	}

	res.Outcome = Unsupported
	res.Version = version
	res.Err = &UnsupportedVersionError{Version: version}
	return res
}

func selectNeutral(res Result, neutral []int, candidates []Candidate, version apiversioning.Version) Result {
	switch len(neutral) {
	case 0:
		res.Outcome = Unsupported
		res.Version = version
		res.Err = &UnsupportedVersionError{Version: version}
	case 1:
		res.Outcome = Matched
		res.Index = neutral[0]
		res.Version = version
		res.Mapping = apiversioning.MappingImplicit
	default:
		res.Outcome = AmbiguousEndpoint
		res.Err = &AmbiguousEndpointError{Version: version, Endpoints: ids(candidates, neutral)}
	}
	return res
}

// match finds the single version-aware candidate mapped to v. Explicit
// mappings win over implicit ones; two at the same level are an error.
func match(v apiversioning.Version, candidates []Candidate, sensitive []int) (int, apiversioning.Mapping, error) {
	var explicit, implicit []int
	for _, i := range sensitive {
		switch candidates[i].Metadata.MappingTo(v) {
		case apiversioning.MappingExplicit:
			explicit = append(explicit, i)
		case apiversioning.MappingImplicit:
			implicit = append(implicit, i)
		}
	}

	for _, group := range []struct {
		idx     []int
		mapping apiversioning.Mapping
	}{
		{explicit, apiversioning.MappingExplicit},
		{implicit, apiversioning.MappingImplicit},
	} {
		switch len(group.idx) {
		case 0:
			continue
		case 1:
			return group.idx[0], group.mapping, nil
		default:
			return -1, apiversioning.MappingNone, &AmbiguousEndpointError{Version: v, Endpoints: ids(candidates, group.idx)}
		}
	}
	return -1, apiversioning.MappingNone, nil
}

// Conflicts reports the first version that two candidates claim at the same
// mapping level, or more than one neutral candidate.
func Conflicts(candidates []Candidate) error {
	neutral, sensitive := partition(candidates)
	if len(neutral) > 1 {
		return &AmbiguousEndpointError{Version: apiversioning.Neutral(), Endpoints: ids(candidates, neutral)}
	}

	for _, v := range aggregate(candidates, sensitive).Implemented() {
		if _, _, err := match(v, candidates, sensitive); err != nil {
			return err
		}
	}
	return nil
}

func partition(candidates []Candidate) (neutral, sensitive []int) {
	for i, c := range candidates {
		if c.Metadata == nil || c.Metadata.IsNeutral() {
			neutral = append(neutral, i)
			continue
		}
		sensitive = append(sensitive, i)
	}
	return neutral, sensitive
}

func aggregate(candidates []Candidate, sensitive []int) apiversioning.Model {
	models := make([]apiversioning.Model, 0, len(sensitive))
	for _, i := range sensitive {
		models = append(models, candidates[i].Metadata.Map(apiversioning.MappingExplicit|apiversioning.MappingImplicit))
	}
	return apiversioning.AggregateAll(models...)
}

func ids(candidates []Candidate, idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = candidates[j].ID
	}
	return out
}
