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

// Package problem turns versioning failures into RFC 9457 problem details.
//
// Each dispatch outcome other than a match maps to a [Kind] with a stable
// type URI and a machine-readable code:
//
//	{
//	  "type": "https://docs.api-versioning.org/problems#unsupported",
//	  "title": "Unsupported API version",
//	  "status": 400,
//	  "detail": "the requested API version is not supported: 3.0",
//	  "instance": "/orders",
//	  "code": "UnsupportedApiVersion",
//	  "requested_version": "3.0",
//	  "supported_versions": ["1.0", "2.0"]
//	}
package problem

import (
	"errors"
	"net/http"

	"github.com/samber/lo"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/dispatch"
	"rivaas.dev/apiversioning/request"
)

// TypeBase prefixes the type URI of every versioning problem.
const TypeBase = "https://docs.api-versioning.org/problems#"

// Kind describes one class of versioning problem.
type Kind struct {
	Type   string
	Title  string
	Code   string
	Status int
}

// Problem kinds.
var (
	Unsupported = Kind{
		Type:   TypeBase + "unsupported",
		Title:  "Unsupported API version",
		Code:   "UnsupportedApiVersion",
		Status: http.StatusBadRequest,
	}
	Unspecified = Kind{
		Type:   TypeBase + "unspecified",
		Title:  "Unspecified API version",
		Code:   "ApiVersionUnspecified",
		Status: http.StatusBadRequest,
	}
	Invalid = Kind{
		Type:   TypeBase + "invalid",
		Title:  "Invalid API version",
		Code:   "InvalidApiVersion",
		Status: http.StatusBadRequest,
	}
	Ambiguous = Kind{
		Type:   TypeBase + "ambiguous",
		Title:  "Ambiguous API version",
		Code:   "AmbiguousApiVersion",
		Status: http.StatusBadRequest,
	}
	AmbiguousEndpoint = Kind{
		Type:   TypeBase + "ambiguous-endpoint",
		Title:  "Ambiguous endpoint",
		Code:   "AmbiguousEndpoint",
		Status: http.StatusInternalServerError,
	}
	Sunset = Kind{
		Type:   TypeBase + "sunset",
		Title:  "API version sunset",
		Code:   "ApiVersionSunset",
		Status: http.StatusGone,
	}
)

// Error is a versioning failure together with what clients need to recover
// from it.
type Error struct {
	Kind Kind
	Err  error
	// Requested is the raw version the client sent, if any.
	Requested string
	// Values are the conflicting raw versions of an ambiguous request.
	Values     []string
	Supported  []apiversioning.Version
	Deprecated []apiversioning.Version
}

// Error implements error.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.Title
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus returns the response status.
func (e *Error) HTTPStatus() int { return e.Kind.Status }

// Code returns the machine-readable problem code.
func (e *Error) Code() string { return e.Kind.Code }

// Extensions returns the problem members beyond the RFC 9457 ones.
func (e *Error) Extensions() map[string]any {
	ext := make(map[string]any)
	if e.Requested != "" {
		ext["requested_version"] = e.Requested
	}
	if len(e.Values) > 0 {
		ext["api_versions"] = e.Values
	}
	if len(e.Supported) > 0 {
		ext["supported_versions"] = texts(e.Supported)
	}
	if len(e.Deprecated) > 0 {
		ext["deprecated_versions"] = texts(e.Deprecated)
	}
	return ext
}

func texts(vs []apiversioning.Version) []string {
	return lo.Map(vs, func(v apiversioning.Version, _ int) string { return v.String() })
}

// FromResult describes a failed dispatch. It returns nil for a match.
func FromResult(res dispatch.Result, f *request.Feature) *Error {
	var kind Kind
	switch res.Outcome {
	case dispatch.Matched:
		return nil
	case dispatch.Unsupported:
		kind = Unsupported
	case dispatch.Unspecified:
		kind = Unspecified
	case dispatch.Invalid:
		kind = Invalid
	case dispatch.AmbiguousVersion:
		kind = Ambiguous
	case dispatch.AmbiguousEndpoint:
		kind = AmbiguousEndpoint
	default:
		kind = Kind{Type: "about:blank", Title: http.StatusText(http.StatusInternalServerError), Status: http.StatusInternalServerError}
	}

	e := &Error{
		Kind:       kind,
		Err:        res.Err,
		Supported:  res.Model.Supported(),
		Deprecated: res.Model.Deprecated(),
	}
	if f != nil {
		e.Requested = f.RawValue()
		if res.Outcome == dispatch.AmbiguousVersion {
			var amb *request.AmbiguousVersionError
			if errors.As(res.Err, &amb) {
				e.Values = amb.Values
			} else {
				e.Values = f.RawValues
			}
			e.Requested = ""
		}
	}
	return e
}
