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

// Package selector chooses a version for requests that did not ask for one.
package selector

import (
	"errors"
	"net/http"

	"rivaas.dev/apiversioning"
)

// ErrNoCompatibleVersion is returned when a selector cannot choose a version.
var ErrNoCompatibleVersion = errors.New("no compatible API version")

// Selector chooses the version to serve a request with when the request did
// not ask for one. model is the aggregate of every endpoint that could serve
// the request. Implementations return exactly one version or an error; they
// must be safe for concurrent use.
type Selector interface {
	SelectVersion(r *http.Request, model apiversioning.Model) (apiversioning.Version, error)
}

// Func adapts a function to [Selector].
type Func func(r *http.Request, model apiversioning.Model) (apiversioning.Version, error)

// SelectVersion calls f.
func (f Func) SelectVersion(r *http.Request, model apiversioning.Model) (apiversioning.Version, error) {
	return f(r, model)
}

// Default always selects v, whether or not the endpoints implement it.
// Routing then reports an unsupported version if none does.
func Default(v apiversioning.Version) Selector {
	return Func(func(*http.Request, apiversioning.Model) (apiversioning.Version, error) {
		if v.IsZero() {
			return apiversioning.Version{}, ErrNoCompatibleVersion
		}
		return v, nil
	})
}

// Constant is Default under the name configuration files use.
func Constant(v apiversioning.Version) Selector {
	return Default(v)
}

// CurrentImplementation selects the highest implemented version without a
// status. If every implemented version has a status, the highest one wins.
// With nothing implemented it selects fallback.
func CurrentImplementation(fallback apiversioning.Version) Selector {
	return Func(func(_ *http.Request, model apiversioning.Model) (apiversioning.Version, error) {
		implemented := model.Implemented()
		for i := len(implemented) - 1; i >= 0; i-- {
			if !implemented[i].HasStatus() {
				return implemented[i], nil
			}
		}
		if len(implemented) > 0 {
			return implemented[len(implemented)-1], nil
		}
		return Default(fallback).SelectVersion(nil, model)
	})
}

// LowestImplemented selects the lowest implemented version without a
// status, then the lowest one with a status, then fallback.
func LowestImplemented(fallback apiversioning.Version) Selector {
	return Func(func(_ *http.Request, model apiversioning.Model) (apiversioning.Version, error) {
		implemented := model.Implemented()
		for _, v := range implemented {
			if !v.HasStatus() {
				return v, nil
			}
		}
		if len(implemented) > 0 {
			return implemented[0], nil
		}
		return Default(fallback).SelectVersion(nil, model)
	})
}
