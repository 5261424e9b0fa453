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

// Package chiversion connects versioned handlers to chi routers.
//
//	v, _ := versioning.New(
//	    versioning.WithReader(reader.URLSegment("version")),
//	    chiversion.WithRouteValues(),
//	)
//	orders, _ := v.Route("Orders").Handle(ordersV1, versioning.Versions(apiversioning.New(1, 0))).Build()
//	r := chi.NewRouter()
//	r.Handle("/{version}/orders", orders)
package chiversion

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"rivaas.dev/apiversioning/reader"
	"rivaas.dev/apiversioning/versioning"
)

// RouteValue returns the chi URL parameter name of r. Unlike
// [chi.URLParam], it tells an empty value from a missing one.
func RouteValue(r *http.Request, name string) (string, bool) {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return "", false
	}
	for i, key := range rctx.URLParams.Keys {
		if key == name && i < len(rctx.URLParams.Values) {
			return rctx.URLParams.Values[i], true
		}
	}
	return "", false
}

var _ reader.RouteValueFunc = RouteValue

// WithRouteValues makes URL segment readers read chi URL parameters.
func WithRouteValues() versioning.Option {
	return versioning.WithRouteValueFunc(RouteValue)
}
