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

// Package echoversion serves versioned handlers from echo routes.
//
//	e := echo.New()
//	e.GET("/:version/orders", echoversion.Handler(orders))
package echoversion

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rivaas.dev/apiversioning/reader"
)

// Handler adapts h to echo. The path parameters of the matched echo route
// are what URL segment readers see as route values.
func Handler(h http.Handler) echo.HandlerFunc {
	return func(c echo.Context) error {
		names, values := c.ParamNames(), c.ParamValues()
		lookup := func(_ *http.Request, name string) (string, bool) {
			for i, n := range names {
				if n == name && i < len(values) {
					return values[i], true
				}
			}
			return "", false
		}

		req := c.Request()
		h.ServeHTTP(c.Response(), req.WithContext(reader.WithRouteValues(req.Context(), lookup)))
		return nil
	}
}
