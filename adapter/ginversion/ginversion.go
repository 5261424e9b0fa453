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

// Package ginversion serves versioned handlers from gin routes.
//
//	r := gin.New()
//	r.GET("/:version/orders", ginversion.Handler(orders))
package ginversion

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rivaas.dev/apiversioning/reader"
)

// Handler adapts h to gin. The parameters of the matched gin route are
// what URL segment readers see as route values.
func Handler(h http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := c.Params
		ctx := reader.WithRouteValues(c.Request.Context(), func(_ *http.Request, name string) (string, bool) {
			return params.Get(name)
		})
		h.ServeHTTP(c.Writer, c.Request.WithContext(ctx))
	}
}
