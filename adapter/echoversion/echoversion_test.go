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

package echoversion

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/reader"
	"rivaas.dev/apiversioning/versioning"
)

func TestHandler(t *testing.T) {
	t.Parallel()

	v, err := versioning.New(versioning.WithReader(reader.Combine(reader.URLSegment("version"), reader.Query())))
	require.NoError(t, err)

	orders, err := v.Route("Orders").
		HandleFunc(func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, "v1") },
			versioning.Versions(apiversioning.New(1, 0))).
		HandleFunc(func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, "v2") },
			versioning.Versions(apiversioning.New(2, 0))).
		Build()
	require.NoError(t, err)

	e := echo.New()
	e.GET("/:version/orders", Handler(orders))

	tests := []struct {
		target string
		code   int
		body   string
	}{
		{"/v1/orders", http.StatusOK, "v1"},
		{"/v2/orders", http.StatusOK, "v2"},
		{"/v2/orders?api-version=1.0", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.target, nil))

		assert.Equal(t, tt.code, w.Code, tt.target)
		if tt.body != "" {
			assert.Equal(t, tt.body, w.Body.String(), tt.target)
		}
	}
}
