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

package versioning_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/versioning"
)

func ExampleVersioning_Route() {
	v, err := versioning.New(versioning.WithDefaultVersion(apiversioning.New(1, 0)))
	if err != nil {
		panic(err)
	}

	orders, err := v.Route("Orders").
		HandleFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "orders v1")
		}, versioning.Versions(apiversioning.New(1, 0))).
		HandleFunc(func(w http.ResponseWriter, r *http.Request) {
			version, _ := versioning.RequestedVersion(r.Context())
			fmt.Fprintf(w, "orders %s", version)
		}, versioning.Versions(apiversioning.New(2, 0))).
		Build()
	if err != nil {
		panic(err)
	}

	for _, target := range []string{"/orders", "/orders?api-version=2.0", "/orders?api-version=3.0"} {
		w := httptest.NewRecorder()
		orders.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusOK {
			fmt.Println(w.Code, w.Header().Get("api-supported-versions"))
			continue
		}
		fmt.Println(w.Body.String())
	}
	// Output:
	// orders v1
	// orders 2.0
	// 400 1.0, 2.0
}
