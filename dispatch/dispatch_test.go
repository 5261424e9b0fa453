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

package dispatch

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/reader"
	"rivaas.dev/apiversioning/request"
	"rivaas.dev/apiversioning/selector"
)

func vs(texts ...string) []apiversioning.Version {
	out := make([]apiversioning.Version, len(texts))
	for i, s := range texts {
		out[i] = apiversioning.MustParse(s)
	}
	return out
}

// ordersAPI builds the candidates of GET /orders: one endpoint for 1.0 and
// 0.9, one for 2.0, and a neutral one when neutral is set.
func ordersAPI(neutral bool) []Candidate {
	v1 := apiversioning.NewModel(apiversioning.ModelSpec{Supported: vs("1.0"), Deprecated: vs("0.9")})
	v2 := apiversioning.NewModel(apiversioning.ModelSpec{Supported: vs("2.0")})
	api := apiversioning.AggregateAll(v1, v2)

	candidates := []Candidate{
		{ID: "orders-v1", Metadata: apiversioning.NewMetadata(api, v1, "Orders")},
		{ID: "orders-v2", Metadata: apiversioning.NewMetadata(api, v2, "Orders")},
	}
	if neutral {
		candidates = append(candidates, Candidate{ID: "orders-any", Metadata: apiversioning.NeutralMetadata("Orders")})
	}
	return candidates
}

func resolve(target string) (*http.Request, *request.Feature) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return req, request.Resolve(req, reader.Query())
}

func TestSelectMatches(t *testing.T) {
	t.Parallel()

	policy := Policy{Selector: selector.Default(apiversioning.New(2, 0)), AssumeDefault: true}

	tests := []struct {
		name    string
		target  string
		want    string
		version string
	}{
		{"explicit 1.0", "/orders?api-version=1", "orders-v1", "1"},
		{"deprecated version still routes", "/orders?api-version=0.9", "orders-v1", "0.9"},
		{"explicit 2.0", "/orders?api-version=2.0", "orders-v2", "2.0"},
		{"default applies", "/orders", "orders-v2", "2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			candidates := ordersAPI(false)
			req, f := resolve(tt.target)
			res := policy.Select(req, f, candidates)

			require.Equal(t, Matched, res.Outcome, "%v", res.Err)
			require.NoError(t, res.Err)
			assert.Equal(t, tt.want, candidates[res.Index].ID)
			assert.Equal(t, tt.version, res.Version.String())
			assert.Equal(t, apiversioning.MappingExplicit, res.Mapping)
		})
	}
}

func TestSelectFailures(t *testing.T) {
	t.Parallel()

	t.Run("ambiguous version short-circuits", func(t *testing.T) {
		t.Parallel()

		req, f := resolve("/orders?api-version=1.0&api-version=2.0")
		res := Policy{}.Select(req, f, ordersAPI(false))

		assert.Equal(t, AmbiguousVersion, res.Outcome)
		require.ErrorIs(t, res.Err, request.ErrAmbiguousVersion)
		assert.Equal(t, -1, res.Index)
		assert.True(t, res.Model.IsEmpty(), "candidates are not inspected")
	})

	t.Run("unsupported lists supported versions", func(t *testing.T) {
		t.Parallel()

		req, f := resolve("/orders?api-version=3.0")
		res := Policy{}.Select(req, f, ordersAPI(false))

		assert.Equal(t, Unsupported, res.Outcome)
		require.ErrorIs(t, res.Err, ErrUnsupportedVersion)
		assert.Equal(t, "the requested API version is not supported: 3.0", res.Err.Error())
		assert.Equal(t, "3.0", res.Version.String())

		var supported []string
		for _, v := range res.Model.Supported() {
			supported = append(supported, v.String())
		}
		assert.Equal(t, []string{"1.0", "2.0"}, supported)
		assert.Len(t, res.Model.Deprecated(), 1)
	})

	t.Run("unspecified without default", func(t *testing.T) {
		t.Parallel()

		req, f := resolve("/orders")
		res := Policy{Selector: selector.Default(apiversioning.New(1, 0))}.Select(req, f, ordersAPI(false))

		assert.Equal(t, Unspecified, res.Outcome)
		require.ErrorIs(t, res.Err, ErrUnspecifiedVersion)
	})

	t.Run("selector failure", func(t *testing.T) {
		t.Parallel()

		req, f := resolve("/orders")
		res := Policy{Selector: selector.Default(apiversioning.Version{}), AssumeDefault: true}.Select(req, f, ordersAPI(false))

		assert.Equal(t, Unspecified, res.Outcome)
		require.ErrorIs(t, res.Err, ErrUnspecifiedVersion)
		require.ErrorIs(t, res.Err, selector.ErrNoCompatibleVersion)
	})

	t.Run("invalid sole value", func(t *testing.T) {
		t.Parallel()

		req, f := resolve("/orders?api-version=latest")
		res := Policy{Selector: selector.Default(apiversioning.New(1, 0)), AssumeDefault: true}.Select(req, f, ordersAPI(false))

		assert.Equal(t, Invalid, res.Outcome)
		require.ErrorIs(t, res.Err, ErrInvalidVersion)
		assert.Contains(t, res.Err.Error(), `"latest"`)
	})

	t.Run("ambiguous endpoint", func(t *testing.T) {
		t.Parallel()

		candidates := ordersAPI(false)
		dup := apiversioning.NewModel(apiversioning.ModelSpec{Supported: vs("2.0")})
		candidates = append(candidates, Candidate{
			ID:       "orders-v2-copy",
			Metadata: apiversioning.NewMetadata(candidates[1].Metadata.API(), dup, "Orders"),
		})

		req, f := resolve("/orders?api-version=2.0")
		res := Policy{}.Select(req, f, candidates)

		assert.Equal(t, AmbiguousEndpoint, res.Outcome)
		var amb *AmbiguousEndpointError
		require.ErrorAs(t, res.Err, &amb)
		assert.Equal(t, []string{"orders-v2", "orders-v2-copy"}, amb.Endpoints)
		require.ErrorIs(t, res.Err, ErrAmbiguousEndpoint)

		require.ErrorIs(t, Conflicts(candidates), ErrAmbiguousEndpoint)
		assert.NoError(t, Conflicts(ordersAPI(true)))
	})
}

func TestSelectNeutral(t *testing.T) {
	t.Parallel()

	t.Run("versioned endpoint wins over neutral", func(t *testing.T) {
		t.Parallel()

		candidates := ordersAPI(true)
		req, f := resolve("/orders?api-version=1.0")
		res := Policy{}.Select(req, f, candidates)
		require.Equal(t, Matched, res.Outcome)
		assert.Equal(t, "orders-v1", candidates[res.Index].ID)
	})

	t.Run("neutral catches unmatched versions", func(t *testing.T) {
		t.Parallel()

		candidates := ordersAPI(true)
		req, f := resolve("/orders?api-version=7.0")
		res := Policy{}.Select(req, f, candidates)
		require.Equal(t, Matched, res.Outcome)
		assert.Equal(t, "orders-any", candidates[res.Index].ID)
		assert.Equal(t, "7.0", res.Version.String())
	})

	t.Run("neutral without version", func(t *testing.T) {
		t.Parallel()

		candidates := ordersAPI(true)
		req, f := resolve("/orders")
		res := Policy{}.Select(req, f, candidates)
		require.Equal(t, Matched, res.Outcome)
		assert.Equal(t, "orders-any", candidates[res.Index].ID)
		assert.True(t, res.Version.IsZero())
	})

	t.Run("only neutral accepts invalid values", func(t *testing.T) {
		t.Parallel()

		candidates := []Candidate{{ID: "health", Metadata: apiversioning.NeutralMetadata("Health")}}
		req, f := resolve("/health?api-version=bogus")
		res := Policy{}.Select(req, f, candidates)
		require.Equal(t, Matched, res.Outcome)
		assert.Equal(t, 0, res.Index)
	})

	t.Run("two neutral endpoints conflict", func(t *testing.T) {
		t.Parallel()

		candidates := []Candidate{
			{ID: "a", Metadata: apiversioning.NeutralMetadata("A")},
			{ID: "b", Metadata: apiversioning.NeutralMetadata("B")},
		}
		req, f := resolve("/x")
		res := Policy{}.Select(req, f, candidates)
		assert.Equal(t, AmbiguousEndpoint, res.Outcome)
		require.ErrorIs(t, Conflicts(candidates), ErrAmbiguousEndpoint)
	})

	t.Run("no candidates", func(t *testing.T) {
		t.Parallel()

		req, f := resolve("/x?api-version=1.0")
		res := Policy{}.Select(req, f, nil)
		assert.Equal(t, Unsupported, res.Outcome)
	})
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	for o, want := range map[Outcome]string{
		Matched:           "matched",
		Unspecified:       "unspecified",
		Unsupported:       "unsupported",
		Invalid:           "invalid",
		AmbiguousVersion:  "ambiguous_version",
		AmbiguousEndpoint: "ambiguous_endpoint",
		Outcome(99):       "unknown",
	} {
		assert.Equal(t, want, o.String())
	}
}
