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

package problem

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/dispatch"
	"rivaas.dev/apiversioning/reader"
	"rivaas.dev/apiversioning/request"
)

func candidates() []dispatch.Candidate {
	v1 := apiversioning.NewModel(apiversioning.ModelSpec{
		Supported:  []apiversioning.Version{apiversioning.New(1, 0)},
		Deprecated: []apiversioning.Version{apiversioning.MustParse("0.9")},
	})
	v2 := apiversioning.NewModel(apiversioning.ModelSpec{Supported: []apiversioning.Version{apiversioning.New(2, 0)}})
	api := apiversioning.AggregateAll(v1, v2)
	return []dispatch.Candidate{
		{ID: "v1", Metadata: apiversioning.NewMetadata(api, v1, "Orders")},
		{ID: "v2", Metadata: apiversioning.NewMetadata(api, v2, "Orders")},
	}
}

// problemFor dispatches a GET of target and formats the failure.
func problemFor(t *testing.T, target string) (Response, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	f := request.Resolve(req, reader.Combine(reader.Query(), reader.Header()))
	res := dispatch.Policy{}.Select(req, f, candidates())

	perr := FromResult(res, f)
	require.NotNil(t, perr)

	formatter := &RFC9457{ErrorIDGenerator: func() string { return "err-test" }}
	resp := formatter.Format(req, perr)

	raw, err := json.Marshal(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	return resp, body
}

func TestVersionProblems(t *testing.T) {
	t.Parallel()

	t.Run("unsupported", func(t *testing.T) {
		t.Parallel()

		resp, body := problemFor(t, "/orders?api-version=3.0")

		assert.Equal(t, http.StatusBadRequest, resp.Status)
		assert.Equal(t, ContentType, resp.ContentType)
		assert.Equal(t, TypeBase+"unsupported", body["type"])
		assert.Equal(t, "Unsupported API version", body["title"])
		assert.Equal(t, "UnsupportedApiVersion", body["code"])
		assert.Equal(t, "3.0", body["requested_version"])
		assert.Equal(t, []any{"1.0", "2.0"}, body["supported_versions"])
		assert.Equal(t, []any{"0.9"}, body["deprecated_versions"])
		assert.Equal(t, "/orders", body["instance"])
		assert.Equal(t, "err-test", body["error_id"])
	})

	t.Run("unspecified", func(t *testing.T) {
		t.Parallel()

		resp, body := problemFor(t, "/orders")

		assert.Equal(t, http.StatusBadRequest, resp.Status)
		assert.Equal(t, "ApiVersionUnspecified", body["code"])
		assert.NotContains(t, body, "requested_version")
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		resp, body := problemFor(t, "/orders?api-version=abc")

		assert.Equal(t, http.StatusBadRequest, resp.Status)
		assert.Equal(t, "InvalidApiVersion", body["code"])
		assert.Equal(t, "abc", body["requested_version"])
	})

	t.Run("ambiguous", func(t *testing.T) {
		t.Parallel()

		resp, body := problemFor(t, "/orders?api-version=1.0&api-version=2.0")

		assert.Equal(t, http.StatusBadRequest, resp.Status)
		assert.Equal(t, "AmbiguousApiVersion", body["code"])
		assert.Equal(t, "multiple different API versions requested: 1.0, 2.0", body["detail"])
		assert.Equal(t, []any{"1.0", "2.0"}, body["api_versions"])
		assert.NotContains(t, body, "requested_version")
	})
}

func TestFromResultMatched(t *testing.T) {
	t.Parallel()

	assert.Nil(t, FromResult(dispatch.Result{Outcome: dispatch.Matched}, nil))

	e := FromResult(dispatch.Result{Outcome: dispatch.AmbiguousEndpoint, Err: dispatch.ErrAmbiguousEndpoint}, nil)
	require.NotNil(t, e)
	assert.Equal(t, http.StatusInternalServerError, e.HTTPStatus())
	assert.Equal(t, "AmbiguousEndpoint", e.Code())
	require.ErrorIs(t, e, dispatch.ErrAmbiguousEndpoint)
}

func TestFormatPlainError(t *testing.T) {
	t.Parallel()

	f := NewRFC9457()
	f.DisableErrorID = true
	resp := f.Format(httptest.NewRequest(http.MethodGet, "/x", nil), errors.New("boom"))

	d, ok := resp.Body.(Detail)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "about:blank", d.Type)
	assert.Equal(t, "boom", d.Detail)
	assert.Empty(t, d.Extensions)
}

func TestDetailMarshalProtectsMembers(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(Detail{
		Type:       "about:blank",
		Title:      "Bad Request",
		Status:     http.StatusBadRequest,
		Extensions: map[string]any{"status": 999, "code": "X"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"about:blank","title":"Bad Request","status":400,"code":"X"}`, string(raw))
}

func TestResponseWrite(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	resp := Response{
		Status:      http.StatusGone,
		ContentType: ContentType,
		Body:        Detail{Type: Sunset.Type, Title: Sunset.Title, Status: Sunset.Status},
		Headers:     http.Header{"Sunset": {"Wed, 01 Jul 2026 00:00:00 GMT"}},
	}
	require.NoError(t, resp.Write(rec))

	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Equal(t, ContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "Wed, 01 Jul 2026 00:00:00 GMT", rec.Header().Get("Sunset"))
	assert.Contains(t, rec.Body.String(), `"status":410`)
}
