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

package problem

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"rivaas.dev/apiversioning/telemetry/semconv"
)

// ContentType is the media type of problem responses.
const ContentType = "application/problem+json; charset=utf-8"

// Formatter converts an error into an HTTP response.
type Formatter interface {
	Format(req *http.Request, err error) Response
}

// Response is a formatted error response.
type Response struct {
	Status      int
	ContentType string
	Body        any
	// Headers are set on the response in addition to Content-Type.
	Headers http.Header
}

// Write sends the response.
func (r Response) Write(w http.ResponseWriter) error {
	h := w.Header()
	for k, vs := range r.Headers {
		for _, v := range vs {
			h.Add(k, v)
		}
	}
	h.Set("Content-Type", r.ContentType)
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(r.Status)

	if r.Body == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(r.Body)
}

// Detail is an RFC 9457 problem detail. Extensions are marshaled inline.
type Detail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"-"`
}

// MarshalJSON merges the extensions into the problem object. Extensions
// cannot override the standard members.
func (d Detail) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"type":   d.Type,
		"title":  d.Title,
		"status": d.Status,
	}
	if d.Detail != "" {
		m["detail"] = d.Detail
	}
	if d.Instance != "" {
		m["instance"] = d.Instance
	}
	for k, v := range d.Extensions {
		if k != "type" && k != "title" && k != "status" && k != "detail" && k != "instance" {
			m[k] = v
		}
	}

	return json.Marshal(m)
}

// RFC9457 formats errors as problem details. Errors that are not an
// [*Error] become an about:blank problem with status 500.
type RFC9457 struct {
	// TypeResolver overrides the problem type URI.
	TypeResolver func(err error) string

	// ErrorIDGenerator generates IDs that correlate responses with logs.
	// If nil, random IDs are used.
	ErrorIDGenerator func() string

	// DisableErrorID disables the error_id member.
	DisableErrorID bool
}

// NewRFC9457 creates a formatter with the default settings.
func NewRFC9457() *RFC9457 {
	return &RFC9457{}
}

// Format implements [Formatter].
func (f *RFC9457) Format(req *http.Request, err error) Response {
	kind := Kind{
		Type:   "about:blank",
		Title:  http.StatusText(http.StatusInternalServerError),
		Status: http.StatusInternalServerError,
	}
	ext := make(map[string]any)

	var pe *Error
	if errors.As(err, &pe) {
		kind = pe.Kind
		for k, v := range pe.Extensions() {
			ext[k] = v
		}
	}
	if kind.Code != "" {
		ext["code"] = kind.Code
	}
	if f.TypeResolver != nil {
		kind.Type = f.TypeResolver(err)
	}

	if !f.DisableErrorID {
		if f.ErrorIDGenerator != nil {
			ext[semconv.ErrorID] = f.ErrorIDGenerator()
		} else {
			ext[semconv.ErrorID] = generateErrorID()
		}
	}

	d := Detail{
		Type:       kind.Type,
		Title:      kind.Title,
		Status:     kind.Status,
		Extensions: ext,
	}
	if err != nil {
		d.Detail = err.Error()
	}
	if req != nil && req.URL != nil {
		d.Instance = req.URL.Path
	}

	return Response{
		Status:      kind.Status,
		ContentType: ContentType,
		Body:        d,
	}
}

// generateErrorID returns a random ID, or a timestamp-based one if the
// random source fails.
func generateErrorID() string {
	b := make([]byte, 16) //nolint:makezero // crypto/rand.Read requires pre-allocated buffer
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("err-%d", time.Now().UnixNano())
	}

	return "err-" + hex.EncodeToString(b)
}
