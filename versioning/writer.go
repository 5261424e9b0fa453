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

package versioning

import (
	"bufio"
	"net"
	"net/http"
	"strings"
)

// reportingWriter runs before on the response headers right before they are
// sent, so reports land ahead of the status line whatever the handler does.
type reportingWriter struct {
	http.ResponseWriter
	before func(http.Header)
	done   bool
}

func (rw *reportingWriter) prepare() {
	if rw.done {
		return
	}
	rw.done = true
	rw.before(rw.ResponseWriter.Header())
}

// WriteHeader reports, then writes the status line.
func (rw *reportingWriter) WriteHeader(code int) {
	rw.prepare()
	rw.ResponseWriter.WriteHeader(code)
}

// Write reports before the first write.
func (rw *reportingWriter) Write(b []byte) (int, error) {
	rw.prepare()
	return rw.ResponseWriter.Write(b)
}

// Flush implements http.Flusher.
func (rw *reportingWriter) Flush() {
	rw.prepare()
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack implements http.Hijacker.
func (rw *reportingWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Unwrap returns the wrapped writer for http.ResponseController.
func (rw *reportingWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// addVary appends names to the Vary header unless already listed.
func addVary(h http.Header, names ...string) {
	for _, name := range names {
		if !hasToken(h.Values("Vary"), name) {
			h.Add("Vary", name)
		}
	}
}

func hasToken(values []string, token string) bool {
	for _, v := range values {
		for t := range strings.SplitSeq(v, ",") {
			t = strings.TrimSpace(t)
			if t == "*" || strings.EqualFold(t, token) {
				return true
			}
		}
	}
	return false
}
