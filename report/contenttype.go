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

package report

import (
	"mime"
	"net/http"
	"strings"
)

// AddVersionToContentType adds the media type parameter name=raw to the
// response Content-Type, echoing the version a media type reader found.
// A Content-Type that already has the parameter, or none at all, is left
// untouched.
func AddVersionToContentType(h http.Header, name, raw string) {
	ct := h.Get("Content-Type")
	if ct == "" || name == "" || raw == "" {
		return
	}

	mediaType, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return
	}
	for k := range params {
		if strings.EqualFold(k, name) {
			return
		}
	}

	params[name] = raw
	if formatted := mime.FormatMediaType(mediaType, params); formatted != "" {
		h.Set("Content-Type", formatted)
	}
}
