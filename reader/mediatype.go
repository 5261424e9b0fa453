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

package reader

import (
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/munnerz/goautoneg"
)

// DefaultMediaTypeParameter is the media type parameter read by default:
//
//	Accept: application/json; v=2.0
const DefaultMediaTypeParameter = "v"

type selection uint8

const (
	selectAll selection = iota
	selectFirst
	selectLast
)

// MediaTypeOption configures the reader returned by [MediaType].
type MediaTypeOption func(*mediaTypeReader) error

// WithParameterName reads the named media type parameter instead of "v".
func WithParameterName(name string) MediaTypeOption {
	return func(m *mediaTypeReader) error {
		if name == "" {
			return ErrEmptyParameterName
		}
		m.name = name
		return nil
	}
}

// WithTemplate reads the version from the media type itself:
//
//	reader.WithTemplate("application/vnd.acme.v{version}+json")
func WithTemplate(template string) MediaTypeOption {
	return func(m *mediaTypeReader) error {
		open := strings.IndexByte(template, '{')
		end := strings.IndexByte(template, '}')
		if open < 0 || end < open+2 {
			return fmt.Errorf("%w: %q", ErrMissingPlaceholder, template)
		}
		m.prefix = strings.ToLower(template[:open])
		m.suffix = strings.ToLower(template[end+1:])
		m.name = template[open+1 : end]
		m.template = true
		return nil
	}
}

// WithInclude limits reading to the listed media types, such as
// "application/json". Parameters in the list are ignored.
func WithInclude(mediaTypes ...string) MediaTypeOption {
	return func(m *mediaTypeReader) error {
		for _, mt := range mediaTypes {
			mt, _, _ = strings.Cut(mt, ";")
			mt = strings.ToLower(strings.TrimSpace(mt))
			if mt == "" {
				return ErrEmptyMediaType
			}
			if m.include == nil {
				m.include = make(map[string]struct{}, len(mediaTypes))
			}
			m.include[mt] = struct{}{}
		}
		return nil
	}
}

// SelectFirst keeps only the first version found, which for Accept is the
// one with the highest quality.
func SelectFirst() MediaTypeOption {
	return func(m *mediaTypeReader) error {
		m.selection = selectFirst
		return nil
	}
}

// SelectLast keeps only the last version found.
func SelectLast() MediaTypeOption {
	return func(m *mediaTypeReader) error {
		m.selection = selectLast
		return nil
	}
}

type mediaTypeReader struct {
	name      string
	include   map[string]struct{}
	template  bool
	prefix    string
	suffix    string
	selection selection
}

// MediaType returns a reader for versions carried by media types in the
// Accept and Content-Type headers. Accept entries are visited by descending
// quality; entries with q=0 are skipped.
func MediaType(opts ...MediaTypeOption) (Reader, error) {
	m := &mediaTypeReader{name: DefaultMediaTypeParameter}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("invalid media type option: %w", err)
		}
	}
	return m, nil
}

func (m *mediaTypeReader) Read(r *http.Request) []Candidate {
	if r == nil {
		return nil
	}

	var out []Candidate

	if accept := strings.Join(r.Header.Values("Accept"), ","); accept != "" {
		for _, a := range goautoneg.ParseAccept(accept) {
			if a.Q <= 0 {
				continue
			}
			if v, ok := m.extract(a.Type+"/"+a.SubType, a.Params); ok {
				out = appendCandidate(out, v, LocationMediaType, m.name)
			}
		}
	}

	if ct := r.Header.Get("Content-Type"); ct != "" {
		if mt, params, err := mime.ParseMediaType(ct); err == nil {
			if v, ok := m.extract(mt, params); ok {
				out = appendCandidate(out, v, LocationMediaType, m.name)
			}
		}
	}

	switch {
	case len(out) < 2:
		return out
	case m.selection == selectFirst:
		return out[:1]
	case m.selection == selectLast:
		return out[len(out)-1:]
	default:
		return out
	}
}

func (m *mediaTypeReader) extract(mediaType string, params map[string]string) (string, bool) {
	mediaType = strings.ToLower(mediaType)

	if m.include != nil {
		if _, ok := m.include[mediaType]; !ok {
			return "", false
		}
	}

	if m.template {
		if len(mediaType) <= len(m.prefix)+len(m.suffix) ||
			!strings.HasPrefix(mediaType, m.prefix) ||
			!strings.HasSuffix(mediaType, m.suffix) {
			return "", false
		}
		return mediaType[len(m.prefix) : len(mediaType)-len(m.suffix)], true
	}

	for k, v := range params {
		if strings.EqualFold(k, m.name) {
			return strings.Trim(v, `"`), true
		}
	}
	return "", false
}

func (m *mediaTypeReader) AddParameters(ctx DescriptionContext) {
	ctx.AddParameter(m.name, LocationMediaType)
}
