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

package settings

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Format names a document encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Decoder decodes a document into v.
type Decoder interface {
	Decode(data []byte, v any) error
}

// DecoderFunc adapts a function to [Decoder].
type DecoderFunc func(data []byte, v any) error

// Decode implements [Decoder].
func (f DecoderFunc) Decode(data []byte, v any) error { return f(data, v) }

var decoders = map[Format]Decoder{
	FormatYAML: DecoderFunc(yaml.Unmarshal),
	FormatTOML: DecoderFunc(toml.Unmarshal),
	FormatJSON: DecoderFunc(json.Unmarshal),
}

func decoderFor(f Format) (Decoder, error) {
	d, ok := decoders[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return d, nil
}

// FormatOf guesses the format of a file from its extension.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}
