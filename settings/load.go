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
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"rivaas.dev/apiversioning"
)

//go:embed schema.json
var schemaJSON []byte

const schemaName = "apiversioning-settings.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error

	validateOnce sync.Once
	validate     *validator.Validate
)

// Schema returns the JSON Schema settings documents are checked against.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		if err = compiler.AddResource(schemaName, doc); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = compiler.Compile(schemaName)
	})
	return schema, schemaErr
}

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(configTagName)
	})
	return validate
}

// Source loads one settings document.
type Source interface {
	Load(ctx context.Context) (map[string]any, error)
}

type fileSource struct {
	path   string
	format Format
}

func (s fileSource) Load(_ context.Context) (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return decode(data, s.format)
}

type contentSource struct {
	data   []byte
	format Format
}

func (s contentSource) Load(_ context.Context) (map[string]any, error) {
	return decode(s.data, s.format)
}

func decode(data []byte, format Format) (map[string]any, error) {
	d, err := decoderFor(format)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err = d.Decode(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return m, nil
}

type loader struct {
	sources []Source
}

// Option adds a source to [Load].
type Option func(*loader) error

// WithFile reads a file whose format follows from its extension.
func WithFile(path string) Option {
	return func(l *loader) error {
		format, err := FormatOf(path)
		if err != nil {
			return err
		}
		l.sources = append(l.sources, fileSource{path: path, format: format})
		return nil
	}
}

// WithFileAs reads a file in the given format.
func WithFileAs(path string, format Format) Option {
	return func(l *loader) error {
		if _, err := decoderFor(format); err != nil {
			return err
		}
		l.sources = append(l.sources, fileSource{path: path, format: format})
		return nil
	}
}

// WithContent reads an in-memory document.
//
// Example:
//
//	settings.WithContent([]byte(`{"default_version": "2.0"}`), settings.FormatJSON)
func WithContent(data []byte, format Format) Option {
	return func(l *loader) error {
		if _, err := decoderFor(format); err != nil {
			return err
		}
		l.sources = append(l.sources, contentSource{data: data, format: format})
		return nil
	}
}

// WithSource adds a custom source.
func WithSource(src Source) Option {
	return func(l *loader) error {
		if src == nil {
			return errors.New("source cannot be nil")
		}
		l.sources = append(l.sources, src)
		return nil
	}
}

// Load merges the sources, validates the result and decodes it.
//
// Errors:
//   - [ErrNoSources] if no source is given
//   - [*Error] if a source fails to load, the schema or the struct
//     validation fails, or the default version is neutral
func Load(ctx context.Context, opts ...Option) (*Settings, error) {
	l := &loader{}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if len(l.sources) == 0 {
		return nil, ErrNoSources
	}

	values, err := l.merge(ctx)
	if err != nil {
		return nil, err
	}

	s, err := compiledSchema()
	if err != nil {
		return nil, newError("json-schema", "compile", err)
	}
	if err = s.Validate(values); err != nil {
		return nil, newError("json-schema", "validate", err)
	}

	out := &Settings{}
	if err = bind(values, out); err != nil {
		return nil, newError("binding", "decode", err)
	}
	if err = out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// defaults are merged below every source.
func defaults() map[string]any {
	return map[string]any{
		"default_version": apiversioning.Default().String(),
		"selector":        SelectorDefault,
	}
}

// merge loads every source, lowercases its keys and merges it over the
// previous ones. The result is normalized to the JSON data model the
// schema validator expects.
func (l *loader) merge(ctx context.Context) (any, error) {
	values := defaults()
	for i, src := range l.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		conf, err := src.Load(ctx)
		if err != nil {
			return nil, newError(fmt.Sprintf("source[%d]", i), "load", err)
		}
		if conf == nil {
			continue
		}

		if err = mergo.Map(&values, normalizeMapKeys(conf), mergo.WithOverride); err != nil {
			return nil, newError(fmt.Sprintf("source[%d]", i), "merge", err)
		}
	}

	raw, err := json.Marshal(values)
	if err != nil {
		return nil, newError("merged", "normalize", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, newError("merged", "normalize", err)
	}
	return doc, nil
}

// normalizeMapKeys recursively lowercases map keys, including those of maps
// inside lists.
func normalizeMapKeys(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	normalized := make(map[string]any, len(m))
	for k, v := range m {
		normalized[strings.ToLower(k)] = normalizeValue(v)
	}
	return normalized
}

func normalizeValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return normalizeMapKeys(v)
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = normalizeMapKeys(m)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalizeValue(e)
		}
		return out
	default:
		return v
	}
}

func bind(values any, out *Settings) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "config",
		Squash:           true,
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			versionHookFunc(),
			dateHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err = decoder.Decode(values); err != nil {
		return fmt.Errorf("failed to decode settings: %w", err)
	}
	return nil
}

var versionType = reflect.TypeFor[apiversioning.Version]()

func versionHookFunc() mapstructure.DecodeHookFuncType {
	return func(f, t reflect.Type, data any) (any, error) {
		if t != versionType || f.Kind() != reflect.String {
			return data, nil
		}
		s := reflect.ValueOf(data).String()
		switch {
		case s == "":
			return apiversioning.Version{}, nil
		case strings.EqualFold(s, "neutral"):
			return apiversioning.Neutral(), nil
		}
		return apiversioning.Parse(s)
	}
}

// dateHookFunc accepts RFC 3339 timestamps and plain dates.
func dateHookFunc() mapstructure.DecodeHookFuncType {
	return func(f, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeFor[time.Time]() || f.Kind() != reflect.String {
			return data, nil
		}
		s := reflect.ValueOf(data).String()
		if s == "" {
			return time.Time{}, nil
		}
		if d, err := time.Parse(time.DateOnly, s); err == nil {
			return d, nil
		}
		return time.Parse(time.RFC3339, s)
	}
}

// Validate checks the struct constraints of s and the rules that span
// fields.
func (s *Settings) Validate() error {
	if err := structValidator().Struct(s); err != nil {
		return newError("binding", "validate", err)
	}
	if s.DefaultVersion.IsNeutral() {
		return &Error{Source: "binding", Field: "default_version", Operation: "validate", Err: ErrNeutralDefault}
	}
	for i, rs := range s.Readers {
		if err := rs.validate(); err != nil {
			return &Error{Source: "binding", Field: fmt.Sprintf("readers[%d]", i), Operation: "validate", Err: err}
		}
	}
	return nil
}

func (rs ReaderSettings) validate() error {
	switch rs.Type {
	case ReaderPath:
		if rs.Pattern == "" {
			return fmt.Errorf("%w: path readers need a pattern", ErrInvalidReader)
		}
	case ReaderURL:
		if len(rs.Names) > 1 {
			return fmt.Errorf("%w: url readers take one name", ErrInvalidReader)
		}
	}
	return nil
}
