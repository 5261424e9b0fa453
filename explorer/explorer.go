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

// Package explorer describes how an API is versioned in OpenAPI 3 documents.
//
// The parameters come from the readers' own descriptions, so documents stay
// in step with what requests are actually read from:
//
//	ex := explorer.ForVersioning(v)
//	op := &openapi3.Operation{OperationID: "listOrders", Responses: openapi3.NewResponses()}
//	ex.Apply(op, md)
package explorer

import (
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/samber/lo"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/reader"
	"rivaas.dev/apiversioning/versioning"
)

// Operation extensions written by [Explorer.Apply].
const (
	ExtensionSupportedVersions  = "x-api-supported-versions"
	ExtensionDeprecatedVersions = "x-api-deprecated-versions"
	ExtensionMediaTypeParameter = "x-api-version-media-type-parameter"
)

const defaultDescription = "The requested API version"

// Explorer derives OpenAPI parameters from a version reader.
type Explorer struct {
	src         reader.ParameterSource
	def         apiversioning.Version
	required    bool
	description string
}

// Option configures an [Explorer].
type Option func(*Explorer)

// WithDefaultVersion documents v as the default of the version parameters.
func WithDefaultVersion(v apiversioning.Version) Option {
	return func(e *Explorer) { e.def = v }
}

// WithRequired marks query and header parameters as required. Path
// parameters are always required.
func WithRequired(required bool) Option {
	return func(e *Explorer) { e.required = required }
}

// WithDescription sets the parameter description.
func WithDescription(s string) Option {
	return func(e *Explorer) { e.description = s }
}

// New creates an explorer for the parameters src reads.
func New(src reader.ParameterSource, opts ...Option) *Explorer {
	e := &Explorer{src: src, description: defaultDescription}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ForVersioning creates an explorer matching the configuration of v. The
// version parameters are required when v does not assume a default.
func ForVersioning(v *versioning.Versioning, opts ...Option) *Explorer {
	cfg := v.Config()
	base := []Option{WithRequired(!cfg.AssumeDefault)}
	if cfg.AssumeDefault {
		base = append(base, WithDefaultVersion(cfg.DefaultVersion))
	}
	return New(cfg.Reader, append(base, opts...)...)
}

type param struct {
	name     string
	location reader.Location
}

type collector struct {
	params []param
}

func (c *collector) AddParameter(name string, location reader.Location) {
	p := param{name: name, location: location}
	if !slices.Contains(c.params, p) {
		c.params = append(c.params, p)
	}
}

func (e *Explorer) describe() []param {
	c := &collector{}
	if e.src != nil {
		e.src.AddParameters(c)
	}
	return c.params
}

// Parameters returns one parameter per query parameter, header and route
// value the reader reads, in the order the reader describes them. The
// versions, if any, become the schema's enum.
func (e *Explorer) Parameters(versions ...apiversioning.Version) openapi3.Parameters {
	var params openapi3.Parameters
	for _, p := range e.describe() {
		var op *openapi3.Parameter
		switch p.location {
		case reader.LocationQuery:
			op = openapi3.NewQueryParameter(p.name).WithRequired(e.required)
		case reader.LocationHeader:
			op = openapi3.NewHeaderParameter(p.name).WithRequired(e.required)
		case reader.LocationPath:
			op = openapi3.NewPathParameter(p.name)
		default:
			continue
		}
		op.Description = e.description
		op.Schema = e.schema(versions).NewRef()
		params = append(params, &openapi3.ParameterRef{Value: op})
	}
	return params
}

// MediaTypeParameters returns the media type parameters the reader reads.
// OpenAPI has no parameter kind for them.
func (e *Explorer) MediaTypeParameters() []string {
	return lo.FilterMap(e.describe(), func(p param, _ int) (string, bool) {
		return p.name, p.location == reader.LocationMediaType
	})
}

func (e *Explorer) schema(versions []apiversioning.Version) *openapi3.Schema {
	s := openapi3.NewStringSchema()
	if len(versions) > 0 {
		s.Enum = lo.Map(versions, func(v apiversioning.Version, _ int) any { return v.String() })
	}
	if !e.def.IsZero() && !e.required {
		s.Default = e.def.String()
	}
	return s
}

// Apply documents the versions of the endpoint described by md on op.
// Version-neutral endpoints are left alone. Parameters op already has are
// kept; an operation whose every version is deprecated is marked
// deprecated.
func (e *Explorer) Apply(op *openapi3.Operation, md *apiversioning.Metadata) {
	if op == nil || md == nil || md.IsNeutral() {
		return
	}

	model := md.Endpoint()
	if len(model.Declared()) == 0 {
		model = md.API()
	}
	implemented := model.Implemented()

	for _, ref := range e.Parameters(implemented...) {
		if op.Parameters.GetByInAndName(ref.Value.In, ref.Value.Name) == nil {
			op.Parameters = append(op.Parameters, ref)
		}
	}

	if op.Extensions == nil {
		op.Extensions = make(map[string]any)
	}
	if supported := md.API().Supported(); len(supported) > 0 {
		op.Extensions[ExtensionSupportedVersions] = texts(supported)
	}
	if deprecated := md.API().Deprecated(); len(deprecated) > 0 {
		op.Extensions[ExtensionDeprecatedVersions] = texts(deprecated)
	}
	if names := e.MediaTypeParameters(); len(names) > 0 {
		op.Extensions[ExtensionMediaTypeParameter] = names[0]
	}

	if len(implemented) > 0 && lo.EveryBy(implemented, model.Deprecates) {
		op.Deprecated = true
	}
}

func texts(vs []apiversioning.Version) []string {
	return lo.Map(vs, func(v apiversioning.Version, _ int) string { return v.String() })
}

// Describe documents md on the operation for method and path of doc,
// creating the path item and the operation if needed. Route value
// parameters that the path template does not contain are dropped.
func (e *Explorer) Describe(doc *openapi3.T, path, method string, md *apiversioning.Metadata) *openapi3.Operation {
	if doc.Paths == nil {
		doc.Paths = openapi3.NewPaths()
	}
	item := doc.Paths.Value(path)
	if item == nil {
		item = &openapi3.PathItem{}
		doc.Paths.Set(path, item)
	}
	op := item.GetOperation(method)
	if op == nil {
		op = openapi3.NewOperation()
		op.Responses = openapi3.NewResponses()
		item.SetOperation(method, op)
	}

	e.Apply(op, md)
	op.Parameters = lo.Filter(op.Parameters, func(ref *openapi3.ParameterRef, _ int) bool {
		p := ref.Value
		return p == nil || p.In != openapi3.ParameterInPath || strings.Contains(path, "{"+p.Name+"}")
	})
	return op
}
