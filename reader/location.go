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

import "strings"

// Location is a part of a request that can carry an API version.
type Location uint8

// Supported locations.
const (
	LocationQuery Location = iota + 1
	LocationHeader
	LocationPath
	LocationMediaType
)

// String returns the lowercase location name used in logs and metrics.
func (l Location) String() string {
	switch l {
	case LocationQuery:
		return "query"
	case LocationHeader:
		return "header"
	case LocationPath:
		return "path"
	case LocationMediaType:
		return "media_type"
	default:
		return "unknown"
	}
}

// DescriptionContext receives the parameters a source reads from.
type DescriptionContext interface {
	AddParameter(name string, location Location)
}

// ParameterSource describes where it reads API versions.
// AddParameters calls ctx.AddParameter once per parameter, in declaration order.
type ParameterSource interface {
	AddParameters(ctx DescriptionContext)
}

// VersionsByQueryString reports whether src reads a query parameter.
// With allowMultiple false, src must read from no other location.
func VersionsByQueryString(src ParameterSource, allowMultiple bool) bool {
	return describe(src, LocationQuery).versionsBy(allowMultiple)
}

// VersionsByHeader reports whether src reads a header.
// With allowMultiple false, src must read from no other location.
func VersionsByHeader(src ParameterSource, allowMultiple bool) bool {
	return describe(src, LocationHeader).versionsBy(allowMultiple)
}

// VersionsByURL reports whether src reads a path segment.
// With allowMultiple false, src must read from no other location.
func VersionsByURL(src ParameterSource, allowMultiple bool) bool {
	return describe(src, LocationPath).versionsBy(allowMultiple)
}

// VersionsByMediaType reports whether src reads a media type parameter.
// With allowMultiple false, src must read from no other location.
func VersionsByMediaType(src ParameterSource, allowMultiple bool) bool {
	return describe(src, LocationMediaType).versionsBy(allowMultiple)
}

// ParameterName returns the first parameter name src declares at location,
// or "" if it declares none.
func ParameterName(src ParameterSource, location Location) string {
	return describe(src, location).name
}

// ParameterNames returns the distinct parameter names src declares at
// location, compared case-insensitively, in declaration order.
func ParameterNames(src ParameterSource, location Location) []string {
	return describe(src, location).names
}

// descriptionContext collects the parameters of one location.
type descriptionContext struct {
	location Location
	seen     map[Location]struct{}
	match    bool
	name     string
	names    []string
}

func describe(src ParameterSource, location Location) *descriptionContext {
	ctx := &descriptionContext{location: location, seen: make(map[Location]struct{}, 4)}
	if src != nil {
		src.AddParameters(ctx)
	}
	return ctx
}

func (c *descriptionContext) AddParameter(name string, location Location) {
	c.seen[location] = struct{}{}

	if location != c.location {
		return
	}
	c.match = true

	if c.name == "" {
		c.name = name
	}
	for _, n := range c.names {
		if strings.EqualFold(n, name) {
			return
		}
	}
	c.names = append(c.names, name)
}

func (c *descriptionContext) versionsBy(allowMultiple bool) bool {
	return c.match && (allowMultiple || len(c.seen) == 1)
}
