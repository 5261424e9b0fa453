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
	"reflect"
	"strings"
	"time"

	"rivaas.dev/apiversioning"
)

// Selector names.
const (
	SelectorDefault = "default"
	SelectorCurrent = "current"
	SelectorLowest  = "lowest"
)

// Reader types.
const (
	ReaderQuery     = "query"
	ReaderHeader    = "header"
	ReaderURL       = "url"
	ReaderPath      = "path"
	ReaderMediaType = "media-type"
)

// Settings configure versioning.
type Settings struct {
	// DefaultVersion is the version of requests that carry none.
	DefaultVersion apiversioning.Version `config:"default_version"`
	// AssumeDefault serves requests without a version with the default.
	AssumeDefault *bool `config:"assume_default"`
	// Selector chooses the version of requests without one.
	Selector string `config:"selector" validate:"omitempty,oneof=default current lowest"`
	// ReportVersions enables the version and lifecycle headers.
	ReportVersions *bool `config:"report_versions"`
	EnforceSunset  bool  `config:"enforce_sunset"`
	Warning299     bool  `config:"warning_299"`

	// Readers are combined in order. None means the default readers.
	Readers []ReaderSettings `config:"readers" validate:"dive"`

	Sunset      []PolicySettings `config:"sunset" validate:"dive"`
	Deprecation []PolicySettings `config:"deprecation" validate:"dive"`

	Telemetry TelemetrySettings `config:"telemetry"`
}

// ReaderSettings describe one version reader.
type ReaderSettings struct {
	Type string `config:"type" validate:"required,oneof=query header url path media-type"`
	// Names are the query parameters or headers read, or the route
	// parameter of a url reader.
	Names []string `config:"names" validate:"dive,required"`
	// Pattern is the path pattern of a path reader.
	Pattern string `config:"pattern"`
	// Parameter is the media type parameter of a media-type reader.
	Parameter string `config:"parameter"`
	// Template is the vendor media type template of a media-type reader.
	Template string   `config:"template"`
	Include  []string `config:"include" validate:"dive,required"`
	Select   string   `config:"select" validate:"omitempty,oneof=all first last"`
}

// PolicySettings describe a sunset or deprecation policy for an API name,
// a version, or a version of a named API.
type PolicySettings struct {
	Name    string                `config:"name"`
	Version apiversioning.Version `config:"version"`
	// Date is when the policy takes effect. Dates without a time are
	// midnight UTC.
	Date  time.Time      `config:"date"`
	Links []LinkSettings `config:"links" validate:"dive"`
}

// LinkSettings describe a policy link. The relation type is the policy's.
type LinkSettings struct {
	URL        string            `config:"url" validate:"required,uri"`
	Title      string            `config:"title"`
	Type       string            `config:"type"`
	Media      string            `config:"media"`
	Languages  []string          `config:"languages"`
	Extensions map[string]string `config:"extensions"`
}

// TelemetrySettings select the metric and span exporters.
type TelemetrySettings struct {
	ServiceName    string        `config:"service_name"`
	ServiceVersion string        `config:"service_version"`
	Metrics        string        `config:"metrics" validate:"omitempty,oneof=none prometheus otlp stdout"`
	Traces         string        `config:"traces" validate:"omitempty,oneof=none otlp otlp-grpc stdout"`
	Endpoint       string        `config:"endpoint"`
	Insecure       bool          `config:"insecure"`
	ExportInterval time.Duration `config:"export_interval" validate:"gte=0"`
}

// configTagName names fields in validation errors by their config key.
func configTagName(fld reflect.StructField) string {
	name := fld.Tag.Get("config")
	if name == "-" {
		return ""
	}
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	if name == "" {
		return fld.Name
	}
	return name
}
