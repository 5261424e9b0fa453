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

package apiversioning

// Mapping selects which model of a [Metadata] a caller is interested in.
type Mapping uint8

const (
	// MappingNone means the endpoint does not map to a version.
	MappingNone Mapping = 0
	// MappingExplicit selects the versions declared on the endpoint itself.
	MappingExplicit Mapping = 1
	// MappingImplicit selects the versions inherited from the API.
	MappingImplicit Mapping = 2
)

// String returns a readable name for the mapping.
func (m Mapping) String() string {
	switch m {
	case MappingNone:
		return "none"
	case MappingExplicit:
		return "explicit"
	case MappingImplicit:
		return "implicit"
	case MappingExplicit | MappingImplicit:
		return "explicit|implicit"
	default:
		return "unknown"
	}
}

// Metadata pairs the aggregated model of an API with the model of one of its
// endpoints. Name is the key used to look up lifecycle policies.
type Metadata struct {
	api      Model
	endpoint Model
	merged   Model
	name     string
}

// NewMetadata creates metadata for an endpoint of the named API.
func NewMetadata(api, endpoint Model, name string) *Metadata {
	md := &Metadata{api: api, endpoint: endpoint, name: name}

	if api.IsNeutral() || endpoint.IsNeutral() {
		md.merged = NeutralModel()
	} else {
		md.merged = api.Aggregate(endpoint)
	}

	return md
}

// NeutralMetadata creates metadata for a version-neutral endpoint.
func NeutralMetadata(name string) *Metadata {
	return NewMetadata(NeutralModel(), NeutralModel(), name)
}

// Name returns the API name.
func (md *Metadata) Name() string { return md.name }

// API returns the aggregated model of the API.
func (md *Metadata) API() Model { return md.api }

// Endpoint returns the model declared by the endpoint.
func (md *Metadata) Endpoint() Model { return md.endpoint }

// IsNeutral reports whether the endpoint accepts any version.
func (md *Metadata) IsNeutral() bool {
	return md.api.IsNeutral() || md.endpoint.IsNeutral()
}

// Map returns the model selected by mapping. Asking for both explicit and
// implicit versions returns their union.
func (md *Metadata) Map(mapping Mapping) Model {
	switch mapping {
	case MappingExplicit:
		return md.endpoint
	case MappingImplicit:
		return md.api
	case MappingExplicit | MappingImplicit:
		return md.merged
	default:
		return EmptyModel()
	}
}

// MappingTo reports how the endpoint maps to v.
//
// An endpoint that declares versions of its own maps only to those. One that
// declares none inherits every version its API implements.
func (md *Metadata) MappingTo(v Version) Mapping {
	if md.IsNeutral() {
		return MappingImplicit
	}
	if md.endpoint.Declares(v) {
		return MappingExplicit
	}
	if len(md.endpoint.declared) > 0 {
		return MappingNone
	}
	if md.api.Implements(v) {
		return MappingImplicit
	}
	return MappingNone
}

// IsMappedTo reports whether the endpoint handles v.
func (md *Metadata) IsMappedTo(v Version) bool {
	return md.MappingTo(v) != MappingNone
}
