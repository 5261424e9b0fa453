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

import "slices"

// ModelSpec lists the versions a routable unit declares.
type ModelSpec struct {
	// Declared are the versions stated at this level. When nil they default
	// to the implemented versions.
	Declared []Version
	// Supported are implemented and current.
	Supported []Version
	// Deprecated are implemented but on their way out.
	Deprecated []Version
	// Advertised are supported somewhere else and reported here for discovery.
	Advertised []Version
	// DeprecatedAdvertised are deprecated somewhere else.
	DeprecatedAdvertised []Version
	// Neutral marks a unit that accepts any version.
	Neutral bool
}

// Model describes the API versions of a routable unit.
//
// A Model is immutable. The zero value is the empty model: no versions and
// not version-neutral. All slices returned by its methods are sorted in
// ascending order and owned by the caller.
type Model struct {
	declared             []Version
	implemented          []Version
	supported            []Version
	deprecated           []Version
	advertised           []Version
	deprecatedAdvertised []Version
	neutral              bool
}

// EmptyModel returns the model with no versions.
func EmptyModel() Model {
	return Model{}
}

// NeutralModel returns the model of a version-neutral unit.
func NeutralModel() Model {
	return Model{neutral: true}
}

// NewModel builds a model from declarations.
// Duplicate versions collapse and zero versions are dropped.
func NewModel(spec ModelSpec) Model {
	if spec.Neutral {
		return NeutralModel()
	}

	supported := sortedSet(spec.Supported)
	deprecated := sortedSet(spec.Deprecated)
	advertised := sortedSet(spec.Advertised)
	deprecatedAdvertised := sortedSet(spec.DeprecatedAdvertised)

	m := Model{
		implemented:          union(supported, deprecated),
		advertised:           advertised,
		deprecatedAdvertised: deprecatedAdvertised,
	}
	m.supported = union(supported, advertised)
	m.deprecated = except(union(deprecated, deprecatedAdvertised), m.supported)

	if spec.Declared != nil {
		m.declared = sortedSet(spec.Declared)
	} else {
		m.declared = m.implemented
	}

	return m
}

// IsNeutral reports whether the unit accepts any version.
func (m Model) IsNeutral() bool { return m.neutral }

// IsEmpty reports whether the model holds no versions and is not neutral.
func (m Model) IsEmpty() bool {
	return !m.neutral &&
		len(m.declared) == 0 &&
		len(m.implemented) == 0 &&
		len(m.supported) == 0 &&
		len(m.deprecated) == 0
}

// Declared returns the versions stated at this level.
func (m Model) Declared() []Version { return slices.Clone(m.declared) }

// Implemented returns the supported and deprecated versions this unit implements.
func (m Model) Implemented() []Version { return slices.Clone(m.implemented) }

// Supported returns the supported versions, advertised ones included.
func (m Model) Supported() []Version { return slices.Clone(m.supported) }

// Deprecated returns the deprecated versions that are not also supported.
func (m Model) Deprecated() []Version { return slices.Clone(m.deprecated) }

// Advertised returns the versions supported elsewhere.
func (m Model) Advertised() []Version { return slices.Clone(m.advertised) }

// DeprecatedAdvertised returns the versions deprecated elsewhere.
func (m Model) DeprecatedAdvertised() []Version { return slices.Clone(m.deprecatedAdvertised) }

// Implements reports whether v is one of the implemented versions.
func (m Model) Implements(v Version) bool { return contains(m.implemented, v) }

// Declares reports whether v is one of the declared versions.
func (m Model) Declares(v Version) bool { return contains(m.declared, v) }

// Supports reports whether v is one of the supported versions.
func (m Model) Supports(v Version) bool { return contains(m.supported, v) }

// Deprecates reports whether v is one of the deprecated versions.
func (m Model) Deprecates(v Version) bool { return contains(m.deprecated, v) }

// Equal reports whether both models hold the same versions and neutrality.
func (m Model) Equal(other Model) bool {
	return m.neutral == other.neutral &&
		slices.EqualFunc(m.declared, other.declared, Version.Equal) &&
		slices.EqualFunc(m.implemented, other.implemented, Version.Equal) &&
		slices.EqualFunc(m.supported, other.supported, Version.Equal) &&
		slices.EqualFunc(m.deprecated, other.deprecated, Version.Equal) &&
		slices.EqualFunc(m.advertised, other.advertised, Version.Equal) &&
		slices.EqualFunc(m.deprecatedAdvertised, other.deprecatedAdvertised, Version.Equal)
}

func sortedSet(vs []Version) []Version {
	out := make([]Version, 0, len(vs))
	for _, v := range vs {
		if !v.IsZero() && !v.IsNeutral() {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, Compare)
	return slices.CompactFunc(out, Version.Equal)
}

// union merges two sorted sets.
func union(a, b []Version) []Version {
	out := make([]Version, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := Compare(a[i], b[j]); {
		case c < 0:
			out = append(out, a[i])
			i++
		case c > 0:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// except returns the members of the sorted set a that are not in b.
func except(a, b []Version) []Version {
	out := make([]Version, 0, len(a))
	for _, v := range a {
		if !contains(b, v) {
			out = append(out, v)
		}
	}
	return out
}

func contains(set []Version, v Version) bool {
	_, found := slices.BinarySearchFunc(set, v, Compare)
	return found
}
