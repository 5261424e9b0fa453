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

// Aggregate folds other into m.
//
// Implemented, supported and deprecated versions are unioned, then any
// version that is supported anywhere is removed from the deprecated set.
// Advertised versions are unioned without that rule. The declared versions
// and neutrality of m are kept.
func (m Model) Aggregate(other Model) Model {
	return m.AggregateWith(other)
}

// AggregateWith folds every model in others into m.
// With no others it returns m as is.
func (m Model) AggregateWith(others ...Model) Model {
	if len(others) == 0 {
		return m
	}

	out := Model{
		declared:             m.declared,
		implemented:          m.implemented,
		supported:            m.supported,
		deprecated:           m.deprecated,
		advertised:           m.advertised,
		deprecatedAdvertised: m.deprecatedAdvertised,
		neutral:              m.neutral,
	}
	for _, o := range others {
		out.fold(o)
	}
	out.deprecated = except(out.deprecated, out.supported)

	return out
}

// AggregateAll folds a sequence of models into a new one.
// An empty sequence yields the empty model.
func AggregateAll(models ...Model) Model {
	if len(models) == 0 {
		return EmptyModel()
	}

	var out Model
	for _, m := range models {
		out.fold(m)
	}
	out.deprecated = except(out.deprecated, out.supported)
	out.declared = out.implemented

	return out
}

func (m *Model) fold(o Model) {
	m.implemented = union(m.implemented, o.implemented)
	m.supported = union(m.supported, o.supported)
	m.deprecated = union(m.deprecated, o.deprecated)
	m.advertised = union(m.advertised, o.advertised)
	m.deprecatedAdvertised = union(m.deprecatedAdvertised, o.deprecatedAdvertised)
}
