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

// Package policy describes the lifecycle of API versions.
//
// A [SunsetPolicy] says when a version stops being available (RFC 8594), a
// [DeprecationPolicy] says when it became obsolete (RFC 9745). Both carry an
// optional date and informational links. Policies are registered in a
// [Manager] under a [Key] made of an API name, a version, or both:
//
//	sunset := policy.NewManager[*policy.SunsetPolicy]()
//	err := sunset.Register(
//	    policy.NewSunsetBuilder("Orders", apiversioning.New(1, 0)).
//	        Effective(2026, time.June, 30).
//	        Link("https://example.com/orders/v1-retirement").
//	        Title("Retirement notice").
//	        Builder(),
//	)
//
// Managers are safe for concurrent use. Policies can be replaced while
// requests are being served; readers never observe a partial update.
package policy

import "time"

// Policy is the set of lifecycle policy types a [Manager] can hold.
type Policy interface {
	*SunsetPolicy | *DeprecationPolicy

	Date() (time.Time, bool)
	Links() []Link
	HasLinks() bool
	IsEffective(at time.Time) bool
}

// lifecycle is the state shared by both policy kinds. Policies are
// immutable once built.
type lifecycle struct {
	date  time.Time
	links *LinkList
}

func newLifecycle(date time.Time, relation string, links []Link) (lifecycle, error) {
	ll := NewLinkList(relation)
	if err := ll.Add(links...); err != nil {
		return lifecycle{}, err
	}
	return lifecycle{date: date, links: ll}, nil
}

// Date returns the date the policy takes effect, if it has one.
func (l lifecycle) Date() (time.Time, bool) {
	return l.date, !l.date.IsZero()
}

// Links returns a copy of the policy links.
func (l lifecycle) Links() []Link { return l.links.All() }

// HasLinks reports whether the policy has any link.
func (l lifecycle) HasLinks() bool { return l.links.Len() > 0 }

// IsEffective reports whether the policy is in effect at the given instant.
// A policy without a date is always in effect, and a zero instant means no
// limit.
func (l lifecycle) IsEffective(at time.Time) bool {
	return l.date.IsZero() || at.IsZero() || !l.date.After(at)
}

// SunsetPolicy describes when a version stops being available.
type SunsetPolicy struct {
	lifecycle
}

// NewSunsetPolicy creates a sunset policy. A zero date leaves the policy
// undated. Every link must have the sunset relation type.
func NewSunsetPolicy(date time.Time, links ...Link) (*SunsetPolicy, error) {
	lc, err := newLifecycle(date, RelationSunset, links)
	if err != nil {
		return nil, err
	}
	return &SunsetPolicy{lifecycle: lc}, nil
}

// DeprecationPolicy describes when a version became deprecated.
type DeprecationPolicy struct {
	lifecycle
}

// NewDeprecationPolicy creates a deprecation policy. A zero date leaves the
// policy undated. Every link must have the deprecation relation type.
func NewDeprecationPolicy(date time.Time, links ...Link) (*DeprecationPolicy, error) {
	lc, err := newLifecycle(date, RelationDeprecation, links)
	if err != nil {
		return nil, err
	}
	return &DeprecationPolicy{lifecycle: lc}, nil
}
