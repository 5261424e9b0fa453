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

package policy

import (
	"time"

	"rivaas.dev/apiversioning"
)

// Builder assembles a policy and the key it is registered under.
// Errors are collected and reported by [Builder.Build].
type Builder[P Policy] struct {
	key      Key
	date     time.Time
	per      P
	hasPer   bool
	links    []*LinkBuilder[P]
	relation string
	create   func(time.Time, ...Link) (P, error)
}

// NewSunsetBuilder starts a sunset policy for the named API, a version, or
// the version of the named API.
func NewSunsetBuilder(name string, version apiversioning.Version) *Builder[*SunsetPolicy] {
	return &Builder[*SunsetPolicy]{
		key:      Key{Name: name, Version: version},
		relation: RelationSunset,
		create:   NewSunsetPolicy,
	}
}

// NewDeprecationBuilder starts a deprecation policy. See [NewSunsetBuilder].
func NewDeprecationBuilder(name string, version apiversioning.Version) *Builder[*DeprecationPolicy] {
	return &Builder[*DeprecationPolicy]{
		key:      Key{Name: name, Version: version},
		relation: RelationDeprecation,
		create:   NewDeprecationPolicy,
	}
}

// Key returns the key the policy is registered under.
func (b *Builder[P]) Key() Key { return b.key }

// Effective sets the date the policy takes effect, at midnight UTC.
func (b *Builder[P]) Effective(year int, month time.Month, day int) *Builder[P] {
	return b.EffectiveAt(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// EffectiveAt sets the instant the policy takes effect.
func (b *Builder[P]) EffectiveAt(t time.Time) *Builder[P] {
	b.date = t
	return b
}

// Per uses an existing policy. Build then returns p unchanged and ignores
// everything else set on the builder.
func (b *Builder[P]) Per(p P) *Builder[P] {
	b.per, b.hasPer = p, !isNil(p)
	return b
}

// Link adds a link to target with the policy's relation type. Adding the
// same target again returns the builder of the existing link.
func (b *Builder[P]) Link(target string) *LinkBuilder[P] {
	for _, lb := range b.links {
		if lb.link.Target == target {
			return lb
		}
	}
	lb := &LinkBuilder[P]{parent: b, link: Link{Target: target, Relation: b.relation}}
	b.links = append(b.links, lb)
	return lb
}

// Build validates the key and the links and creates the policy.
func (b *Builder[P]) Build() (P, error) {
	var zero P
	if err := b.key.validate(); err != nil {
		return zero, err
	}
	if b.hasPer {
		return b.per, nil
	}

	links := make([]Link, len(b.links))
	for i, lb := range b.links {
		links[i] = lb.link
	}
	return b.create(b.date, links...)
}

func isNil[P Policy](p P) bool {
	switch v := any(p).(type) {
	case *SunsetPolicy:
		return v == nil
	case *DeprecationPolicy:
		return v == nil
	default:
		return true
	}
}

// LinkBuilder describes one link of a policy.
type LinkBuilder[P Policy] struct {
	parent *Builder[P]
	link   Link
}

// Title sets a human-readable label.
func (lb *LinkBuilder[P]) Title(title string) *LinkBuilder[P] {
	lb.link.Title = title
	return lb
}

// Type sets the media type of the target.
func (lb *LinkBuilder[P]) Type(mediaType string) *LinkBuilder[P] {
	lb.link.Type = mediaType
	return lb
}

// Media sets the media query the target is meant for.
func (lb *LinkBuilder[P]) Media(media string) *LinkBuilder[P] {
	lb.link.Media = media
	return lb
}

// Language adds a language the target is available in.
func (lb *LinkBuilder[P]) Language(lang string) *LinkBuilder[P] {
	lb.link.Languages = append(lb.link.Languages, lang)
	return lb
}

// Extension sets a target attribute not covered by the other methods.
func (lb *LinkBuilder[P]) Extension(name, value string) *LinkBuilder[P] {
	if lb.link.Extensions == nil {
		lb.link.Extensions = make(map[string]string)
	}
	lb.link.Extensions[name] = value
	return lb
}

// Link adds another link to the same policy.
func (lb *LinkBuilder[P]) Link(target string) *LinkBuilder[P] {
	return lb.parent.Link(target)
}

// Builder returns the policy builder the link belongs to.
func (lb *LinkBuilder[P]) Builder() *Builder[P] { return lb.parent }

// Build builds the policy the link belongs to.
func (lb *LinkBuilder[P]) Build() (P, error) { return lb.parent.Build() }
