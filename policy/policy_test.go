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

//go:build !integration

package policy

import (
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/apiversioning"
)

func TestLinkString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		link Link
		want string
	}{
		{
			name: "target and relation",
			link: Link{Target: "https://example.com/sunset", Relation: "sunset"},
			want: `<https://example.com/sunset>; rel="sunset"`,
		},
		{
			name: "all attributes",
			link: Link{
				Target:     "https://example.com/policy",
				Relation:   "deprecation",
				Title:      `The "v1" policy`,
				Type:       "text/html",
				Media:      "screen",
				Languages:  []string{"en", "de"},
				Extensions: map[string]string{"z-ext": "2", "api-version": "1.0"},
			},
			want: `<https://example.com/policy>; rel="deprecation"; title="The \"v1\" policy"; type="text/html"; media="screen"; hreflang=en; hreflang=de; api-version="1.0"; z-ext="2"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.link.String())
		})
	}
}

func TestParseLinks(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		in := Link{
			Target:     "https://example.com/policy",
			Relation:   "sunset",
			Title:      `a "quoted", title; with separators`,
			Type:       "text/html",
			Languages:  []string{"en"},
			Extensions: map[string]string{"api-version": "2.0"},
		}
		links, err := ParseLinks(in.String(), nil)
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, in, links[0])
	})

	t.Run("several links in one value", func(t *testing.T) {
		t.Parallel()

		links, err := ParseLinks(`<https://a.example/s>; rel=sunset, </docs/d>; REL="deprecation"; title=Notice`, nil)
		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, "sunset", links[0].Relation)
		assert.Equal(t, "/docs/d", links[1].Target)
		assert.Equal(t, "Notice", links[1].Title)
		assert.True(t, links[1].HasRelation("Deprecation"))
	})

	t.Run("relative targets resolve against base", func(t *testing.T) {
		t.Parallel()

		base, err := url.Parse("https://api.example.com/orders/1")
		require.NoError(t, err)

		links, err := ParseLinks(`</policies/v1>; rel="sunset"`, base)
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "https://api.example.com/policies/v1", links[0].Target)
	})

	t.Run("first rel wins", func(t *testing.T) {
		t.Parallel()

		links, err := ParseLinks(`<https://x.example>; rel="sunset"; rel="other"`, nil)
		require.NoError(t, err)
		assert.Equal(t, "sunset", links[0].Relation)
	})

	for _, bad := range []string{
		`https://x.example; rel="sunset"`,
		`<https://x.example; rel="sunset"`,
		`<https://x.example> rel="sunset"`,
		`<https://x.example>; rel="sunset`,
		`<https://x.example>; title="no relation"`,
		`<>; rel="sunset"`,
	} {
		t.Run("invalid "+bad, func(t *testing.T) {
			t.Parallel()

			_, err := ParseLinks(bad, nil)
			require.ErrorIs(t, err, ErrInvalidLink)
		})
	}
}

func TestLinkList(t *testing.T) {
	t.Parallel()

	ll := NewLinkList("sunset")
	require.NoError(t, ll.Add(Link{Target: "https://a.example", Relation: "Sunset"}))
	require.NoError(t, ll.Add(Link{Target: "https://b.example", Relation: "sunset deprecation"}))

	err := ll.Add(
		Link{Target: "https://c.example", Relation: "sunset"},
		Link{Target: "https://d.example", Relation: "deprecation"},
	)
	require.ErrorIs(t, err, ErrInvalidRelationType)
	assert.Equal(t, 2, ll.Len(), "a rejected batch adds nothing")

	require.ErrorIs(t, ll.Set(0, Link{Target: "https://e.example", Relation: "deprecation"}), ErrInvalidRelationType)
	require.NoError(t, ll.Set(0, Link{Target: "https://e.example", Relation: "sunset"}))
	assert.Equal(t, "https://e.example", ll.All()[0].Target)

	var empty *LinkList
	assert.Zero(t, empty.Len())
	assert.Nil(t, empty.All())
}

func TestPolicies(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	t.Run("sunset accepts only sunset links", func(t *testing.T) {
		t.Parallel()

		_, err := NewSunsetPolicy(date, Link{Target: "https://x.example", Relation: RelationDeprecation})
		require.ErrorIs(t, err, ErrInvalidRelationType)

		p, err := NewSunsetPolicy(date, Link{Target: "https://x.example", Relation: RelationSunset})
		require.NoError(t, err)
		got, ok := p.Date()
		assert.True(t, ok)
		assert.Equal(t, date, got)
		assert.True(t, p.HasLinks())
	})

	t.Run("undated policy", func(t *testing.T) {
		t.Parallel()

		p, err := NewDeprecationPolicy(time.Time{})
		require.NoError(t, err)
		_, ok := p.Date()
		assert.False(t, ok)
		assert.False(t, p.HasLinks())
		assert.True(t, p.IsEffective(date))
	})

	t.Run("effective dates", func(t *testing.T) {
		t.Parallel()

		p, err := NewDeprecationPolicy(date)
		require.NoError(t, err)

		assert.True(t, p.IsEffective(date), "same instant")
		assert.True(t, p.IsEffective(date.Add(time.Hour)))
		assert.False(t, p.IsEffective(date.Add(-time.Hour)))
		assert.True(t, p.IsEffective(time.Time{}), "no limit")
	})
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	t.Run("requires a name or a version", func(t *testing.T) {
		t.Parallel()

		_, err := NewDeprecationBuilder("", apiversioning.Version{}).Build()
		require.ErrorIs(t, err, ErrEmptyKey)

		_, err = NewSunsetBuilder("Orders", apiversioning.Neutral()).Build()
		require.ErrorIs(t, err, ErrNeutralVersion)
	})

	t.Run("builds policy with links", func(t *testing.T) {
		t.Parallel()

		p, err := NewDeprecationBuilder("", apiversioning.Default()).
			Effective(2022, time.February, 1).
			Link("http://tempuri.org").Title("Deprecation notice").Language("en").
			Link("http://tempuri.org/other").Type("text/html").
			Build()
		require.NoError(t, err)

		date, ok := p.Date()
		require.True(t, ok)
		assert.Equal(t, time.Date(2022, time.February, 1, 0, 0, 0, 0, time.UTC), date)

		links := p.Links()
		require.Len(t, links, 2)
		assert.Equal(t, `<http://tempuri.org>; rel="deprecation"; title="Deprecation notice"; hreflang=en`, links[0].String())
		assert.Equal(t, "text/html", links[1].Type)
	})

	t.Run("same target returns existing link builder", func(t *testing.T) {
		t.Parallel()

		b := NewSunsetBuilder("Orders", apiversioning.Version{})
		first := b.Link("http://tempuri.org")
		assert.Same(t, first, b.Link("http://tempuri.org"))
	})

	t.Run("per returns the existing policy", func(t *testing.T) {
		t.Parallel()

		existing, err := NewDeprecationPolicy(time.Time{})
		require.NoError(t, err)

		b := NewDeprecationBuilder("", apiversioning.Default()).Per(existing)
		b.Link("http://tempuri.org")

		p, err := b.Build()
		require.NoError(t, err)
		assert.Same(t, existing, p)
		assert.False(t, p.HasLinks())
	})

	t.Run("invalid link fails build", func(t *testing.T) {
		t.Parallel()

		_, err := NewSunsetBuilder("Orders", apiversioning.Version{}).Link("  ").Build()
		require.ErrorIs(t, err, ErrInvalidLink)
	})
}

func TestManagerResolution(t *testing.T) {
	t.Parallel()

	m := NewManager[*SunsetPolicy]()
	mk := func(day int) *SunsetPolicy {
		p, err := NewSunsetPolicy(time.Date(2026, time.January, day, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		return p
	}
	exact, byName, byVersion := mk(1), mk(2), mk(3)

	require.NoError(t, m.Add(Key{Name: "Orders", Version: apiversioning.New(1, 0)}, exact))
	require.NoError(t, m.Add(Key{Name: "Orders"}, byName))
	require.NoError(t, m.Add(Key{Version: apiversioning.MustParse("2.0-beta")}, byVersion))
	assert.Equal(t, 3, m.Len())

	tests := []struct {
		name    string
		api     string
		version string
		want    *SunsetPolicy
	}{
		{"exact", "Orders", "1.0", exact},
		{"exact with other literal", "orders", "1", exact},
		{"name only", "Orders", "3.0", byName},
		{"name only without version", "Orders", "", byName},
		{"version only", "Invoices", "2.0-BETA", byVersion},
		{"name beats version", "Orders", "2.0-beta", byName},
		{"nothing", "Invoices", "1.0", nil},
		{"empty lookup", "", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var v apiversioning.Version
			if tt.version != "" {
				v = apiversioning.MustParse(tt.version)
			}

			got, ok := m.TryResolvePolicy(tt.api, v)
			if tt.want == nil {
				assert.False(t, ok)
				assert.Nil(t, got)
				return
			}
			require.True(t, ok)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestManagerWrites(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid entries", func(t *testing.T) {
		t.Parallel()

		m := NewManager[*DeprecationPolicy]()
		p, err := NewDeprecationPolicy(time.Time{})
		require.NoError(t, err)

		require.ErrorIs(t, m.Add(Key{}, p), ErrEmptyKey)
		require.ErrorIs(t, m.Add(Key{Name: "x"}, nil), ErrNilPolicy)
		require.ErrorIs(t, m.Replace(map[Key]*DeprecationPolicy{{Version: apiversioning.Neutral()}: p}), ErrNeutralVersion)
		assert.Zero(t, m.Len())
	})

	t.Run("register is all or nothing", func(t *testing.T) {
		t.Parallel()

		m := NewManager[*SunsetPolicy]()
		err := m.Register(
			NewSunsetBuilder("Orders", apiversioning.Version{}).Effective(2026, time.May, 1),
			NewSunsetBuilder("", apiversioning.Version{}),
		)
		require.ErrorIs(t, err, ErrEmptyKey)
		assert.Zero(t, m.Len())

		require.NoError(t, m.Register(NewSunsetBuilder("Orders", apiversioning.Version{})))
		assert.Equal(t, 1, m.Len())
	})

	t.Run("replace swaps the table", func(t *testing.T) {
		t.Parallel()

		m := NewManager[*SunsetPolicy]()
		old, err := NewSunsetPolicy(time.Time{})
		require.NoError(t, err)
		require.NoError(t, m.Add(Key{Name: "Orders"}, old))

		fresh, err := NewSunsetPolicy(time.Time{})
		require.NoError(t, err)
		require.NoError(t, m.Replace(map[Key]*SunsetPolicy{{Name: "Invoices"}: fresh}))

		_, ok := m.TryResolvePolicy("Orders", apiversioning.Version{})
		assert.False(t, ok)
		got, ok := m.TryResolvePolicy("Invoices", apiversioning.New(1, 0))
		require.True(t, ok)
		assert.Same(t, fresh, got)
	})

	t.Run("zero manager", func(t *testing.T) {
		t.Parallel()

		var m Manager[*SunsetPolicy]
		_, ok := m.TryResolvePolicy("Orders", apiversioning.New(1, 0))
		assert.False(t, ok)

		p, err := NewSunsetPolicy(time.Time{})
		require.NoError(t, err)
		require.NoError(t, m.Add(Key{Name: "Orders"}, p))
		assert.Equal(t, 1, m.Len())
	})
}

func TestManagerConcurrentAccess(t *testing.T) {
	t.Parallel()

	m := NewManager[*SunsetPolicy]()
	p, err := NewSunsetPolicy(time.Time{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, m.Add(Key{Name: fmt.Sprintf("api-%d", i)}, p))
		}()
		go func() {
			defer wg.Done()
			m.TryResolvePolicy(fmt.Sprintf("api-%d", i), apiversioning.New(1, 0))
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, m.Len())
}
