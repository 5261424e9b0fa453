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

package apiversioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func versions(texts ...string) []Version {
	out := make([]Version, len(texts))
	for i, s := range texts {
		out[i] = MustParse(s)
	}
	return out
}

func texts(vs []Version) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

func TestNewModel(t *testing.T) {
	t.Parallel()

	m := NewModel(ModelSpec{
		Supported:            versions("2.0", "1.0", "2.0"),
		Deprecated:           versions("0.9", "1.0"),
		Advertised:           versions("3.0"),
		DeprecatedAdvertised: versions("0.8"),
	})

	assert.Equal(t, []string{"0.9", "1.0", "2.0"}, texts(m.Implemented()))
	assert.Equal(t, []string{"0.9", "1.0", "2.0"}, texts(m.Declared()))
	assert.Equal(t, []string{"1.0", "2.0", "3.0"}, texts(m.Supported()))
	assert.Equal(t, []string{"0.8", "0.9"}, texts(m.Deprecated()))
	assert.Equal(t, []string{"3.0"}, texts(m.Advertised()))
	assert.Equal(t, []string{"0.8"}, texts(m.DeprecatedAdvertised()))
	assert.False(t, m.IsNeutral())
	assert.False(t, m.IsEmpty())

	assert.True(t, m.Implements(MustParse("1")))
	assert.False(t, m.Implements(MustParse("3.0")))
	assert.True(t, m.Supports(MustParse("3.0")))
	assert.True(t, m.Deprecates(MustParse("0.9")))
}

func TestNewModelDeclared(t *testing.T) {
	t.Parallel()

	m := NewModel(ModelSpec{
		Declared:  versions("2.0"),
		Supported: versions("1.0", "2.0"),
	})
	assert.Equal(t, []string{"2.0"}, texts(m.Declared()))
	assert.True(t, m.Declares(MustParse("2")))
	assert.False(t, m.Declares(MustParse("1.0")))
}

func TestModelSlicesAreCopies(t *testing.T) {
	t.Parallel()

	m := NewModel(ModelSpec{Supported: versions("1.0")})
	s := m.Supported()
	s[0] = MustParse("9.0")

	assert.Equal(t, []string{"1.0"}, texts(m.Supported()))
}

func TestNeutralAndEmptyModels(t *testing.T) {
	t.Parallel()

	assert.True(t, NeutralModel().IsNeutral())
	assert.False(t, NeutralModel().IsEmpty())
	assert.True(t, EmptyModel().IsEmpty())
	assert.True(t, NewModel(ModelSpec{Neutral: true, Supported: versions("1.0")}).Equal(NeutralModel()))
	assert.True(t, NewModel(ModelSpec{}).Equal(EmptyModel()))
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	t.Run("support overrides deprecation", func(t *testing.T) {
		t.Parallel()

		a := NewModel(ModelSpec{Supported: versions("2.0"), Deprecated: versions("1.0")})
		b := NewModel(ModelSpec{Supported: versions("1.0", "3.0")})

		got := a.Aggregate(b)
		assert.Equal(t, []string{"1.0", "2.0", "3.0"}, texts(got.Supported()))
		assert.Empty(t, got.Deprecated())
		assert.Equal(t, []string{"1.0", "2.0", "3.0"}, texts(got.Implemented()))
		assert.Equal(t, texts(a.Declared()), texts(got.Declared()), "declared versions of the base are kept")
	})

	t.Run("advertised versions are unioned", func(t *testing.T) {
		t.Parallel()

		a := NewModel(ModelSpec{Supported: versions("1.0"), Advertised: versions("2.0")})
		b := NewModel(ModelSpec{Supported: versions("1.0"), DeprecatedAdvertised: versions("0.5"), Advertised: versions("4.0")})

		got := a.Aggregate(b)
		assert.Equal(t, []string{"2.0", "4.0"}, texts(got.Advertised()))
		assert.Equal(t, []string{"0.5"}, texts(got.DeprecatedAdvertised()))
		assert.Equal(t, []string{"1.0", "2.0", "4.0"}, texts(got.Supported()))
		assert.Equal(t, []string{"0.5"}, texts(got.Deprecated()))
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		m := NewModel(ModelSpec{Supported: versions("1.0", "2.0"), Deprecated: versions("0.9")})
		assert.True(t, m.Aggregate(m).Equal(m))
	})

	t.Run("no others returns the model", func(t *testing.T) {
		t.Parallel()

		m := NewModel(ModelSpec{Supported: versions("1.0"), Deprecated: versions("0.9")})
		assert.True(t, m.AggregateWith().Equal(m))
		assert.True(t, m.AggregateWith(EmptyModel()).Equal(m))
	})

	t.Run("order does not matter", func(t *testing.T) {
		t.Parallel()

		a := NewModel(ModelSpec{Supported: versions("1.0"), Deprecated: versions("0.9")})
		b := NewModel(ModelSpec{Supported: versions("2.0"), Deprecated: versions("1.0")})
		c := NewModel(ModelSpec{Supported: versions("2018-04-01"), Deprecated: versions("0.8", "0.9")})

		want := AggregateAll(a, b, c)
		for _, order := range [][]Model{{a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a}} {
			got := AggregateAll(order...)
			assert.True(t, got.Equal(want))
		}
		assert.Equal(t, []string{"1.0", "2.0", "2018-04-01"}, texts(want.Supported()))
		assert.Equal(t, []string{"0.8", "0.9"}, texts(want.Deprecated()))
	})

	t.Run("aggregate all of nothing is empty", func(t *testing.T) {
		t.Parallel()

		got := AggregateAll()
		assert.True(t, got.IsEmpty())
		assert.False(t, got.IsNeutral())
	})
}

func TestAggregateNeverDeprecatesSupported(t *testing.T) {
	t.Parallel()

	pool := versions("0.9", "1.0", "1.1", "2.0", "2018-04-01")
	var models []Model
	for i := range pool {
		models = append(models, NewModel(ModelSpec{
			Supported:  pool[i : i+1],
			Deprecated: pool[:i],
		}))
	}

	got := AggregateAll(models...)
	for _, d := range got.Deprecated() {
		assert.False(t, got.Supports(d), "%s is both supported and deprecated", d)
	}
	assert.Empty(t, got.Deprecated())

	base := models[0].AggregateWith(models[1:]...)
	for _, d := range base.Deprecated() {
		assert.False(t, base.Supports(d))
	}
}
