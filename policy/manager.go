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
	"fmt"
	"maps"
	"strings"
	"sync"
	"sync/atomic"

	"rivaas.dev/apiversioning"
)

// Key identifies a policy. A key with only a name applies to every version
// of that API; a key with only a version applies to that version of every
// API. Names compare case-insensitively, versions by value.
type Key struct {
	Name    string
	Version apiversioning.Version
}

func (k Key) validate() error {
	if k.Name == "" && k.Version.IsZero() {
		return ErrEmptyKey
	}
	if k.Version.IsNeutral() {
		return fmt.Errorf("%w: %s", ErrNeutralVersion, k)
	}
	return nil
}

// String renders the key as name@version, omitting the missing part.
func (k Key) String() string {
	if k.Version.IsZero() {
		return k.Name
	}
	return k.Name + "@" + k.Version.String()
}

// id normalizes the key so that equal versions with different literals
// ("1" and "1.0") land on the same entry.
func (k Key) id() string {
	return strings.ToLower(k.Name) + "@" + strings.ToLower(k.Version.Format(apiversioning.FormatFullMinor))
}

// Manager holds the policies of one kind. Reads never block; writers copy
// the table and swap it in.
type Manager[P Policy] struct {
	policies atomic.Pointer[map[string]P]
	mu       sync.Mutex
}

// NewManager creates an empty manager.
func NewManager[P Policy]() *Manager[P] {
	m := &Manager[P]{}
	empty := make(map[string]P)
	m.policies.Store(&empty)
	return m
}

// Add registers p under key, replacing any policy with an equal key.
func (m *Manager[P]) Add(key Key, p P) error {
	if err := key.validate(); err != nil {
		return err
	}
	if isNil(p) {
		return fmt.Errorf("%w: %s", ErrNilPolicy, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.load()
	next := make(map[string]P, len(cur)+1)
	maps.Copy(next, cur)
	next[key.id()] = p
	m.policies.Store(&next)

	return nil
}

// Register builds every builder and adds the results. Nothing is added if
// any builder fails.
func (m *Manager[P]) Register(builders ...*Builder[P]) error {
	policies := make(map[Key]P, len(builders))
	for _, b := range builders {
		p, err := b.Build()
		if err != nil {
			return fmt.Errorf("policy %s: %w", b.Key(), err)
		}
		policies[b.Key()] = p
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.load()
	next := make(map[string]P, len(cur)+len(policies))
	maps.Copy(next, cur)
	for k, p := range policies {
		next[k.id()] = p
	}
	m.policies.Store(&next)

	return nil
}

// Replace swaps the whole policy table. It is meant for reloading
// configuration while serving; the old table stays intact on error.
func (m *Manager[P]) Replace(policies map[Key]P) error {
	next := make(map[string]P, len(policies))
	for k, p := range policies {
		if err := k.validate(); err != nil {
			return err
		}
		if isNil(p) {
			return fmt.Errorf("%w: %s", ErrNilPolicy, k)
		}
		next[k.id()] = p
	}

	m.mu.Lock()
	m.policies.Store(&next)
	m.mu.Unlock()

	return nil
}

// TryResolvePolicy finds the policy for a version of the named API. It tries
// the exact name and version first, then the name alone, then the version
// alone.
func (m *Manager[P]) TryResolvePolicy(name string, version apiversioning.Version) (P, bool) {
	var zero P
	if m == nil {
		return zero, false
	}

	policies := m.load()
	if len(policies) == 0 {
		return zero, false
	}

	keys := []Key{{Name: name, Version: version}, {Name: name}, {Version: version}}
	for _, k := range keys {
		if k.validate() != nil {
			continue
		}
		if p, ok := policies[k.id()]; ok {
			return p, true
		}
	}

	return zero, false
}

// Len returns the number of registered policies.
func (m *Manager[P]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.load())
}

func (m *Manager[P]) load() map[string]P {
	if p := m.policies.Load(); p != nil {
		return *p
	}
	return nil
}
