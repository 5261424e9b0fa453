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
	"net/url"
	"slices"
	"strings"
)

// Link relation types used by lifecycle policies.
const (
	RelationSunset      = "sunset"
	RelationDeprecation = "deprecation"
	RelationOpenAPI     = "openapi"
)

// Link is a web link as carried by the HTTP Link header (RFC 8288).
type Link struct {
	Target     string
	Relation   string
	Title      string
	Type       string
	Media      string
	Languages  []string
	Extensions map[string]string
}

// NewLink creates a link to target with the given relation type.
func NewLink(target, relation string) (Link, error) {
	l := Link{Target: target, Relation: relation}
	if err := l.validate(); err != nil {
		return Link{}, err
	}
	return l, nil
}

func (l Link) validate() error {
	if strings.TrimSpace(l.Target) == "" {
		return fmt.Errorf("%w: empty target", ErrInvalidLink)
	}
	if _, err := url.Parse(l.Target); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidLink, l.Target, err)
	}
	if strings.TrimSpace(l.Relation) == "" {
		return fmt.Errorf("%w %q: empty relation type", ErrInvalidLink, l.Target)
	}
	return nil
}

// HasRelation reports whether rel is one of the link's space-separated
// relation types, ignoring case.
func (l Link) HasRelation(rel string) bool {
	for _, r := range strings.Fields(l.Relation) {
		if strings.EqualFold(r, rel) {
			return true
		}
	}
	return false
}

// String renders the link as a single Link header value:
//
//	<https://example.com/sunset>; rel="sunset"; title="Retirement"; type="text/html"
func (l Link) String() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(l.Target)
	b.WriteString(">; rel=")
	b.WriteString(quote(l.Relation))

	param := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString("; ")
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(quote(value))
	}
	param("title", l.Title)
	param("type", l.Type)
	param("media", l.Media)
	for _, lang := range l.Languages {
		b.WriteString("; hreflang=")
		b.WriteString(lang)
	}
	for _, k := range slices.Sorted(maps.Keys(l.Extensions)) {
		param(k, l.Extensions[k])
	}

	return b.String()
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// ParseLinks parses one Link header value, which may hold several
// comma-separated links. Relative targets are resolved against base when it
// is not nil.
func ParseLinks(value string, base *url.URL) ([]Link, error) {
	var links []Link
	s := value

	for {
		s = strings.TrimLeft(s, " \t,")
		if s == "" {
			return links, nil
		}
		if s[0] != '<' {
			return nil, fmt.Errorf("%w: expected '<' in %q", ErrInvalidLink, value)
		}
		end := strings.IndexByte(s, '>')
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated target in %q", ErrInvalidLink, value)
		}

		link := Link{Target: strings.TrimSpace(s[1:end])}
		rest, err := link.parseParams(s[end+1:])
		if err != nil {
			return nil, fmt.Errorf("%w in %q", err, value)
		}
		s = rest

		if base != nil {
			if u, err := url.Parse(link.Target); err == nil {
				link.Target = base.ResolveReference(u).String()
			}
		}
		if err := link.validate(); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
}

// parseParams consumes the parameters of one link and returns what follows
// them, starting at the separating comma.
func (l *Link) parseParams(s string) (string, error) {
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" || s[0] == ',' {
			return s, nil
		}
		if s[0] != ';' {
			return "", fmt.Errorf("%w: expected ';'", ErrInvalidLink)
		}
		s = strings.TrimLeft(s[1:], " \t")

		i := strings.IndexAny(s, "=;, \t")
		if i < 0 {
			i = len(s)
		}
		name := strings.ToLower(s[:i])
		if name == "" {
			return "", fmt.Errorf("%w: empty parameter name", ErrInvalidLink)
		}
		s = strings.TrimLeft(s[i:], " \t")

		var value string
		if s != "" && s[0] == '=' {
			var err error
			if value, s, err = paramValue(strings.TrimLeft(s[1:], " \t")); err != nil {
				return "", err
			}
		}
		l.set(name, value)
	}
}

func paramValue(s string) (value, rest string, err error) {
	if s == "" || s[0] != '"' {
		i := strings.IndexAny(s, ";, \t")
		if i < 0 {
			return s, "", nil
		}
		return s[:i], s[i:], nil
	}

	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			if i+1 < len(s) {
				i++
				b.WriteByte(s[i])
			}
		case '"':
			return b.String(), s[i+1:], nil
		default:
			b.WriteByte(c)
		}
	}
	return "", "", fmt.Errorf("%w: unterminated quoted string", ErrInvalidLink)
}

// set records a parameter. Only the first rel, title, type and media count.
func (l *Link) set(name, value string) {
	switch name {
	case "rel":
		if l.Relation == "" {
			l.Relation = value
		}
	case "title":
		if l.Title == "" {
			l.Title = value
		}
	case "type":
		if l.Type == "" {
			l.Type = value
		}
	case "media":
		if l.Media == "" {
			l.Media = value
		}
	case "hreflang":
		l.Languages = append(l.Languages, value)
	default:
		if l.Extensions == nil {
			l.Extensions = make(map[string]string)
		}
		if _, ok := l.Extensions[name]; !ok {
			l.Extensions[name] = value
		}
	}
}

// LinkList holds links that all share one relation type.
type LinkList struct {
	relation string
	links    []Link
}

// NewLinkList creates an empty list that accepts links with relation type rel.
func NewLinkList(rel string) *LinkList {
	return &LinkList{relation: rel}
}

// Relation returns the relation type every link in the list carries.
func (ll *LinkList) Relation() string { return ll.relation }

// Add appends links. No link is added if any has another relation type.
func (ll *LinkList) Add(links ...Link) error {
	for _, l := range links {
		if err := ll.check(l); err != nil {
			return err
		}
	}
	ll.links = append(ll.links, links...)
	return nil
}

// Set replaces the link at index i.
func (ll *LinkList) Set(i int, l Link) error {
	if err := ll.check(l); err != nil {
		return err
	}
	ll.links[i] = l
	return nil
}

func (ll *LinkList) check(l Link) error {
	if !l.HasRelation(ll.relation) {
		return fmt.Errorf("%w: expected %q, got %q", ErrInvalidRelationType, ll.relation, l.Relation)
	}
	return l.validate()
}

// Len returns the number of links.
func (ll *LinkList) Len() int {
	if ll == nil {
		return 0
	}
	return len(ll.links)
}

// All returns a copy of the links.
func (ll *LinkList) All() []Link {
	if ll == nil {
		return nil
	}
	return slices.Clone(ll.links)
}
