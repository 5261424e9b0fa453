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

package report

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/policy"
)

// Info is what a response says about the versions of an API.
type Info struct {
	Supported   []apiversioning.Version
	Deprecated  []apiversioning.Version
	Sunset      *policy.SunsetPolicy
	Deprecation *policy.DeprecationPolicy
	// OpenAPI lists the advertised OpenAPI documents, sorted by version.
	// Links without an api-version attribute carry the neutral version.
	OpenAPI []Document
}

// Document is the location of the OpenAPI document of one version.
type Document struct {
	Version apiversioning.Version
	URL     string
}

// OpenAPIDocument returns the URL of the OpenAPI document of v. Versions
// match by value, so 1 finds a document advertised for 1.0.
func (i Info) OpenAPIDocument(v apiversioning.Version) (string, bool) {
	for _, d := range i.OpenAPI {
		if d.Version.Equal(v) {
			return d.URL, true
		}
	}
	return "", false
}

// IsDeprecated reports whether the response announced a deprecation that
// is in effect at t.
func (i Info) IsDeprecated(t time.Time) bool {
	if i.Deprecation == nil {
		return false
	}
	date, ok := i.Deprecation.Date()
	return ok && !date.After(t)
}

// Read reads the version headers of a response using the default header
// names. Relative link targets are resolved against base when it is not nil.
func Read(h http.Header, base *url.URL) Info {
	return Info{
		Supported:   ReadVersions(h, HeaderSupportedVersions),
		Deprecated:  ReadVersions(h, HeaderDeprecatedVersions),
		Sunset:      ReadSunsetPolicy(h, base),
		Deprecation: ReadDeprecationPolicy(h, base),
		OpenAPI:     ReadOpenAPIDocuments(h, base),
	}
}

// ReadVersions parses a version list header. Values that are not versions
// are skipped. The result is sorted and free of duplicates.
func ReadVersions(h http.Header, name string) []apiversioning.Version {
	versions := lo.FlatMap(h.Values(name), func(value string, _ int) []apiversioning.Version {
		return lo.FilterMap(strings.Split(value, ","), func(s string, _ int) (apiversioning.Version, bool) {
			return apiversioning.TryParse(strings.TrimSpace(s))
		})
	})
	slices.SortStableFunc(versions, apiversioning.Compare)
	return slices.CompactFunc(versions, apiversioning.Version.Equal)
}

// ReadSunsetPolicy reads the Sunset header and the sunset links. Of several
// Sunset dates the latest wins. A response without any yields an undated
// policy without links.
func ReadSunsetPolicy(h http.Header, base *url.URL) *policy.SunsetPolicy {
	var date time.Time
	for _, v := range h.Values(HeaderSunset) {
		if t, err := http.ParseTime(v); err == nil && (date.IsZero() || t.After(date)) {
			date = t
		}
	}

	p, err := policy.NewSunsetPolicy(date, readLinks(h, base, policy.RelationSunset)...)
	if err != nil {
		p, _ = policy.NewSunsetPolicy(date)
	}
	return p
}

// ReadDeprecationPolicy reads the Deprecation header and the deprecation
// links. Of several dates the earliest wins.
func ReadDeprecationPolicy(h http.Header, base *url.URL) *policy.DeprecationPolicy {
	var date time.Time
	for _, v := range h.Values(HeaderDeprecation) {
		t, ok := ParseDeprecationDate(v)
		if ok && (date.IsZero() || t.Before(date)) {
			date = t
		}
	}

	p, err := policy.NewDeprecationPolicy(date, readLinks(h, base, policy.RelationDeprecation)...)
	if err != nil {
		p, _ = policy.NewDeprecationPolicy(date)
	}
	return p
}

// ParseDeprecationDate parses a Deprecation header value of the form
// @<unix seconds>.
func ParseDeprecationDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if len(v) < 2 || v[0] != '@' {
		return time.Time{}, false
	}
	secs, err := strconv.ParseInt(v[1:], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(secs, 0).UTC(), true
}

// ReadOpenAPIDocuments collects links with the openapi or swagger relation
// type by their api-version attribute. Of several links for equal versions
// the last wins.
func ReadOpenAPIDocuments(h http.Header, base *url.URL) []Document {
	var docs []Document
	for _, l := range parseAllLinks(h, base) {
		if !l.HasRelation(policy.RelationOpenAPI) && !l.HasRelation("swagger") {
			continue
		}
		d := Document{Version: apiversioning.Neutral(), URL: l.Target}
		if v, ok := apiversioning.TryParse(l.Extensions["api-version"]); ok {
			d.Version = v
		}
		if i := slices.IndexFunc(docs, func(o Document) bool { return o.Version.Equal(d.Version) }); i >= 0 {
			docs[i] = d
			continue
		}
		docs = append(docs, d)
	}
	slices.SortStableFunc(docs, func(a, b Document) int { return apiversioning.Compare(a.Version, b.Version) })
	return docs
}

func readLinks(h http.Header, base *url.URL, relation string) []policy.Link {
	return lo.FilterMap(parseAllLinks(h, base), func(l policy.Link, _ int) (policy.Link, bool) {
		if !l.HasRelation(relation) {
			return policy.Link{}, false
		}
		// links with several relation types keep only the requested one
		l.Relation = relation
		return l, true
	})
}

// parseAllLinks parses every Link header, skipping values that are malformed.
func parseAllLinks(h http.Header, base *url.URL) []policy.Link {
	return lo.FlatMap(h.Values(HeaderLink), func(v string, _ int) []policy.Link {
		links, err := policy.ParseLinks(v, base)
		if err != nil {
			return nil
		}
		return links
	})
}
