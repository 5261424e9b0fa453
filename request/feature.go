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

package request

import (
	"context"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/reader"
)

// Feature is the versioning state of one request.
//
// [Resolve] fills in what the request asked for. Dispatch then records the
// version that was chosen and the metadata of the endpoint serving it.
type Feature struct {
	// Candidates are the raw values found, without case-insensitive duplicates.
	Candidates []reader.Candidate
	// RawValues are the values of Candidates.
	RawValues []string
	// Requested is the version asked for, or the zero Version.
	Requested apiversioning.Version
	// RequestedRaw is the literal that produced Requested.
	RequestedRaw string

	// Version is the version the request is served with. It differs from
	// Requested when a default was selected.
	Version apiversioning.Version
	// Metadata belongs to the endpoint serving the request.
	Metadata *apiversioning.Metadata

	err error
}

// Err returns the resolution failure, an [*AmbiguousVersionError], or nil.
func (f *Feature) Err() error {
	return f.err
}

// HasRequested reports whether the request asked for a valid version.
func (f *Feature) HasRequested() bool {
	return !f.Requested.IsZero()
}

// IsInvalid reports whether the request carried version values and none of
// them parsed.
func (f *Feature) IsInvalid() bool {
	return f.err == nil && f.Requested.IsZero() && len(f.RawValues) > 0
}

// IsUnspecified reports whether the request carried no version value at all.
func (f *Feature) IsUnspecified() bool {
	return len(f.RawValues) == 0
}

// RawValue returns the first raw value found, or "".
func (f *Feature) RawValue() string {
	if len(f.RawValues) == 0 {
		return ""
	}
	return f.RawValues[0]
}

type featureKey struct{}

// WithFeature returns a copy of ctx carrying f.
func WithFeature(ctx context.Context, f *Feature) context.Context {
	return context.WithValue(ctx, featureKey{}, f)
}

// FromContext returns the feature stored by [WithFeature].
func FromContext(ctx context.Context) (*Feature, bool) {
	f, ok := ctx.Value(featureKey{}).(*Feature)
	return f, ok && f != nil
}

// VersionFromContext returns the version the request is served with.
func VersionFromContext(ctx context.Context) (apiversioning.Version, bool) {
	f, ok := FromContext(ctx)
	if !ok || f.Version.IsZero() {
		return apiversioning.Version{}, false
	}
	return f.Version, true
}
