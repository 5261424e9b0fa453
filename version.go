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

import (
	"cmp"
	"fmt"
	"strings"
	"time"
)

// Version is an immutable API version.
//
// The zero Version means "no version" and is what resolution yields when a
// request does not ask for one. [Neutral] returns the marker used by
// version-agnostic endpoints.
type Version struct {
	year    int
	month   time.Month
	day     int
	major   int
	minor   int
	status  string
	group   bool
	hasMaj  bool
	hasMin  bool
	neutral bool
}

// Components are the structural fields of a [Version].
// Group is a calendar date; only its year, month and day are used.
type Components struct {
	Group  time.Time
	Major  *int
	Minor  *int
	Status string
}

// FromComponents builds a version from its structural fields.
// Every other constructor in this package is a shorthand for it.
// A minor requires a major, even with a group date.
func FromComponents(c Components) (Version, error) {
	var v Version

	if !c.Group.IsZero() {
		v.group = true
		v.year, v.month, v.day = c.Group.Date()
	}
	if c.Major != nil {
		if *c.Major < 0 {
			return Version{}, ErrNegativeComponent
		}
		v.hasMaj = true
		v.major = *c.Major
	}
	if c.Minor != nil {
		if *c.Minor < 0 {
			return Version{}, ErrNegativeComponent
		}
		if !v.hasMaj {
			return Version{}, ErrMinorWithoutMajor
		}
		v.hasMin = true
		v.minor = *c.Minor
	}
	if !v.group && !v.hasMaj {
		return Version{}, ErrMissingComponents
	}
	if c.Status != "" {
		if !isStatus(c.Status) {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalidStatus, c.Status)
		}
		v.status = c.Status
	}

	return v, nil
}

// New returns the numeric version major.minor.
// It panics if either component is negative.
func New(major, minor int) Version {
	return must(FromComponents(Components{Major: &major, Minor: &minor}))
}

// NewMajor returns a numeric version with no minor component.
// It panics if major is negative.
func NewMajor(major int) Version {
	return must(FromComponents(Components{Major: &major}))
}

// Date returns a group version for the given calendar day.
func Date(year int, month time.Month, day int) Version {
	return must(FromComponents(Components{Group: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}))
}

// Default is the version assumed when nothing else is configured: 1.0.
func Default() Version {
	return New(1, 0)
}

// Neutral returns the marker for version-agnostic endpoints.
// It compares greater than every other version.
func Neutral() Version {
	return Version{neutral: true}
}

// WithStatus returns a copy of v carrying the given status.
// It panics if status is not alphanumeric; use [FromComponents] for untrusted input.
func (v Version) WithStatus(status string) Version {
	if status != "" && !isStatus(status) {
		panic(fmt.Sprintf("apiversioning: invalid status %q", status))
	}
	v.status = status
	return v
}

// Group returns the group date, if any.
func (v Version) Group() (time.Time, bool) {
	if !v.group {
		return time.Time{}, false
	}
	return time.Date(v.year, v.month, v.day, 0, 0, 0, 0, time.UTC), true
}

// Major returns the major version, if any.
func (v Version) Major() (int, bool) { return v.major, v.hasMaj }

// Minor returns the minor version, if any.
func (v Version) Minor() (int, bool) { return v.minor, v.hasMin }

// Status returns the status, or "" when the version has none.
func (v Version) Status() string { return v.status }

// HasStatus reports whether the version carries a status such as "beta".
func (v Version) HasStatus() bool { return v.status != "" }

// IsNeutral reports whether v is the version-neutral marker.
func (v Version) IsNeutral() bool { return v.neutral }

// IsZero reports whether v is the zero Version, meaning no version at all.
func (v Version) IsZero() bool {
	return !v.neutral && !v.group && !v.hasMaj
}

// Equal reports whether v and other denote the same version.
func (v Version) Equal(other Version) bool {
	return Compare(v, other) == 0
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool {
	return Compare(v, other) < 0
}

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to,
// or after b.
func Compare(a, b Version) int {
	if a.neutral || b.neutral {
		switch {
		case a.neutral && b.neutral:
			return 0
		case a.neutral:
			return 1
		default:
			return -1
		}
	}

	// versions without a group date come first
	if a.group != b.group {
		if a.group {
			return 1
		}
		return -1
	}
	if a.group {
		if c := cmp.Compare(a.year, b.year); c != 0 {
			return c
		}
		if c := cmp.Compare(a.month, b.month); c != 0 {
			return c
		}
		if c := cmp.Compare(a.day, b.day); c != 0 {
			return c
		}
	}

	if a.hasMaj != b.hasMaj {
		if a.hasMaj {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(a.major, b.major); c != 0 {
		return c
	}
	// missing minor is 0
	if c := cmp.Compare(a.minor, b.minor); c != 0 {
		return c
	}

	switch {
	case a.status == "" && b.status == "":
		return 0
	case a.status == "":
		return -1
	case b.status == "":
		return 1
	}
	return strings.Compare(strings.ToLower(a.status), strings.ToLower(b.status))
}

// String returns the full form of v, which parses back to v.
func (v Version) String() string {
	return v.Format(FormatFull)
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func isStatus(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}

func must(v Version, err error) Version {
	if err != nil {
		panic("apiversioning: " + err.Error())
	}
	return v
}
