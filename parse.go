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
	"strconv"
	"strings"
	"time"
)

// Parse parses a version literal.
//
// Accepted forms:
//
//	1
//	1.0
//	1.1-beta
//	2018-04-01
//	2018-04-01-beta
//	2018-04-01.1
//	2018-04-01.1.0-beta
//
// Text that starts with four digits and a dash is always read as a group
// date. Statuses are letters and digits only. Failures are reported as a
// [*ParseError] that matches [ErrInvalidVersion].
func Parse(text string) (Version, error) {
	if text == "" {
		return Version{}, &ParseError{Text: text, Err: ErrInvalidVersion}
	}

	if isGroupPrefix(text) {
		return parseGroup(text)
	}

	num, status, hasStatus := strings.Cut(text, "-")
	v, err := parseNumber(text, num)
	if err != nil {
		return Version{}, err
	}
	if hasStatus {
		if err := applyStatus(&v, text, status); err != nil {
			return Version{}, err
		}
	}
	return v, nil
}

// TryParse is like [Parse] but reports failure with a boolean.
func TryParse(text string) (Version, bool) {
	v, err := Parse(text)
	return v, err == nil
}

// MustParse is like [Parse] but panics on failure.
// It is meant for versions declared in code at startup.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic("apiversioning: " + err.Error())
	}
	return v
}

func isGroupPrefix(text string) bool {
	return len(text) > 4 && allDigits(text[:4]) && text[4] == '-'
}

func parseGroup(text string) (Version, error) {
	if len(text) < len(groupLayout) {
		return Version{}, &ParseError{Text: text, Err: ErrInvalidGroupVersion}
	}

	date, err := time.Parse(groupLayout, text[:len(groupLayout)])
	if err != nil {
		return Version{}, &ParseError{Text: text, Err: ErrInvalidGroupVersion}
	}

	v := Version{group: true}
	v.year, v.month, v.day = date.Date()

	rest := text[len(groupLayout):]
	switch {
	case rest == "":
		return v, nil
	case rest[0] == '-':
		if err := applyStatus(&v, text, rest[1:]); err != nil {
			return Version{}, err
		}
		return v, nil
	case rest[0] == '.':
		num, status, hasStatus := strings.Cut(rest[1:], "-")
		n, err := parseNumber(text, num)
		if err != nil {
			return Version{}, err
		}
		v.major, v.minor, v.hasMaj, v.hasMin = n.major, n.minor, n.hasMaj, n.hasMin
		if hasStatus {
			if err := applyStatus(&v, text, status); err != nil {
				return Version{}, err
			}
		}
		return v, nil
	default:
		return Version{}, &ParseError{Text: text, Err: ErrInvalidGroupVersion}
	}
}

// parseNumber parses "major" or "major.minor".
func parseNumber(text, num string) (Version, error) {
	majorText, minorText, hasMinor := strings.Cut(num, ".")

	major, ok := parseComponent(majorText)
	if !ok {
		return Version{}, &ParseError{Text: text, Err: ErrInvalidVersion}
	}
	v := Version{major: major, hasMaj: true}

	if hasMinor {
		minor, ok := parseComponent(minorText)
		if !ok {
			return Version{}, &ParseError{Text: text, Err: ErrInvalidVersion}
		}
		v.minor, v.hasMin = minor, true
	}
	return v, nil
}

func parseComponent(s string) (int, bool) {
	if !allDigits(s) {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

func applyStatus(v *Version, text, status string) error {
	if !isStatus(status) {
		return &ParseError{Text: text, Err: ErrInvalidStatus}
	}
	v.status = status
	return nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
