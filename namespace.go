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

import "strings"

// ParseNamespace extracts the versions encoded in a namespace or package path.
//
// Segments are separated by '.' or '/'. A segment holds a version when it
// starts with 'v' or 'V' followed by digits, with '_' standing in for the
// separators of the version grammar:
//
//	v1            1
//	v1_1          1.1
//	v0_9_Beta     0.9-Beta
//	v1RC          1-RC
//	v20180401     2018-04-01
//	v2018_04_01   2018-04-01
//	v20180401Beta 2018-04-01-Beta
//	v2018_04_01_1_0_Beta 2018-04-01.1.0-Beta
//
// Versions are returned outer to inner. Duplicates are kept so that callers
// can tell a unit nested under two versioned segments. A path without any
// versioned segment yields nil.
func ParseNamespace(namespace string) []Version {
	var versions []Version

	segments := strings.FieldsFunc(namespace, func(r rune) bool { return r == '.' || r == '/' })
	for _, segment := range segments {
		if v, ok := parseNamespaceSegment(segment); ok {
			versions = append(versions, v)
		}
	}

	return versions
}

func parseNamespaceSegment(segment string) (Version, bool) {
	if len(segment) < 2 || (segment[0] != 'v' && segment[0] != 'V') || !isDigit(segment[1]) {
		return Version{}, false
	}

	groups, status := splitNamespaceToken(segment[1:])
	if status != "" && !isStatus(status) {
		return Version{}, false
	}

	var text string
	switch {
	case len(groups[0]) == 8:
		// vYYYYMMDD[_major[_minor]]
		g := groups[0]
		text = g[:4] + "-" + g[4:6] + "-" + g[6:]
		groups = groups[1:]
	case len(groups) >= 3 && len(groups[0]) == 4:
		// vYYYY_MM_DD[_major[_minor]]
		text = groups[0] + "-" + groups[1] + "-" + groups[2]
		groups = groups[3:]
	}

	if len(groups) > 2 {
		return Version{}, false
	}
	if len(groups) > 0 {
		if text != "" {
			text += "."
		}
		text += strings.Join(groups, ".")
	}
	if status != "" {
		text += "-" + status
	}

	v, err := Parse(text)
	if err != nil {
		return Version{}, false
	}
	return v, true
}

// splitNamespaceToken splits "2018_04_01_Beta" into its numeric groups and
// trailing status. The token must start with a digit.
func splitNamespaceToken(token string) (groups []string, status string) {
	i := 0
	for {
		start := i
		for i < len(token) && isDigit(token[i]) {
			i++
		}
		groups = append(groups, token[start:i])

		if i+1 < len(token) && token[i] == '_' && isDigit(token[i+1]) {
			i++
			continue
		}
		break
	}

	rest := token[i:]
	return groups, strings.TrimPrefix(rest, "_")
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
