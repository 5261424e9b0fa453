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
)

// Format specifiers accepted by [Version.Format].
const (
	FormatFull             = "F"   // 2018-04-01.1.1-beta, 1, 1.1-beta
	FormatFullMinor        = "FF"  // like F with an implied minor: 1 -> 1.0
	FormatGroup            = "G"   // 2018-04-01
	FormatGroupStatus      = "GG"  // 2018-04-01-beta
	FormatVersion          = "V"   // 1, 1.1
	FormatMajorMinor       = "VV"  // 1.0, 1.1
	FormatMajorMinorStatus = "VVV" // 1.0-beta
	FormatStatus           = "S"   // beta
	FormatMajor            = "M"   // 1
	FormatMinor            = "m"   // 0
)

// neutralText is how the neutral marker prints. It does not parse.
const neutralText = "neutral"

// groupLayout is the time layout of a group version.
const groupLayout = "2006-01-02"

// Format renders v using one of the Format* specifiers.
// Unknown specifiers render the full form. Components a specifier asks for
// but v lacks render as empty.
func (v Version) Format(spec string) string {
	if v.neutral {
		return neutralText
	}
	if v.IsZero() {
		return ""
	}

	var b strings.Builder

	switch spec {
	case FormatGroup:
		v.writeGroup(&b)
	case FormatGroupStatus:
		if v.group {
			v.writeGroup(&b)
			v.writeStatus(&b)
		}
	case FormatVersion:
		v.writeNumber(&b, false)
	case FormatMajorMinor:
		v.writeNumber(&b, true)
	case FormatMajorMinorStatus:
		if v.hasMaj {
			v.writeNumber(&b, true)
			v.writeStatus(&b)
		}
	case FormatStatus:
		b.WriteString(v.status)
	case FormatMajor:
		if v.hasMaj {
			b.WriteString(strconv.Itoa(v.major))
		}
	case FormatMinor:
		if v.hasMaj {
			b.WriteString(strconv.Itoa(v.minor))
		}
	case FormatFullMinor:
		v.writeFull(&b, true)
	default:
		v.writeFull(&b, false)
	}

	return b.String()
}

func (v Version) writeFull(b *strings.Builder, impliedMinor bool) {
	v.writeGroup(b)
	if v.hasMaj {
		if v.group {
			b.WriteByte('.')
		}
		v.writeNumber(b, impliedMinor)
	}
	v.writeStatus(b)
}

func (v Version) writeGroup(b *strings.Builder) {
	if !v.group {
		return
	}
	g, _ := v.Group()
	b.WriteString(g.Format(groupLayout))
}

func (v Version) writeNumber(b *strings.Builder, impliedMinor bool) {
	if !v.hasMaj {
		return
	}
	b.WriteString(strconv.Itoa(v.major))
	if v.hasMin || impliedMinor {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(v.minor))
	}
}

func (v Version) writeStatus(b *strings.Builder) {
	if v.status != "" {
		b.WriteByte('-')
		b.WriteString(v.status)
	}
}
