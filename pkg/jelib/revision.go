// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package jelib

import (
	"fmt"
	"strconv"
	"unicode"
)

// SupportedVersion is the newest version of the format understood by this
// reader.  Libraries written by newer versions are read, but with a warning.
var SupportedVersion = MustParseVersion("9.07")

// Version identifies the release of the tool which wrote a library, such as
// "8.04l" or "9.01a2".
type Version struct {
	Major int
	Minor int
	// Details encodes the letters following the minor number, so "a" gives 1,
	// "z" gives 26 and "aw" gives 49.
	Details int
	// Build number following the letters, or zero.
	Build int
}

// ParseVersion parses a version string of the form major.minor[letters][build].
func ParseVersion(text string) (Version, error) {
	var (
		v     Version
		runes = []rune(text)
		i     = 0
		err   error
	)
	//
	if v.Major, i, err = parseDigits(runes, i); err != nil {
		return v, fmt.Errorf("badly formed version %q", text)
	} else if i >= len(runes) || runes[i] != '.' {
		return v, fmt.Errorf("badly formed version %q (missing minor)", text)
	} else if v.Minor, i, err = parseDigits(runes, i+1); err != nil {
		return v, fmt.Errorf("badly formed version %q", text)
	}
	// Letters
	start := i
	for i < len(runes) && unicode.IsLower(runes[i]) {
		i++
	}
	//
	switch i - start {
	case 0:
	case 1:
		v.Details = int(runes[start]-'a') + 1
	case 2:
		v.Details = (int(runes[start]-'a')+1)*26 + int(runes[start+1]-'a') + 1
	default:
		return v, fmt.Errorf("badly formed version %q (too many letters)", text)
	}
	// Optional build number
	if i < len(runes) {
		if v.Build, i, err = parseDigits(runes, i); err != nil || i != len(runes) {
			return v, fmt.Errorf("badly formed version %q (trailing characters)", text)
		}
	}
	//
	return v, nil
}

// MustParseVersion parses a version string, panicking if it is badly formed.
func MustParseVersion(text string) Version {
	v, err := ParseVersion(text)
	if err != nil {
		panic(err)
	}
	//
	return v
}

// Compare returns -1, 0 or 1 depending on whether this version is older, the
// same or newer than the other.
func (v Version) Compare(o Version) int {
	for _, d := range [4]int{v.Major - o.Major, v.Minor - o.Minor, v.Details - o.Details, v.Build - o.Build} {
		if d < 0 {
			return -1
		} else if d > 0 {
			return 1
		}
	}
	//
	return 0
}

func (v Version) String() string {
	text := fmt.Sprintf("%d.%02d", v.Major, v.Minor)
	//
	switch {
	case v.Details > 26:
		text += string([]rune{rune('a' + (v.Details-1)/26 - 1), rune('a' + (v.Details-1)%26)})
	case v.Details > 0:
		text += string(rune('a' + v.Details - 1))
	}
	//
	if v.Build > 0 {
		text += strconv.Itoa(v.Build)
	}
	//
	return text
}

func parseDigits(runes []rune, i int) (int, int, error) {
	start := i
	for i < len(runes) && unicode.IsDigit(runes[i]) {
		i++
	}
	//
	if i == start {
		return 0, i, fmt.Errorf("expected digits")
	}
	//
	n, err := strconv.Atoi(string(runes[start:i]))
	//
	return n, i, err
}

// Grammar captures the layout of each record kind for one revision of the
// format, so that record decoding never has to branch on revision numbers.
type Grammar struct {
	Revision int
	// Escape character in effect
	Escape rune
	// Quoted indicates names and values are written in quotes when necessary
	// and that disk names are kept raw.
	Quoted bool
	// Minimum fields for a cell declaration
	CellFields int
	// Cell declarations carry an explicit group label
	CellHasGroup bool
	// Cell declarations split the name into name, view and version fields
	CellNameSplit bool
	// Minimum fields for primitive node lines
	NodeFields int
	// Minimum fields for cell instance lines
	InstanceFields int
	// Instance lines share the layout of primitive node lines
	InstanceAsNode bool
	// Node size is negated to indicate mirroring
	MirrorBySize bool
	// Minimum fields for an export
	ExportFields int
	// Exports carry a user-visible name distinct from the internal name
	ExportHasAlias bool
	// Exports carry the location of the exported port
	ExportHasLocation bool
	// Exact number of fields for an external cell
	ExternalCellFields int
	// External cells carry creation and revision dates
	ExternalCellHasDates bool
}

// Revisions lists the grammar of every revision, oldest first.  A library uses
// revision i when its version is older than RevisionLimits[i].
var Revisions = []Grammar{
	{
		Revision: 0, Escape: '^', Quoted: false,
		CellFields: 7, CellNameSplit: true,
		NodeFields: 10, InstanceFields: 10, InstanceAsNode: true, MirrorBySize: true,
		ExportFields: 7, ExportHasLocation: true,
		ExternalCellFields: 5,
	},
	{
		Revision: 1, Escape: '\\', Quoted: true,
		CellFields: 5,
		NodeFields: 9, InstanceFields: 8,
		ExportFields: 5, ExternalCellFields: 7, ExternalCellHasDates: true,
	},
	{
		Revision: 2, Escape: '\\', Quoted: true,
		CellFields: 6, CellHasGroup: true,
		NodeFields: 9, InstanceFields: 8,
		ExportFields: 6, ExportHasAlias: true,
		ExternalCellFields: 5,
	},
}

// RevisionLimits holds the first version which is no longer read by each
// revision (except the newest).
var RevisionLimits = []Version{MustParseVersion("8.01aw"), MustParseVersion("8.04l")}

// GrammarFor selects the grammar for a library written by a given version.
func GrammarFor(v Version) Grammar {
	for i, limit := range RevisionLimits {
		if v.Compare(limit) < 0 {
			return Revisions[i]
		}
	}
	//
	return Newest()
}

// Newest returns the grammar of the newest revision.
func Newest() Grammar {
	return Revisions[len(Revisions)-1]
}
