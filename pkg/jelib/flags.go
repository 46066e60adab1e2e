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
	"strconv"
	"strings"

	"github.com/consensys/go-jelib/pkg/design"
)

// ParseCellState decodes the state letters of a cell declaration.  Unknown
// letters are ignored.
func ParseCellState(state string) design.CellFlags {
	var flags design.CellFlags
	//
	for _, c := range state {
		switch c {
		case 'E':
			flags |= design.CellExpanded
		case 'L':
			flags |= design.CellAllLocked
		case 'I':
			flags |= design.CellInstancesLocked
		case 'C':
			flags |= design.CellLibrary
		case 'T':
			flags |= design.CellTechLibrary
		}
	}
	//
	return flags
}

// ParseNodeState decodes the state letters of a node, which may be followed by
// technology specific bits written as a number.
func ParseNodeState(state string) (design.NodeFlags, int, error) {
	var flags design.NodeFlags
	//
	for i, c := range state {
		switch c {
		case 'E':
			flags |= design.NodeExpanded
		case 'L':
			flags |= design.NodeLocked
		case 'S':
			flags |= design.NodeShortened
		case 'V':
			flags |= design.NodeVisibleInside
		case 'W':
			flags |= design.NodeWiped
		case 'A':
			flags |= design.NodeHardSelect
		default:
			if '0' <= c && c <= '9' {
				bits, err := strconv.Atoi(state[i:])
				return flags, bits, err
			}
		}
	}
	//
	return flags, 0, nil
}

// ParseOrientation decodes the orientation of a node.  Each X or Y toggles the
// corresponding mirror, each R rotates by 90 degrees, and a trailing number
// rotates by that many tenths of a degree.
func ParseOrientation(text string) (design.Orientation, error) {
	var orient design.Orientation
	//
	for i, c := range text {
		switch c {
		case 'X':
			orient.MirrorX = !orient.MirrorX
		case 'Y':
			orient.MirrorY = !orient.MirrorY
		case 'R':
			orient.Angle += 900
		default:
			angle, err := strconv.Atoi(text[i:])
			if err != nil {
				return orient, err
			}
			//
			orient.Angle += angle
			//
			return orient, nil
		}
	}
	//
	return orient, nil
}

// LegacyArcFlags holds the arc state letters which were superseded by the
// per-end extension and arrow letters.
type LegacyArcFlags struct {
	// Cleared by E, meaning neither end is extended
	Extended bool
	// Set by D, meaning the arc is drawn with an arrow
	Directional bool
	// Set by V, meaning the arrow points at the tail
	ReverseEnds bool
	// Set by H, meaning the head is left as it is
	SkipHead bool
	// Set by T, meaning the tail is left as it is
	SkipTail bool
}

// IsLegacy determines whether these flags alter anything when translated.
func (p LegacyArcFlags) IsLegacy() bool {
	return !p.Extended || p.Directional
}

// Modern translates legacy flags into the modern flag set, given the flags
// decoded from the modern letters.  When no legacy flags are in effect, the
// modern flags are returned unchanged.
func (p LegacyArcFlags) Modern(flags design.ArcFlags) design.ArcFlags {
	if !p.IsLegacy() {
		return flags
	}
	//
	set := func(f design.ArcFlags, on bool) {
		if on {
			flags |= f
		} else {
			flags &^= f
		}
	}
	//
	headArrow, tailArrow := flags.Has(design.ArcHeadArrowed), flags.Has(design.ArcTailArrowed)
	headPlain, tailPlain := !flags.Has(design.ArcHeadExtended), !flags.Has(design.ArcTailExtended)
	//
	if !p.Extended {
		headPlain, tailPlain = true, true
	}
	//
	if p.Directional {
		if p.ReverseEnds {
			tailArrow = true
		} else {
			headArrow = true
		}
		//
		flags |= design.ArcBodyArrowed
	}
	//
	if p.SkipHead {
		headArrow, headPlain = false, false
	}
	//
	if p.SkipTail {
		tailArrow, tailPlain = false, false
	}
	//
	set(design.ArcHeadArrowed, headArrow)
	set(design.ArcTailArrowed, tailArrow)
	set(design.ArcHeadExtended, !headPlain)
	set(design.ArcTailExtended, !tailPlain)
	//
	return flags
}

// ParseArcState decodes the state letters of an arc, which may be followed by
// its angle.  Modern and legacy letters are decoded separately, then combined
// by LegacyArcFlags.Modern.
func ParseArcState(state string) (design.ArcFlags, int, error) {
	var (
		flags  = design.DefaultArcFlags
		legacy = LegacyArcFlags{Extended: true}
	)
	//
	for i, c := range state {
		switch c {
		case 'R':
			flags |= design.ArcRigid
		case 'F':
			flags &^= design.ArcFixedAngle
		case 'S':
			flags |= design.ArcSlidable
		case 'A':
			flags |= design.ArcHardSelect
		case 'N':
			flags |= design.ArcTailNegated
		case 'G':
			flags |= design.ArcHeadNegated
		case 'X':
			flags |= design.ArcHeadArrowed
		case 'Y':
			flags |= design.ArcTailArrowed
		case 'B':
			flags |= design.ArcBodyArrowed
		case 'I':
			flags &^= design.ArcHeadExtended
		case 'J':
			flags &^= design.ArcTailExtended
		case 'E':
			legacy.Extended = false
		case 'D':
			legacy.Directional = true
		case 'V':
			legacy.ReverseEnds = true
		case 'H':
			legacy.SkipHead = true
		case 'T':
			legacy.SkipTail = true
		default:
			if '0' <= c && c <= '9' {
				angle, err := strconv.Atoi(state[i:])
				return legacy.Modern(flags), angle, err
			}
		}
	}
	//
	return legacy.Modern(flags), 0, nil
}

// ParseCharacteristic decodes the characteristic of an export, which may be
// followed by modifiers "/A" (always drawn) and "/B" (body only).  Unknown
// characteristics are treated as unknown.
func ParseCharacteristic(text string) (ch design.PortCharacteristic, alwaysDrawn bool, bodyOnly bool) {
	if slash := strings.IndexByte(text, '/'); slash >= 0 {
		for _, mod := range strings.Split(text[slash+1:], "/") {
			switch {
			case strings.HasPrefix(mod, "A"):
				alwaysDrawn = true
			case strings.HasPrefix(mod, "B"):
				bodyOnly = true
			}
		}
		//
		text = text[:slash]
	}
	//
	ch, _ = design.ParseCharacteristic(text)
	//
	return ch, alwaysDrawn, bodyOnly
}
