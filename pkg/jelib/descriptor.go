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
	"strings"

	"github.com/consensys/go-jelib/pkg/design"
	"github.com/consensys/go-jelib/pkg/id"
)

// DescriptorDecoder decodes text descriptors, caching the result for each
// distinct descriptor string.  Descriptors on variables and elsewhere are
// cached separately, since they default differently.
type DescriptorDecoder struct {
	fonts    *id.Manager
	onVars   map[string]design.TextDescriptor
	elsewise map[string]design.TextDescriptor
}

// NewDescriptorDecoder constructs a decoder interning font names in the given
// manager.
func NewDescriptorDecoder(fonts *id.Manager) *DescriptorDecoder {
	return &DescriptorDecoder{fonts, make(map[string]design.TextDescriptor), make(map[string]design.TextDescriptor)}
}

// Decode a text descriptor.  Problems are returned as a list of messages,
// though the descriptor decoded so far is still returned.  Descriptors with
// problems are never cached.
func (p *DescriptorDecoder) Decode(text string, onVariable bool) (design.TextDescriptor, []string) {
	cache := p.elsewise
	if onVariable {
		cache = p.onVars
	}
	//
	if td, ok := cache[text]; ok {
		return td, nil
	}
	//
	td, errs := p.decode(text, onVariable)
	if len(errs) == 0 {
		cache[text] = td
	}
	//
	return td, errs
}

func (p *DescriptorDecoder) decode(text string, onVariable bool) (design.TextDescriptor, []string) {
	var (
		td   design.TextDescriptor
		errs []string
	)
	//
	if !onVariable {
		td.Display = design.DisplayShown
	}
	//
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...)+": "+text)
	}
	// number reads the semicolon terminated argument starting at i, returning
	// it along with the index of its semicolon.
	number := func(i int, what string) (string, int, bool) {
		semi := strings.IndexByte(text[i:], ';')
		if semi < 0 {
			fail("Bad %s (semicolon missing)", what)
			return "", len(text), false
		}
		//
		return text[i : i+semi], i + semi, true
	}
	//
	for j := 0; j < len(text); j++ {
		switch c := text[j]; c {
		case 'D', 'd':
			td.Display = design.DisplayShown
			if c == 'd' {
				td.Display = design.DisplayHidden
			}
			//
			if j++; j >= len(text) {
				fail("Incorrect display specification")
				break
			}
			//
			if pos, ok := positions[text[j]]; ok {
				td.Position = pos
			}
		case 'N':
			td.NameValue = true
		case 'A', 'G', 'X', 'Y', 'F', 'C':
			arg, semi, ok := number(j+1, numberNames[c])
			j = semi
			//
			if ok {
				if err := p.setNumber(&td, c, arg); err != nil {
					fail("Bad %s (%s)", numberNames[c], err.Error())
				}
			}
		case 'B':
			td.Bold = true
		case 'I':
			td.Italic = true
		case 'L':
			td.Underline = true
		case 'H':
			td.Inherit = true
		case 'T':
			td.Interior = true
		case 'P':
			td.Param = true
		case 'R':
			td.Rotation = 90
			//
			for k := 0; k < 2 && j+1 < len(text) && text[j+1] == 'R'; k++ {
				td.Rotation += 90
				j++
			}
		case 'O':
			if j++; j >= len(text) {
				fail("Bad language specification")
			} else if !onVariable {
				fail("Illegal use of language specification")
			} else if code, ok := languages[text[j]]; ok {
				td.Code = code
			} else {
				fail("Unknown language specification")
			}
		case 'U':
			if j++; j >= len(text) {
				fail("Bad units specification")
			} else if unit, ok := units[text[j]]; ok {
				td.Unit = unit
			} else {
				fail("Unknown units specification")
			}
		default:
			fail("Unknown text descriptor letter '%c'", c)
		}
	}
	//
	return td, errs
}

func (p *DescriptorDecoder) setNumber(td *design.TextDescriptor, c byte, arg string) error {
	var err error
	//
	switch c {
	case 'A':
		td.AbsSize, err = strconv.Atoi(arg)
	case 'G':
		td.RelSize, err = parseDouble(arg)
	case 'X':
		td.XOffset, err = parseDouble(arg)
	case 'Y':
		td.YOffset, err = parseDouble(arg)
	case 'C':
		td.Color, err = strconv.Atoi(arg)
	case 'F':
		td.Face = p.fonts.Font(arg)
	}
	//
	return err
}

var numberNames = map[byte]string{
	'A': "absolute size", 'G': "relative size", 'X': "X offset", 'Y': "Y offset", 'F': "font", 'C': "color",
}

var positions = map[byte]design.TextPosition{
	'5': design.PosCentre, '8': design.PosUp, '2': design.PosDown, '4': design.PosLeft, '6': design.PosRight,
	'7': design.PosUpLeft, '9': design.PosUpRight, '1': design.PosDownLeft, '3': design.PosDownRight,
	'0': design.PosBoxed,
}

var languages = map[byte]design.CodeLanguage{'J': design.CodeJava, 'L': design.CodeSpice, 'T': design.CodeTCL}

var units = map[byte]design.TextUnit{
	'R': design.UnitResistance, 'C': design.UnitCapacitance, 'I': design.UnitInductance, 'A': design.UnitCurrent,
	'V': design.UnitVoltage, 'D': design.UnitDistance, 'T': design.UnitTime,
}

// parseDouble reads a floating point number, where an empty string is zero.
func parseDouble(text string) (float64, error) {
	if text == "" {
		return 0, nil
	}
	//
	return strconv.ParseFloat(text, 64)
}
