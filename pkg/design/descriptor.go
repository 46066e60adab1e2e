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
package design

// Display determines whether a piece of text is drawn.
type Display uint8

const (
	// DisplayNone indicates text is never drawn.
	DisplayNone Display = iota
	// DisplayHidden indicates text is drawn only on request.
	DisplayHidden
	// DisplayShown indicates text is drawn.
	DisplayShown
)

// TextPosition is the anchor of text relative to its owner.
type TextPosition uint8

// Text positions, named by the side of the anchor on which text is drawn.
const (
	PosCentre TextPosition = iota
	PosUp
	PosDown
	PosLeft
	PosRight
	PosUpLeft
	PosUpRight
	PosDownLeft
	PosDownRight
	PosBoxed
)

// TextUnit identifies the physical units of an attribute's value.
type TextUnit uint8

// Text units
const (
	UnitNone TextUnit = iota
	UnitResistance
	UnitCapacitance
	UnitInductance
	UnitCurrent
	UnitVoltage
	UnitDistance
	UnitTime
)

// CodeLanguage identifies attributes whose values are code to be evaluated.
type CodeLanguage uint8

// Code languages
const (
	CodeNone CodeLanguage = iota
	CodeJava
	CodeSpice
	CodeTCL
)

// TextDescriptor captures how a name or attribute is displayed.  Descriptors
// are plain values, so identical descriptors compare equal.
type TextDescriptor struct {
	Display   Display
	Position  TextPosition
	NameValue bool
	// Absolute size in points, where zero means "use the relative size".
	AbsSize int
	// Relative size, where zero means the default of one grid unit.
	RelSize   float64
	XOffset   float64
	YOffset   float64
	Bold      bool
	Italic    bool
	Underline bool
	Inherit   bool
	Interior  bool
	Param     bool
	// Font index, where zero is the default font.
	Face int
	// Colour index, where zero is the default colour.
	Color int
	// Rotation in degrees (0, 90, 180 or 270).
	Rotation int
	Unit     TextUnit
	Code     CodeLanguage
}
