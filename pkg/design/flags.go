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

// CellFlags is the set of state flags of a cell.
type CellFlags uint8

// Cell flags
const (
	CellExpanded CellFlags = 1 << iota
	CellAllLocked
	CellInstancesLocked
	CellLibrary
	CellTechLibrary
)

// Has checks whether all the given flags are set.
func (f CellFlags) Has(flags CellFlags) bool {
	return f&flags == flags
}

// NodeFlags is the set of state flags of a node instance.
type NodeFlags uint8

// Node flags
const (
	NodeExpanded NodeFlags = 1 << iota
	NodeLocked
	NodeShortened
	NodeVisibleInside
	NodeWiped
	NodeHardSelect
)

// Has checks whether all the given flags are set.
func (f NodeFlags) Has(flags NodeFlags) bool {
	return f&flags == flags
}

// ArcFlags is the set of (modern) state flags of an arc instance.
type ArcFlags uint16

// Arc flags
const (
	ArcRigid ArcFlags = 1 << iota
	ArcFixedAngle
	ArcSlidable
	ArcHardSelect
	ArcHeadNegated
	ArcTailNegated
	ArcHeadArrowed
	ArcTailArrowed
	ArcBodyArrowed
	ArcHeadExtended
	ArcTailExtended
)

// DefaultArcFlags holds the flags of an arc for which no state letters are
// given.
const DefaultArcFlags = ArcFixedAngle | ArcHeadExtended | ArcTailExtended

// Has checks whether all the given flags are set.
func (f ArcFlags) Has(flags ArcFlags) bool {
	return f&flags == flags
}

// PortCharacteristic describes the electrical role of an export.
type PortCharacteristic uint8

// Port characteristics
const (
	PortUnknown PortCharacteristic = iota
	PortInput
	PortOutput
	PortBidirectional
	PortPower
	PortGround
	PortClock
	PortClock1
	PortClock2
	PortClock3
	PortClock4
	PortClock5
	PortClock6
	PortRefOut
	PortRefIn
	PortRefBase
)

var characteristicNames = []string{"U", "I", "O", "B", "P", "G", "C", "C1", "C2", "C3", "C4", "C5", "C6",
	"RO", "RI", "RB"}

// ParseCharacteristic decodes the short name of a port characteristic.
func ParseCharacteristic(short string) (PortCharacteristic, bool) {
	for i, n := range characteristicNames {
		if n == short {
			return PortCharacteristic(i), true
		}
	}
	//
	return PortUnknown, false
}

// String returns the short name of this characteristic.
func (c PortCharacteristic) String() string {
	if int(c) < len(characteristicNames) {
		return characteristicNames[c]
	}
	//
	return "U"
}
