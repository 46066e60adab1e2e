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

// Export is a port of a node which is made available on the boundary of the
// enclosing cell.
type Export struct {
	Variables
	parent *Cell
	name   string
	// User visible name, which is usually the same as the name
	Alias          string
	Descriptor     TextDescriptor
	Port           PortInst
	Characteristic PortCharacteristic
	AlwaysDrawn    bool
	BodyOnly       bool
}

// Parent returns the cell to which this export belongs.
func (p *Export) Parent() *Cell {
	return p.parent
}

// Name returns the name of this export.
func (p *Export) Name() string {
	return p.name
}

// PortName implements PortProto.
func (p *Export) PortName() string {
	return p.name
}

// Owner implements PortProto.
func (p *Export) Owner() NodeProto {
	return p.parent
}

// Region returns the region covered by this export in the coordinates of its
// cell.
func (p *Export) Region() Rect {
	return p.Port.Region()
}
