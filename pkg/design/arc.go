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

import "fmt"

// Connection is one end of an arc: the port it attaches to and the location of
// the end point.
type Connection struct {
	Port     PortInst
	Location Point
}

// ArcInst is a wire between two port instances of a cell.
type ArcInst struct {
	Variables
	parent *Cell
	proto  *ArcProto
	name   string
	// Descriptor of the arc name
	NameDescriptor TextDescriptor
	Width          float64
	Head           Connection
	Tail           Connection
	Flags          ArcFlags
	// Angle in tenths of a degree
	Angle int
}

// Parent returns the cell containing this arc.
func (p *ArcInst) Parent() *Cell {
	return p.parent
}

// Proto returns the prototype of this arc.
func (p *ArcInst) Proto() *ArcProto {
	return p.proto
}

// Name returns the name of this arc.
func (p *ArcInst) Name() string {
	return p.name
}

func (p *ArcInst) String() string {
	return fmt.Sprintf("%s[%s]", p.proto.Describe(), p.name)
}
