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

// NodeProto is the prototype of a node instance, which is either a primitive
// node or a cell.
type NodeProto interface {
	// Describe returns a qualified name for this prototype.
	Describe() string
	// Ports returns the ports of this prototype in declaration order.
	Ports() []PortProto
	// FindPort looks up a port by name, returning nil if there is none.
	FindPort(name string) PortProto
}

// PortProto is a port of a node prototype, which is either a primitive port or
// an export.
type PortProto interface {
	// PortName returns the name of this port.
	PortName() string
	// Owner returns the prototype to which this port belongs.
	Owner() NodeProto
}

// NodeInst is a placed occurrence of a primitive or cell within a cell.
type NodeInst struct {
	Variables
	parent *Cell
	proto  NodeProto
	name   string
	// Descriptor of the node name
	NameDescriptor TextDescriptor
	// Location of the node's centre (primitives) or origin (cells)
	Anchor Point
	// Size (primitives only)
	Width  float64
	Height float64
	Orient Orientation
	Flags  NodeFlags
	// Technology specific bits
	TechBits int
	// Descriptor of the instance name (cells only)
	ProtoDescriptor TextDescriptor
}

// Parent returns the cell containing this node.
func (p *NodeInst) Parent() *Cell {
	return p.parent
}

// Proto returns the prototype of this node.
func (p *NodeInst) Proto() NodeProto {
	return p.proto
}

// Name returns the name of this node.
func (p *NodeInst) Name() string {
	return p.name
}

// IsCellInstance checks whether this node is an instance of a cell.
func (p *NodeInst) IsCellInstance() bool {
	_, ok := p.proto.(*Cell)
	return ok
}

// Ports returns the port instances of this node, in the order of the
// prototype's ports.  Since exports can be added to a cell at any time, port
// instances are derived from the prototype on demand.
func (p *NodeInst) Ports() []PortInst {
	protos := p.proto.Ports()
	ports := make([]PortInst, len(protos))
	//
	for i, pp := range protos {
		ports[i] = PortInst{p, pp}
	}
	//
	return ports
}

// FindPort looks up the port instance of this node for a given port name.
func (p *NodeInst) FindPort(name string) (PortInst, bool) {
	if pp := p.proto.FindPort(name); pp != nil {
		return PortInst{p, pp}, true
	}
	//
	return PortInst{}, false
}

// PortFor returns the port instance of this node for a given port of its
// prototype.
func (p *NodeInst) PortFor(pp PortProto) PortInst {
	return PortInst{p, pp}
}

// Transform maps a point from this node's coordinates into its parent's.
func (p *NodeInst) Transform(pt Point) Point {
	return p.Orient.Apply(pt).Add(p.Anchor)
}

// Untransform maps a point from the parent's coordinates into this node's.
func (p *NodeInst) Untransform(pt Point) Point {
	return p.Orient.Inverse(pt.Sub(p.Anchor))
}

// TransformRect maps a rectangle from this node's coordinates into its
// parent's.
func (p *NodeInst) TransformRect(r Rect) Rect {
	r = p.Orient.ApplyRect(r)
	//
	return Rect{r.Min.Add(p.Anchor), r.Max.Add(p.Anchor)}
}

// Bounds returns the extent of this node in its parent's coordinates.
func (p *NodeInst) Bounds() Rect {
	if cell, ok := p.proto.(*Cell); ok {
		return p.TransformRect(cell.Bounds())
	}
	//
	return p.TransformRect(RectAround(Point{}, p.Width, p.Height))
}

func (p *NodeInst) String() string {
	return fmt.Sprintf("%s[%s]", p.proto.Describe(), p.name)
}

// PortInst is a port on a particular node.  Port instances are values, so two
// port instances for the same node and port compare equal.
type PortInst struct {
	Node  *NodeInst
	Proto PortProto
}

// IsValid checks whether this port instance refers to anything.
func (p PortInst) IsValid() bool {
	return p.Node != nil && p.Proto != nil
}

// Region returns the region covered by this port in the coordinates of the
// node's parent.
func (p PortInst) Region() Rect {
	switch pp := p.Proto.(type) {
	case *PrimitivePort:
		return p.Node.TransformRect(pp.Region(p.Node.Width, p.Node.Height))
	case *Export:
		return p.Node.TransformRect(pp.Port.Region())
	}
	//
	return Rect{p.Node.Anchor, p.Node.Anchor}
}

// Contains checks whether a point (in the parent's coordinates) lies within
// this port.
func (p PortInst) Contains(pt Point) bool {
	return p.Region().Contains(pt, TinyDistance)
}

func (p PortInst) String() string {
	return fmt.Sprintf("%s on node %s", p.Proto.PortName(), p.Node.name)
}
