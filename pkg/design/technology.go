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

// Technology is a catalog of primitive nodes and arc prototypes.
type Technology struct {
	Variables
	name        string
	Description string
	nodes       []*PrimitiveNode
	arcs        []*ArcProto
}

// NewTechnology constructs an empty technology.
func NewTechnology(name string) *Technology {
	return &Technology{name: name}
}

// Name returns the name of this technology.
func (p *Technology) Name() string {
	return p.name
}

// AddNode adds a primitive node with a given default size to this technology.
func (p *Technology) AddNode(name string, width, height float64) (*PrimitiveNode, error) {
	if p.FindNode(name) != nil {
		return nil, fmt.Errorf("primitive node %s:%s already declared", p.name, name)
	}
	//
	node := &PrimitiveNode{tech: p, name: name, Width: width, Height: height}
	p.nodes = append(p.nodes, node)
	//
	return node, nil
}

// FindNode looks up a primitive node by name.
func (p *Technology) FindNode(name string) *PrimitiveNode {
	for _, n := range p.nodes {
		if n.name == name {
			return n
		}
	}
	//
	return nil
}

// Nodes returns the primitive nodes of this technology.
func (p *Technology) Nodes() []*PrimitiveNode {
	return p.nodes
}

// AddArc adds an arc prototype with a given default width to this technology.
func (p *Technology) AddArc(name string, width float64) (*ArcProto, error) {
	if p.FindArc(name) != nil {
		return nil, fmt.Errorf("arc %s:%s already declared", p.name, name)
	}
	//
	arc := &ArcProto{tech: p, name: name, Width: width}
	p.arcs = append(p.arcs, arc)
	//
	return arc, nil
}

// FindArc looks up an arc prototype by name.
func (p *Technology) FindArc(name string) *ArcProto {
	for _, a := range p.arcs {
		if a.name == name {
			return a
		}
	}
	//
	return nil
}

// Arcs returns the arc prototypes of this technology.
func (p *Technology) Arcs() []*ArcProto {
	return p.arcs
}

// Edge locates one side of a port relative to the centre of its node, as a
// multiple of the node's size plus a fixed offset.
type Edge struct {
	Multiplier float64
	Adder      float64
}

// At evaluates this edge for a node of the given size.
func (e Edge) At(size float64) float64 {
	return e.Multiplier*size + e.Adder
}

// PrimitiveNode is a node prototype provided by a technology.
type PrimitiveNode struct {
	tech *Technology
	name string
	// Default size
	Width  float64
	Height float64
	// Function of this node (e.g. "pin", "transistor"), for information only.
	Function string
	ports    []*PrimitivePort
}

// Technology returns the technology providing this node.
func (p *PrimitiveNode) Technology() *Technology {
	return p.tech
}

// Name returns the name of this primitive.
func (p *PrimitiveNode) Name() string {
	return p.name
}

// Describe implements NodeProto.
func (p *PrimitiveNode) Describe() string {
	return fmt.Sprintf("%s:%s", p.tech.name, p.name)
}

// AddPort adds a port to this primitive whose region is given by its four
// edges.
func (p *PrimitiveNode) AddPort(name string, left, right, bottom, top Edge) (*PrimitivePort, error) {
	if p.FindPort(name) != nil {
		return nil, fmt.Errorf("port %s on %s already declared", name, p.Describe())
	}
	//
	port := &PrimitivePort{p, name, left, right, bottom, top}
	p.ports = append(p.ports, port)
	//
	return port, nil
}

// AddCentrePort adds a port which is a single point at the centre of this
// primitive.
func (p *PrimitiveNode) AddCentrePort(name string) (*PrimitivePort, error) {
	return p.AddPort(name, Edge{}, Edge{}, Edge{}, Edge{})
}

// Ports implements NodeProto.
func (p *PrimitiveNode) Ports() []PortProto {
	ports := make([]PortProto, len(p.ports))
	for i, pp := range p.ports {
		ports[i] = pp
	}
	//
	return ports
}

// FindPort implements NodeProto.
func (p *PrimitiveNode) FindPort(name string) PortProto {
	for _, pp := range p.ports {
		if pp.name == name {
			return pp
		}
	}
	//
	return nil
}

// PrimitivePort is a port of a primitive node.
type PrimitivePort struct {
	node   *PrimitiveNode
	name   string
	Left   Edge
	Right  Edge
	Bottom Edge
	Top    Edge
}

// PortName implements PortProto.
func (p *PrimitivePort) PortName() string {
	return p.name
}

// Owner implements PortProto.
func (p *PrimitivePort) Owner() NodeProto {
	return p.node
}

// Region returns the region of this port, relative to the centre of an
// unrotated node with the given size.
func (p *PrimitivePort) Region(width, height float64) Rect {
	return Bounding(Point{p.Left.At(width), p.Bottom.At(height)}, Point{p.Right.At(width), p.Top.At(height)})
}

// ArcProto is an arc prototype provided by a technology.
type ArcProto struct {
	tech *Technology
	name string
	// Default width
	Width float64
}

// Technology returns the technology providing this arc.
func (p *ArcProto) Technology() *Technology {
	return p.tech
}

// Name returns the name of this arc prototype.
func (p *ArcProto) Name() string {
	return p.name
}

// Describe returns the technology-qualified name of this arc prototype.
func (p *ArcProto) Describe() string {
	return fmt.Sprintf("%s:%s", p.tech.name, p.name)
}
