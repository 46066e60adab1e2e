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

import (
	"fmt"
	"strings"
	"time"

	"github.com/consensys/go-jelib/pkg/id"
)

// Cell is a named, reusable design unit of a library.
type Cell struct {
	Variables
	lib   *Library
	name  id.CellName
	group *CellGroup
	// Technology of this cell (nil if unknown)
	Tech     *Technology
	Created  time.Time
	Revised  time.Time
	Flags    CellFlags
	nodes    []*NodeInst
	arcs     []*ArcInst
	exports  []*Export
	names    map[string]*NodeInst
	arcNames map[string]*ArcInst
	counters map[string]int
}

// Library returns the library containing this cell.
func (p *Cell) Library() *Library {
	return p.lib
}

// Name returns the qualified name of this cell.
func (p *Cell) Name() id.CellName {
	return p.name
}

// Group returns the group of this cell, or nil if it has not been grouped.
func (p *Cell) Group() *CellGroup {
	return p.group
}

// Describe implements NodeProto.
func (p *Cell) Describe() string {
	return fmt.Sprintf("%s:%s", p.lib.name, p.name.String())
}

// IsDummy checks whether this cell is a placeholder fabricated for a cell which
// could not be found.
func (p *Cell) IsDummy() bool {
	_, ok := p.Var(VarTrueLibrary)
	return ok
}

// Nodes returns the nodes of this cell in creation order.
func (p *Cell) Nodes() []*NodeInst {
	return p.nodes
}

// Arcs returns the arcs of this cell in creation order.
func (p *Cell) Arcs() []*ArcInst {
	return p.arcs
}

// Exports returns the exports of this cell in creation order.
func (p *Cell) Exports() []*Export {
	return p.exports
}

// FindNode looks up a node by name.
func (p *Cell) FindNode(name string) *NodeInst {
	return p.names[name]
}

// FindArc looks up an arc by name.
func (p *Cell) FindArc(name string) *ArcInst {
	return p.arcNames[name]
}

// FindExport looks up an export by name.
func (p *Cell) FindExport(name string) *Export {
	for _, e := range p.exports {
		if e.name == name {
			return e
		}
	}
	//
	return nil
}

// Ports implements NodeProto.
func (p *Cell) Ports() []PortProto {
	ports := make([]PortProto, len(p.exports))
	for i, e := range p.exports {
		ports[i] = e
	}
	//
	return ports
}

// FindPort implements NodeProto.
func (p *Cell) FindPort(name string) PortProto {
	if e := p.FindExport(name); e != nil {
		return e
	}
	//
	return nil
}

// Bounds returns the extent of all nodes in this cell.  An empty cell has an
// empty extent at its origin.
func (p *Cell) Bounds() Rect {
	if len(p.nodes) == 0 {
		return Rect{}
	}
	//
	bounds := p.nodes[0].Bounds()
	//
	for _, n := range p.nodes[1:] {
		bounds = bounds.Union(n.Bounds())
	}
	//
	return bounds
}

// NewNode places a node in this cell.  An empty name is replaced by a fresh
// name derived from the prototype.  A size is only meaningful for primitives.
func (p *Cell) NewNode(proto NodeProto, name string, anchor Point, width, height float64,
	orient Orientation) (*NodeInst, error) {
	if proto == nil {
		return nil, fmt.Errorf("node %q in cell %s has no prototype", name, p.Describe())
	}
	//
	if name == "" {
		name = p.freshName(nodeBaseName(proto))
	} else if _, ok := p.names[name]; ok {
		return nil, fmt.Errorf("node %s already exists in cell %s", name, p.Describe())
	}
	//
	node := &NodeInst{parent: p, proto: proto, name: name, Anchor: anchor, Width: width, Height: height,
		Orient: orient.Normalised()}
	p.nodes = append(p.nodes, node)
	p.names[name] = node
	//
	return node, nil
}

// NewArc places an arc in this cell connecting two port instances.  An empty
// name is replaced by a fresh name.
func (p *Cell) NewArc(proto *ArcProto, name string, width float64, head, tail Connection) (*ArcInst, error) {
	if proto == nil {
		return nil, fmt.Errorf("arc %q in cell %s has no prototype", name, p.Describe())
	}
	//
	for _, end := range []Connection{head, tail} {
		if !end.Port.IsValid() || end.Port.Node.parent != p {
			return nil, fmt.Errorf("arc %q does not connect to a node of cell %s", name, p.Describe())
		}
	}
	//
	if name == "" {
		name = p.freshName("net")
	} else if _, ok := p.arcNames[name]; ok {
		return nil, fmt.Errorf("arc %s already exists in cell %s", name, p.Describe())
	}
	//
	arc := &ArcInst{parent: p, proto: proto, name: name, Width: width, Head: head, Tail: tail,
		Flags: DefaultArcFlags}
	p.arcs = append(p.arcs, arc)
	p.arcNames[name] = arc
	//
	return arc, nil
}

// NewExport exports a port instance of one of this cell's nodes under a given
// name.
func (p *Cell) NewExport(name string, port PortInst) (*Export, error) {
	if name == "" {
		return nil, fmt.Errorf("export in cell %s has no name", p.Describe())
	} else if p.FindExport(name) != nil {
		return nil, fmt.Errorf("export %s already exists in cell %s", name, p.Describe())
	} else if !port.IsValid() || port.Node.parent != p {
		return nil, fmt.Errorf("export %s does not refer to a node of cell %s", name, p.Describe())
	}
	//
	export := &Export{parent: p, name: name, Alias: name, Port: port}
	p.exports = append(p.exports, export)
	//
	return export, nil
}

func (p *Cell) freshName(base string) string {
	for {
		n := p.counters[base]
		p.counters[base] = n + 1
		name := fmt.Sprintf("%s@%d", base, n)
		//
		if _, ok := p.names[name]; !ok {
			if _, ok := p.arcNames[name]; !ok {
				return name
			}
		}
	}
}

// Base name for automatically named nodes, e.g. "Universal-Pin" gives "pin" and
// "inv;1{sch}" gives "inv".
func nodeBaseName(proto NodeProto) string {
	switch pp := proto.(type) {
	case *Cell:
		return strings.ToLower(pp.name.Name)
	case *PrimitiveNode:
		name := strings.ToLower(pp.name)
		//
		if strings.HasSuffix(name, "-pin") {
			return "pin"
		}
		//
		if i := strings.IndexByte(name, '-'); i > 0 {
			return name[:i]
		}
		//
		return name
	}
	//
	return "node"
}

// CellGroup is a set of related cells (e.g. the views of one logical cell).
type CellGroup struct {
	name  string
	cells []*Cell
}

// Name returns the name of this group.
func (p *CellGroup) Name() string {
	return p.name
}

// Cells returns the members of this group.
func (p *CellGroup) Cells() []*Cell {
	return p.cells
}
