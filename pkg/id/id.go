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
package id

import (
	"fmt"
	"sync"
)

// State distinguishes identifiers which have been declared from those which
// have only been referred to so far.
type State uint8

const (
	// Referenced indicates an identifier was mentioned, but not yet declared.
	Referenced State = iota
	// Declared indicates an identifier has been declared.
	Declared
)

func (s State) String() string {
	if s == Declared {
		return "declared"
	}
	//
	return "referenced"
}

// symbol holds the data common to every kind of identifier.
type symbol struct {
	mutex *sync.Mutex
	name  string
	state State
}

// Name returns the (unqualified) name of this identifier.
func (p *symbol) Name() string {
	return p.name
}

// State returns the declaration state of this identifier.
func (p *symbol) State() State {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	return p.state
}

// Declare marks this identifier as declared.  This returns false if it was
// already declared, which allows duplicate declarations to be detected.
func (p *symbol) Declare() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	if p.state == Declared {
		return false
	}
	//
	p.state = Declared
	//
	return true
}

// NodeProtoId identifies the prototype of a node instance, which is either a
// primitive node of some technology or a cell of some library.
type NodeProtoId interface {
	fmt.Stringer
	// Name returns the unqualified name of this prototype.
	Name() string
	// State returns the declaration state of this prototype.
	State() State
	isNodeProto()
}

// LibId identifies a library.
type LibId struct {
	symbol
	cells map[CellName]*CellId
	order []*CellId
}

// Cell interns the cell with the given name in this library.
func (p *LibId) Cell(name CellName) *CellId {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	if c, ok := p.cells[name]; ok {
		return c
	}
	//
	c := &CellId{symbol{p.mutex, name.Name, Referenced}, p, name, make(map[string]*ExportId), nil}
	p.cells[name] = c
	p.order = append(p.order, c)
	//
	return c
}

// FindCell looks up the cell with the given name in this library, without
// creating it.
func (p *LibId) FindCell(name CellName) *CellId {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	return p.cells[name]
}

// Cells returns the cells of this library in order of first mention.
func (p *LibId) Cells() []*CellId {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	return append([]*CellId(nil), p.order...)
}

// CellsNamed returns every cell of this library with the given base name, in
// order of first mention.
func (p *LibId) CellsNamed(base string) []*CellId {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	var cells []*CellId
	//
	for _, c := range p.order {
		if c.cellName.Name == base {
			cells = append(cells, c)
		}
	}
	//
	return cells
}

func (p *LibId) String() string {
	return p.name
}

// CellId identifies a cell within a library.
type CellId struct {
	symbol
	lib      *LibId
	cellName CellName
	exports  map[string]*ExportId
	order    []*ExportId
}

// Library returns the library which contains this cell.
func (p *CellId) Library() *LibId {
	return p.lib
}

// CellName returns the qualified name of this cell.
func (p *CellId) CellName() CellName {
	return p.cellName
}

// Export interns the export with the given name in this cell.
func (p *CellId) Export(name string) *ExportId {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	if e, ok := p.exports[name]; ok {
		return e
	}
	//
	e := &ExportId{symbol{p.mutex, name, Referenced}, p}
	p.exports[name] = e
	p.order = append(p.order, e)
	//
	return e
}

// Exports returns the exports of this cell in order of first mention.
func (p *CellId) Exports() []*ExportId {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	return append([]*ExportId(nil), p.order...)
}

func (p *CellId) String() string {
	return fmt.Sprintf("%s:%s", p.lib.name, p.cellName.String())
}

func (p *CellId) isNodeProto() {}

// ExportId identifies an export of a cell.
type ExportId struct {
	symbol
	cell *CellId
}

// Cell returns the cell to which this export belongs.
func (p *ExportId) Cell() *CellId {
	return p.cell
}

func (p *ExportId) String() string {
	return fmt.Sprintf("%s:%s", p.cell.String(), p.name)
}

// TechId identifies a technology.
type TechId struct {
	symbol
	nodes map[string]*PrimitiveNodeId
	arcs  map[string]*ArcProtoId
}

// PrimitiveNode interns the primitive node with the given name in this
// technology.
func (p *TechId) PrimitiveNode(name string) *PrimitiveNodeId {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	if n, ok := p.nodes[name]; ok {
		return n
	}
	//
	n := &PrimitiveNodeId{symbol{p.mutex, name, Referenced}, p, make(map[string]*PrimitivePortId)}
	p.nodes[name] = n
	//
	return n
}

// ArcProto interns the arc prototype with the given name in this technology.
func (p *TechId) ArcProto(name string) *ArcProtoId {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	if a, ok := p.arcs[name]; ok {
		return a
	}
	//
	a := &ArcProtoId{symbol{p.mutex, name, Referenced}, p}
	p.arcs[name] = a
	//
	return a
}

func (p *TechId) String() string {
	return p.name
}

// PrimitiveNodeId identifies a primitive node of a technology.
type PrimitiveNodeId struct {
	symbol
	tech  *TechId
	ports map[string]*PrimitivePortId
}

// Technology returns the technology to which this primitive belongs.
func (p *PrimitiveNodeId) Technology() *TechId {
	return p.tech
}

// Port interns the port with the given name on this primitive.
func (p *PrimitiveNodeId) Port(name string) *PrimitivePortId {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	if pp, ok := p.ports[name]; ok {
		return pp
	}
	//
	pp := &PrimitivePortId{symbol{p.mutex, name, Referenced}, p}
	p.ports[name] = pp
	//
	return pp
}

func (p *PrimitiveNodeId) String() string {
	return fmt.Sprintf("%s:%s", p.tech.name, p.name)
}

func (p *PrimitiveNodeId) isNodeProto() {}

// PrimitivePortId identifies a port of a primitive node.
type PrimitivePortId struct {
	symbol
	node *PrimitiveNodeId
}

// Node returns the primitive node to which this port belongs.
func (p *PrimitivePortId) Node() *PrimitiveNodeId {
	return p.node
}

func (p *PrimitivePortId) String() string {
	return fmt.Sprintf("%s:%s", p.node.String(), p.name)
}

// ArcProtoId identifies an arc prototype of a technology.
type ArcProtoId struct {
	symbol
	tech *TechId
}

// Technology returns the technology to which this arc prototype belongs.
func (p *ArcProtoId) Technology() *TechId {
	return p.tech
}

func (p *ArcProtoId) String() string {
	return fmt.Sprintf("%s:%s", p.tech.name, p.name)
}
