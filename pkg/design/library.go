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

	"github.com/consensys/go-jelib/pkg/id"
)

// Library is a named collection of cells, usually read from one file.
type Library struct {
	Variables
	name string
	// File from which this library was read (empty for dummy libraries)
	Path string
	// Version of the tool which wrote this library
	Version string
	cells   []*Cell
	byName  map[id.CellName]*Cell
	groups  []*CellGroup
}

// Name returns the name of this library.
func (p *Library) Name() string {
	return p.name
}

// IsDummy checks whether this library was fabricated to hold dummy cells.
func (p *Library) IsDummy() bool {
	_, ok := p.Var(VarDummyObject)
	return ok
}

// NewCell allocates an empty cell in this library.
func (p *Library) NewCell(name id.CellName) (*Cell, error) {
	if _, ok := p.byName[name]; ok {
		return nil, fmt.Errorf("cell %s already exists in library %s", name.String(), p.name)
	}
	//
	cell := &Cell{lib: p, name: name, names: make(map[string]*NodeInst), arcNames: make(map[string]*ArcInst),
		counters: make(map[string]int)}
	p.cells = append(p.cells, cell)
	p.byName[name] = cell
	//
	return cell, nil
}

// FindCell looks up a cell by its qualified name.
func (p *Library) FindCell(name id.CellName) *Cell {
	return p.byName[name]
}

// Cells returns the cells of this library in creation order.
func (p *Library) Cells() []*Cell {
	return p.cells
}

// NewGroup creates a group containing the given cells.  Cells already in some
// group are moved.
func (p *Library) NewGroup(name string, cells ...*Cell) *CellGroup {
	group := &CellGroup{name: name}
	//
	for _, c := range cells {
		if c.lib != p {
			continue
		} else if c.group != nil {
			c.group.remove(c)
		}
		//
		c.group = group
		group.cells = append(group.cells, c)
	}
	//
	p.groups = append(p.groups, group)
	//
	return group
}

// Groups returns the non-empty cell groups of this library.
func (p *Library) Groups() []*CellGroup {
	var groups []*CellGroup
	//
	for _, g := range p.groups {
		if len(g.cells) > 0 {
			groups = append(groups, g)
		}
	}
	//
	return groups
}

func (p *CellGroup) remove(cell *Cell) {
	for i, c := range p.cells {
		if c == cell {
			p.cells = append(p.cells[:i], p.cells[i+1:]...)
			return
		}
	}
}
