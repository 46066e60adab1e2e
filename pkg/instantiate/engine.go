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
package instantiate

import (
	"context"
	"fmt"

	"github.com/consensys/go-jelib/pkg/design"
	"github.com/consensys/go-jelib/pkg/diag"
	"github.com/consensys/go-jelib/pkg/id"
	"github.com/consensys/go-jelib/pkg/jelib"
)

// Options configures an engine.
type Options struct {
	// Fabricate dummy cells for primitives which no registered technology
	// provides, rather than skipping the nodes.
	DummyPrimitives bool
	// Called whenever a cell has been completely filled in.
	OnCellFilled func(*design.Cell)
	// Called whenever a dummy cell is fabricated.
	OnDummyCell func(*design.Cell)
	// Called whenever a pin is fabricated to resolve an arc end or export.
	OnSyntheticPin func(*design.NodeInst)
}

// Engine turns library records into a connected design.  Records are added
// first, then instantiated together so that instances between any of them
// resolve to the real cells.
type Engine struct {
	db       design.Database
	reporter diag.Reporter
	opts     Options
	records  []*jelib.LibraryRecord
	cells    map[*id.CellId]*cellState
	dummies  map[*id.CellId]*design.Cell
	// Dummy cells standing in for primitives
	primitives map[*id.PrimitiveNodeId]*design.Cell
	external   map[*id.CellId]*jelib.ExternalCell
	pending    []pendingVars
}

// fillState tracks progress of filling a cell.
type fillState uint8

const (
	notFilled fillState = iota
	filling
	filled
)

// cellState associates the record of a cell with its allocated shell.
type cellState struct {
	lib   *jelib.LibraryRecord
	rec   *jelib.CellRecord
	cell  *design.Cell
	state fillState
	nodes map[*jelib.NodeRecord]*design.NodeInst
}

// pendingVars holds the variables of some entity, to be attached once all
// cells are filled.
type pendingVars struct {
	target *design.Variables
	vars   []design.Variable
	loc    diag.Location
}

// New constructs an engine creating entities in the given database, and
// reporting problems to the given reporter.
func New(db design.Database, reporter diag.Reporter, opts Options) *Engine {
	return &Engine{
		db:         db,
		reporter:   reporter,
		opts:       opts,
		cells:      make(map[*id.CellId]*cellState),
		dummies:    make(map[*id.CellId]*design.Cell),
		primitives: make(map[*id.PrimitiveNodeId]*design.Cell),
		external:   make(map[*id.CellId]*jelib.ExternalCell),
	}
}

// Add a library record to be instantiated.
func (p *Engine) Add(rec *jelib.LibraryRecord) {
	p.records = append(p.records, rec)
}

// Run instantiates all records added so far.  Problems are reported rather
// than returned, hence the only errors returned arise from cancellation.
func (p *Engine) Run(ctx context.Context) error {
	var states []*cellState
	//
	for _, rec := range p.records {
		states = append(states, p.allocate(rec)...)
	}
	//
	for _, s := range states {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("instantiating %s: %w", s.rec.Cell, err)
		}
		//
		p.fill(s)
	}
	//
	p.attachAll()
	p.records = nil
	//
	return nil
}

// allocate creates the library of a record along with empty shells for all
// of its cells.
func (p *Engine) allocate(rec *jelib.LibraryRecord) []*cellState {
	name := rec.Library.Name()
	loc := diag.Location{File: rec.File, Library: name}
	//
	if p.db.FindLibrary(name) != nil {
		diag.Errorf(p.reporter, loc, "library %s already exists", name)
		return nil
	}
	//
	lib, err := p.db.NewLibrary(name, rec.File)
	if err != nil {
		diag.Errorf(p.reporter, loc, "%s", err.Error())
		return nil
	}
	//
	lib.Version = rec.Version.String()
	p.later(&lib.Variables, rec.Vars, loc)
	//
	for _, ext := range rec.Externals {
		for _, c := range ext.Cells {
			if _, ok := p.external[c.Cell]; !ok {
				p.external[c.Cell] = c
			}
		}
	}
	//
	var (
		states  []*cellState
		byGroup = make(map[string][]*design.Cell)
	)
	//
	for _, c := range rec.Cells {
		cellLoc := loc
		cellLoc.Line = c.Line
		cellLoc.Cell = c.Cell.CellName().String()
		//
		cell, err := lib.NewCell(c.Cell.CellName())
		if err != nil {
			diag.Errorf(p.reporter, cellLoc, "%s", err.Error())
			continue
		}
		//
		if c.Tech != nil {
			if cell.Tech = p.db.FindTechnology(c.Tech.Name()); cell.Tech == nil {
				diag.Warnf(p.reporter, cellLoc, "unknown technology %s", c.Tech.Name())
			}
		}
		//
		cell.Created, cell.Revised, cell.Flags = c.Created, c.Revised, c.Flags
		p.later(&cell.Variables, c.Vars, cellLoc)
		//
		s := &cellState{lib: rec, rec: c, cell: cell, nodes: make(map[*jelib.NodeRecord]*design.NodeInst)}
		p.cells[c.Cell] = s
		byGroup[c.Group] = append(byGroup[c.Group], cell)
		states = append(states, s)
	}
	//
	for _, group := range rec.Groups {
		if cells := byGroup[group[0]]; len(cells) > 0 {
			lib.NewGroup(group[0], cells...)
		}
	}
	//
	return states
}

func (p *Engine) later(target *design.Variables, vars []design.Variable, loc diag.Location) {
	if len(vars) > 0 {
		p.pending = append(p.pending, pendingVars{target, vars, loc})
	}
}

// attachAll attaches all pending variables, now that every entity they might
// refer to exists.
func (p *Engine) attachAll() {
	for _, pv := range p.pending {
		for _, v := range pv.vars {
			v.Value = p.resolve(v.Value, pv.loc)
			pv.target.SetVar(v)
		}
	}
	//
	p.pending = nil
}
