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
	"fmt"

	"github.com/consensys/go-jelib/pkg/design"
	"github.com/consensys/go-jelib/pkg/diag"
	"github.com/consensys/go-jelib/pkg/id"
)

// dummyLibrary returns the library of a given name, creating an empty library
// marked as a dummy when there is none.
func (p *Engine) dummyLibrary(name string, loc diag.Location) *design.Library {
	if lib := p.db.FindLibrary(name); lib != nil {
		return lib
	}
	//
	diag.Warnf(p.reporter, loc, "Creating dummy library %s", name)
	//
	lib, err := p.db.NewLibrary(name, "")
	if err != nil {
		diag.Errorf(p.reporter, loc, "Unable to create dummy library %s (%s)", name, err.Error())
		return nil
	}
	//
	lib.SetVar(design.Variable{Key: design.VarDummyObject, Value: name})
	//
	return lib
}

// dummyCell fabricates a placeholder for a cell which could not be found.  The
// placeholder has the bounds and exports given for it by the referencing
// library, where known.
func (p *Engine) dummyCell(cid *id.CellId, loc diag.Location) *design.Cell {
	if cell, ok := p.dummies[cid]; ok {
		return cell
	}
	//
	lib := p.dummyLibrary(cid.Library().Name(), loc)
	if lib == nil {
		return nil
	}
	//
	cell, err := lib.NewCell(cid.CellName())
	if err != nil {
		diag.Errorf(p.reporter, loc, "Unable to create dummy cell %s (%s)", cid, err.Error())
		return nil
	}
	//
	diag.Warnf(p.reporter, loc, "Creating dummy cell %s in library %s", cid.CellName().String(), lib.Name())
	//
	var bounds design.Rect
	//
	ext, known := p.external[cid]
	if known {
		bounds = ext.Bounds
	} else {
		diag.Warnf(p.reporter, loc, "cannot find information about external cell %s", cid)
	}
	//
	p.dummyMarker(cell, bounds, loc)
	//
	if known {
		for _, e := range ext.Exports {
			if _, err := p.dummyExport(cell, e.Export.Name(), e.Location); err != nil {
				diag.Errorf(p.reporter, loc, "Unable to create export %s on dummy cell %s (%s)", e.Export.Name(),
					cell.Describe(), err.Error())
			}
		}
	}
	//
	cell.SetVar(design.Variable{Key: design.VarTrueLibrary, Value: cid.Library().Name()})
	cell.SetVar(design.Variable{Key: design.VarDummyObject, Value: cid.CellName().String()})
	p.dummies[cid] = cell
	//
	if p.opts.OnDummyCell != nil {
		p.opts.OnDummyCell(cell)
	}
	//
	return cell
}

// dummyPrimitive fabricates a placeholder cell for a primitive node which no
// technology provides.  The placeholder lives in a dummy library named after
// the technology.
func (p *Engine) dummyPrimitive(pid *id.PrimitiveNodeId, loc diag.Location) *design.Cell {
	if cell, ok := p.primitives[pid]; ok {
		return cell
	}
	//
	var (
		tech = pid.Technology().Name()
		name = id.CellName{Name: pid.Name()}
	)
	//
	diag.Warnf(p.reporter, loc, "cannot identify primitive node %s, using a dummy cell", pid)
	//
	lib := p.dummyLibrary(tech, loc)
	if lib == nil {
		return nil
	}
	//
	cell := lib.FindCell(name)
	//
	if cell == nil {
		var err error
		//
		if cell, err = lib.NewCell(name); err != nil {
			diag.Errorf(p.reporter, loc, "Unable to create dummy cell %s (%s)", pid, err.Error())
			return nil
		}
		//
		p.dummyMarker(cell, design.Rect{}, loc)
		cell.SetVar(design.Variable{Key: design.VarTrueLibrary, Value: tech})
		cell.SetVar(design.Variable{Key: design.VarDummyObject, Value: pid.Name()})
		//
		if p.opts.OnDummyCell != nil {
			p.opts.OnDummyCell(cell)
		}
	}
	//
	p.primitives[pid] = cell
	//
	return cell
}

// dummyMarker places the invisible pin which gives a dummy cell its extent.
func (p *Engine) dummyMarker(cell *design.Cell, bounds design.Rect, loc diag.Location) {
	pin := p.db.Generic().InvisiblePin
	//
	if _, err := cell.NewNode(pin, "", bounds.Centre(), bounds.Width(), bounds.Height(),
		design.Orientation{}); err != nil {
		diag.Errorf(p.reporter, loc, "%s", err.Error())
	}
}

// dummyExport exports a new universal pin at a given point of a dummy cell.
func (p *Engine) dummyExport(cell *design.Cell, name string, pt design.Point) (*design.Export, error) {
	pin, err := cell.NewNode(p.db.Generic().UniversalPin, "", pt, 0, 0, design.Orientation{})
	if err != nil {
		return nil, err
	}
	//
	return cell.NewExport(name, pin.Ports()[0])
}

// uniqueExportName returns the given name if no export of the cell has it, or
// otherwise the first of name_1, name_2, ... which is free.
func uniqueExportName(cell *design.Cell, name string) string {
	fresh := name
	//
	for i := 1; cell.FindExport(fresh) != nil; i++ {
		fresh = fmt.Sprintf("%s_%d", name, i)
	}
	//
	return fresh
}
