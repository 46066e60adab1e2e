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
	"github.com/consensys/go-jelib/pkg/design"
	"github.com/consensys/go-jelib/pkg/diag"
	"github.com/consensys/go-jelib/pkg/id"
)

// resolve replaces the identifiers held in a variable's value by the entities
// they refer to.  Identifiers which do not refer to anything are kept as they
// are.
func (p *Engine) resolve(value any, loc diag.Location) any {
	switch v := value.(type) {
	case []any:
		elements := make([]any, len(v))
		//
		for i, e := range v {
			elements[i] = p.resolve(e, loc)
		}
		//
		return elements
	case *id.CellId:
		if cell := p.findCell(v); cell != nil {
			return cell
		}
	case *id.ExportId:
		if cell := p.findCell(v.Cell()); cell != nil {
			if export := cell.FindExport(v.Name()); export != nil {
				return export
			}
		}
	case *id.LibId:
		if lib := p.db.FindLibrary(v.Name()); lib != nil {
			return lib
		}
	case *id.TechId:
		if tech := p.db.FindTechnology(v.Name()); tech != nil {
			return tech
		}
	case *id.PrimitiveNodeId:
		if tech := p.db.FindTechnology(v.Technology().Name()); tech != nil {
			if node := tech.FindNode(v.Name()); node != nil {
				return node
			}
		}
	case *id.ArcProtoId:
		if tech := p.db.FindTechnology(v.Technology().Name()); tech != nil {
			if arc := tech.FindArc(v.Name()); arc != nil {
				return arc
			}
		}
	default:
		return value
	}
	//
	diag.Warnf(p.reporter, loc, "Unresolved reference %s", value)
	//
	return value
}

// findCell looks up the cell for an identifier, without fabricating dummies.
func (p *Engine) findCell(cid *id.CellId) *design.Cell {
	if s, ok := p.cells[cid]; ok {
		return s.cell
	} else if cell, ok := p.dummies[cid]; ok {
		return cell
	} else if lib := p.db.FindLibrary(cid.Library().Name()); lib != nil {
		return lib.FindCell(cid.CellName())
	}
	//
	return nil
}
