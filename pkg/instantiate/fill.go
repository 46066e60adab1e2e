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
	"github.com/consensys/go-jelib/pkg/jelib"
)

// fill places the nodes, arcs and exports of a cell, in that order.  Cells
// instanced by this cell are filled first, such that their exports are known
// when binding ports.
func (p *Engine) fill(s *cellState) {
	if s.state != notFilled {
		return
	}
	//
	s.state = filling
	f := &filler{p, s}
	//
	for _, n := range s.rec.Nodes {
		f.placeNode(n)
	}
	//
	for _, a := range s.rec.Arcs {
		f.placeArc(a)
	}
	//
	for _, e := range s.rec.Exports {
		f.placeExport(e)
	}
	//
	s.state = filled
	//
	if p.opts.OnCellFilled != nil {
		p.opts.OnCellFilled(s.cell)
	}
}

// filler places the contents of one cell.
type filler struct {
	*Engine
	s *cellState
}

func (p *filler) loc(line int) diag.Location {
	return diag.Location{File: p.s.lib.File, Line: line, Library: p.s.cell.Library().Name(),
		Cell: p.s.cell.Name().String()}
}

func (p *filler) errorf(line int, format string, args ...any) {
	diag.Errorf(p.reporter, p.loc(line), format, args...)
}

func (p *filler) warnf(line int, format string, args ...any) {
	diag.Warnf(p.reporter, p.loc(line), format, args...)
}

func (p *filler) placeNode(n *jelib.NodeRecord) {
	var proto design.NodeProto
	//
	switch pid := n.Proto.(type) {
	case *id.CellId:
		proto = p.cellProto(pid, n.Line)
	case *id.PrimitiveNodeId:
		proto = p.primitiveProto(pid, n.Line)
	}
	//
	if proto == nil {
		return
	}
	//
	cell := p.s.cell
	//
	node, err := cell.NewNode(proto, n.Name, n.Anchor, n.Width, n.Height, n.Orient)
	if err != nil {
		// Names which differ only on disk collide
		if node, err = cell.NewNode(proto, "", n.Anchor, n.Width, n.Height, n.Orient); err != nil {
			p.errorf(n.Line, "%s", err.Error())
			return
		}
		//
		p.warnf(n.Line, "node name %s already used, renamed to %s", n.Name, node.Name())
	}
	//
	node.NameDescriptor = n.NameDescriptor
	node.Flags = n.Flags
	node.TechBits = n.TechBits
	node.ProtoDescriptor = n.ProtoDescriptor
	p.later(&node.Variables, n.Vars, p.loc(n.Line))
	p.s.nodes[n] = node
}

// cellProto resolves a cell instanced by this cell, preferring cells being
// instantiated, then cells already in the database, and finally fabricating a
// dummy.
func (p *filler) cellProto(cid *id.CellId, line int) design.NodeProto {
	if s, ok := p.cells[cid]; ok {
		if s.state == filling {
			p.errorf(line, "Recursive instance of cell %s in cell %s", cid, p.s.rec.Cell)
			return nil
		}
		//
		p.fill(s)
		//
		return s.cell
	}
	//
	if lib := p.db.FindLibrary(cid.Library().Name()); lib != nil {
		if cell := lib.FindCell(cid.CellName()); cell != nil {
			return cell
		}
	}
	//
	if cell := p.dummyCell(cid, p.loc(line)); cell != nil {
		return cell
	}
	//
	return nil
}

func (p *filler) primitiveProto(pid *id.PrimitiveNodeId, line int) design.NodeProto {
	if tech := p.db.FindTechnology(pid.Technology().Name()); tech != nil {
		if node := tech.FindNode(pid.Name()); node != nil {
			return node
		}
	}
	//
	if p.opts.DummyPrimitives {
		if cell := p.dummyPrimitive(pid, p.loc(line)); cell != nil {
			return cell
		}
		//
		return nil
	}
	//
	p.errorf(line, "cannot identify primitive node %s", pid)
	//
	return nil
}

func (p *filler) placeArc(a *jelib.ArcRecord) {
	proto := p.arcProto(a.Proto)
	if proto == nil {
		p.errorf(a.Line, "cannot find arc %s", a.Proto)
		return
	}
	//
	head, ok := p.connect(a.Head, a.Name, a.Line)
	if !ok {
		return
	}
	//
	tail, ok := p.connect(a.Tail, a.Name, a.Line)
	if !ok {
		return
	}
	//
	cell := p.s.cell
	//
	arc, err := cell.NewArc(proto, a.Name, a.Width, head, tail)
	if err != nil {
		if arc, err = cell.NewArc(proto, "", a.Width, head, tail); err != nil {
			p.errorf(a.Line, "%s", err.Error())
			return
		}
		//
		p.warnf(a.Line, "arc name %s already used, renamed to %s", a.Name, arc.Name())
	}
	//
	arc.NameDescriptor = a.NameDescriptor
	arc.Flags = a.Flags
	arc.Angle = a.Angle
	p.later(&arc.Variables, a.Vars, p.loc(a.Line))
}

func (p *filler) arcProto(aid *id.ArcProtoId) *design.ArcProto {
	if tech := p.db.FindTechnology(aid.Technology().Name()); tech != nil {
		return tech.FindArc(aid.Name())
	}
	//
	return nil
}

// connect resolves one end of an arc.
func (p *filler) connect(end jelib.ArcEnd, arc string, line int) (design.Connection, bool) {
	node, ok := p.s.nodes[end.Node]
	if !ok {
		p.errorf(line, "cannot find node %s for arc %s", end.Node.Name, arc)
		return design.Connection{}, false
	}
	//
	port, ok := p.findPort(node, end.Port, end.Location, true, line)
	//
	return design.Connection{Port: port, Location: end.Location}, ok
}

func (p *filler) placeExport(e *jelib.ExportRecord) {
	node, ok := p.s.nodes[e.Node]
	if !ok {
		p.errorf(e.Line, "cannot find node %s for export %s", e.Node.Name, e.Export.Name())
		return
	}
	//
	port, ok := p.findPort(node, e.Port, e.Location, e.HasLocation, e.Line)
	if !ok {
		return
	}
	//
	export, err := p.s.cell.NewExport(e.Export.Name(), port)
	if err != nil {
		p.errorf(e.Line, "%s", err.Error())
		return
	}
	//
	if e.Alias != "" {
		export.Alias = e.Alias
	}
	//
	export.Descriptor = e.Descriptor
	export.Characteristic = e.Characteristic
	export.AlwaysDrawn = e.AlwaysDrawn
	export.BodyOnly = e.BodyOnly
	p.later(&export.Variables, e.Vars, p.loc(e.Line))
}
