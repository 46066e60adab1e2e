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
package jelib

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/consensys/go-jelib/pkg/design"
	"github.com/consensys/go-jelib/pkg/id"
)

// arcFields is the number of fields of an arc before its variables.
const arcFields = 13

func (p *parserContext) parseCell(text string, fields []string) {
	g := p.grammar
	// Ignore the contents of a broken cell block
	p.discard = true
	//
	if len(fields) < g.CellFields {
		p.errorf("Cell declaration needs %d fields: %s", g.CellFields, text)
		return
	}
	//
	i := 0
	name := p.tok.Unquote(fields[i])
	label := ""
	i++
	//
	if g.CellHasGroup {
		if fields[i] != "" {
			label = p.tok.Unquote(fields[i])
		}
		//
		i++
	}
	//
	if g.CellNameSplit {
		view, version := fields[i], fields[i+1]
		i += 2
		//
		if version != "" {
			name = name + ";" + version
		}
		//
		if view != "" {
			name = name + "{" + view + "}"
		}
	}
	//
	cellName, ok := p.cellName(name)
	if !ok {
		return
	}
	//
	rec := &CellRecord{Cell: p.lib.Cell(cellName), Line: p.line}
	//
	if techName := p.tok.Unquote(fields[i]); techName != "" {
		rec.Tech = p.ids.Technology(techName)
	}
	//
	dates, ok := p.dates(fields[i+1], fields[i+2])
	if !ok {
		return
	}
	//
	rec.Created, rec.Revised = dates[0], dates[1]
	rec.Flags = ParseCellState(fields[i+3])
	//
	if _, ok := p.cells[rec.Cell]; ok {
		p.errorf("Duplicate cell %s", rec.Cell)
		return
	}
	// Vars are read in the context of the cell
	p.cell = rec
	p.discard = false
	p.diskNames = make(map[string]*NodeRecord)
	rec.Vars = p.variables(fields[g.CellFields:])
	//
	if label == "" {
		label = cellName.Name
	}
	//
	rec.Label = label
	rec.Cell.Declare()
	p.groups.Relate(cellName.Name, label)
	p.cells[rec.Cell] = rec
	p.record.Cells = append(p.record.Cells, rec)
}

func (p *parserContext) endCell() {
	p.cell = nil
	p.diskNames = nil
}

func (p *parserContext) cellLine(kind RecordKind, text string) {
	if p.discard {
		if kind == KindEndOfCell {
			p.discard = false
		}
		//
		return
	} else if p.cell == nil {
		p.errorf("%s line outside of a cell: %s", kind, text)
		return
	}
	//
	fields := p.tok.Split(text)
	//
	switch kind {
	case KindNode, KindInstance:
		p.parseNode(kind, text, fields)
	case KindExport:
		p.parseExport(text, fields)
	case KindArc:
		p.parseArc(text, fields)
	case KindEndOfCell:
		p.endCell()
	}
}

func (p *parserContext) parseNode(kind RecordKind, text string, fields []string) {
	var (
		g          = p.grammar
		isInstance = kind == KindInstance
		needed     = g.NodeFields
	)
	//
	if isInstance {
		needed = g.InstanceFields
	}
	//
	if len(fields) < needed {
		p.errorf("Node instance needs %d fields: %s", needed, text)
		return
	}
	//
	proto, ok := p.nodeProto(isInstance, p.tok.Unquote(fields[0]))
	if !ok {
		return
	}
	//
	diskName := p.diskName(fields[1])
	if _, ok := p.diskNames[diskName]; ok {
		p.errorf("Duplicate node name %s", diskName)
		return
	}
	//
	anchor, ok := p.numbers(fields[3], fields[4])
	if !ok {
		return
	}
	//
	node := &NodeRecord{Proto: proto, Name: p.nodeName(diskName), DiskName: diskName, Anchor: pointOf(anchor),
		Line: p.line}
	node.NameDescriptor = p.descriptor(fields[2], false)
	//
	var orient, state, protoTD string
	//
	if !isInstance || g.InstanceAsNode {
		size, ok := p.numbers(fields[5], fields[6])
		if !ok {
			return
		}
		//
		if g.MirrorBySize {
			node.Orient.MirrorX, size[0] = math.Signbit(size[0]), math.Abs(size[0])
			node.Orient.MirrorY, size[1] = math.Signbit(size[1]), math.Abs(size[1])
		}
		//
		if _, ok := proto.(*id.PrimitiveNodeId); ok {
			node.Width, node.Height = size[0], size[1]
		}
		//
		orient, state = fields[7], fields[8]
		//
		if g.InstanceAsNode {
			protoTD = fields[9]
		}
	} else {
		orient, state, protoTD = fields[5], fields[6], fields[7]
	}
	//
	o, err := ParseOrientation(orient)
	if err != nil {
		p.warnf("bad orientation %q on node %s", orient, diskName)
	}
	//
	node.Orient.Angle = o.Angle
	node.Orient.MirrorX = node.Orient.MirrorX != o.MirrorX
	node.Orient.MirrorY = node.Orient.MirrorY != o.MirrorY
	//
	if node.Flags, node.TechBits, err = ParseNodeState(state); err != nil {
		p.errorf("bad node bits %s", state)
	}
	//
	node.ProtoDescriptor = p.descriptor(protoTD, false)
	node.Vars = p.variables(fields[needed:])
	p.diskNames[diskName] = node
	p.cell.Nodes = append(p.cell.Nodes, node)
}

// nodeProto resolves the prototype named by a node line.  A qualified name
// gives either a cell of some library or a primitive of some technology,
// whilst an unqualified name gives either a cell of this library or a
// primitive of the cell's technology.
func (p *parserContext) nodeProto(isInstance bool, name string) (id.NodeProtoId, bool) {
	var (
		prefix, rest, qualified = strings.Cut(name, ":")
		oldCell                 = !p.grammar.Quoted
	)
	//
	if !qualified {
		rest = prefix
		//
		if isInstance || oldCell {
			return p.cellProto(p.lib, rest)
		} else if p.cell.Tech == nil {
			p.errorf("Primitive node %s used in cell without technology", rest)
			return nil, false
		}
		//
		return p.primitiveProto(p.cell.Tech.PrimitiveNode(rest)), true
	}
	//
	if isInstance || (oldCell && strings.Contains(rest, "{")) {
		lib := p.lib
		if prefix != p.libName {
			lib = p.ids.Library(prefix)
		}
		//
		return p.cellProto(lib, rest)
	}
	//
	return p.primitiveProto(p.ids.Technology(prefix).PrimitiveNode(rest)), true
}

func (p *parserContext) cellProto(lib *id.LibId, text string) (id.NodeProtoId, bool) {
	name, ok := p.cellName(text)
	if !ok {
		return nil, false
	}
	//
	cell := lib.Cell(name)
	//
	if p.strict && lib != p.lib && p.record.FindExternal(cell) == nil {
		p.errorf("Unknown external cell %s", cell)
	}
	//
	return cell, true
}

func (p *parserContext) primitiveProto(node *id.PrimitiveNodeId) id.NodeProtoId {
	if _, ok := p.nodes[node]; p.strict && !ok {
		p.errorf("Unknown Primitive Node %s", node)
	}
	//
	return node
}

// diskName returns the key by which other records of this cell refer to a
// node.  Old revisions write it like any other name.
func (p *parserContext) diskName(field string) string {
	if p.grammar.Quoted {
		return field
	}
	//
	return p.tok.Unquote(field)
}

// nodeName determines the name of a node or arc from its disk name.  A disk
// name such as "Sig"12 distinguishes duplicate names, and names the node Sig.
func (p *parserContext) nodeName(diskName string) string {
	if !strings.HasPrefix(diskName, "\"") {
		return diskName
	}
	//
	last := strings.LastIndexByte(diskName, '"')
	if last <= 1 {
		return diskName
	} else if p.grammar.Quoted {
		return p.tok.Unquote(diskName[:last+1])
	}
	//
	return diskName[1:last]
}

func (p *parserContext) parseExport(text string, fields []string) {
	g := p.grammar
	//
	if g.ExportHasAlias && len(fields) == 1 {
		p.cell.Unused = append(p.cell.Unused, p.cell.Cell.Export(p.tok.Unquote(fields[0])))
		return
	} else if len(fields) < g.ExportFields {
		p.errorf("Export needs %d fields, has %d: %s", g.ExportFields, len(fields), text)
		return
	}
	//
	i := 0
	name := p.tok.Unquote(fields[i])
	alias := ""
	i++
	//
	if g.ExportHasAlias {
		if fields[i] != "" {
			alias = p.tok.Unquote(fields[i])
		}
		//
		i++
	}
	//
	if alias == name {
		alias = ""
	}
	//
	descriptor := fields[i]
	nodeName := p.diskName(fields[i+1])
	port := p.tok.Unquote(fields[i+2])
	i += 3
	//
	node, ok := p.diskNames[nodeName]
	if !ok {
		p.errorf("Unknown node %s in export %s", nodeName, name)
		return
	}
	//
	rec := &ExportRecord{Alias: alias, Node: node, Port: port, Line: p.line}
	//
	if g.ExportHasLocation {
		loc, ok := p.numbers(fields[i], fields[i+1])
		if !ok {
			return
		}
		//
		rec.Location, rec.HasLocation = pointOf(loc), true
		i += 2
	}
	//
	rec.Characteristic, rec.AlwaysDrawn, rec.BodyOnly = ParseCharacteristic(fields[i])
	rec.Export = p.cell.Cell.Export(name)
	//
	if !rec.Export.Declare() {
		p.errorf("Duplicate export %s", name)
		return
	}
	//
	rec.Descriptor = p.descriptor(descriptor, false)
	rec.Vars = p.variables(fields[g.ExportFields:])
	p.cell.Exports = append(p.cell.Exports, rec)
}

func (p *parserContext) parseArc(text string, fields []string) {
	if len(fields) < arcFields {
		p.errorf("Arc instance needs %d fields: %s", arcFields, text)
		return
	}
	//
	tech := p.cell.Tech
	protoName := p.tok.Unquote(fields[0])
	//
	if prefix, rest, ok := strings.Cut(protoName, ":"); ok {
		tech, protoName = p.ids.Technology(prefix), rest
	} else if tech == nil {
		p.errorf("Arc %s used in cell without technology", protoName)
		return
	}
	//
	rec := &ArcRecord{Proto: tech.ArcProto(protoName), Line: p.line}
	rec.Name = p.nodeName(p.diskName(fields[1]))
	//
	numbers, ok := p.numbers(fields[3], fields[7], fields[8], fields[11], fields[12])
	if !ok {
		return
	}
	//
	rec.Width = numbers[0]
	//
	var head, tail bool
	//
	if rec.Head, head = p.arcEnd("head", rec.Name, fields[5], fields[6], numbers[1], numbers[2]); !head {
		return
	} else if rec.Tail, tail = p.arcEnd("tail", rec.Name, fields[9], fields[10], numbers[3], numbers[4]); !tail {
		return
	}
	//
	var err error
	if rec.Flags, rec.Angle, err = ParseArcState(fields[4]); err != nil {
		p.errorf("bad arc angle %s", fields[4])
	}
	//
	if p.strict && !p.arcs[rec.Proto] {
		p.errorf("Unknown Arc Proto %s", rec.Proto)
	}
	//
	rec.NameDescriptor = p.descriptor(fields[2], false)
	rec.Vars = p.variables(fields[arcFields:])
	p.cell.Arcs = append(p.cell.Arcs, rec)
}

func (p *parserContext) arcEnd(end, arc, nodeField, portField string, x, y float64) (ArcEnd, bool) {
	name := p.diskName(nodeField)
	//
	node, ok := p.diskNames[name]
	if !ok {
		p.errorf("Unknown %s node %s in arc %s", end, name, arc)
		return ArcEnd{}, false
	}
	//
	return ArcEnd{node, p.tok.Unquote(portField), design.Point{X: x, Y: y}}, true
}

// dates parses timestamps given in milliseconds since the epoch.
func (p *parserContext) dates(fields ...string) ([]time.Time, bool) {
	dates := make([]time.Time, len(fields))
	//
	for i, f := range fields {
		ms, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			p.errorf("Bad date %q", f)
			return nil, false
		}
		//
		dates[i] = time.UnixMilli(ms)
	}
	//
	return dates, true
}

func pointOf(xy []float64) design.Point {
	return design.Point{X: xy[0], Y: xy[1]}
}
