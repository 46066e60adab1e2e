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
package spice

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/consensys/go-jelib/pkg/design"
	"github.com/consensys/go-jelib/pkg/diag"
	"github.com/consensys/go-jelib/pkg/id"
	"github.com/consensys/go-jelib/pkg/jelib"
	"github.com/consensys/go-jelib/pkg/util/source"
)

// View given to every subcircuit read from a netlist.
const View = "sch"

// VarNets is the key of the variable attached to each instance, listing the
// nets to which its pins connect.
const VarNets = "SPICE_nets"

// Layout of pins and instances within a subcircuit.
const (
	gridColumns = 4
	pinPitch    = 10.0
	instPitch   = 20.0
	instOffset  = 50.0
)

// Extensions lists the file extensions of netlists.
var Extensions = []string{".sp", ".spi", ".cir"}

// IsNetlist checks whether a file name has one of the netlist extensions.
func IsNetlist(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	//
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	//
	return false
}

// Reader reads SPICE netlists into library records, with each subcircuit
// becoming a cell.
type Reader struct {
	ids      *id.Manager
	reporter diag.Reporter
}

// NewReader constructs a reader interning names in the given manager.
func NewReader(ids *id.Manager, reporter diag.Reporter) *Reader {
	return &Reader{ids, reporter}
}

// Read reads a netlist as a library named after the file.
func (p *Reader) Read(ctx context.Context, file *source.File) (*jelib.LibraryRecord, error) {
	return p.ReadLibrary(ctx, nil, file)
}

// ReadLibrary reads a netlist as the given library.
func (p *Reader) ReadLibrary(ctx context.Context, lib *id.LibId, file *source.File) (*jelib.LibraryRecord, error) {
	if lib == nil {
		lib = p.ids.Library(LibraryName(file.Filename()))
	}
	//
	lib.Declare()
	//
	r := &netlist{Reader: p, file: file, lib: lib, cells: make(map[string]*jelib.CellRecord)}
	r.record = &jelib.LibraryRecord{Library: lib, File: file.Filename(), Version: jelib.SupportedVersion,
		Grammar: jelib.Newest()}
	r.pin = p.ids.Technology(design.GenericTechName).PrimitiveNode("Unrouted-Pin")
	//
	for _, card := range cards(file) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", file.Filename(), err)
		}
		//
		r.line = card.line
		//
		if card.orphan {
			r.warnf("continuation line without a card")
			continue
		}
		//
		r.dispatch(card.fields)
	}
	//
	if r.cell != nil {
		r.line = len(file.Lines())
		r.errorf("missing .ENDS for subcircuit %s", r.cell.Cell.CellName().Name)
	}
	//
	r.finish()
	//
	return r.record, nil
}

// LibraryName derives the name of a library from the name of its file.
func LibraryName(filename string) string {
	base := filepath.Base(filename)
	//
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// card is one logical line of a netlist, after joining continuations.
type card struct {
	line   int
	fields []string
	// Continuation line with nothing to continue
	orphan bool
}

// cards splits a netlist into logical lines, dropping comments and joining
// continuation lines onto the line they continue.
func cards(file *source.File) []card {
	var cs []card
	//
	for _, line := range file.Lines() {
		text := strings.TrimSpace(line.String())
		// Inline comments
		if i := strings.IndexAny(text, ";$"); i >= 0 {
			text = strings.TrimSpace(text[:i])
		}
		//
		switch {
		case text == "" || text[0] == '*':
			continue
		case text[0] == '+':
			if n := len(cs); n > 0 {
				cs[n-1].fields = append(cs[n-1].fields, strings.Fields(text[1:])...)
				continue
			}
			//
			cs = append(cs, card{line: line.Number(), orphan: true})
			//
			continue
		}
		//
		cs = append(cs, card{line: line.Number(), fields: strings.Fields(text)})
	}
	//
	return cs
}

// netlist holds the state of reading one netlist.
type netlist struct {
	*Reader
	file   *source.File
	line   int
	lib    *id.LibId
	record *jelib.LibraryRecord
	pin    *id.PrimitiveNodeId
	cells  map[string]*jelib.CellRecord
	// Subcircuit being read, or nil
	cell      *jelib.CellRecord
	pins      map[string]bool
	instances int
	// Instances whose subcircuit is resolved at the end
	pending []pendingInstance
}

type pendingInstance struct {
	node *jelib.NodeRecord
	name string
}

func (p *netlist) dispatch(fields []string) {
	if len(fields) == 0 {
		return
	}
	//
	head := strings.ToUpper(fields[0])
	//
	switch {
	case head == ".SUBCKT":
		p.subckt(fields[1:])
	case head == ".ENDS":
		p.ends(fields[1:])
	case head == ".INCLUDE" || head == ".INC":
		p.include(fields[1:])
	case head == ".END" || head == ".PARAM" || head == ".GLOBAL" || head == ".OPTION" || head == ".OPTIONS" ||
		head == ".MODEL" || head == ".TEMP":
		// no bearing on hierarchy
	case strings.HasPrefix(head, "."):
		p.warnf("unknown card %s", fields[0])
	case head[0] == 'X':
		p.instance(fields)
	}
}

func (p *netlist) subckt(fields []string) {
	if p.cell != nil {
		p.errorf("nested .SUBCKT in subcircuit %s", p.cell.Cell.CellName().Name)
		return
	} else if len(fields) == 0 {
		p.errorf(".SUBCKT without a name")
		return
	}
	//
	name := fields[0]
	if _, ok := p.cells[name]; ok {
		p.errorf("Duplicate subcircuit %s", name)
		return
	}
	//
	cid := p.lib.Cell(id.CellName{Name: name, View: View})
	cid.Declare()
	//
	p.cell = &jelib.CellRecord{Cell: cid, Label: name, Group: name, Line: p.line}
	p.cells[name] = p.cell
	p.pins = make(map[string]bool)
	p.instances = 0
	p.record.Cells = append(p.record.Cells, p.cell)
	p.record.Groups = append(p.record.Groups, []string{name})
	//
	pins := 0
	//
	for _, f := range fields[1:] {
		if key, value, ok := strings.Cut(f, "="); ok {
			p.cell.Vars = append(p.cell.Vars, design.Variable{Key: "ATTR_" + key, Value: value})
			continue
		}
		//
		p.pinNode(f, pins)
		pins++
	}
}

// pinNode places a pin of the current subcircuit, exporting it.
func (p *netlist) pinNode(name string, index int) {
	if p.pins[name] {
		p.errorf("Duplicate pin %s on subcircuit %s", name, p.cell.Cell.CellName().Name)
		return
	}
	//
	export := p.cell.Cell.Export(name)
	export.Declare()
	p.pins[name] = true
	//
	at := design.Point{X: float64(index%gridColumns) * pinPitch, Y: -float64(index/gridColumns) * pinPitch}
	node := &jelib.NodeRecord{Proto: p.pin, Anchor: at, Line: p.line}
	p.cell.Nodes = append(p.cell.Nodes, node)
	p.cell.Exports = append(p.cell.Exports, &jelib.ExportRecord{Export: export, Node: node, Line: p.line})
}

func (p *netlist) ends(fields []string) {
	if p.cell == nil {
		p.errorf(".ENDS outside of a subcircuit")
		return
	} else if len(fields) > 0 && fields[0] != p.cell.Cell.CellName().Name {
		p.warnf(".ENDS %s closes subcircuit %s", fields[0], p.cell.Cell.CellName().Name)
	}
	//
	p.cell = nil
}

func (p *netlist) include(fields []string) {
	if len(fields) == 0 {
		p.errorf(".INCLUDE without a file")
		return
	}
	//
	path := strings.Trim(fields[0], `"'`)
	lib := p.ids.Library(LibraryName(path))
	p.record.Externals = append(p.record.Externals, &jelib.ExternalLibrary{Library: lib, Path: path, Line: p.line})
}

func (p *netlist) instance(fields []string) {
	if p.cell == nil {
		p.warnf("instance %s outside of a subcircuit ignored", fields[0])
		return
	}
	// Trailing parameters follow the subcircuit name
	end := len(fields)
	for end > 1 && strings.Contains(fields[end-1], "=") {
		end--
	}
	//
	if end < 2 {
		p.errorf("instance %s has no subcircuit", fields[0])
		return
	}
	//
	nets := make([]any, 0, end-2)
	for _, n := range fields[1 : end-1] {
		nets = append(nets, n)
	}
	//
	k := p.instances
	p.instances++
	at := design.Point{X: instOffset + float64(k%gridColumns)*instPitch, Y: -float64(k/gridColumns) * instPitch}
	node := &jelib.NodeRecord{Name: fields[0], DiskName: fields[0], Anchor: at, Line: p.line,
		Vars: []design.Variable{{Key: VarNets, Value: nets}}}
	//
	for _, f := range fields[end:] {
		key, value, _ := strings.Cut(f, "=")
		node.Vars = append(node.Vars, design.Variable{Key: "ATTR_" + key, Value: value})
	}
	//
	p.cell.Nodes = append(p.cell.Nodes, node)
	p.pending = append(p.pending, pendingInstance{node, fields[end-1]})
}

// finish resolves instanced subcircuits, which are either defined by this
// netlist or assumed to come from the first included library.
func (p *netlist) finish() {
	for _, pi := range p.pending {
		name := id.CellName{Name: pi.name, View: View}
		//
		switch {
		case p.cells[pi.name] != nil:
			pi.node.Proto = p.lib.Cell(name)
		case len(p.record.Externals) > 0:
			pi.node.Proto = p.record.Externals[0].Library.Cell(name)
		default:
			pi.node.Proto = p.lib.Cell(name)
		}
	}
}

func (p *netlist) location() diag.Location {
	loc := diag.Location{File: p.file.Filename(), Line: p.line, Library: p.lib.Name()}
	//
	if p.cell != nil {
		loc.Cell = p.cell.Cell.CellName().String()
	}
	//
	return loc
}

func (p *netlist) errorf(format string, args ...any) {
	diag.Errorf(p.reporter, p.location(), format, args...)
}

func (p *netlist) warnf(format string, args ...any) {
	diag.Warnf(p.reporter, p.location(), format, args...)
}
