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
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/consensys/go-jelib/pkg/design"
	"github.com/consensys/go-jelib/pkg/diag"
	"github.com/consensys/go-jelib/pkg/id"
	"github.com/consensys/go-jelib/pkg/util/source"
)

// Builder reads library files into records.  Names are interned in a shared
// identifier manager, so records of libraries read by the same builder refer
// to each other through identical identifiers.
type Builder struct {
	ids         *id.Manager
	reporter    diag.Reporter
	strict      bool
	hook        func(RecordKind)
	descriptors *DescriptorDecoder
}

// Option configures a builder.
type Option func(*Builder)

// Strict enables checking that every primitive node and arc used by a cell was
// declared by the library, and that every cell of another library used by a
// cell has its bounds given.
func Strict(strict bool) Option {
	return func(p *Builder) {
		p.strict = strict
	}
}

// OnRecord registers a function called with the kind of every line read.
func OnRecord(hook func(RecordKind)) Option {
	return func(p *Builder) {
		p.hook = hook
	}
}

// NewBuilder constructs a builder interning names in the given manager, and
// reporting problems to the given reporter.
func NewBuilder(ids *id.Manager, reporter diag.Reporter, opts ...Option) *Builder {
	builder := &Builder{ids: ids, reporter: reporter, descriptors: NewDescriptorDecoder(ids)}
	//
	for _, opt := range opts {
		opt(builder)
	}
	//
	return builder
}

// Identifiers returns the manager in which this builder interns names.
func (p *Builder) Identifiers() *id.Manager {
	return p.ids
}

// Parse reads a library file, naming the library as given by its header (or
// after the file when there is no header).  Malformed records are reported and
// skipped, such that the only errors returned arise from cancellation.
func (p *Builder) Parse(ctx context.Context, file *source.File) (*LibraryRecord, error) {
	return p.ParseLibrary(ctx, nil, file)
}

// ParseLibrary reads a library file as the given library, irrespective of the
// name given by its header.  This is used when reading a library referenced by
// another library.
func (p *Builder) ParseLibrary(ctx context.Context, lib *id.LibId, file *source.File) (*LibraryRecord, error) {
	parser := newParserContext(p, lib, file)
	//
	for _, line := range file.Lines() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", file.Filename(), err)
		}
		//
		parser.line = line.Number()
		parser.dispatch(line.String())
	}
	//
	parser.endCell()
	parser.finish()
	//
	return parser.record, nil
}

// parserContext holds the state of reading one library file.
type parserContext struct {
	*Builder
	file    *source.File
	line    int
	record  *LibraryRecord
	lib     *id.LibId
	libName string
	header  bool
	warned  bool
	grammar Grammar
	tok     Tokenizer
	// Current technology, primitive node, external library and external cell
	tech    *TechRecord
	prim    *PrimitiveRecord
	extLib  *ExternalLibrary
	extCell *ExternalCell
	// Current cell, along with the nodes of the cell by disk name
	cell      *CellRecord
	diskNames map[string]*NodeRecord
	// Set when the remainder of a cell block is to be ignored
	discard bool
	// Set when inside the incoming half of a merge conflict
	conflict bool
	cells    map[*id.CellId]*CellRecord
	tools    map[string]bool
	nodes    map[*id.PrimitiveNodeId]*PrimitiveRecord
	ports    map[*id.PrimitivePortId]bool
	arcs     map[*id.ArcProtoId]bool
	groups   *Groups
}

func newParserContext(builder *Builder, lib *id.LibId, file *source.File) *parserContext {
	grammar := Newest()
	//
	return &parserContext{
		Builder: builder,
		file:    file,
		record:  &LibraryRecord{File: file.Filename(), Grammar: grammar},
		lib:     lib,
		grammar: grammar,
		tok:     NewTokenizer(grammar),
		cells:   make(map[*id.CellId]*CellRecord),
		tools:   make(map[string]bool),
		nodes:   make(map[*id.PrimitiveNodeId]*PrimitiveRecord),
		ports:   make(map[*id.PrimitivePortId]bool),
		arcs:    make(map[*id.ArcProtoId]bool),
		groups:  NewGroups(),
	}
}

func (p *parserContext) dispatch(text string) {
	kind := KindOf(text)
	//
	if p.hook != nil {
		p.hook(kind)
	}
	//
	switch {
	case kind == KindConflictStart:
		p.conflict = true
		p.errorf("CVS conflicts found: %s", text)
		//
		return
	case kind == KindConflictMiddle:
		p.conflict = false
		return
	case kind == KindConflictEnd, p.conflict, kind.Ignorable():
		return
	case kind != KindHeader:
		p.ensureLibrary()
	}
	//
	if kind.InCell() {
		p.cellLine(kind, text)
		return
	} else if kind == KindUnknown && p.cell != nil {
		p.errorf("Unrecognized line in cell: %s", text)
		return
	} else if p.cell != nil {
		p.warnf("cell %s is not terminated before %s line", p.cell.Cell.CellName().String(), kind)
		p.endCell()
	}
	//
	p.discard = false
	fields := p.tok.Split(text)
	//
	switch kind {
	case KindHeader:
		p.parseHeader(text, fields)
	case KindTool:
		p.parseTool(fields)
	case KindView:
		p.parseView(fields)
	case KindTechnology:
		p.parseTechnology(fields)
	case KindPrimitiveNode:
		p.parsePrimitiveNode(fields)
	case KindPrimitivePort:
		p.parsePrimitivePort(fields)
	case KindArcProto:
		p.parseArcProto(fields)
	case KindExternalLibrary:
		p.parseExternalLibrary(text, fields)
	case KindExternalCell:
		p.parseExternalCell(text, fields)
	case KindExternalExport:
		p.parseExternalExport(text, fields)
	case KindCell:
		p.parseCell(text, fields)
	case KindGroup:
		p.parseGroup(fields)
	default:
		p.errorf("Unrecognized line: %s", text)
	}
}

// ensureLibrary determines the library being read when there is no header.
func (p *parserContext) ensureLibrary() {
	if p.header || p.warned {
		return
	}
	//
	p.warned = true
	//
	if p.lib == nil {
		base := filepath.Base(p.file.Filename())
		p.lib = p.ids.Library(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	//
	p.libName = p.lib.Name()
	p.record.Library = p.lib
	p.warnf("library %s has no header, assuming version %s", p.libName, SupportedVersion)
}

func (p *parserContext) parseHeader(text string, fields []string) {
	if len(fields) < 2 {
		p.errorf("Library declaration needs 2 fields: %s", text)
		return
	} else if p.header {
		p.errorf("Duplicate library declaration: %s", text)
		return
	}
	//
	version, err := ParseVersion(fields[1])
	if err != nil {
		p.errorf("Badly formed version: %s", fields[1])
		return
	}
	// Fields must be split again with the escape character of this revision
	p.grammar = GrammarFor(version)
	p.tok = NewTokenizer(p.grammar)
	fields = p.tok.Split(text)
	p.header = true
	p.libName = p.tok.Unquote(fields[0])
	//
	if p.lib == nil {
		p.lib = p.ids.Library(p.libName)
	}
	//
	if !p.lib.Declare() {
		p.warnf("library %s has already been read", p.lib.Name())
	}
	//
	p.record.Library = p.lib
	p.record.Version = version
	p.record.Grammar = p.grammar
	//
	if version.Compare(SupportedVersion) > 0 {
		p.warnf("Library %s comes from a NEWER version (%s)", p.libName, version)
	}
	//
	p.record.Vars = p.variables(fields[2:])
}

func (p *parserContext) parseTool(fields []string) {
	name := p.tok.Unquote(fields[0])
	vars := p.variables(fields[1:])
	//
	if p.tools[name] {
		p.errorf("Tool %s declared twice", name)
		return
	}
	//
	p.tools[name] = true
	p.record.Tools = append(p.record.Tools, &ToolRecord{name, vars})
}

func (p *parserContext) parseView(fields []string) {
	if len(fields) < 2 {
		p.errorf("View declaration needs 2 fields: %s", strings.Join(fields, "|"))
		return
	}
	//
	name, abbrev := p.tok.Unquote(fields[0]), p.tok.Unquote(fields[1])
	//
	for _, v := range p.record.Views {
		if v.Name == name {
			p.errorf("View %s declared twice", name)
			return
		}
	}
	//
	p.record.Views = append(p.record.Views, &ViewRecord{name, abbrev, p.variables(fields[2:])})
}

func (p *parserContext) parseTechnology(fields []string) {
	tech := p.ids.Technology(p.tok.Unquote(fields[0]))
	vars := p.variables(fields[1:])
	p.prim = nil
	//
	for _, t := range p.record.Technologies {
		if t.Tech == tech {
			p.errorf("Technology %s declared twice", tech.Name())
			p.tech = t
			//
			return
		}
	}
	//
	p.tech = &TechRecord{Tech: tech, Vars: vars}
	p.record.Technologies = append(p.record.Technologies, p.tech)
}

func (p *parserContext) parsePrimitiveNode(fields []string) {
	name := p.tok.Unquote(fields[0])
	//
	if p.tech == nil {
		p.errorf("Primitive node %s has no technology before it", name)
		return
	}
	//
	node := p.tech.Tech.PrimitiveNode(name)
	vars := p.variables(fields[1:])
	//
	if prim, ok := p.nodes[node]; ok {
		p.errorf("Primitive node %s declared twice", node)
		p.prim = prim
		//
		return
	}
	//
	node.Declare()
	p.prim = &PrimitiveRecord{Node: node, Vars: vars}
	p.nodes[node] = p.prim
	p.tech.Nodes = append(p.tech.Nodes, p.prim)
}

func (p *parserContext) parsePrimitivePort(fields []string) {
	name := p.tok.Unquote(fields[0])
	//
	if p.prim == nil {
		p.errorf("Primitive port %s has no primitive node before it", name)
		return
	}
	//
	port := p.prim.Node.Port(name)
	vars := p.variables(fields[1:])
	//
	if p.ports[port] {
		p.errorf("Primitive port %s declared twice", port)
		return
	}
	//
	port.Declare()
	p.ports[port] = true
	p.prim.Ports = append(p.prim.Ports, &PrimitivePortRecord{port, vars})
}

func (p *parserContext) parseArcProto(fields []string) {
	name := p.tok.Unquote(fields[0])
	//
	if p.tech == nil {
		p.errorf("Primitive arc %s has no technology before it", name)
		return
	}
	//
	arc := p.tech.Tech.ArcProto(name)
	vars := p.variables(fields[1:])
	//
	if p.arcs[arc] {
		p.errorf("Primitive arc %s declared twice", arc)
		return
	}
	//
	arc.Declare()
	p.arcs[arc] = true
	p.tech.Arcs = append(p.tech.Arcs, &ArcProtoRecord{arc, vars})
}

func (p *parserContext) parseExternalLibrary(text string, fields []string) {
	if len(fields) != 2 {
		p.errorf("External library declaration needs 2 fields: %s", text)
		return
	}
	//
	lib := p.ids.Library(p.tok.Unquote(fields[0]))
	path := p.tok.Unquote(fields[1])
	p.extCell = nil
	//
	for _, l := range p.record.Externals {
		if l.Library == lib {
			p.errorf("External library %s declared twice", lib)
			p.extLib = l
			//
			return
		}
	}
	//
	p.extLib = &ExternalLibrary{Library: lib, Path: path, Line: p.line}
	p.record.Externals = append(p.record.Externals, p.extLib)
}

func (p *parserContext) parseExternalCell(text string, fields []string) {
	if len(fields) != p.grammar.ExternalCellFields {
		p.errorf("External cell declaration needs %d fields: %s", p.grammar.ExternalCellFields, text)
		return
	} else if p.extLib == nil {
		p.errorf("External cell %s has no library before it", fields[0])
		return
	}
	//
	name, ok := p.cellName(p.tok.Unquote(fields[0]))
	if !ok {
		return
	}
	//
	bounds, ok := p.numbers(fields[1:5]...)
	if !ok {
		return
	}
	//
	if p.grammar.ExternalCellHasDates {
		if _, ok := p.dates(fields[5], fields[6]); !ok {
			return
		}
	}
	//
	cell := p.extLib.Library.Cell(name)
	//
	for _, c := range p.extLib.Cells {
		if c.Cell == cell {
			p.extCell = c
			return
		}
	}
	//
	p.extCell = &ExternalCell{Cell: cell}
	p.extCell.Bounds.Min.X, p.extCell.Bounds.Max.X = bounds[0], bounds[1]
	p.extCell.Bounds.Min.Y, p.extCell.Bounds.Max.Y = bounds[2], bounds[3]
	p.extLib.Cells = append(p.extLib.Cells, p.extCell)
}

func (p *parserContext) parseExternalExport(text string, fields []string) {
	if len(fields) != 3 {
		p.errorf("External export declaration needs 3 fields: %s", text)
		return
	} else if p.extCell == nil {
		p.errorf("External export %s has no cell before it", fields[0])
		return
	}
	//
	loc, ok := p.numbers(fields[1], fields[2])
	if !ok {
		return
	}
	//
	export := p.extCell.Cell.Export(p.tok.Unquote(fields[0]))
	//
	for _, e := range p.extCell.Exports {
		if e.Export == export {
			return
		}
	}
	//
	p.extCell.Exports = append(p.extCell.Exports, ExternalExport{export, pointOf(loc)})
}

func (p *parserContext) parseGroup(fields []string) {
	first := ""
	//
	for _, field := range fields {
		text := p.tok.Unquote(field)
		if text == "" {
			continue
		} else if colon := strings.IndexByte(text, ':'); colon >= 0 {
			text = text[colon+1:]
		}
		//
		name, ok := p.cellName(text)
		if !ok {
			continue
		} else if !p.groups.Contains(name.Name) {
			p.errorf("Unknown cell %s", name.String())
			continue
		}
		//
		if first == "" {
			first = name.Name
		} else {
			p.groups.Relate(first, name.Name)
		}
	}
}

// finish assigns cells to their groups once all relations are known.
func (p *parserContext) finish() {
	if p.record.Library == nil {
		p.ensureLibrary()
	}
	//
	p.record.Groups = p.groups.Partition()
	//
	for _, c := range p.record.Cells {
		c.Group = p.groups.Find(c.Cell.CellName().Name)
	}
}

// ============================================================================
// Helpers
// ============================================================================

func (p *parserContext) location() diag.Location {
	loc := diag.Location{File: p.file.Filename(), Line: p.line, Library: p.libName}
	//
	if p.cell != nil {
		loc.Cell = p.cell.Cell.CellName().String()
	}
	//
	return loc
}

func (p *parserContext) errorf(format string, args ...any) {
	diag.Errorf(p.reporter, p.location(), format, args...)
}

func (p *parserContext) warnf(format string, args ...any) {
	diag.Warnf(p.reporter, p.location(), format, args...)
}

func (p *parserContext) cellName(text string) (id.CellName, bool) {
	name, err := id.ParseCellName(text)
	if err != nil {
		p.errorf("Bad cell name %s (%s)", text, err.Error())
		return name, false
	}
	//
	return name, true
}

// numbers parses floating point fields, reporting the first which is badly
// formed.  Empty fields are zero.
func (p *parserContext) numbers(fields ...string) ([]float64, bool) {
	values := make([]float64, len(fields))
	//
	for i, f := range fields {
		v, err := parseDouble(f)
		if err != nil {
			p.errorf("Bad number %q", f)
			return nil, false
		}
		//
		values[i] = v
	}
	//
	return values, true
}

func (p *parserContext) descriptor(text string, onVariable bool) design.TextDescriptor {
	td, errs := p.descriptors.Decode(text, onVariable)
	//
	for _, e := range errs {
		p.errorf("%s", e)
	}
	//
	return td
}
