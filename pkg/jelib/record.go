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
	"time"

	"github.com/consensys/go-jelib/pkg/design"
	"github.com/consensys/go-jelib/pkg/id"
)

// LibraryRecord is everything read from one library file, with names
// interned but nothing yet resolved against a design database.
type LibraryRecord struct {
	// Library which was read
	Library *id.LibId
	// File from which the library was read
	File    string
	Version Version
	Grammar Grammar
	Vars    []design.Variable
	Tools   []*ToolRecord
	Views   []*ViewRecord
	// Technologies mentioned by T lines, together with their declared
	// primitives
	Technologies []*TechRecord
	// Libraries referenced by L lines, in order of appearance
	Externals []*ExternalLibrary
	Cells     []*CellRecord
	// Partition of cell base names into groups, in the order given by
	// Groups.Partition.
	Groups [][]string
}

// FindCell returns the record of a cell declared in this library, or nil.
func (p *LibraryRecord) FindCell(cell *id.CellId) *CellRecord {
	for _, c := range p.Cells {
		if c.Cell == cell {
			return c
		}
	}
	//
	return nil
}

// FindExternal returns the information on a cell of another library, as given
// by R lines, or nil if there is none.
func (p *LibraryRecord) FindExternal(cell *id.CellId) *ExternalCell {
	for _, l := range p.Externals {
		if l.Library != cell.Library() {
			continue
		}
		//
		for _, c := range l.Cells {
			if c.Cell == cell {
				return c
			}
		}
	}
	//
	return nil
}

// ToolRecord holds the settings of a tool.
type ToolRecord struct {
	Name string
	Vars []design.Variable
}

// ViewRecord declares a view.
type ViewRecord struct {
	Name         string
	Abbreviation string
	Vars         []design.Variable
}

// TechRecord holds the settings of a technology.
type TechRecord struct {
	Tech  *id.TechId
	Vars  []design.Variable
	Nodes []*PrimitiveRecord
	Arcs  []*ArcProtoRecord
}

// PrimitiveRecord holds the settings of a primitive node.
type PrimitiveRecord struct {
	Node  *id.PrimitiveNodeId
	Vars  []design.Variable
	Ports []*PrimitivePortRecord
}

// PrimitivePortRecord holds the settings of a primitive port.
type PrimitivePortRecord struct {
	Port *id.PrimitivePortId
	Vars []design.Variable
}

// ArcProtoRecord holds the settings of an arc prototype.
type ArcProtoRecord struct {
	Arc  *id.ArcProtoId
	Vars []design.Variable
}

// ExternalLibrary is a library referenced from the one being read.
type ExternalLibrary struct {
	Library *id.LibId
	// Path of the library file as written
	Path string
	Line int
	// Cells of this library referenced from the one being read
	Cells []*ExternalCell
}

// ExternalCell records what is known about a cell of another library, which
// is enough to fabricate a placeholder for it.
type ExternalCell struct {
	Cell    *id.CellId
	Bounds  design.Rect
	Exports []ExternalExport
}

// ExternalExport is the position of an export on an external cell.
type ExternalExport struct {
	Export   *id.ExportId
	Location design.Point
}

// CellRecord holds one cell block.
type CellRecord struct {
	Cell *id.CellId
	// Group label written with the cell, which defaults to its base name.
	Label string
	// Group is the canonical name of the group containing this cell.
	Group   string
	Tech    *id.TechId
	Created time.Time
	Revised time.Time
	Flags   design.CellFlags
	Vars    []design.Variable
	Nodes   []*NodeRecord
	Arcs    []*ArcRecord
	Exports []*ExportRecord
	// Exports which were declared but are not used
	Unused []*id.ExportId
	Line   int
}

// NodeRecord is a node or instance placed in a cell.
type NodeRecord struct {
	Proto id.NodeProtoId
	// Name of the node
	Name string
	// Name as written, by which other records of the cell refer to it
	DiskName        string
	NameDescriptor  design.TextDescriptor
	Anchor          design.Point
	Width           float64
	Height          float64
	Orient          design.Orientation
	Flags           design.NodeFlags
	TechBits        int
	ProtoDescriptor design.TextDescriptor
	Vars            []design.Variable
	Line            int
}

// ArcEnd is one end of an arc.
type ArcEnd struct {
	Node     *NodeRecord
	Port     string
	Location design.Point
}

// ArcRecord is an arc placed in a cell.
type ArcRecord struct {
	Proto          *id.ArcProtoId
	Name           string
	NameDescriptor design.TextDescriptor
	Width          float64
	Head           ArcEnd
	Tail           ArcEnd
	Flags          design.ArcFlags
	// Angle in tenths of a degree
	Angle int
	Vars  []design.Variable
	Line  int
}

// ExportRecord is an export of a cell.
type ExportRecord struct {
	Export *id.ExportId
	// User visible name, which is empty when it matches the export name
	Alias      string
	Descriptor design.TextDescriptor
	Node       *NodeRecord
	Port       string
	// Location of the exported port, which is only written by old revisions
	Location       design.Point
	HasLocation    bool
	Characteristic design.PortCharacteristic
	AlwaysDrawn    bool
	BodyOnly       bool
	Vars           []design.Variable
	Line           int
}
