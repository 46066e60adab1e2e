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

import "strings"

// RecordKind classifies a line of a library file.  Every line is decoded into
// exactly one kind before being processed.
type RecordKind uint8

const (
	// KindUnknown is a line with an unrecognised tag.
	KindUnknown RecordKind = iota
	// KindBlank is an empty line.
	KindBlank
	// KindComment is a line starting with '#'.
	KindComment
	// KindConflictStart marks the start of text merged by version control.
	KindConflictStart
	// KindConflictMiddle separates merged text from local text.
	KindConflictMiddle
	// KindConflictEnd marks the end of a merge conflict.
	KindConflictEnd
	// KindHeader is the library header (H).
	KindHeader
	// KindTool holds tool settings (O).
	KindTool
	// KindView declares a view (V).
	KindView
	// KindTechnology selects a technology (T).
	KindTechnology
	// KindPrimitiveNode declares a primitive node of the current technology (D).
	KindPrimitiveNode
	// KindPrimitivePort declares a port of the current primitive node (P).
	KindPrimitivePort
	// KindArcProto declares an arc of the current technology (W).
	KindArcProto
	// KindExternalLibrary references another library (L).
	KindExternalLibrary
	// KindExternalCell gives the bounds of a cell in the current external
	// library (R).
	KindExternalCell
	// KindExternalExport gives the position of an export on the current
	// external cell (F).
	KindExternalExport
	// KindCell starts a cell block (C).
	KindCell
	// KindGroup relates cells into one group (G).
	KindGroup
	// KindNode places a primitive node within a cell block (N).
	KindNode
	// KindInstance places a cell instance within a cell block (I).
	KindInstance
	// KindExport exports a port within a cell block (E).
	KindExport
	// KindArc connects two nodes within a cell block (A).
	KindArc
	// KindEndOfCell ends a cell block (X).
	KindEndOfCell
)

var kindNames = []string{"unknown", "blank", "comment", "conflict-start", "conflict-middle", "conflict-end",
	"header", "tool", "view", "technology", "primitive-node", "primitive-port", "arc-proto", "external-library",
	"external-cell", "external-export", "cell", "group", "node", "instance", "export", "arc", "end-of-cell"}

var kindTags = map[byte]RecordKind{
	'H': KindHeader, 'O': KindTool, 'V': KindView, 'T': KindTechnology, 'D': KindPrimitiveNode,
	'P': KindPrimitivePort, 'W': KindArcProto, 'L': KindExternalLibrary, 'R': KindExternalCell,
	'F': KindExternalExport, 'C': KindCell, 'G': KindGroup, 'N': KindNode, 'I': KindInstance,
	'E': KindExport, 'A': KindArc, 'X': KindEndOfCell, '#': KindComment,
}

// KindOf determines the kind of a line from its leading characters.
func KindOf(line string) RecordKind {
	switch {
	case line == "":
		return KindBlank
	case strings.HasPrefix(line, "<<<<<<<"):
		return KindConflictStart
	case strings.HasPrefix(line, "======="):
		return KindConflictMiddle
	case strings.HasPrefix(line, ">>>>>>>"):
		return KindConflictEnd
	}
	//
	if kind, ok := kindTags[line[0]]; ok {
		return kind
	}
	//
	return KindUnknown
}

// InCell determines whether records of this kind belong within a cell block.
func (k RecordKind) InCell() bool {
	switch k {
	case KindNode, KindInstance, KindExport, KindArc, KindEndOfCell:
		return true
	default:
		return false
	}
}

// Ignorable determines whether lines of this kind carry no content.
func (k RecordKind) Ignorable() bool {
	return k == KindBlank || k == KindComment
}

func (k RecordKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	//
	return "unknown"
}
