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
	"errors"
	"strings"
	"testing"

	"github.com/consensys/go-jelib/pkg/design"
	"github.com/consensys/go-jelib/pkg/diag"
	"github.com/consensys/go-jelib/pkg/id"
	"github.com/consensys/go-jelib/pkg/jelib"
	"github.com/consensys/go-jelib/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_00(t *testing.T) {
	db, diags := instantiate(t, Options{},
		"Hlib|9.07",
		"Tmocmos",
		"DMetal-1-Pin",
		"Cc;1{sch}||mocmos|0|0|",
		"NMetal-1-Pin|a||0|0|2|2||",
		"NMetal-1-Pin|b||10|0|2|2||",
		"Nothertech:unknownprim|x||5|5|1|1||",
		"AMetal-1|net@0|||0|a|metal-1|0|0|b|metal-1|10|0",
		"X")
	// Unknown primitive is skipped, everything else is placed
	assert.Equal(t, 1, diags.Count(diag.Error))
	assert.True(t, diags.Contains("cannot identify primitive node othertech:unknownprim"))
	//
	cell := findCell(t, db, "lib", "c;1{sch}")
	assert.Len(t, cell.Nodes(), 2)
	assert.Nil(t, cell.FindNode("x"))
	require.Len(t, cell.Arcs(), 1)
	assert.Same(t, cell.FindNode("a"), cell.Arcs()[0].Head.Port.Node)
	assert.Same(t, cell.FindNode("b"), cell.Arcs()[0].Tail.Port.Node)
	assert.Same(t, db.FindTechnology("mocmos"), cell.Tech)
}

func TestEngine_01(t *testing.T) {
	var dummies []*design.Cell
	//
	db, diags := instantiate(t, Options{DummyPrimitives: true, OnDummyCell: func(c *design.Cell) {
		dummies = append(dummies, c)
	}},
		"Hlib|9.07",
		"Cc;1{sch}||mocmos|0|0|",
		"Nothertech:unknownprim|x||5|5|1|1||",
		"Nothertech:unknownprim|y||5|5|1|1||",
		"X")
	//
	assert.Equal(t, 0, diags.Count(diag.Error))
	require.Len(t, dummies, 1)
	//
	lib := db.FindLibrary("othertech")
	require.NotNil(t, lib)
	assert.True(t, lib.IsDummy())
	//
	cell := findCell(t, db, "lib", "c;1{sch}")
	require.Len(t, cell.Nodes(), 2)
	assert.Same(t, dummies[0], cell.FindNode("x").Proto())
	assert.Same(t, dummies[0], cell.FindNode("y").Proto())
	assert.True(t, dummies[0].IsDummy())
}

func TestEngine_02(t *testing.T) {
	db, diags := instantiate(t, Options{},
		"HLibA|9.07",
		"LLibB|LibB.jelib",
		"RY;1{sch}|-4|4|-2|2",
		"Fin|-4|0",
		"Tmocmos",
		"DMetal-1-Pin",
		"CX;1{sch}||mocmos|0|0|",
		"ILibB:Y;1{sch}|Y@0||0|0|||",
		"NMetal-1-Pin|p||-10|0|2|2||",
		"AMetal-1|net@0|||0|p|metal-1|-10|0|Y@0|in|-4|0",
		"AMetal-1|net@1|||0|p|metal-1|-10|0|Y@0|out|4|0",
		"X")
	//
	assert.Equal(t, 0, diags.Count(diag.Error))
	assert.True(t, diags.Contains("Creating dummy library LibB"))
	assert.True(t, diags.Contains("Creating dummy cell Y;1{sch} in library LibB"))
	assert.True(t, diags.Contains("Creating export out on dummy cell"))
	// Dummy library and cell
	libB := db.FindLibrary("LibB")
	require.NotNil(t, libB)
	assert.True(t, libB.IsDummy())
	//
	y := findCell(t, db, "LibB", "Y;1{sch}")
	assert.True(t, y.IsDummy())
	assert.Equal(t, design.Rect{Min: design.Point{X: -4, Y: -2}, Max: design.Point{X: 4, Y: 2}}, y.Bounds())
	//
	trueLib, ok := y.Var(design.VarTrueLibrary)
	require.True(t, ok)
	assert.Equal(t, "LibB", trueLib.Value)
	require.Len(t, y.Exports(), 2)
	assert.Equal(t, "in", y.Exports()[0].Name())
	assert.Equal(t, "out", y.Exports()[1].Name())
	// Referencing cell instantiates normally
	x := findCell(t, db, "LibA", "X;1{sch}")
	inst := x.FindNode("Y@0")
	require.NotNil(t, inst)
	assert.Same(t, y, inst.Proto())
	require.Len(t, x.Arcs(), 2)
	assert.Same(t, y.Exports()[1], x.Arcs()[1].Tail.Port.Proto)
}

func TestEngine_03(t *testing.T) {
	db, diags := instantiate(t, Options{},
		"Hold|8.00",
		"Tmocmos",
		"DMetal-1-Pin",
		"Csub|sch|1|mocmos|0|0|",
		"Nmocmos:Metal-1-Pin|pin@0||0|0|2|2|||",
		"Ea||pin@0|metal-1|0|0|I",
		"X",
		"Ctop|sch|1|mocmos|0|0|",
		"Nsub;1{sch}|sub@0||10|10|0|0|||",
		"Eb||sub@0|a|50|50|O",
		"X")
	//
	assert.Equal(t, 0, diags.Count(diag.Error))
	assert.Equal(t, 2, diags.Count(diag.Warning))
	assert.True(t, diags.Contains("point (50,50) does not fit in port a on node sub@0"))
	assert.True(t, diags.Contains("Arc end and port discrepancy at (50,50), port a on node sub@0"))
	// Export is made on a synthetic pin, linked to the intended port
	top := findCell(t, db, "old", "top;1{sch}")
	sub := top.FindNode("sub@0")
	export := top.FindExport("b")
	require.NotNil(t, export)
	assert.Equal(t, design.PortOutput, export.Characteristic)
	assert.Same(t, db.Generic().UniversalPin, export.Port.Node.Proto())
	assert.Equal(t, design.Point{X: 50, Y: 50}, export.Port.Node.Anchor)
	//
	require.Len(t, top.Arcs(), 1)
	link := top.Arcs()[0]
	assert.Same(t, db.Generic().Unrouted, link.Proto())
	assert.Same(t, export.Port.Node, link.Head.Port.Node)
	assert.Same(t, sub, link.Tail.Port.Node)
	assert.Equal(t, "a", link.Tail.Port.Proto.PortName())
}

func TestEngine_04(t *testing.T) {
	var order []string
	//
	db, diags := instantiate(t, Options{OnCellFilled: func(c *design.Cell) {
		order = append(order, c.Name().Name)
	}},
		"Hlib|9.07",
		"Tmocmos",
		"DMetal-1-Pin",
		"Ctop;1{sch}||mocmos|0|0|",
		"Isub;1{sch}|sub@0||10|10|||",
		"NMetal-1-Pin|p||0|10|2|2||",
		"AMetal-1|net@0|||0|p|metal-1|0|10|sub@0|a|10|10",
		"Eio||D5G2;|sub@0|a|B",
		"X",
		"Csub;1{sch}||mocmos|0|0|",
		"NMetal-1-Pin|pin@0||0|0|2|2||",
		"Ea||D5G2;|pin@0|metal-1|I",
		"X")
	// Instanced cells are filled first
	assert.Empty(t, diags.Diagnostics())
	assert.Equal(t, []string{"sub", "top"}, order)
	//
	top := findCell(t, db, "lib", "top;1{sch}")
	sub := findCell(t, db, "lib", "sub;1{sch}")
	require.Len(t, top.Arcs(), 1)
	assert.Same(t, sub.FindExport("a"), top.Arcs()[0].Tail.Port.Proto)
	assert.Same(t, sub.FindExport("a"), top.FindExport("io").Port.Proto)
	assert.Equal(t, design.PortBidirectional, top.FindExport("io").Characteristic)
}

func TestEngine_05(t *testing.T) {
	db, diags := instantiate(t, Options{},
		"Hlib|9.07",
		"Ca;1{sch}|||0|0|",
		"Ia;1{sch}|a@0||0|0|||",
		"X")
	//
	assert.Equal(t, 1, diags.Count(diag.Error))
	assert.True(t, diags.Contains("Recursive instance of cell"))
	assert.Empty(t, findCell(t, db, "lib", "a;1{sch}").Nodes())
}

func TestEngine_06(t *testing.T) {
	db, diags := instantiate(t, Options{},
		"Hlib|9.07|ref()Clib:sub;1{sch}|missing()Cnolib:zz|tech()Tmocmos|arr()L[lib,nolib]",
		"Tmocmos",
		"DMetal-1-Pin",
		"Csub;1{sch}||mocmos|0|0||exp()Elib:sub;1{sch}:a|arc()Rmocmos:Metal-1",
		"NMetal-1-Pin|pin@0||0|0|2|2||",
		"Ea||D5G2;|pin@0|metal-1|I",
		"X")
	//
	assert.Equal(t, 0, diags.Count(diag.Error))
	assert.Equal(t, 2, diags.Count(diag.Warning))
	assert.True(t, diags.Contains("Unresolved reference"))
	//
	lib := db.FindLibrary("lib")
	sub := findCell(t, db, "lib", "sub;1{sch}")
	//
	checkVar(t, &lib.Variables, "ref", sub)
	checkVar(t, &lib.Variables, "tech", db.FindTechnology("mocmos"))
	checkVar(t, &sub.Variables, "exp", sub.FindExport("a"))
	checkVar(t, &sub.Variables, "arc", db.FindTechnology("mocmos").FindArc("Metal-1"))
	//
	missing, _ := lib.Var("missing")
	assert.IsType(t, &id.CellId{}, missing.Value)
	//
	arr, _ := lib.Var("arr")
	require.Len(t, arr.Value, 2)
	assert.Same(t, lib, arr.Value.([]any)[0])
	assert.IsType(t, &id.LibId{}, arr.Value.([]any)[1])
}

func TestEngine_07(t *testing.T) {
	db, diags := instantiate(t, Options{},
		"Hlib|9.07",
		"Ctop;1{ic}||nmos4|0|0|",
		"X",
		"Ctop;1{sch}||mocmos|0|0|",
		"X",
		"Cother;1{sch}||mocmos|0|0|",
		"X")
	//
	assert.True(t, diags.Contains("unknown technology nmos4"))
	//
	lib := db.FindLibrary("lib")
	require.Len(t, lib.Groups(), 2)
	assert.Equal(t, "other", lib.Groups()[0].Name())
	assert.Equal(t, "top", lib.Groups()[1].Name())
	assert.Len(t, lib.Groups()[1].Cells(), 2)
	assert.Same(t, lib.Groups()[1], findCell(t, db, "lib", "top;1{ic}").Group())
	assert.Nil(t, findCell(t, db, "lib", "top;1{ic}").Tech)
}

func TestEngine_08(t *testing.T) {
	db := design.NewMemory(testTechnology())
	diags := diag.NewCollector()
	rec := parse(t, id.NewManager(), diags, "Hlib|9.07", "Cc;1{sch}||mocmos|0|0|", "X")
	// Instantiating a library twice
	for i := 0; i < 2; i++ {
		engine := New(db, diags, Options{})
		engine.Add(rec)
		require.NoError(t, engine.Run(context.Background()))
	}
	//
	assert.Equal(t, 1, diags.Count(diag.Error))
	assert.True(t, diags.Contains("library lib already exists"))
	assert.Len(t, db.Libraries(), 1)
}

func TestEngine_09(t *testing.T) {
	db := design.NewMemory(testTechnology())
	rec := parse(t, id.NewManager(), diag.Discard, "Hlib|9.07", "Cc;1{sch}||mocmos|0|0|", "X")
	engine := New(db, diag.Discard, Options{})
	engine.Add(rec)
	//
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	//
	err := engine.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestEngine_10(t *testing.T) {
	db, diags := instantiate(t, Options{},
		"HLibA|9.07",
		"LLibB|LibB.jelib",
		"RY;1{sch}|-4|4|-2|2",
		"Tmocmos",
		"DMetal-1-Pin",
		"CX;1{sch}||mocmos|0|0|",
		"ILibB:Y;1{sch}|Y@0||0|0|||",
		"NMetal-1-Pin|p||-10|0|2|2||",
		"AMetal-1|net@0|||0|p|metal-1|-10|0|Y@0||-4|0",
		"AMetal-1|net@1|||0|p|metal-1|-10|0|Y@0||4|0",
		"X")
	//
	assert.Equal(t, 0, diags.Count(diag.Error))
	assert.True(t, diags.Contains("Export X already exists on dummy cell LibB:Y;1{sch}, using X_1"))
	//
	y := findCell(t, db, "LibB", "Y;1{sch}")
	require.Len(t, y.Exports(), 2)
	assert.Equal(t, "X", y.Exports()[0].Name())
	assert.Equal(t, "X_1", y.Exports()[1].Name())
	//
	x := findCell(t, db, "LibA", "X;1{sch}")
	require.Len(t, x.Arcs(), 2)
	assert.Same(t, y.Exports()[0], x.Arcs()[0].Tail.Port.Proto)
	assert.Same(t, y.Exports()[1], x.Arcs()[1].Tail.Port.Proto)
}

// ==================================================================
// Framework
// ==================================================================

// testTechnology constructs a technology with a metal pin and arc, along with
// a transistor whose ports cover the left and right halves of its body.
func testTechnology() *design.Technology {
	tech := design.NewTechnology("mocmos")
	half := design.Edge{Multiplier: 0.5}
	minusHalf := design.Edge{Multiplier: -0.5}
	//
	pin, _ := tech.AddNode("Metal-1-Pin", 2, 2)
	_, _ = pin.AddPort("metal-1", minusHalf, half, minusHalf, half)
	//
	trans, _ := tech.AddNode("Transistor", 4, 2)
	_, _ = trans.AddPort("g", minusHalf, design.Edge{}, minusHalf, half)
	_, _ = trans.AddPort("d", design.Edge{}, half, minusHalf, half)
	//
	_, _ = tech.AddArc("Metal-1", 1)
	//
	return tech
}

func parse(t *testing.T, ids *id.Manager, reporter diag.Reporter, lines ...string) *jelib.LibraryRecord {
	t.Helper()
	//
	file := source.NewSourceFile("lib.jelib", []byte(strings.Join(lines, "\n")))
	rec, err := jelib.NewBuilder(ids, reporter).Parse(context.Background(), file)
	require.NoError(t, err)
	//
	return rec
}

// instantiate parses one library and instantiates it in a fresh database.
// Only diagnostics from instantiation are returned.
func instantiate(t *testing.T, opts Options, lines ...string) (*design.Memory, *diag.Collector) {
	t.Helper()
	//
	var (
		db     = design.NewMemory(testTechnology())
		diags  = diag.NewCollector()
		engine = New(db, diags, opts)
	)
	//
	engine.Add(parse(t, id.NewManager(), diag.Discard, lines...))
	require.NoError(t, engine.Run(context.Background()))
	//
	return db, diags
}

func findCell(t *testing.T, db design.Database, lib string, name string) *design.Cell {
	t.Helper()
	//
	l := db.FindLibrary(lib)
	require.NotNil(t, l, lib)
	//
	cellName, err := id.ParseCellName(name)
	require.NoError(t, err)
	//
	cell := l.FindCell(cellName)
	require.NotNil(t, cell, name)
	//
	return cell
}

func checkVar(t *testing.T, vars *design.Variables, key string, expected any) {
	t.Helper()
	//
	v, ok := vars.Var(key)
	require.True(t, ok, key)
	assert.Same(t, expected, v.Value, key)
}
