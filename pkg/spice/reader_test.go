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
	"testing"

	"github.com/consensys/go-jelib/pkg/design"
	"github.com/consensys/go-jelib/pkg/diag"
	"github.com/consensys/go-jelib/pkg/id"
	"github.com/consensys/go-jelib/pkg/jelib"
	"github.com/consensys/go-jelib/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_00(t *testing.T) {
	rec, errs := readFile(t, "testdata/cells.sp")
	assert.Zero(t, errs.Count(diag.Error))
	assert.Zero(t, errs.Count(diag.Warning))
	//
	assert.Equal(t, "cells", rec.Library.Name())
	require.Len(t, rec.Cells, 2)
	assert.Equal(t, [][]string{{"inv"}, {"buf"}}, rec.Groups)
	//
	inv := rec.Cells[0]
	assert.Equal(t, "inv{sch}", inv.Cell.CellName().String())
	assert.Equal(t, id.Declared, inv.Cell.State())
	assert.Equal(t, []design.Variable{{Key: "ATTR_vdd", Value: "1.8"}}, inv.Vars)
	// Pins are exported and laid out along a row
	require.Len(t, inv.Exports, 2)
	assert.Equal(t, "a", inv.Exports[0].Export.Name())
	assert.Equal(t, "y", inv.Exports[1].Export.Name())
	assert.Equal(t, design.Point{X: 10}, inv.Exports[1].Node.Anchor)
	assert.Equal(t, "Unrouted-Pin", inv.Nodes[0].Proto.(*id.PrimitiveNodeId).Name())
}

func TestReader_01(t *testing.T) {
	rec, _ := readFile(t, "testdata/cells.sp")
	buf := rec.Cells[1]
	// Two pins and two instances, the second joined from a continuation
	require.Len(t, buf.Nodes, 4)
	//
	i2 := buf.Nodes[3]
	assert.Equal(t, "Xi2", i2.Name)
	assert.Same(t, rec.Cells[0].Cell, i2.Proto)
	assert.Equal(t, []design.Variable{{Key: VarNets, Value: []any{"mid", "y"}}}, i2.Vars)
	assert.Equal(t, design.Point{X: 70}, i2.Anchor)
}

func TestReader_02(t *testing.T) {
	rec, errs := readFile(t, "testdata/top.spi")
	assert.Zero(t, errs.Count(diag.Error))
	//
	require.Len(t, rec.Externals, 1)
	assert.Equal(t, "cells", rec.Externals[0].Library.Name())
	assert.Equal(t, "cells.sp", rec.Externals[0].Path)
	// Subcircuits not defined locally come from the included library
	top := rec.Cells[0]
	x1, x2 := top.Nodes[2], top.Nodes[3]
	assert.Equal(t, "cells", x1.Proto.(*id.CellId).Library().Name())
	assert.Equal(t, "nand2{sch}", x2.Proto.(*id.CellId).CellName().String())
	assert.Equal(t, []design.Variable{
		{Key: VarNets, Value: []any{"in", "out"}}, {Key: "ATTR_strength", Value: "2"}}, x1.Vars)
}

func TestReader_03(t *testing.T) {
	_, errs := readFile(t, "testdata/broken.cir")
	//
	for _, msg := range []string{
		"instance X0 outside of a subcircuit ignored",
		".ENDS outside of a subcircuit",
		"Duplicate pin p on subcircuit a",
		"nested .SUBCKT in subcircuit a",
		"unknown card .PROBE",
		"instance Xbad has no subcircuit",
		"Duplicate subcircuit a",
		"missing .ENDS for subcircuit open",
	} {
		assert.True(t, errs.Contains(msg), msg)
	}
	//
	assert.Equal(t, 7, errs.Count(diag.Error))
	assert.Equal(t, 2, errs.Count(diag.Warning))
}

func TestReader_04(t *testing.T) {
	ids := id.NewManager()
	lib := ids.Library("renamed")
	file := source.NewSourceFile("x.sp", []byte(".subckt c\n.ends\n"))
	//
	rec, err := NewReader(ids, diag.Discard).ReadLibrary(context.Background(), lib, file)
	require.NoError(t, err)
	assert.Same(t, lib, rec.Library)
	assert.Equal(t, jelib.SupportedVersion, rec.Version)
	//
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewReader(ids, diag.Discard).Read(ctx, file)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReader_05(t *testing.T) {
	errs := diag.NewCollector()
	file := source.NewSourceFile("x.sp", []byte("+ stray\n.SUBCKT inv a y\n.ENDS\n"))
	//
	rec, err := NewReader(id.NewManager(), errs).Read(context.Background(), file)
	require.NoError(t, err)
	require.Len(t, rec.Cells, 1)
	assert.Equal(t, "inv", rec.Cells[0].Cell.CellName().Name)
	assert.Equal(t, 0, errs.Count(diag.Error))
	assert.Equal(t, 1, errs.Count(diag.Warning))
	assert.True(t, errs.Contains("continuation line without a card"))
}

func TestIsNetlist_00(t *testing.T) {
	assert.True(t, IsNetlist("a/b.SP"))
	assert.True(t, IsNetlist("x.cir"))
	assert.False(t, IsNetlist("x.jelib"))
	assert.Equal(t, "cells", LibraryName("dir/cells.spi"))
}

// ===================================================================
// Framework
// ===================================================================

func readFile(t *testing.T, filename string) (*jelib.LibraryRecord, *diag.Collector) {
	t.Helper()
	//
	file, err := source.ReadFile(filename)
	require.NoError(t, err)
	//
	errs := diag.NewCollector()
	rec, err := NewReader(id.NewManager(), errs).Read(context.Background(), file)
	require.NoError(t, err)
	//
	return rec, errs
}
