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
package design

import (
	"testing"

	"github.com/consensys/go-jelib/pkg/id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrientation_00(t *testing.T) {
	o := Orientation{Angle: 900}
	assert.Equal(t, Point{-2, 1}, o.Apply(Point{1, 2}))
	assert.Equal(t, Point{1, 2}, o.Inverse(o.Apply(Point{1, 2})))
}

func TestOrientation_01(t *testing.T) {
	for _, o := range []Orientation{
		{0, true, false}, {0, false, true}, {900, true, false}, {2700, true, true}, {1800, false, true},
	} {
		p := Point{3, -7}
		assert.Equal(t, p, o.Inverse(o.Apply(p)), "%v", o)
	}
}

func TestOrientation_02(t *testing.T) {
	assert.Equal(t, 900, Orientation{Angle: -2700}.Normalised().Angle)
	assert.True(t, Orientation{Angle: 3600}.IsIdentity())
	assert.False(t, Orientation{MirrorX: true}.IsIdentity())
}

func TestRect_00(t *testing.T) {
	r := RectAround(Point{0, 0}, 4, 2)
	assert.True(t, r.Contains(Point{2, 1}, 0))
	assert.False(t, r.Contains(Point{2.5, 0}, 0))
	assert.True(t, r.Contains(Point{2.5, 0}, 0.5))
	assert.Equal(t, Point{}, r.Centre())
	assert.Equal(t, 4.0, r.Width())
	assert.Equal(t, 2.0, r.Height())
}

func TestVariables_00(t *testing.T) {
	var vars Variables
	//
	vars.SetVar(Variable{Key: "a", Value: int32(1)})
	vars.SetVar(Variable{Key: "b", Value: []any{"x", "y"}})
	vars.SetVar(Variable{Key: "a", Value: int32(2)})
	//
	v, ok := vars.Var("a")
	require.True(t, ok)
	assert.Equal(t, int32(2), v.Value)
	assert.Len(t, vars.Vars(), 2)
	assert.True(t, vars.Vars()[1].IsArray())
}

func TestCharacteristic_00(t *testing.T) {
	c, ok := ParseCharacteristic("C3")
	assert.True(t, ok)
	assert.Equal(t, PortClock3, c)
	assert.Equal(t, "RB", PortRefBase.String())
	//
	_, ok = ParseCharacteristic("Z")
	assert.False(t, ok)
}

func newTestCell(t *testing.T) (*Memory, *Cell) {
	db := NewMemory()
	lib, err := db.NewLibrary("lib", "lib.jelib")
	require.NoError(t, err)
	cell, err := lib.NewCell(id.CellName{Name: "top", View: "sch"})
	require.NoError(t, err)
	//
	return db, cell
}

func TestCell_00(t *testing.T) {
	db, cell := newTestCell(t)
	pin := db.Generic().UniversalPin
	//
	a, err := cell.NewNode(pin, "", Point{0, 0}, 0, 0, Orientation{})
	require.NoError(t, err)
	b, err := cell.NewNode(pin, "", Point{10, 0}, 0, 0, Orientation{})
	require.NoError(t, err)
	assert.Equal(t, "pin@0", a.Name())
	assert.Equal(t, "pin@1", b.Name())
	//
	_, err = cell.NewNode(pin, "pin@0", Point{}, 0, 0, Orientation{})
	assert.Error(t, err)
	//
	pa, ok := a.FindPort("univ")
	require.True(t, ok)
	pb := b.Ports()[0]
	//
	arc, err := cell.NewArc(db.Generic().Universal, "", 1, Connection{pa, a.Anchor}, Connection{pb, b.Anchor})
	require.NoError(t, err)
	assert.Equal(t, "net@0", arc.Name())
	assert.Equal(t, DefaultArcFlags, arc.Flags)
	//
	e, err := cell.NewExport("out", pb)
	require.NoError(t, err)
	assert.Same(t, e, cell.FindPort("out"))
	_, err = cell.NewExport("out", pb)
	assert.Error(t, err)
}

func TestCell_01(t *testing.T) {
	db, cell := newTestCell(t)
	lib := cell.Library()
	// Populate sub cell with an exported pin at (5,0)
	sub, err := lib.NewCell(id.CellName{Name: "sub", View: "sch"})
	require.NoError(t, err)
	pin, err := sub.NewNode(db.Generic().UniversalPin, "", Point{5, 0}, 0, 0, Orientation{})
	require.NoError(t, err)
	_, err = sub.NewExport("a", pin.Ports()[0])
	require.NoError(t, err)
	// Place sub cell rotated by 90 degrees at (100,100)
	inst, err := cell.NewNode(sub, "", Point{100, 100}, 0, 0, Orientation{Angle: 900})
	require.NoError(t, err)
	assert.Equal(t, "sub@0", inst.Name())
	assert.True(t, inst.IsCellInstance())
	//
	port, ok := inst.FindPort("a")
	require.True(t, ok)
	assert.True(t, port.Contains(Point{100, 105}))
	assert.False(t, port.Contains(Point{105, 100}))
	assert.Equal(t, Point{5, 0}, inst.Untransform(Point{100, 105}))
}

func TestPrimitivePort_00(t *testing.T) {
	tech := NewTechnology("test")
	node, err := tech.AddNode("Metal-Pin", 4, 4)
	require.NoError(t, err)
	_, err = node.AddPort("m", Edge{-0.5, 1}, Edge{0.5, -1}, Edge{-0.5, 1}, Edge{0.5, -1})
	require.NoError(t, err)
	//
	db := NewMemory(tech)
	assert.Same(t, tech, db.FindTechnology("test"))
	assert.NotNil(t, db.FindTechnology(GenericTechName))
	assert.Error(t, db.AddTechnology(tech))
	//
	lib, _ := db.NewLibrary("lib", "")
	cell, _ := lib.NewCell(id.CellName{Name: "c"})
	n, err := cell.NewNode(node, "", Point{10, 10}, 4, 4, Orientation{})
	require.NoError(t, err)
	assert.Equal(t, "pin@0", n.Name())
	//
	port := n.Ports()[0]
	assert.Equal(t, Rect{Point{9, 9}, Point{11, 11}}, port.Region())
	assert.True(t, port.Contains(Point{11, 9}))
	assert.False(t, port.Contains(Point{12, 10}))
	assert.Equal(t, Rect{Point{8, 8}, Point{12, 12}}, cell.Bounds())
}

func TestGroups_00(t *testing.T) {
	_, cell := newTestCell(t)
	lib := cell.Library()
	other, _ := lib.NewCell(id.CellName{Name: "top", View: "ic"})
	//
	g1 := lib.NewGroup("top", cell)
	g2 := lib.NewGroup("top", cell, other)
	//
	assert.Empty(t, g1.Cells())
	assert.Len(t, g2.Cells(), 2)
	assert.Same(t, g2, other.Group())
	assert.Len(t, lib.Groups(), 1)
}
