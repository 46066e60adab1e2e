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
package tech

import (
	"testing"

	"github.com/consensys/go-jelib/pkg/design"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_00(t *testing.T) {
	techs, err := Builtin()
	require.NoError(t, err)
	require.Len(t, techs, 2)
	assert.Equal(t, "mocmos", techs[0].Name())
	assert.Equal(t, "schematic", techs[1].Name())
	//
	pin := techs[0].FindNode("Metal-1-Pin")
	require.NotNil(t, pin)
	assert.Equal(t, "pin", pin.Function)
	assert.Equal(t, 3.0, pin.Width)
	// Port collapses to the centre of a default sized pin
	port := pin.FindPort("metal-1").(*design.PrimitivePort)
	assert.Equal(t, design.Rect{}, port.Region(3, 3))
	assert.NotNil(t, techs[0].FindArc("Metal-1"))
}

func TestCatalog_01(t *testing.T) {
	techs, err := Load("testdata/small.toml")
	require.NoError(t, err)
	require.Len(t, techs, 1)
	//
	via := techs[0].FindNode("Via")
	require.NotNil(t, via)
	port := via.FindPort("v").(*design.PrimitivePort)
	assert.Equal(t, design.Bounding(design.Point{X: -1}, design.Point{X: 1}), port.Region(4, 2))
	assert.Equal(t, 1.5, techs[0].FindArc("Wire").Width)
}

func TestCatalog_02(t *testing.T) {
	_, err := Load("testdata/bad_edge.toml")
	assert.ErrorContains(t, err, "malformed edge")
	//
	_, err = Load("testdata/missing.toml")
	assert.ErrorContains(t, err, "failed to read technology file")
	//
	_, err = Decode("[[technology]]\nname = 3\n")
	assert.ErrorContains(t, err, "failed to parse technology catalog")
	//
	_, err = Decode("[[technology]]\n[[technology.node]]\nname = \"x\"\n")
	assert.ErrorContains(t, err, "technology has no name")
}

func TestCatalog_03(t *testing.T) {
	_, err := Decode(`
[[technology]]
name = "dup"
[[technology.node]]
name = "Pin"
[[technology.node]]
name = "Pin"
`)
	assert.ErrorContains(t, err, "already declared")
}

func TestRegister_00(t *testing.T) {
	techs, err := LoadAll()
	require.NoError(t, err)
	//
	db := design.NewMemory()
	require.NoError(t, Register(db, techs...))
	assert.Same(t, techs[0], db.FindTechnology("mocmos"))
	// Second registration fails for every technology
	err = Register(db, techs...)
	assert.ErrorContains(t, err, "technology mocmos already exists")
	assert.ErrorContains(t, err, "technology schematic already exists")
}

func TestRegister_01(t *testing.T) {
	techs, err := LoadAll("testdata/small.toml", "testdata/small.toml")
	require.NoError(t, err)
	require.Len(t, techs, 2)
	//
	db := design.NewMemory()
	assert.Error(t, Register(db, techs...))
	assert.NotNil(t, db.FindTechnology("tiny"))
}
