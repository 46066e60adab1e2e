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
package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/go-jelib/pkg/design"
	"github.com/consensys/go-jelib/pkg/id"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_00(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	libs := testDesign(t)
	//
	first, second := NewSession(), NewSession()
	require.NoError(t, store.SaveDesign(ctx, first, libs))
	require.NoError(t, store.SaveDesign(ctx, second, libs[:1]))
	//
	sessions, err := store.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, first, sessions[0].Id)
	assert.Equal(t, 2, sessions[0].Libraries)
	assert.Equal(t, 3, sessions[0].Cells)
	assert.Equal(t, 1, sessions[1].Libraries)
	//
	checkCount(t, store, first, "libraries", 2)
	checkCount(t, store, first, "cells", 3)
	checkCount(t, store, first, "nodes", 3)
	checkCount(t, store, first, "arcs", 1)
	checkCount(t, store, first, "exports", 1)
	checkCount(t, store, first, "variables", 3)
	checkCount(t, store, second, "cells", 2)
}

func TestStore_01(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	session := NewSession()
	//
	require.NoError(t, store.SaveDesign(ctx, session, testDesign(t)))
	// Saving the same session again fails without writing anything
	assert.Error(t, store.SaveDesign(ctx, session, testDesign(t)))
	checkCount(t, store, session, "libraries", 2)
	//
	_, err := store.Count(ctx, session, "sessions; DROP TABLE cells")
	assert.Error(t, err)
}

func TestStore_02(t *testing.T) {
	dir := t.TempDir()
	//
	_, err := Open(" ")
	assert.Error(t, err)
	_, err = Open(dir)
	assert.ErrorContains(t, err, "is a directory")
	// Reopening keeps the schema and contents
	path := filepath.Join(dir, "nested", "design.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveDesign(context.Background(), NewSession(), nil))
	require.NoError(t, store.Close())
	//
	store, err = Open(path)
	require.NoError(t, err)
	//
	defer store.Close()
	//
	sessions, err := store.Sessions(context.Background())
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.Equal(t, path, store.Path())
	//
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestValueText_00(t *testing.T) {
	libs := testDesign(t)
	cell := libs[0].Cells()[0]
	//
	assert.Equal(t, "lib:top{sch}", valueText(cell))
	assert.Equal(t, "[1,x,lib]", valueText([]any{int32(1), "x", libs[0]}))
	assert.Equal(t, "lib:top{sch}:out", valueText(cell.FindExport("out")))
}

// ===================================================================
// Framework
// ===================================================================

func openStore(t *testing.T) *Store {
	t.Helper()
	//
	store, err := Open(filepath.Join(t.TempDir(), "design.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	//
	return store
}

func checkCount(t *testing.T, store *Store, session uuid.UUID, table string, expected int) {
	t.Helper()
	//
	n, err := store.Count(context.Background(), session, table)
	require.NoError(t, err)
	assert.Equal(t, expected, n, table)
}

// testDesign constructs two libraries holding three cells, with a wire between
// two pins in one of them.
func testDesign(t *testing.T) []*design.Library {
	t.Helper()
	//
	db := design.NewMemory()
	pin := db.Generic().UniversalPin
	//
	lib, err := db.NewLibrary("lib", "lib.jelib")
	require.NoError(t, err)
	lib.SetVar(design.Variable{Key: "USER_note", Value: "hello"})
	//
	top, err := lib.NewCell(id.CellName{Name: "top", View: "sch"})
	require.NoError(t, err)
	_, err = lib.NewCell(id.CellName{Name: "top", View: "ic"})
	require.NoError(t, err)
	//
	a, err := top.NewNode(pin, "", design.Point{}, 0, 0, design.Orientation{})
	require.NoError(t, err)
	b, err := top.NewNode(pin, "", design.Point{X: 10}, 0, 0, design.Orientation{Angle: 900})
	require.NoError(t, err)
	a.SetVar(design.Variable{Key: "ATTR_ref", Value: top})
	//
	arc, err := top.NewArc(db.Generic().Universal, "", 0, design.Connection{Port: a.Ports()[0]},
		design.Connection{Port: b.Ports()[0], Location: b.Anchor})
	require.NoError(t, err)
	arc.SetVar(design.Variable{Key: "ATTR_len", Value: 10.0})
	_, err = top.NewExport("out", b.Ports()[0])
	require.NoError(t, err)
	//
	other, err := db.NewLibrary("other", "")
	require.NoError(t, err)
	sub, err := other.NewCell(id.CellName{Name: "sub"})
	require.NoError(t, err)
	_, err = sub.NewNode(pin, "", design.Point{}, 0, 0, design.Orientation{})
	require.NoError(t, err)
	//
	return db.Libraries()
}
