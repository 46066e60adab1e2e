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
package cmd

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/consensys/go-jelib/pkg/config"
	"github.com/consensys/go-jelib/pkg/design"
	"github.com/consensys/go-jelib/pkg/diag"
	"github.com/consensys/go-jelib/pkg/id"
	"github.com/consensys/go-jelib/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary_00(t *testing.T) {
	var out bytes.Buffer
	//
	printSummary(&out, []*design.Library{testLibrary(t)}, false)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	//
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"library", "cells", "nodes", "arcs", "exports", "dummy"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"lib", "2", "3", "0", "1", "no"}, strings.Fields(lines[1]))
}

func TestDiagnostics_00(t *testing.T) {
	var out bytes.Buffer
	//
	printDiagnostics(&out, []diag.Diagnostic{
		{Severity: diag.Error, Location: diag.Location{File: "a.jelib", Line: 3}, Message: "bad"},
		{Severity: diag.Warning, Message: "oops"},
	}, false)
	//
	assert.Equal(t, "a.jelib:3: error: bad\nwarning: oops\n", out.String())
}

func TestDiagnostics_01(t *testing.T) {
	var out bytes.Buffer
	//
	printDiagnostics(&out, []diag.Diagnostic{{Severity: diag.Error, Message: "bad"}}, true)
	//
	assert.Equal(t, errorEscape.Wrap("error")+": bad\n", out.String())
}

func TestTree_00(t *testing.T) {
	var out bytes.Buffer
	//
	printTree(&out, testLibrary(t))
	//
	assert.Equal(t, "lib\n  lib:top{sch}\n    lib:sub{sch}\n", out.String())
}

func TestGroups_00(t *testing.T) {
	var out bytes.Buffer
	//
	lib := testLibrary(t)
	lib.NewGroup("top", lib.Cells()...)
	printGroups(&out, lib)
	//
	assert.Equal(t, "lib\n  top: sub{sch} top{sch}\n", out.String())
}

func TestImport_00(t *testing.T) {
	var (
		out    bytes.Buffer
		server = observability.NewServer("127.0.0.1:0")
		path   = writeLibrary(t)
	)
	//
	code := importMain(context.Background(), config.Default(), importOptions{metrics: server, failOnError: true},
		&out, path)
	//
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "Cannot find library file missing.jelib")
	// Metrics server has been shut down
	require.NotNil(t, server.Addr())
	_, err := http.Get("http://" + server.Addr().String() + "/metrics")
	assert.Error(t, err)
}

func TestImport_01(t *testing.T) {
	var (
		out  bytes.Buffer
		path = writeLibrary(t)
		db   = filepath.Join(t.TempDir(), "design.db")
	)
	//
	code := importMain(context.Background(), config.Default(), importOptions{dbPath: db}, &out, path)
	//
	assert.Equal(t, 0, code)
	assert.FileExists(t, db)
}

func TestImport_02(t *testing.T) {
	var out bytes.Buffer
	//
	code := importMain(context.Background(), config.Default(), importOptions{}, &out,
		filepath.Join(t.TempDir(), "none.jelib"))
	//
	assert.Equal(t, 2, code)
}

// ============================================================================
// Framework
// ============================================================================

// testLibrary constructs a library with a cell "top" holding two instances of
// a cell "sub".
func testLibrary(t *testing.T) *design.Library {
	db := design.NewMemory()
	lib, err := db.NewLibrary("lib", "lib.jelib")
	require.NoError(t, err)
	//
	sub, err := lib.NewCell(id.CellName{Name: "sub", View: "sch"})
	require.NoError(t, err)
	pin, err := sub.NewNode(db.Generic().UniversalPin, "", design.Point{}, 0, 0, design.Orientation{})
	require.NoError(t, err)
	_, err = sub.NewExport("a", pin.Ports()[0])
	require.NoError(t, err)
	//
	top, err := lib.NewCell(id.CellName{Name: "top", View: "sch"})
	require.NoError(t, err)
	//
	for _, x := range []float64{0, 10} {
		_, err = top.NewNode(sub, "", design.Point{X: x}, 0, 0, design.Orientation{})
		require.NoError(t, err)
	}
	//
	return lib
}

// writeLibrary writes a library referencing a library which cannot be found.
func writeLibrary(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "top.jelib")
	text := strings.Join([]string{
		"Htop|9.07",
		"Lmissing|missing.jelib",
		"Tschematic",
		"Ctop;1{sch}||schematic|0|0|",
		"Imissing:gone{sch}|gone@0||0|0|||",
		"X",
		"",
	}, "\n")
	//
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	//
	return path
}
