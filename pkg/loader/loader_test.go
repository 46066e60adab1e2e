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
package loader

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/consensys/go-jelib/pkg/config"
	"github.com/consensys/go-jelib/pkg/design"
	"github.com/consensys/go-jelib/pkg/diag"
	"github.com/consensys/go-jelib/pkg/id"
	"github.com/consensys/go-jelib/pkg/instantiate"
	"github.com/consensys/go-jelib/pkg/tech"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestLoader_00(t *testing.T) {
	cfg := config.Default()
	cfg.SearchPaths = []string{"testdata/vendor/**/*.jelib"}
	//
	db, errs, result := load(t, cfg, "testdata/top.jelib")
	//
	assert.Equal(t, []string{"testdata/top.jelib", filepath.Join("testdata", "leaf.jelib"),
		filepath.Join("testdata", "vendor", "v1", "vend.jelib")}, result.Files)
	assert.Equal(t, []string{"top", "leaf", "vend", "missing"}, libraryNames(result.Libraries))
	// Only the missing library is an error
	assert.Equal(t, 1, errs.Count(diag.Error))
	assert.True(t, errs.Contains("Cannot find library file missing.jelib"))
	assert.True(t, db.FindLibrary("missing").IsDummy())
	//
	top := db.FindLibrary("top").FindCell(id.CellName{Name: "top", Version: 1, View: "sch"})
	require.NotNil(t, top)
	require.Len(t, top.Nodes(), 3)
	assert.False(t, top.FindNode("inv@0").Proto().(*design.Cell).IsDummy())
	assert.False(t, top.FindNode("thing@0").Proto().(*design.Cell).IsDummy())
	assert.True(t, top.FindNode("gone@0").Proto().(*design.Cell).IsDummy())
}

func TestLoader_01(t *testing.T) {
	_, errs, result := load(t, config.Default(), "testdata/top.jelib")
	//
	assert.Len(t, result.Records, 2)
	assert.Equal(t, 2, errs.Count(diag.Error))
	assert.True(t, errs.Contains("Cannot find library file vend.jelib"))
}

func TestLoader_02(t *testing.T) {
	db, errs, result := load(t, config.Default(), "testdata/chip.sp")
	//
	assert.Equal(t, "chip", result.Records[0].Library.Name())
	assert.Len(t, result.Records, 3)
	assert.Equal(t, 2, errs.Count(diag.Error))
	//
	inv := db.FindLibrary("leaf").FindCell(id.CellName{Name: "inv", View: "sch"})
	chip := db.FindLibrary("chip").FindCell(id.CellName{Name: "chip", View: "sch"})
	require.NotNil(t, inv)
	require.NotNil(t, chip)
	assert.Same(t, inv, chip.FindNode("X1").Proto())
	assert.NotNil(t, chip.FindExport("in"))
	assert.NotNil(t, chip.FindExport("out"))
}

func TestLoader_03(t *testing.T) {
	l, err := New(config.Default(), design.NewMemory(), diag.Discard)
	require.NoError(t, err)
	//
	_, err = l.Load(context.Background(), "testdata/nothing.jelib")
	assert.Error(t, err)
	//
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Load(ctx, "testdata/top.jelib")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoader_04(t *testing.T) {
	cfg := config.Default()
	cfg.SearchPaths = []string{"testdata/[bad"}
	//
	_, err := New(cfg, design.NewMemory(), diag.Discard)
	assert.ErrorContains(t, err, "invalid search path")
}

func TestLoader_05(t *testing.T) {
	var dummies []string
	//
	db := newDatabase(t)
	l, err := New(config.Default(), db, diag.Discard)
	require.NoError(t, err)
	//
	l.SetOptions(instantiate.Options{OnDummyCell: func(c *design.Cell) { dummies = append(dummies, c.Describe()) }})
	//
	_, err = l.Load(context.Background(), "testdata/top.jelib")
	require.NoError(t, err)
	assert.Len(t, dummies, 2)
	//
	leaf := l.Identifiers().FindLibrary("leaf")
	require.NotNil(t, leaf)
	assert.Equal(t, Done, l.State(leaf))
	assert.Equal(t, Done, l.State(l.Identifiers().FindLibrary("missing")))
}

func TestLoader_06(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
	//
	load(t, config.Default(), "testdata/top.jelib")
	//
	names := make(map[string]int)
	//
	for _, span := range recorder.Ended() {
		names[span.Name()]++
	}
	//
	assert.Equal(t, map[string]int{"loader.Load": 1, "loader.read": 2, "loader.instantiate": 1}, names)
}

func TestLocate_00(t *testing.T) {
	l, err := New(config.Default(), design.NewMemory(), diag.Discard)
	require.NoError(t, err)
	//
	path, ok := l.locate("leaf", "", "testdata/top.jelib")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join("testdata", "leaf.jelib"), path)
	//
	path, ok = l.locate("leaf", "file:testdata/leaf.jelib", "")
	assert.True(t, ok)
	assert.Equal(t, "testdata/leaf.jelib", path)
	//
	_, ok = l.locate("vend", "vend.jelib", "testdata/top.jelib")
	assert.False(t, ok)
}

func TestLocate_01(t *testing.T) {
	cfg := config.Default()
	cfg.SearchPaths = []string{"testdata/vendor/v1", "**/*.jelib"}
	l, err := New(cfg, design.NewMemory(), diag.Discard)
	require.NoError(t, err)
	//
	path, ok := l.locate("vend", "", "")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join("testdata", "vendor", "v1", "vend.jelib"), path)
	// Found by walking from the current directory
	path, ok = l.locate("leaf", "", "")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join("testdata", "leaf.jelib"), path)
	//
	assert.Equal(t, "a/b/", staticPrefix("a/b/c*/*.jelib"))
	assert.Equal(t, ".", staticPrefix("*.jelib"))
}

// ===================================================================
// Framework
// ===================================================================

func newDatabase(t *testing.T) *design.Memory {
	t.Helper()
	//
	techs, err := tech.Builtin()
	require.NoError(t, err)
	//
	return design.NewMemory(techs...)
}

func load(t *testing.T, cfg *config.Config, paths ...string) (*design.Memory, *diag.Collector, *Result) {
	t.Helper()
	//
	var (
		db   = newDatabase(t)
		errs = diag.NewCollector()
	)
	//
	l, err := New(cfg, db, errs)
	require.NoError(t, err)
	//
	result, err := l.Load(context.Background(), paths...)
	require.NoError(t, err)
	//
	return db, errs, result
}

func libraryNames(libs []*design.Library) []string {
	names := make([]string, len(libs))
	for i, l := range libs {
		names[i] = l.Name()
	}
	//
	return names
}
