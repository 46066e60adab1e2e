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
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/consensys/go-jelib/pkg/config"
	"github.com/consensys/go-jelib/pkg/design"
	"github.com/consensys/go-jelib/pkg/diag"
	"github.com/consensys/go-jelib/pkg/loader"
	"github.com/consensys/go-jelib/pkg/observability"
	"github.com/consensys/go-jelib/pkg/tech"
	"github.com/consensys/go-jelib/pkg/util"
	"github.com/consensys/go-jelib/pkg/util/termio"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetStringArray gets an expected string array flag, or exits if an error
// arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// getConfig reads the configuration named by --config (if any), and applies
// any overriding flags.
func getConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Default()
	//
	if path := GetString(cmd, "config"); path != "" {
		var err error
		//
		if cfg, err = config.Load(path); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	if cmd.Flags().Changed("strict") {
		cfg.Strict = GetFlag(cmd, "strict")
	}
	//
	if cmd.Flags().Changed("dummy-primitives") {
		cfg.DummyPrimitives = GetFlag(cmd, "dummy-primitives")
	}
	//
	cfg.Technologies = append(cfg.Technologies, GetStringArray(cmd, "tech")...)
	cfg.SearchPaths = append(cfg.SearchPaths, GetStringArray(cmd, "search")...)
	//
	if err := config.Validate(cfg); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return cfg
}

// useColour determines whether diagnostics should be coloured.
func useColour(cmd *cobra.Command) bool {
	return !GetFlag(cmd, "no-colour") && termio.IsTerminal(os.Stdout)
}

// importOutcome is everything produced by one import.
type importOutcome struct {
	db          *design.Memory
	diagnostics *diag.Collector
	result      *loader.Result
}

// runImport loads a set of files into a fresh database, using the
// technologies of the configuration.  Diagnostics are collected, and also
// passed on to the given reporter (if any).
func runImport(ctx context.Context, cfg *config.Config, reporter diag.Reporter,
	files ...string) (*importOutcome, error) {
	stats := util.NewPerfStats()
	//
	techs, err := tech.LoadAll(cfg.Technologies...)
	if err != nil {
		return nil, err
	}
	//
	var (
		db        = design.NewMemory()
		collector = diag.NewCollector()
		sink      = diag.Reporter(collector)
	)
	//
	if err := tech.Register(db, techs...); err != nil {
		return nil, err
	}
	//
	if reporter != nil {
		sink = diag.Tee{collector, reporter}
	}
	//
	l, err := loader.New(cfg, db, observability.CountDiagnostics(sink))
	if err != nil {
		return nil, err
	}
	//
	result, err := l.Load(ctx, files...)
	if err != nil {
		return nil, err
	}
	//
	stats.Log("Importing")
	//
	return &importOutcome{db, collector, result}, nil
}

// mustImport runs an import, exiting if it fails outright.
func mustImport(cmd *cobra.Command, cfg *config.Config, files ...string) *importOutcome {
	outcome, err := runImport(cmd.Context(), cfg, nil, files...)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return outcome
}

var (
	errorEscape   = termio.BoldAnsiEscape().FgColour(termio.TERM_RED)
	warningEscape = termio.NewAnsiEscape().FgColour(termio.TERM_YELLOW)
)

// printDiagnostics prints every diagnostic, colouring the severity if
// requested.
func printDiagnostics(out io.Writer, diagnostics []diag.Diagnostic, colour bool) {
	for _, d := range diagnostics {
		severity := d.Severity.String()
		//
		if colour && d.Severity == diag.Error {
			severity = errorEscape.Wrap(severity)
		} else if colour {
			severity = warningEscape.Wrap(severity)
		}
		//
		if loc := d.Location.String(); loc != "" {
			fmt.Fprintf(out, "%s: %s: %s\n", loc, severity, d.Message)
		} else {
			fmt.Fprintf(out, "%s: %s\n", severity, d.Message)
		}
	}
}

// printSummary prints one row per library created by an import.
func printSummary(out io.Writer, libs []*design.Library, colour bool) {
	table := termio.NewTablePrinter(6, uint(len(libs)+1))
	table.SetRow(0, "library", "cells", "nodes", "arcs", "exports", "dummy")
	table.AnsiEscapes(colour)
	//
	for i, lib := range libs {
		var nodes, arcs, exports int
		//
		for _, c := range lib.Cells() {
			nodes += len(c.Nodes())
			arcs += len(c.Arcs())
			exports += len(c.Exports())
		}
		//
		row := uint(i + 1)
		dummy := "no"
		//
		if lib.IsDummy() {
			dummy = "yes"
			table.SetEscape(5, row, warningEscape)
		}
		//
		table.SetRow(row, lib.Name(), fmt.Sprint(len(lib.Cells())), fmt.Sprint(nodes), fmt.Sprint(arcs),
			fmt.Sprint(exports), dummy)
	}
	//
	table.Print(out)
}

// sortedCells returns the cells of a library ordered by name.
func sortedCells(lib *design.Library) []*design.Cell {
	cells := append([]*design.Cell(nil), lib.Cells()...)
	//
	sort.SliceStable(cells, func(i, j int) bool {
		return cells[i].Name().String() < cells[j].Name().String()
	})
	//
	return cells
}
