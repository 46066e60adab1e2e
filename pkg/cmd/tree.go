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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/consensys/go-jelib/pkg/design"
	"github.com/spf13/cobra"
)

// treeCmd represents the tree command
var treeCmd = &cobra.Command{
	Use:   "tree [flags] file1.jelib ...",
	Short: "print the cell hierarchy of imported libraries.",
	Long: `Import one or more libraries and print, for each library, the hierarchy of
	cell instances beginning from those cells not instantiated by any other cell
	in the same library.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := getConfig(cmd)
		outcome := mustImport(cmd, cfg, args...)
		//
		for _, lib := range outcome.result.Libraries {
			printTree(os.Stdout, lib)
		}
		//
		printDiagnostics(os.Stdout, outcome.diagnostics.Diagnostics(), useColour(cmd))
	},
}

// printTree prints the instance hierarchy of a library.
func printTree(out io.Writer, lib *design.Library) {
	fmt.Fprintf(out, "%s\n", lib.Name())
	//
	used := make(map[*design.Cell]bool)
	//
	for _, c := range lib.Cells() {
		for _, sub := range subcells(c) {
			if sub != c {
				used[sub] = true
			}
		}
	}
	//
	for _, c := range sortedCells(lib) {
		if !used[c] {
			printCell(out, c, 1, make(map[*design.Cell]bool))
		}
	}
}

func printCell(out io.Writer, cell *design.Cell, depth int, visiting map[*design.Cell]bool) {
	indent := strings.Repeat("  ", depth)
	//
	if visiting[cell] {
		fmt.Fprintf(out, "%s%s (recursive)\n", indent, cell.Describe())
		return
	}
	//
	if cell.IsDummy() {
		fmt.Fprintf(out, "%s%s (dummy)\n", indent, cell.Describe())
	} else {
		fmt.Fprintf(out, "%s%s\n", indent, cell.Describe())
	}
	//
	visiting[cell] = true
	//
	for _, sub := range subcells(cell) {
		printCell(out, sub, depth+1, visiting)
	}
	//
	delete(visiting, cell)
}

// subcells returns the distinct cells instantiated within a cell, in order of
// first instance.
func subcells(cell *design.Cell) []*design.Cell {
	var (
		cells []*design.Cell
		seen  = make(map[*design.Cell]bool)
	)
	//
	for _, n := range cell.Nodes() {
		if sub, ok := n.Proto().(*design.Cell); ok && !seen[sub] {
			seen[sub] = true
			cells = append(cells, sub)
		}
	}
	//
	return cells
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
