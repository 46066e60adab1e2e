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

	"github.com/consensys/go-jelib/pkg/design"
	"github.com/spf13/cobra"
)

// groupsCmd represents the groups command
var groupsCmd = &cobra.Command{
	Use:   "groups [flags] file1.jelib ...",
	Short: "print the cell groups of imported libraries.",
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
			printGroups(os.Stdout, lib)
		}
	},
}

func printGroups(out io.Writer, lib *design.Library) {
	fmt.Fprintf(out, "%s\n", lib.Name())
	//
	for _, g := range lib.Groups() {
		fmt.Fprintf(out, "  %s:", g.Name())
		//
		for _, c := range g.Cells() {
			fmt.Fprintf(out, " %s", c.Name().String())
		}
		//
		fmt.Fprintln(out)
	}
}

func init() {
	rootCmd.AddCommand(groupsCmd)
}
