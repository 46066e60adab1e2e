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
	"time"

	"github.com/consensys/go-jelib/pkg/config"
	"github.com/consensys/go-jelib/pkg/diag"
	"github.com/consensys/go-jelib/pkg/observability"
	"github.com/consensys/go-jelib/pkg/store"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import [flags] file1.jelib file2.sp ...",
	Short: "import one or more libraries, along with every library they reference.",
	Long: `Import one or more libraries (and every library they reference), reporting
	a summary of the libraries created and any diagnostics arising.  Optionally,
	the imported design can be saved into a SQLite store.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := getConfig(cmd)
		opts := importOptions{
			dbPath:      GetString(cmd, "db"),
			failOnError: GetFlag(cmd, "fail-on-error"),
			colour:      useColour(cmd),
		}
		metricsAddr := GetString(cmd, "metrics-addr")
		//
		if opts.dbPath == "" {
			opts.dbPath = cfg.Store.Path
		}
		//
		if metricsAddr == "" && cfg.Metrics.Enabled {
			metricsAddr = cfg.Metrics.Address
		}
		//
		if metricsAddr != "" {
			opts.metrics = observability.NewServer(metricsAddr)
		}
		//
		if code := importMain(cmd.Context(), cfg, opts, os.Stdout, args...); code != 0 {
			os.Exit(code)
		}
	},
}

// importOptions holds the settings of the import command.
type importOptions struct {
	// Store to save into, or empty
	dbPath string
	// Metrics server to run whilst importing, or nil
	metrics     *observability.Server
	failOnError bool
	colour      bool
}

// importMain runs the import command, returning its exit status.  The metrics
// server (if any) is always shut down before returning.
func importMain(ctx context.Context, cfg *config.Config, opts importOptions, out io.Writer,
	files ...string) int {
	if opts.metrics != nil {
		if err := opts.metrics.Start(); err != nil {
			fmt.Fprintln(out, err)
			return 2
		}
		//
		defer stopServer(opts.metrics)
	}
	//
	outcome, err := runImport(ctx, cfg, nil, files...)
	if err != nil {
		fmt.Fprintln(out, err)
		return 2
	}
	//
	printSummary(out, outcome.result.Libraries, opts.colour)
	printDiagnostics(out, outcome.diagnostics.Diagnostics(), opts.colour)
	//
	if opts.dbPath != "" {
		if err := saveDesign(ctx, opts.dbPath, outcome); err != nil {
			fmt.Fprintln(out, err)
			return 2
		}
	}
	//
	if opts.failOnError && outcome.diagnostics.Count(diag.Error) > 0 {
		return 1
	}
	//
	return 0
}

// saveDesign writes the libraries of an import into a new session of the
// store at the given path.
func saveDesign(ctx context.Context, path string, outcome *importOutcome) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	//
	defer st.Close()
	//
	session := store.NewSession()
	//
	if err := st.SaveDesign(ctx, session, outcome.result.Libraries); err != nil {
		return err
	}
	//
	log.Infof("saved %d libraries to %s (session %s)", len(outcome.result.Libraries), st.Path(), session)
	//
	return nil
}

func stopServer(server *observability.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	//
	if err := server.Stop(ctx); err != nil {
		log.Error(err)
	}
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("db", "", "save the imported design into a SQLite store")
	importCmd.Flags().String("metrics-addr", "", "serve prometheus metrics on this address while importing")
	importCmd.Flags().Bool("fail-on-error", false, "exit with a non-zero status if any errors are reported")
}
