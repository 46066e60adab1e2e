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
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/consensys/go-jelib/pkg/config"
	"github.com/consensys/go-jelib/pkg/diag"
	"github.com/consensys/go-jelib/pkg/watch"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [flags] file1.jelib ...",
	Short: "repeatedly import libraries whenever their files change.",
	Long: `Import one or more libraries and then watch every file read, re-importing
	whenever any of them changes.  Diagnostics are logged as they arise.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := getConfig(cmd)
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		//
		defer stop()
		//
		files := watchImport(ctx, cfg, args)
		if files == nil {
			os.Exit(2)
		}
		//
		var mutex sync.Mutex
		//
		w, err := watch.NewWatcher(cfg.Watch.DebounceDuration(), cfg.Watch.Exclude, func(paths []string) {
			mutex.Lock()
			defer mutex.Unlock()
			//
			log.Infof("%d file(s) changed, re-importing", len(paths))
			watchImport(ctx, cfg, args)
		})
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		defer w.Close()
		//
		if err := w.Watch(files); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		log.Infof("watching %d file(s)", len(files))
		//
		select {
		case <-ctx.Done():
		case <-w.Done():
		}
	},
}

// watchImport runs one import, logging diagnostics as they arise.  This
// returns the files read, or nil if the import failed outright.
func watchImport(ctx context.Context, cfg *config.Config, args []string) []string {
	reporter := diag.NewLogReporter(nil, cfg.Diagnostics.Rate, cfg.Diagnostics.Burst)
	//
	defer reporter.Flush()
	//
	outcome, err := runImport(ctx, cfg, reporter, args...)
	if err != nil {
		log.Error(err)
		return nil
	}
	//
	log.Infof("imported %d libraries (%d errors, %d warnings)", len(outcome.result.Libraries),
		outcome.diagnostics.Count(diag.Error), outcome.diagnostics.Count(diag.Warning))
	//
	return outcome.result.Files
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
