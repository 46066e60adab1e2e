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
package diag

import (
	"sync"

	"github.com/consensys/go-jelib/pkg/util"
	log "github.com/sirupsen/logrus"
)

// LogReporter forwards diagnostics to logrus.  Badly damaged files can produce
// one diagnostic per line, so reporting is rate limited.  Diagnostics beyond
// the limit are counted rather than logged, and the counts are summarised by
// Flush.
type LogReporter struct {
	mutex      sync.Mutex
	logger     *log.Logger
	limiter    *util.Limiter
	suppressed [2]uint
}

// NewLogReporter constructs a reporter which logs through the given logger,
// permitting a burst of diagnostics followed by rate per second.  A
// non-positive rate disables limiting.  If logger is nil, the standard logrus
// logger is used.
func NewLogReporter(logger *log.Logger, rate float64, burst int) *LogReporter {
	if logger == nil {
		logger = log.StandardLogger()
	}
	//
	return &LogReporter{logger: logger, limiter: util.NewLimiter(rate, burst)}
}

// Report implements Reporter.
func (p *LogReporter) Report(d Diagnostic) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	if !p.limiter.Allow() {
		p.suppressed[d.Severity]++
		return
	}
	//
	entry := p.logger.WithFields(fields(d.Location))
	//
	if d.Severity == Error {
		entry.Error(d.Message)
	} else {
		entry.Warn(d.Message)
	}
}

// Flush logs a summary of any suppressed diagnostics and resets the counts.
func (p *LogReporter) Flush() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	if n := p.suppressed[Error]; n > 0 {
		p.logger.Errorf("%d further errors suppressed", n)
	}
	//
	if n := p.suppressed[Warning]; n > 0 {
		p.logger.Warnf("%d further warnings suppressed", n)
	}
	//
	p.suppressed = [2]uint{}
}

func fields(loc Location) log.Fields {
	f := log.Fields{}
	//
	if loc.File != "" {
		f["file"] = loc.File
	}
	//
	if loc.Line > 0 {
		f["line"] = loc.Line
	}
	//
	if loc.Library != "" {
		f["library"] = loc.Library
	}
	//
	if loc.Cell != "" {
		f["cell"] = loc.Cell
	}
	//
	return f
}
