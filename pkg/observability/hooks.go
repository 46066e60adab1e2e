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
package observability

import (
	"github.com/consensys/go-jelib/pkg/design"
	"github.com/consensys/go-jelib/pkg/diag"
	"github.com/consensys/go-jelib/pkg/instantiate"
	"github.com/consensys/go-jelib/pkg/jelib"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// TracerName names the tracer under which spans of an import are recorded.
const TracerName = "github.com/consensys/go-jelib"

// Tracer records spans of the load and instantiate phases.
var Tracer = otel.Tracer(TracerName)

// AttrLibrary is the span attribute holding a library name.
var AttrLibrary = attribute.Key("jelib.library")

// AttrFile is the span attribute holding a file name.
var AttrFile = attribute.Key("jelib.file")

// CountingReporter counts diagnostics before passing them on.
type CountingReporter struct {
	next diag.Reporter
}

// CountDiagnostics wraps a reporter such that every diagnostic is counted.
func CountDiagnostics(next diag.Reporter) *CountingReporter {
	return &CountingReporter{next}
}

// Report implements diag.Reporter.
func (p *CountingReporter) Report(d diag.Diagnostic) {
	DiagnosticsTotal.WithLabelValues(d.Severity.String()).Inc()
	p.next.Report(d)
}

// CountRecord counts a line of a library file by its kind, and is suitable for
// use with jelib.OnRecord.
func CountRecord(kind jelib.RecordKind) {
	LinesTotal.Inc()
	//
	if !kind.Ignorable() {
		RecordsTotal.WithLabelValues(kind.String()).Inc()
	}
}

// Instrument extends the hooks of an engine such that dummy cells and
// synthetic pins are counted.
func Instrument(opts instantiate.Options) instantiate.Options {
	onDummy, onPin := opts.OnDummyCell, opts.OnSyntheticPin
	//
	opts.OnDummyCell = func(cell *design.Cell) {
		DummyCellsTotal.Inc()
		//
		if onDummy != nil {
			onDummy(cell)
		}
	}
	//
	opts.OnSyntheticPin = func(node *design.NodeInst) {
		SyntheticPinsTotal.Inc()
		//
		if onPin != nil {
			onPin(node)
		}
	}
	//
	return opts
}
