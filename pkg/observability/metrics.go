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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	LinesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jelib_lines_total",
		Help: "Total number of library file lines read.",
	})

	RecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jelib_records_total",
		Help: "Total number of library records read, by kind.",
	}, []string{"kind"})

	DiagnosticsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jelib_diagnostics_total",
		Help: "Total number of diagnostics reported, by severity.",
	}, []string{"severity"})

	ParseSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "jelib_parse_seconds",
		Help:    "Time spent reading a library file.",
		Buckets: prometheus.DefBuckets,
	})

	InstantiateSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "jelib_instantiate_seconds",
		Help:    "Time spent instantiating a set of libraries.",
		Buckets: prometheus.DefBuckets,
	})

	DummyCellsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jelib_dummy_cells_total",
		Help: "Total number of dummy cells fabricated for missing cells.",
	})

	SyntheticPinsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jelib_synthetic_pins_total",
		Help: "Total number of pins fabricated where arc ends did not meet their ports.",
	})
)
