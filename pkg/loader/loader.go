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
	"fmt"
	"time"

	"github.com/consensys/go-jelib/pkg/config"
	"github.com/consensys/go-jelib/pkg/design"
	"github.com/consensys/go-jelib/pkg/diag"
	"github.com/consensys/go-jelib/pkg/id"
	"github.com/consensys/go-jelib/pkg/instantiate"
	"github.com/consensys/go-jelib/pkg/jelib"
	"github.com/consensys/go-jelib/pkg/observability"
	"github.com/consensys/go-jelib/pkg/spice"
	"github.com/consensys/go-jelib/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// VisitState records how far a library has progressed through the loader.
type VisitState uint8

const (
	// NotStarted indicates a library which has been referenced but not read.
	NotStarted VisitState = iota
	// InProgress indicates a library whose file is being read.
	InProgress
	// Done indicates a library which has been read, or whose file could not
	// be found.
	Done
)

// Loader reads a set of library files together with every library they
// reference, and then instantiates them all into a design database.
type Loader struct {
	cfg      *config.Config
	db       design.Database
	reporter diag.Reporter
	ids      *id.Manager
	builder  *jelib.Builder
	netlists *spice.Reader
	opts     instantiate.Options
	search   []searchEntry
	states   map[*id.LibId]VisitState
}

// Result summarises a load.
type Result struct {
	// Records of every library read, in the order read
	Records []*jelib.LibraryRecord
	// Files read, in the order read
	Files []string
	// Libraries created in the database, including dummy libraries
	Libraries []*design.Library
}

// New constructs a loader for a given database.  This fails only if the
// configured search path is malformed.
func New(cfg *config.Config, db design.Database, reporter diag.Reporter) (*Loader, error) {
	search, err := compileSearchPath(cfg.SearchPaths)
	if err != nil {
		return nil, fmt.Errorf("invalid search path: %w", err)
	}
	//
	ids := id.NewManager()
	builder := jelib.NewBuilder(ids, reporter, jelib.Strict(cfg.Strict), jelib.OnRecord(observability.CountRecord))
	//
	return &Loader{
		cfg:      cfg,
		db:       db,
		reporter: reporter,
		ids:      ids,
		builder:  builder,
		netlists: spice.NewReader(ids, reporter),
		opts:     observability.Instrument(instantiate.Options{DummyPrimitives: cfg.DummyPrimitives}),
		search:   search,
		states:   make(map[*id.LibId]VisitState),
	}, nil
}

// SetOptions replaces the options of the instantiation engine, retaining the
// configured handling of unknown primitives.
func (p *Loader) SetOptions(opts instantiate.Options) {
	opts.DummyPrimitives = p.cfg.DummyPrimitives
	p.opts = observability.Instrument(opts)
}

// Identifiers returns the manager in which names are interned.
func (p *Loader) Identifiers() *id.Manager {
	return p.ids
}

// State returns the visit state of a library.
func (p *Loader) State(lib *id.LibId) VisitState {
	return p.states[lib]
}

// pending is a library waiting to be read.
type pending struct {
	ext  *jelib.ExternalLibrary
	from string
}

// Load reads the given files, followed by the libraries they reference, and
// instantiates the lot.  An error is returned only when one of the given files
// cannot be read, or the context is cancelled.
func (p *Loader) Load(ctx context.Context, paths ...string) (*Result, error) {
	ctx, span := observability.Tracer.Start(ctx, "loader.Load",
		trace.WithAttributes(observability.AttrFile.StringSlice(paths)))
	defer span.End()
	//
	var (
		result   Result
		worklist []pending
		before   = len(p.db.Libraries())
	)
	//
	enqueue := func(rec *jelib.LibraryRecord) {
		result.Records = append(result.Records, rec)
		result.Files = append(result.Files, rec.File)
		p.states[rec.Library] = Done
		//
		for _, ext := range rec.Externals {
			if p.states[ext.Library] == NotStarted {
				worklist = append(worklist, pending{ext, rec.File})
			}
		}
	}
	// Top-level files
	for _, path := range paths {
		file, err := source.ReadFile(path)
		if err != nil {
			return nil, err
		}
		//
		rec, err := p.read(ctx, nil, file)
		if err != nil {
			return nil, err
		}
		//
		enqueue(rec)
	}
	// Referenced libraries
	for len(worklist) > 0 {
		next := worklist[0]
		worklist = worklist[1:]
		lib := next.ext.Library
		//
		if p.states[lib] != NotStarted {
			continue
		}
		//
		p.states[lib] = InProgress
		//
		rec, err := p.readReference(ctx, next)
		if err != nil {
			return nil, err
		} else if rec == nil {
			p.states[lib] = Done
			continue
		}
		//
		enqueue(rec)
	}
	//
	if err := p.instantiate(ctx, result.Records); err != nil {
		return nil, err
	}
	//
	result.Libraries = p.db.Libraries()[before:]
	//
	return &result, nil
}

// readReference reads the file of a referenced library, returning nil if it
// could not be found or read.
func (p *Loader) readReference(ctx context.Context, next pending) (*jelib.LibraryRecord, error) {
	var (
		lib = next.ext.Library
		loc = diag.Location{File: next.from, Line: next.ext.Line}
	)
	//
	if p.db.FindLibrary(lib.Name()) != nil {
		log.Debugf("library %s already loaded", lib.Name())
		return nil, nil
	}
	//
	path, ok := p.locate(lib.Name(), next.ext.Path, next.from)
	if !ok {
		diag.Errorf(p.reporter, loc, "Cannot find library file %s", next.ext.Path)
		return nil, nil
	}
	//
	file, err := source.ReadFile(path)
	if err != nil {
		diag.Errorf(p.reporter, loc, "Cannot read library file %s: %v", path, err)
		return nil, nil
	}
	//
	log.Debugf("reading library %s from %s", lib.Name(), path)
	//
	return p.read(ctx, lib, file)
}

// read parses a single file, as a netlist or a library file according to its
// extension.
func (p *Loader) read(ctx context.Context, lib *id.LibId, file *source.File) (*jelib.LibraryRecord, error) {
	_, span := observability.Tracer.Start(ctx, "loader.read",
		trace.WithAttributes(observability.AttrFile.String(file.Filename())))
	defer span.End()
	//
	var (
		rec   *jelib.LibraryRecord
		err   error
		start = time.Now()
	)
	//
	if spice.IsNetlist(file.Filename()) {
		rec, err = p.netlists.ReadLibrary(ctx, lib, file)
	} else {
		rec, err = p.builder.ParseLibrary(ctx, lib, file)
	}
	//
	observability.ParseSeconds.Observe(time.Since(start).Seconds())
	//
	if err == nil {
		span.SetAttributes(observability.AttrLibrary.String(rec.Library.Name()))
	}
	//
	return rec, err
}

func (p *Loader) instantiate(ctx context.Context, records []*jelib.LibraryRecord) error {
	ctx, span := observability.Tracer.Start(ctx, "loader.instantiate")
	defer span.End()
	//
	start := time.Now()
	engine := instantiate.New(p.db, p.reporter, p.opts)
	//
	for _, rec := range records {
		span.AddEvent("library", trace.WithAttributes(observability.AttrLibrary.String(rec.Library.Name())))
		engine.Add(rec)
	}
	//
	err := engine.Run(ctx)
	observability.InstantiateSeconds.Observe(time.Since(start).Seconds())
	//
	return err
}
