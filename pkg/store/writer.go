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
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/consensys/go-jelib/pkg/design"
)

// writer writes the rows of one session within a transaction.  Rows of each
// table are numbered from zero within the session.
type writer struct {
	ctx     context.Context
	tx      *sql.Tx
	session string
	cells   int
	nodes   int
	arcs    int
	exports int
}

func (p *writer) exec(query string, args ...any) error {
	_, err := p.tx.ExecContext(p.ctx, query, append([]any{p.session}, args...)...)
	//
	return err
}

func (p *writer) design(libs []*design.Library) error {
	var ncells int
	//
	for _, l := range libs {
		ncells += len(l.Cells())
	}
	//
	if err := p.exec(`INSERT INTO sessions (id, started_utc, library_count, cell_count) VALUES (?, ?, ?, ?)`,
		time.Now().UTC().Format(timeLayout), len(libs), ncells); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	//
	for i, l := range libs {
		if err := p.library(i, l); err != nil {
			return err
		}
	}
	//
	return nil
}

func (p *writer) library(index int, lib *design.Library) error {
	if err := p.exec(`INSERT INTO libraries (session, id, name, path, version, dummy) VALUES (?, ?, ?, ?, ?, ?)`,
		index, lib.Name(), lib.Path, lib.Version, lib.IsDummy()); err != nil {
		return fmt.Errorf("insert library %s: %w", lib.Name(), err)
	} else if err := p.variables("library", index, &lib.Variables); err != nil {
		return err
	}
	//
	for _, c := range lib.Cells() {
		if err := p.cell(index, c); err != nil {
			return err
		}
	}
	//
	return nil
}

func (p *writer) cell(lib int, cell *design.Cell) error {
	var (
		index = p.cells
		group string
		tech  string
	)
	//
	p.cells++
	//
	if cell.Group() != nil {
		group = cell.Group().Name()
	}
	//
	if cell.Tech != nil {
		tech = cell.Tech.Name()
	}
	//
	if err := p.exec(`INSERT INTO cells (session, id, library, name, cell_group, tech, dummy, created_utc, revised_utc)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, index, lib, cell.Name().String(), group, tech, cell.IsDummy(),
		timestamp(cell.Created), timestamp(cell.Revised)); err != nil {
		return fmt.Errorf("insert cell %s: %w", cell.Describe(), err)
	} else if err := p.variables("cell", index, &cell.Variables); err != nil {
		return err
	}
	//
	for _, n := range cell.Nodes() {
		if err := p.node(index, n); err != nil {
			return err
		}
	}
	//
	for _, a := range cell.Arcs() {
		if err := p.arc(index, a); err != nil {
			return err
		}
	}
	//
	for _, e := range cell.Exports() {
		if err := p.export(index, e); err != nil {
			return err
		}
	}
	//
	return nil
}

func (p *writer) node(cell int, node *design.NodeInst) error {
	index := p.nodes
	p.nodes++
	//
	if err := p.exec(`INSERT INTO nodes (session, id, cell, name, proto, x, y, width, height, angle, mirror_x, mirror_y)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, index, cell, node.Name(), node.Proto().Describe(), node.Anchor.X,
		node.Anchor.Y, node.Width, node.Height, node.Orient.Angle, node.Orient.MirrorX, node.Orient.MirrorY); err != nil {
		return fmt.Errorf("insert node %s: %w", node.Name(), err)
	}
	//
	return p.variables("node", index, &node.Variables)
}

func (p *writer) arc(cell int, arc *design.ArcInst) error {
	index := p.arcs
	p.arcs++
	//
	head, tail := arc.Head, arc.Tail
	//
	if err := p.exec(`INSERT INTO arcs (session, id, cell, name, proto, width, head_node, head_port, head_x, head_y,
tail_node, tail_port, tail_x, tail_y) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, index, cell, arc.Name(),
		arc.Proto().Describe(), arc.Width, head.Port.Node.Name(), head.Port.Proto.PortName(), head.Location.X,
		head.Location.Y, tail.Port.Node.Name(), tail.Port.Proto.PortName(), tail.Location.X,
		tail.Location.Y); err != nil {
		return fmt.Errorf("insert arc %s: %w", arc.Name(), err)
	}
	//
	return p.variables("arc", index, &arc.Variables)
}

func (p *writer) export(cell int, export *design.Export) error {
	index := p.exports
	p.exports++
	//
	if err := p.exec(`INSERT INTO exports (session, id, cell, name, node, port, characteristic)
VALUES (?, ?, ?, ?, ?, ?, ?)`, index, cell, export.Name(), export.Port.Node.Name(), export.Port.Proto.PortName(),
		export.Characteristic.String()); err != nil {
		return fmt.Errorf("insert export %s: %w", export.Name(), err)
	}
	//
	return p.variables("export", index, &export.Variables)
}

func (p *writer) variables(kind string, owner int, vars *design.Variables) error {
	for _, v := range vars.Vars() {
		if err := p.exec(`INSERT INTO variables (session, owner_kind, owner, key, value) VALUES (?, ?, ?, ?, ?)`,
			kind, owner, v.Key, valueText(v.Value)); err != nil {
			return fmt.Errorf("insert variable %s: %w", v.Key, err)
		}
	}
	//
	return nil
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	//
	return t.UTC().Format(time.RFC3339)
}

// valueText renders the value of a variable, naming any design entity it
// refers to.
func valueText(value any) string {
	switch v := value.(type) {
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = valueText(item)
		}
		//
		return "[" + strings.Join(items, ",") + "]"
	case *design.Cell:
		return v.Describe()
	case *design.Library:
		return v.Name()
	case *design.Technology:
		return v.Name()
	case *design.PrimitiveNode:
		return v.Describe()
	case *design.ArcProto:
		return v.Describe()
	case *design.Export:
		return v.Parent().Describe() + ":" + v.Name()
	default:
		return fmt.Sprint(v)
	}
}
