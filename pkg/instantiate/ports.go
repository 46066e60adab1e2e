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
package instantiate

import (
	"github.com/consensys/go-jelib/pkg/design"
)

// findPort determines the port of a node to which an arc end or export
// attaches.  An empty port name selects the first port (in declaration order)
// containing the point, or the first port when none does.  A named port is
// matched by name alone.  When the point is given, but is not within the
// matched port, a primitive keeps the match whereas a cell instance does not.
// Without a match, a pin is fabricated instead: on a dummy cell this becomes a
// new export, whilst elsewhere it is placed at the point in this cell.
func (p *filler) findPort(node *design.NodeInst, name string, pt design.Point, hasPoint bool,
	line int) (design.PortInst, bool) {
	var (
		port  design.PortInst
		found bool
	)
	//
	if !hasPoint {
		pt = node.Anchor
	}
	//
	if name == "" {
		ports := node.Ports()
		//
		for _, pi := range ports {
			if !hasPoint || pi.Contains(pt) {
				port, found = pi, true
				break
			}
		}
		//
		if !found && len(ports) > 0 {
			port, found = ports[0], true
		}
	} else {
		port, found = node.FindPort(name)
	}
	//
	named := found && name != ""
	matched := port
	//
	if found && hasPoint && !port.Contains(pt) {
		centre := port.Region().Centre()
		p.warnf(line, "point (%g,%g) does not fit in port %s which is centered at (%g,%g)", pt.X, pt.Y, port,
			centre.X, centre.Y)
		//
		found = !node.IsCellInstance()
	}
	//
	if found {
		return port, true
	} else if sub, ok := node.Proto().(*design.Cell); ok && sub.IsDummy() {
		return p.dummyPort(node, sub, name, pt, line)
	}
	//
	return p.syntheticPin(node, name, pt, named, matched, line)
}

// dummyPort creates an export on a dummy cell to fit a connection at the given
// point.
func (p *filler) dummyPort(node *design.NodeInst, sub *design.Cell, name string, pt design.Point,
	line int) (design.PortInst, bool) {
	if name == "" {
		name = "X"
	}
	//
	if fresh := uniqueExportName(sub, name); fresh != name {
		p.warnf(line, "Export %s already exists on dummy cell %s, using %s", name, sub.Describe(), fresh)
		name = fresh
	}
	//
	export, err := p.dummyExport(sub, name, node.Untransform(pt))
	if err != nil {
		p.errorf(line, "Unable to create export %s on dummy cell %s (%s)", name, sub.Describe(), err.Error())
		return design.PortInst{}, false
	}
	//
	p.warnf(line, "Creating export %s on dummy cell %s", name, sub.Describe())
	//
	return node.PortFor(export), true
}

// syntheticPin places a universal pin at the given point in this cell.  When
// the node had a port of the given name, an unrouted arc connects the pin to
// it.
func (p *filler) syntheticPin(node *design.NodeInst, name string, pt design.Point, named bool,
	matched design.PortInst, line int) (design.PortInst, bool) {
	var (
		cell    = p.s.cell
		generic = p.db.Generic()
	)
	//
	pin, err := cell.NewNode(generic.UniversalPin, "", pt, 0, 0, design.Orientation{})
	if err != nil {
		p.errorf(line, "Unable to create dummy node in cell %s (%s)", cell.Describe(), err.Error())
		return design.PortInst{}, false
	}
	//
	p.warnf(line, "Arc end and port discrepancy at (%g,%g), port %s on node %s", pt.X, pt.Y, name, node.Name())
	//
	if p.opts.OnSyntheticPin != nil {
		p.opts.OnSyntheticPin(pin)
	}
	//
	port := pin.Ports()[0]
	//
	if named {
		head := design.Connection{Port: port, Location: pt}
		tail := design.Connection{Port: matched, Location: matched.Region().Centre()}
		//
		if _, err := cell.NewArc(generic.Unrouted, "", 0, head, tail); err != nil {
			p.errorf(line, "%s", err.Error())
		}
	}
	//
	return port, true
}
