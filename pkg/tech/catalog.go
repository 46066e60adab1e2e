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
package tech

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/consensys/go-jelib/pkg/design"
)

//go:embed mocmos.toml
var builtin string

// Catalog is the file format for technology catalogs.
type Catalog struct {
	Technologies []Technology `toml:"technology"`
}

// Technology describes one technology of a catalog.
type Technology struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Nodes       []Node `toml:"node"`
	Arcs        []Arc  `toml:"arc"`
}

// Node describes a primitive node, whose port edges are given as pairs of a
// size multiplier and a fixed offset from the node centre.
type Node struct {
	Name     string  `toml:"name"`
	Function string  `toml:"function"`
	Width    float64 `toml:"width"`
	Height   float64 `toml:"height"`
	Ports    []Port  `toml:"port"`
}

// Port describes a port of a primitive node.
type Port struct {
	Name   string    `toml:"name"`
	Left   []float64 `toml:"left"`
	Right  []float64 `toml:"right"`
	Bottom []float64 `toml:"bottom"`
	Top    []float64 `toml:"top"`
}

// Arc describes an arc prototype.
type Arc struct {
	Name  string  `toml:"name"`
	Width float64 `toml:"width"`
}

// Load reads a technology catalog from a TOML file.
func Load(path string) ([]*design.Technology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read technology file: %w", err)
	}
	//
	techs, err := Decode(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	//
	return techs, nil
}

// LoadAll reads a number of catalogs, returning the built-in catalog when no
// paths are given.
func LoadAll(paths ...string) ([]*design.Technology, error) {
	if len(paths) == 0 {
		return Builtin()
	}
	//
	var techs []*design.Technology
	//
	for _, path := range paths {
		ts, err := Load(path)
		if err != nil {
			return nil, err
		}
		//
		techs = append(techs, ts...)
	}
	//
	return techs, nil
}

// Builtin returns the technologies of the embedded sample catalog.
func Builtin() ([]*design.Technology, error) {
	return Decode(builtin)
}

// Decode reads a technology catalog from TOML text.
func Decode(text string) ([]*design.Technology, error) {
	var catalog Catalog
	//
	if _, err := toml.Decode(text, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse technology catalog: %w", err)
	}
	//
	techs := make([]*design.Technology, 0, len(catalog.Technologies))
	//
	for _, t := range catalog.Technologies {
		tech, err := t.build()
		if err != nil {
			return nil, err
		}
		//
		techs = append(techs, tech)
	}
	//
	return techs, nil
}

// Register adds technologies to a database, failing on the first whose name is
// already taken.
func Register(db design.Database, techs ...*design.Technology) error {
	var errs []error
	//
	for _, t := range techs {
		if err := db.AddTechnology(t); err != nil {
			errs = append(errs, err)
		}
	}
	//
	return errors.Join(errs...)
}

func (p *Technology) build() (*design.Technology, error) {
	if p.Name == "" {
		return nil, errors.New("technology has no name")
	}
	//
	tech := design.NewTechnology(p.Name)
	tech.Description = p.Description
	//
	for _, n := range p.Nodes {
		if n.Width < 0 || n.Height < 0 {
			return nil, fmt.Errorf("primitive node %s:%s has negative size", p.Name, n.Name)
		}
		//
		node, err := tech.AddNode(n.Name, n.Width, n.Height)
		if err != nil {
			return nil, err
		}
		//
		node.Function = n.Function
		//
		for _, port := range n.Ports {
			if err := addPort(node, port); err != nil {
				return nil, err
			}
		}
	}
	//
	for _, a := range p.Arcs {
		if _, err := tech.AddArc(a.Name, a.Width); err != nil {
			return nil, err
		}
	}
	//
	return tech, nil
}

func addPort(node *design.PrimitiveNode, port Port) error {
	var edges [4]design.Edge
	//
	for i, pair := range [][]float64{port.Left, port.Right, port.Bottom, port.Top} {
		switch len(pair) {
		case 0:
			// centre
		case 2:
			edges[i] = design.Edge{Multiplier: pair[0], Adder: pair[1]}
		default:
			return fmt.Errorf("port %s on %s has malformed edge (expected [multiplier, adder])", port.Name,
				node.Describe())
		}
	}
	//
	_, err := node.AddPort(port.Name, edges[0], edges[1], edges[2], edges[3])
	//
	return err
}
