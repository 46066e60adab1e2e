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
package design

import (
	"fmt"
	"sync"

	"github.com/consensys/go-jelib/pkg/id"
)

// Database is the capability interface through which libraries are created
// and technologies are queried.  Cells and their contents are created through
// the returned libraries and cells.
type Database interface {
	// FindLibrary looks up a library by name, returning nil if there is none.
	FindLibrary(name string) *Library
	// NewLibrary creates an empty library, failing if the name is taken.
	NewLibrary(name string, path string) (*Library, error)
	// Libraries returns all libraries in creation order.
	Libraries() []*Library
	// FindTechnology looks up a technology by name, returning nil if there is
	// none.
	FindTechnology(name string) *Technology
	// AddTechnology registers a technology, failing if the name is taken.
	AddTechnology(tech *Technology) error
	// Technologies returns all registered technologies.
	Technologies() []*Technology
	// Generic returns the generic technology, which is always available.
	Generic() *Generic
}

// Memory is an in-memory Database.
type Memory struct {
	mutex     sync.Mutex
	libraries []*Library
	techs     []*Technology
	generic   *Generic
}

// NewMemory constructs an empty in-memory database holding only the generic
// technology, along with any additional technologies given.
func NewMemory(techs ...*Technology) *Memory {
	generic := NewGeneric()
	db := &Memory{generic: generic, techs: []*Technology{generic.Technology}}
	//
	for _, t := range techs {
		// Duplicates are simply ignored here
		_ = db.AddTechnology(t)
	}
	//
	return db
}

// FindLibrary implements Database.
func (p *Memory) FindLibrary(name string) *Library {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	for _, l := range p.libraries {
		if l.name == name {
			return l
		}
	}
	//
	return nil
}

// NewLibrary implements Database.
func (p *Memory) NewLibrary(name string, path string) (*Library, error) {
	if name == "" {
		return nil, fmt.Errorf("library has no name")
	} else if p.FindLibrary(name) != nil {
		return nil, fmt.Errorf("library %s already exists", name)
	}
	//
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	lib := &Library{name: name, Path: path, byName: make(map[id.CellName]*Cell)}
	p.libraries = append(p.libraries, lib)
	//
	return lib, nil
}

// Libraries implements Database.
func (p *Memory) Libraries() []*Library {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	return append([]*Library(nil), p.libraries...)
}

// FindTechnology implements Database.
func (p *Memory) FindTechnology(name string) *Technology {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	for _, t := range p.techs {
		if t.name == name {
			return t
		}
	}
	//
	return nil
}

// AddTechnology implements Database.
func (p *Memory) AddTechnology(tech *Technology) error {
	if p.FindTechnology(tech.name) != nil {
		return fmt.Errorf("technology %s already exists", tech.name)
	}
	//
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.techs = append(p.techs, tech)
	//
	return nil
}

// Technologies implements Database.
func (p *Memory) Technologies() []*Technology {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	return append([]*Technology(nil), p.techs...)
}

// Generic implements Database.
func (p *Memory) Generic() *Generic {
	return p.generic
}
