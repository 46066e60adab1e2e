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
package id

import "sync"

// Manager holds the symbol tables for one import session.  Every identifier
// is created on first mention and memoised, so interning the same name (within
// the same scope) always returns the identical pointer.  Identifiers created by
// different managers are never equal.
type Manager struct {
	mutex     sync.Mutex
	libraries map[string]*LibId
	libOrder  []*LibId
	techs     map[string]*TechId
	techOrder []*TechId
	fonts     map[string]int
	fontNames []string
}

// NewManager constructs an empty set of symbol tables.
func NewManager() *Manager {
	return &Manager{
		libraries: make(map[string]*LibId),
		techs:     make(map[string]*TechId),
		fonts:     make(map[string]int),
	}
}

// Library interns the library with the given name.
func (m *Manager) Library(name string) *LibId {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	//
	if l, ok := m.libraries[name]; ok {
		return l
	}
	//
	l := &LibId{symbol{&m.mutex, name, Referenced}, make(map[CellName]*CellId), nil}
	m.libraries[name] = l
	m.libOrder = append(m.libOrder, l)
	//
	return l
}

// FindLibrary looks up the library with the given name, without creating it.
func (m *Manager) FindLibrary(name string) *LibId {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	//
	return m.libraries[name]
}

// Libraries returns all libraries in order of first mention.
func (m *Manager) Libraries() []*LibId {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	//
	return append([]*LibId(nil), m.libOrder...)
}

// Technology interns the technology with the given name.
func (m *Manager) Technology(name string) *TechId {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	//
	if t, ok := m.techs[name]; ok {
		return t
	}
	//
	t := &TechId{symbol{&m.mutex, name, Referenced}, make(map[string]*PrimitiveNodeId),
		make(map[string]*ArcProtoId)}
	m.techs[name] = t
	m.techOrder = append(m.techOrder, t)
	//
	return t
}

// FindTechnology looks up the technology with the given name, without creating
// it.
func (m *Manager) FindTechnology(name string) *TechId {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	//
	return m.techs[name]
}

// Technologies returns all technologies in order of first mention.
func (m *Manager) Technologies() []*TechId {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	//
	return append([]*TechId(nil), m.techOrder...)
}

// Font interns a font name, returning its index.  Font indices start from 1,
// since 0 denotes the default font.
func (m *Manager) Font(name string) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	//
	if f, ok := m.fonts[name]; ok {
		return f
	}
	//
	m.fontNames = append(m.fontNames, name)
	m.fonts[name] = len(m.fontNames)
	//
	return len(m.fontNames)
}

// FontName returns the name of the font with the given index, or the empty
// string if there is no such font.
func (m *Manager) FontName(index int) string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	//
	if index < 1 || index > len(m.fontNames) {
		return ""
	}
	//
	return m.fontNames[index-1]
}
