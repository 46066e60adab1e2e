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

// VarTrueLibrary is the key of the attribute holding the true library of a
// dummy cell.
const VarTrueLibrary = "IO_true_library"

// VarDummyObject is the key of the attribute marking a dummy cell or library.
const VarDummyObject = "IO_dummy_object"

// Tool names a tool to which an attribute refers.
type Tool string

// Variable is a named and typed attribute attached to some entity.  The value
// is either a scalar or a slice ([]any) of scalars.  Scalars are one of bool,
// byte, int16, int32, int64, float32, float64, string, Point, Tool, or a
// reference.  References are design entities once resolved, but remain as
// identifiers (from package id) when they could not be.
type Variable struct {
	Key        string
	Value      any
	Descriptor TextDescriptor
}

// IsArray checks whether this variable holds an array.
func (v Variable) IsArray() bool {
	_, ok := v.Value.([]any)
	return ok
}

// Variables is a list of attributes with unique keys, retained in the order
// they were first set.
type Variables struct {
	vars []Variable
}

// SetVar sets an attribute, replacing any existing attribute with the same key.
func (p *Variables) SetVar(v Variable) {
	for i := range p.vars {
		if p.vars[i].Key == v.Key {
			p.vars[i] = v
			return
		}
	}
	//
	p.vars = append(p.vars, v)
}

// Var looks up an attribute by key.
func (p *Variables) Var(key string) (Variable, bool) {
	for _, v := range p.vars {
		if v.Key == key {
			return v, true
		}
	}
	//
	return Variable{}, false
}

// Vars returns all attributes in order.
func (p *Variables) Vars() []Variable {
	return p.vars
}
