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

import (
	"fmt"
	"strconv"
	"strings"
)

// CellName is the qualified name of a cell, written name;version{view}.  The
// version and view are optional, with a zero version meaning "unversioned".
type CellName struct {
	Name    string
	Version int
	View    string
}

// ParseCellName parses a qualified cell name.  A name is badly formed if its
// base name is empty, its version is not a positive integer or its view is
// unterminated.
func ParseCellName(text string) (CellName, error) {
	var name CellName
	//
	if open := strings.IndexByte(text, '{'); open >= 0 {
		if !strings.HasSuffix(text, "}") {
			return name, fmt.Errorf("badly formed cell name %q (unterminated view)", text)
		}
		//
		name.View = text[open+1 : len(text)-1]
		text = text[:open]
	}
	//
	if semi := strings.IndexByte(text, ';'); semi >= 0 {
		version, err := strconv.Atoi(text[semi+1:])
		if err != nil || version <= 0 {
			return name, fmt.Errorf("badly formed cell name %q (bad version)", text)
		}
		//
		name.Version = version
		text = text[:semi]
	}
	//
	if text == "" {
		return name, fmt.Errorf("badly formed cell name (empty)")
	}
	//
	name.Name = text
	//
	return name, nil
}

// String returns the qualified form of this cell name.
func (n CellName) String() string {
	var builder strings.Builder
	//
	builder.WriteString(n.Name)
	//
	if n.Version > 0 {
		builder.WriteString(";")
		builder.WriteString(strconv.Itoa(n.Version))
	}
	//
	if n.View != "" {
		builder.WriteString("{")
		builder.WriteString(n.View)
		builder.WriteString("}")
	}
	//
	return builder.String()
}
