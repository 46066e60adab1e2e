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
package jelib

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/consensys/go-jelib/pkg/design"
	"github.com/consensys/go-jelib/pkg/id"
)

// variables decodes the trailing variable fields of a record.  Badly formed
// variables are reported and skipped, whilst empty fields are ignored.
func (p *parserContext) variables(fields []string) []design.Variable {
	var vars []design.Variable
	//
	for _, field := range fields {
		if field == "" {
			continue
		}
		//
		if v, ok := p.variable(field); ok {
			vars = append(vars, v)
		}
	}
	//
	return vars
}

// variable decodes a field of the form name(descriptor)Tvalue, or
// name(descriptor)T[value,...,value] for arrays.
func (p *parserContext) variable(field string) (design.Variable, bool) {
	var v design.Variable
	//
	open := p.openParen(field)
	if open < 0 {
		p.errorf("Badly formed variable (no open parenthesis): %s", field)
		return v, false
	}
	//
	closing := strings.IndexByte(field[open:], ')')
	if closing < 0 {
		p.errorf("Badly formed variable (no close parenthesis): %s", field)
		return v, false
	}
	//
	closing += open
	pos := closing + 1
	//
	if pos >= len(field) {
		p.errorf("Variable type missing: %s", field)
		return v, false
	}
	//
	tag := field[pos]
	pos++
	//
	if !strings.ContainsRune(valueTags, rune(tag)) {
		p.errorf("Variable type invalid: %s", field)
		return v, false
	} else if pos >= len(field) {
		// No value
		return v, false
	}
	//
	v.Key = p.tok.Unquote(field[:open])
	//
	if field[pos] != '[' {
		value, err := p.value(field[pos:], tag)
		if err != nil {
			p.errorf("Bad value (%s): %s", err.Error(), field)
			return v, false
		} else if value == nil {
			return v, false
		}
		//
		v.Value = value
	} else if array, ok := p.array(field, pos+1, tag); ok {
		v.Value = array
	} else {
		return v, false
	}
	//
	v.Descriptor = p.descriptor(field[open+1:closing], true)
	//
	return v, true
}

// valueTags lists the type letters of variables.
const valueTags = "BCDEFGHILOPRSTVY"

// openParen finds the first parenthesis which is neither escaped nor quoted.
func (p *parserContext) openParen(field string) int {
	quoted := false
	runes := []rune(field)
	//
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case p.tok.Escape:
			i++
		case '"':
			quoted = !quoted
		case '(':
			if !quoted {
				return len(string(runes[:i]))
			}
		}
	}
	//
	return -1
}

// array decodes the elements of an array value starting at the given position,
// which follows the opening bracket.  Elements which cannot be decoded are
// reported and left as nil.
func (p *parserContext) array(field string, pos int, tag byte) ([]any, bool) {
	var elements []any
	//
	for pos < len(field) {
		start := pos
		quoted := false
		//
		for ; pos < len(field); pos++ {
			c := field[pos]
			//
			if quoted {
				if c == byte(p.tok.Escape) {
					pos++
				} else if c == '"' {
					quoted = false
				}
			} else if c == ',' || c == ']' {
				break
			} else if c == '"' {
				quoted = true
			}
		}
		//
		value, err := p.value(field[start:min(pos, len(field))], tag)
		if err != nil {
			p.errorf("Bad value (%s): %s", err.Error(), field)
			value = nil
		}
		//
		elements = append(elements, value)
		//
		if pos >= len(field) || field[pos] == ']' {
			break
		}
		//
		pos++
	}
	//
	if pos >= len(field) {
		p.errorf("Badly formed array (no closed bracket): %s", field)
		return nil, false
	} else if pos < len(field)-1 {
		p.errorf("Badly formed array (extra characters after closed bracket): %s", field)
		return nil, false
	}
	//
	return elements, true
}

// value decodes a single value of the given type.  References are decoded into
// identifiers, and resolved only when the design is built.  An empty value
// gives nil.
func (p *parserContext) value(text string, tag byte) (any, error) {
	if text == "" {
		return nil, nil
	} else if p.grammar.Quoted {
		text = p.tok.Unquote(text)
	}
	//
	switch tag {
	case 'B':
		return strings.HasPrefix(text, "T"), nil
	case 'C':
		lib, cell, ok := strings.Cut(text, ":")
		if !ok {
			return nil, fmt.Errorf("cell missing colon")
		}
		//
		name, err := parseCellNameField(cell)
		if err != nil {
			return nil, err
		}
		//
		return p.ids.Library(lib).Cell(name), nil
	case 'D':
		return strconv.ParseFloat(text, 64)
	case 'E':
		lib, rest, ok := strings.Cut(text, ":")
		if !ok {
			return nil, fmt.Errorf("export missing library colon")
		}
		//
		cell, export, ok := strings.Cut(rest, ":")
		if !ok {
			return nil, fmt.Errorf("export missing cell colon")
		}
		//
		name, err := parseCellNameField(cell)
		if err != nil {
			return nil, err
		}
		//
		return p.ids.Library(lib).Cell(name).Export(beforeComma(export)), nil
	case 'F':
		f, err := strconv.ParseFloat(text, 32)
		return float32(f), err
	case 'G':
		return strconv.ParseInt(text, 10, 64)
	case 'H':
		h, err := strconv.ParseInt(text, 10, 16)
		return int16(h), err
	case 'I':
		i, err := strconv.ParseInt(text, 10, 32)
		return int32(i), err
	case 'L':
		return p.ids.Library(beforeComma(text)), nil
	case 'O':
		return design.Tool(beforeComma(text)), nil
	case 'P':
		tech, node, ok := strings.Cut(text, ":")
		if !ok {
			return nil, fmt.Errorf("primitive node missing colon")
		}
		//
		return p.ids.Technology(tech).PrimitiveNode(beforeComma(node)), nil
	case 'R':
		tech, arc, ok := strings.Cut(text, ":")
		if !ok {
			return nil, fmt.Errorf("arc proto missing colon")
		}
		//
		return p.ids.Technology(tech).ArcProto(beforeComma(arc)), nil
	case 'S':
		if p.grammar.Quoted {
			return text, nil
		}
		//
		return p.oldString(text)
	case 'T':
		return p.ids.Technology(beforeComma(text)), nil
	case 'V':
		xs, ys, ok := strings.Cut(text, "/")
		if !ok {
			return nil, fmt.Errorf("point missing slash")
		}
		//
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, err
		}
		//
		y, err := strconv.ParseFloat(ys, 64)
		//
		return design.Point{X: x, Y: y}, err
	case 'Y':
		b, err := strconv.ParseInt(text, 10, 8)
		return byte(b), err
	}
	//
	return nil, fmt.Errorf("unknown type %c", tag)
}

// oldString decodes a string value of the oldest revision, which is always in
// quotes.
func (p *parserContext) oldString(text string) (string, error) {
	if !strings.HasPrefix(text, "\"") {
		return "", fmt.Errorf("string missing open quote")
	}
	//
	var (
		builder strings.Builder
		runes   = []rune(text)
	)
	//
	for i := 1; i < len(runes); i++ {
		switch {
		case runes[i] == '"':
			return builder.String(), nil
		case runes[i] == p.tok.Escape && i+2 < len(runes) && runes[i+1] == '\\' && runes[i+2] == 'n':
			builder.WriteRune('\n')
			i += 2
		case runes[i] == p.tok.Escape && i+1 < len(runes):
			i++
			builder.WriteRune(runes[i])
		default:
			builder.WriteRune(runes[i])
		}
	}
	//
	return builder.String(), nil
}

func parseCellNameField(text string) (id.CellName, error) {
	return id.ParseCellName(beforeComma(text))
}

func beforeComma(text string) string {
	if comma := strings.IndexByte(text, ','); comma >= 0 {
		return text[:comma]
	}
	//
	return text
}
