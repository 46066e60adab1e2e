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
	"strings"

	"github.com/consensys/go-jelib/pkg/util/source/lex"
)

// Delimiter separates the fields of a record.
const Delimiter = '|'

const (
	endOfLine uint = iota
	fieldToken
	delimToken
)

// Tokenizer splits record lines into fields, and converts between the quoted
// form of names and their plain form.
type Tokenizer struct {
	Escape    rune
	Delimiter rune
	// Quoted enables the quoting rules used from revision 1 onwards
	Quoted bool
}

// NewTokenizer returns the tokenizer for a given revision grammar.
func NewTokenizer(g Grammar) Tokenizer {
	return Tokenizer{Escape: g.Escape, Delimiter: Delimiter, Quoted: g.Quoted}
}

// Split breaks a record line into its fields.  The leading record tag is not
// part of any field.  Delimiters which are escaped or quoted do not split, and
// quotes and escapes are kept in the resulting fields.
func (p Tokenizer) Split(line string) []string {
	items := []rune(line)
	// Header and cell lines may carry a delimiter directly after the tag.
	// Their first field is a name which is never empty.
	skip := len(items) > 0 && (items[0] == 'H' || items[0] == 'C')
	//
	if len(items) > 0 {
		items = items[1:]
	}
	//
	if skip && len(items) > 0 && items[0] == p.Delimiter {
		items = items[1:]
	}
	//
	var (
		lexer   = lex.NewLexer(items, p.rules()...)
		fields  []string
		current string
	)
	//
	for lexer.HasNext() {
		token := lexer.Next()
		//
		switch token.Kind {
		case fieldToken:
			current = string(lexer.Items(token))
		case delimToken:
			fields = append(fields, current)
			current = ""
		case endOfLine:
			fields = append(fields, current)
		}
	}
	//
	return fields
}

func (p Tokenizer) rules() []lex.LexRule[rune] {
	escaped := lex.Or(lex.Sequence(lex.Unit(p.Escape), lex.Any[rune]()), lex.Unit(p.Escape))
	quoted := lex.Delimited('"', '"', p.Escape)
	plain := lex.NoneOf(p.Delimiter, '"', p.Escape)
	//
	return []lex.LexRule[rune]{
		lex.Rule(lex.Many(lex.Or(escaped, quoted, plain)), fieldToken),
		lex.Rule(lex.Unit(p.Delimiter), delimToken),
		lex.Rule(lex.Eof[rune](), endOfLine),
	}
}

// Unquote converts a field into the name or value it represents.  From
// revision 1, a field in quotes has them removed and its escapes resolved
// (including \n and \r), whilst any text following the closing quote is kept
// as is.  Fields not starting with a quote are returned unchanged.  Earlier
// revisions have no quoting, and only resolve escapes.
func (p Tokenizer) Unquote(field string) string {
	if p.Quoted {
		if len(field) < 2 || field[0] != '"' {
			return field
		}
		//
		last := strings.LastIndexByte(field, '"')
		if last != len(field)-1 {
			return p.Unquote(field[:last+1]) + field[last+1:]
		}
		//
		field = field[1 : len(field)-1]
	} else if !strings.ContainsRune(field, p.Escape) {
		return field
	}
	//
	var (
		builder strings.Builder
		runes   = []rune(field)
	)
	//
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		//
		if r == p.Escape {
			if i++; i >= len(runes) {
				break
			}
			//
			r = runes[i]
			//
			if p.Quoted && r == 'n' {
				r = '\n'
			} else if p.Quoted && r == 'r' {
				r = '\r'
			}
		}
		//
		builder.WriteRune(r)
	}
	//
	return builder.String()
}

// Quote converts a name or value into its field form, such that Unquote gives
// back the original.  Text which needs no quoting is returned unchanged.
func (p Tokenizer) Quote(text string) string {
	if !p.Quoted {
		return p.escape(text, false)
	} else if !p.needsQuotes(text) {
		return text
	}
	//
	return "\"" + p.escape(text, true) + "\""
}

func (p Tokenizer) needsQuotes(text string) bool {
	if text == "" {
		return false
	}
	//
	for _, r := range text {
		switch r {
		case p.Delimiter, p.Escape, '"', '\n', '\r':
			return true
		}
	}
	//
	return false
}

func (p Tokenizer) escape(text string, quoted bool) string {
	var builder strings.Builder
	//
	for _, r := range text {
		switch {
		case quoted && r == '\n':
			builder.WriteRune(p.Escape)
			builder.WriteRune('n')
		case quoted && r == '\r':
			builder.WriteRune(p.Escape)
			builder.WriteRune('r')
		case r == p.Escape || r == '"' || (!quoted && r == p.Delimiter):
			builder.WriteRune(p.Escape)
			builder.WriteRune(r)
		default:
			builder.WriteRune(r)
		}
	}
	//
	return builder.String()
}
