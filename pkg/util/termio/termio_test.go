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
package termio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnsiEscape_00(t *testing.T) {
	assert.Equal(t, "\033[31m", NewAnsiEscape().FgColour(TERM_RED).Build())
	assert.Equal(t, "\033[1;33m", BoldAnsiEscape().FgColour(TERM_YELLOW).Build())
	assert.Equal(t, "\033[32mok\033[0m", NewAnsiEscape().FgColour(TERM_GREEN).Wrap("ok"))
}

func TestTablePrinter_00(t *testing.T) {
	var out bytes.Buffer
	//
	table := NewTablePrinter(3, 2)
	table.SetRow(0, "library", "cells", "dummy")
	table.SetRow(1, "lib", "12", "no")
	table.SetEscape(2, 1, NewAnsiEscape().FgColour(TERM_RED))
	table.AnsiEscapes(false)
	table.Print(&out)
	//
	assert.Equal(t, "library  cells  dummy\nlib         12     no\n", out.String())
	assert.Equal(t, uint(2), table.Height())
	assert.Equal(t, "12", table.Get(1, 1))
}
