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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion_00(t *testing.T) {
	checkVersion(t, "8.04l", Version{8, 4, 12, 0})
	checkVersion(t, "8.01aw", Version{8, 1, 49, 0})
	checkVersion(t, "9.01a2", Version{9, 1, 1, 2})
	checkVersion(t, "9.07", Version{9, 7, 0, 0})
	checkVersion(t, "8.10az", Version{8, 10, 52, 0})
}

func TestVersion_01(t *testing.T) {
	for _, text := range []string{"", "8", "8.", ".04", "8.04abc", "8.04l-", "x.04"} {
		_, err := ParseVersion(text)
		assert.Error(t, err, text)
	}
}

func TestVersion_02(t *testing.T) {
	assert.Equal(t, -1, MustParseVersion("8.04k").Compare(MustParseVersion("8.04l")))
	assert.Equal(t, -1, MustParseVersion("8.04z").Compare(MustParseVersion("8.04aa")))
	assert.Equal(t, 1, MustParseVersion("9.00").Compare(MustParseVersion("8.99zz")))
	assert.Equal(t, 1, MustParseVersion("9.01a2").Compare(MustParseVersion("9.01a")))
	assert.Equal(t, 0, MustParseVersion("9.01a").Compare(MustParseVersion("9.01a")))
}

func TestGrammar_00(t *testing.T) {
	assert.Equal(t, 0, GrammarFor(MustParseVersion("8.00")).Revision)
	assert.Equal(t, 0, GrammarFor(MustParseVersion("8.01av")).Revision)
	assert.Equal(t, 1, GrammarFor(MustParseVersion("8.01aw")).Revision)
	assert.Equal(t, 1, GrammarFor(MustParseVersion("8.04k")).Revision)
	assert.Equal(t, 2, GrammarFor(MustParseVersion("8.04l")).Revision)
	assert.Equal(t, 2, GrammarFor(MustParseVersion("9.07")).Revision)
	assert.Equal(t, 2, Newest().Revision)
}

func TestGrammar_01(t *testing.T) {
	for i, g := range Revisions {
		assert.Equal(t, i, g.Revision)
	}
	//
	assert.Equal(t, '^', Revisions[0].Escape)
	assert.Equal(t, 7, Revisions[0].CellFields)
	assert.Equal(t, 5, Revisions[1].ExportFields)
	assert.Equal(t, 7, Revisions[1].ExternalCellFields)
	assert.Equal(t, 8, Revisions[2].InstanceFields)
}

// ==================================================================
// Framework
// ==================================================================

func checkVersion(t *testing.T, text string, expected Version) {
	v, err := ParseVersion(text)
	require.NoError(t, err)
	assert.Equal(t, expected, v)
	assert.Equal(t, text, v.String())
}
