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
)

func TestGroups_00(t *testing.T) {
	groups := NewGroups()
	groups.Add("a")
	groups.Relate("c", "b")
	groups.Relate("d", "c")
	//
	assert.True(t, groups.Contains("d"))
	assert.False(t, groups.Contains("e"))
	assert.Equal(t, "b", groups.Find("d"))
	assert.Equal(t, "e", groups.Find("e"))
	assert.Equal(t, [][]string{{"a"}, {"b", "c", "d"}}, groups.Partition())
}

func TestGroups_01(t *testing.T) {
	relations := [][2]string{{"inv", "nand"}, {"nor", "xor"}, {"xor", "inv"}, {"buf", "buf"}, {"mux", "nor"}}
	expected := [][]string{{"buf"}, {"inv", "mux", "nand", "nor", "xor"}}
	// Every order of relating gives the same partition
	for _, perm := range permutations(len(relations)) {
		groups := NewGroups()
		//
		for _, i := range perm {
			groups.Relate(relations[i][0], relations[i][1])
		}
		//
		assert.Equal(t, expected, groups.Partition(), "%v", perm)
		assert.Equal(t, "inv", groups.Find("mux"))
	}
}

// ==================================================================
// Framework
// ==================================================================

func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	//
	var perms [][]int
	//
	for _, perm := range permutations(n - 1) {
		for i := 0; i <= len(perm); i++ {
			next := make([]int, 0, n)
			next = append(next, perm[:i]...)
			next = append(next, n-1)
			next = append(next, perm[i:]...)
			perms = append(perms, next)
		}
	}
	//
	return perms
}
