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
	"slices"
)

// Groups maintains a partition of cell base names into groups, as a union-find
// structure where the root of each group is its lexicographically smallest
// member.  Thus, the resulting partition does not depend upon the order in
// which names were related.
type Groups struct {
	parent map[string]string
}

// NewGroups constructs an empty set of groups.
func NewGroups() *Groups {
	return &Groups{make(map[string]string)}
}

// Add a name in a group of its own, unless it is already present.
func (p *Groups) Add(name string) {
	if _, ok := p.parent[name]; !ok {
		p.parent[name] = name
	}
}

// Contains checks whether a name has been added.
func (p *Groups) Contains(name string) bool {
	_, ok := p.parent[name]
	return ok
}

// Relate merges the groups of two names, adding either if necessary.
func (p *Groups) Relate(a string, b string) {
	p.Add(a)
	p.Add(b)
	//
	ra, rb := p.Find(a), p.Find(b)
	//
	if ra == rb {
		return
	} else if rb < ra {
		ra, rb = rb, ra
	}
	//
	p.parent[rb] = ra
}

// Find returns the root of the group containing a name.  A name which was
// never added is its own root.
func (p *Groups) Find(name string) string {
	root, ok := p.parent[name]
	if !ok {
		return name
	}
	//
	for root != p.parent[root] {
		root = p.parent[root]
	}
	// Compress path
	for name != root {
		next := p.parent[name]
		p.parent[name] = root
		name = next
	}
	//
	return root
}

// Partition returns all groups, each sorted, with groups sorted by their root.
func (p *Groups) Partition() [][]string {
	var (
		members = make(map[string][]string)
		roots   []string
	)
	//
	for name := range p.parent {
		root := p.Find(name)
		if _, ok := members[root]; !ok {
			roots = append(roots, root)
		}
		//
		members[root] = append(members[root], name)
	}
	//
	slices.Sort(roots)
	//
	partition := make([][]string, len(roots))
	//
	for i, root := range roots {
		group := members[root]
		slices.Sort(group)
		partition[i] = group
	}
	//
	return partition
}
