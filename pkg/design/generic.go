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

// GenericTechName is the name of the generic technology.
const GenericTechName = "generic"

// Generic is the technology of technology-independent primitives.  Its pins are
// used when placeholders have to be fabricated.
type Generic struct {
	*Technology
	// Pin which is never drawn, used as a marker in dummy cells
	InvisiblePin *PrimitiveNode
	// Pin which connects to any arc
	UniversalPin *PrimitiveNode
	// Pin for unrouted connections
	UnroutedPin *PrimitiveNode
	// Arc which connects anything
	Universal *ArcProto
	// Arc which is never drawn
	Invisible *ArcProto
	// Arc for unrouted connections
	Unrouted *ArcProto
}

// NewGeneric constructs the generic technology.
func NewGeneric() *Generic {
	tech := NewTechnology(GenericTechName)
	tech.Description = "Useful primitives"
	//
	g := &Generic{Technology: tech}
	g.InvisiblePin = mustNode(tech, "Invisible-Pin", "center")
	g.UniversalPin = mustNode(tech, "Universal-Pin", "univ")
	g.UnroutedPin = mustNode(tech, "Unrouted-Pin", "unrouted")
	g.Universal, _ = tech.AddArc("Universal", 0)
	g.Invisible, _ = tech.AddArc("Invisible", 0)
	g.Unrouted, _ = tech.AddArc("Unrouted", 0)
	//
	return g
}

func mustNode(tech *Technology, name string, port string) *PrimitiveNode {
	node, err := tech.AddNode(name, 1, 1)
	if err != nil {
		panic(err)
	}
	//
	node.Function = "pin"
	//
	if _, err := node.AddCentrePort(port); err != nil {
		panic(err)
	}
	//
	return node
}
