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

import (
	"fmt"
	"math"
)

// TinyDistance is the tolerance used when checking whether a point lies within
// a port.
const TinyDistance = 2e-9

// Point is a location in the plane.
type Point struct {
	X float64
	Y float64
}

// Add returns the sum of two points.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Rect is an axis-aligned rectangle, where Min holds the lowest coordinates and
// Max the highest.  A rectangle may be degenerate (e.g. a single point).
type Rect struct {
	Min Point
	Max Point
}

// RectAround constructs the rectangle with a given centre and size.  Negative
// sizes are treated as their absolute value.
func RectAround(centre Point, width, height float64) Rect {
	w, h := math.Abs(width)/2, math.Abs(height)/2
	//
	return Rect{Point{centre.X - w, centre.Y - h}, Point{centre.X + w, centre.Y + h}}
}

// Bounding returns the smallest rectangle enclosing all the given points.
func Bounding(points ...Point) Rect {
	r := Rect{points[0], points[0]}
	//
	for _, p := range points[1:] {
		r.Min.X, r.Min.Y = math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y)
		r.Max.X, r.Max.Y = math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y)
	}
	//
	return r
}

// Centre returns the centre of this rectangle.
func (r Rect) Centre() Point {
	return Point{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Width returns the width of this rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of this rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Union returns the smallest rectangle enclosing both rectangles.
func (r Rect) Union(o Rect) Rect {
	return Bounding(r.Min, r.Max, o.Min, o.Max)
}

// Distance returns the distance from a point to this rectangle, which is zero
// for points inside.
func (r Rect) Distance(p Point) float64 {
	dx := math.Max(0, math.Max(r.Min.X-p.X, p.X-r.Max.X))
	dy := math.Max(0, math.Max(r.Min.Y-p.Y, p.Y-r.Max.Y))
	//
	return math.Hypot(dx, dy)
}

// Contains checks whether a point lies within this rectangle, or within a given
// tolerance of it.
func (r Rect) Contains(p Point, tolerance float64) bool {
	return r.Distance(p) <= tolerance
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g..%g, %g..%g]", r.Min.X, r.Max.X, r.Min.Y, r.Max.Y)
}

// Orientation describes how a node is placed: first mirrored (in X and/or Y)
// and then rotated anti-clockwise about its anchor.  Angles are in tenths of a
// degree.
type Orientation struct {
	Angle   int
	MirrorX bool
	MirrorY bool
}

// Normalised returns this orientation with its angle in the range [0,3600).
func (o Orientation) Normalised() Orientation {
	o.Angle = ((o.Angle % 3600) + 3600) % 3600
	return o
}

// IsIdentity checks whether this orientation leaves points unchanged.
func (o Orientation) IsIdentity() bool {
	return o.Normalised().Angle == 0 && !o.MirrorX && !o.MirrorY
}

// Apply maps a point from the node's coordinates into its parent's, ignoring
// the anchor.
func (o Orientation) Apply(p Point) Point {
	if o.MirrorX {
		p.X = -p.X
	}
	//
	if o.MirrorY {
		p.Y = -p.Y
	}
	//
	return rotate(p, o.Angle)
}

// Inverse maps a point from the parent's coordinates back into the node's,
// ignoring the anchor.  This undoes Apply.
func (o Orientation) Inverse(p Point) Point {
	p = rotate(p, -o.Angle)
	//
	if o.MirrorY {
		p.Y = -p.Y
	}
	//
	if o.MirrorX {
		p.X = -p.X
	}
	//
	return p
}

// ApplyRect maps a rectangle through this orientation.
func (o Orientation) ApplyRect(r Rect) Rect {
	return Bounding(o.Apply(r.Min), o.Apply(r.Max), o.Apply(Point{r.Min.X, r.Max.Y}),
		o.Apply(Point{r.Max.X, r.Min.Y}))
}

// Rotation by multiples of 90 degrees is exact.
func rotate(p Point, angle int) Point {
	switch ((angle % 3600) + 3600) % 3600 {
	case 0:
		return p
	case 900:
		return Point{-p.Y, p.X}
	case 1800:
		return Point{-p.X, -p.Y}
	case 2700:
		return Point{p.Y, -p.X}
	}
	//
	theta := float64(angle) * math.Pi / 1800
	sin, cos := math.Sincos(theta)
	//
	return Point{p.X*cos - p.Y*sin, p.X*sin + p.Y*cos}
}
