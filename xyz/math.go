// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/chewxy/math32"
)

// Vector2 is a 2D vector.
type Vector2 struct {
	X, Y float32
}

// Vec2 returns a new [Vector2].
func Vec2(x, y float32) Vector2 { return Vector2{x, y} }

// Vector3 is a 3D vector.
type Vector3 struct {
	X, Y, Z float32
}

// Mul returns the component-wise product.
func (v Vector3) Mul(o Vector3) Vector3 {
	return Vector3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Abs returns the component-wise absolute value.
func (v Vector3) Abs() Vector3 {
	return Vector3{math32.Abs(v.X), math32.Abs(v.Y), math32.Abs(v.Z)}
}

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min, Max Vector3
}

// IsEmpty returns whether the box has no extent on any axis,
// which is the case for meshes with no bounds information.
func (b Box3) IsEmpty() bool {
	return b.Max.X <= b.Min.X && b.Max.Y <= b.Min.Y && b.Max.Z <= b.Min.Z
}

// Size returns the extent of the box on each axis.
func (b Box3) Size() Vector3 {
	if b.IsEmpty() {
		return Vector3{}
	}
	return Vector3{
		math32.Max(b.Max.X-b.Min.X, 0),
		math32.Max(b.Max.Y-b.Min.Y, 0),
		math32.Max(b.Max.Z-b.Min.Z, 0),
	}
}

// ExpandBy returns the box grown to contain o.
func (b Box3) ExpandBy(o Box3) Box3 {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return Box3{
		Min: Vector3{math32.Min(b.Min.X, o.Min.X), math32.Min(b.Min.Y, o.Min.Y), math32.Min(b.Min.Z, o.Min.Z)},
		Max: Vector3{math32.Max(b.Max.X, o.Max.X), math32.Max(b.Max.Y, o.Max.Y), math32.Max(b.Max.Z, o.Max.Z)},
	}
}
