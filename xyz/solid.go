// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

// Solid represents an individual 3D solid element, one drawable mesh
// with its own material. Its Name is the mesh identifier used to
// decide how the material is painted.
type Solid struct {
	NodeBase

	// MeshName is the name of the mesh shape information used for rendering
	// this solid, as authored in the asset file.
	MeshName string

	// Material contains the material properties of the surface (color, roughness, texture, etc).
	Material Material

	// MeshBBox is the bounding box of the mesh vertices in local coordinates.
	MeshBBox Box3
}

// NewSolid returns a new [Solid] with default material, added
// to the given parent if it is non-nil.
func NewSolid(parent Node, name string) *Solid {
	sld := &Solid{}
	InitNode(sld, name)
	sld.Material.Defaults()
	if parent != nil {
		parent.AsNode().AddChild(sld)
	}
	return sld
}

func (sld *Solid) NewInstance() Node { return &Solid{} }

// CopyFieldsFrom copies the solid fields, sharing the texture
// of the source material.
func (sld *Solid) CopyFieldsFrom(from Node) {
	sld.NodeBase.CopyFieldsFrom(from)
	if fs, ok := from.(*Solid); ok {
		sld.Material.Texture = fs.Material.Texture
	}
}
